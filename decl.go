package easyprot

var (
	messageFields = many(messageField)
	enumValues    = many(enumValue)
)

// message matches `Message Name { field* }`.
func message(c cursor) (cursor, *Message, *ParseError) {
	var err *ParseError
	m := &Message{}

	c, m.Docs = docComments(c)
	if c, m.Name, err = declHeader(c, "Message"); err != nil {
		return c, nil, err
	}
	c, m.Fields = messageFields(c)
	if c, err = declFooter(c); err != nil {
		return c, nil, err
	}
	return c, m, nil
}

// enum matches `Enum Name { value* }`.
func enum(c cursor) (cursor, *Enum, *ParseError) {
	var err *ParseError
	e := &Enum{}

	c, e.Docs = docComments(c)
	if c, e.Name, err = declHeader(c, "Enum"); err != nil {
		return c, nil, err
	}
	c, e.Values = enumValues(c)
	if c, err = declFooter(c); err != nil {
		return c, nil, err
	}
	return c, e, nil
}

// declHeader matches the keyword, name and opening brace shared by every
// declaration.
func declHeader(c cursor, kw string) (cursor, string, *ParseError) {
	var name string
	var err *ParseError
	if c, err = keyword(c, kw); err != nil {
		return c, "", err
	}
	if c, err = requireSpace(c); err != nil {
		return c, "", err
	}
	if c, name, err = identifier(c); err != nil {
		return c, "", err
	}
	c = whitespace(c)
	if c, err = tag(c, "{"); err != nil {
		return c, "", err
	}
	return whitespace(c), name, nil
}

func declFooter(c cursor) (cursor, *ParseError) {
	c = whitespace(c)
	c, err := tag(c, "}")
	if err != nil {
		return c, err
	}
	return whitespace(c), nil
}

// declaration tries Message before Enum.
var declaration = alt(
	as(message, func(m *Message) Declaration { return m }),
	as(enum, func(e *Enum) Declaration { return e }),
)
