package easyprot

// modifier matches an optional `optional` or `repeated` keyword.
func modifier(c cursor) (cursor, Modifier) {
	if next, err := keyword(c, "optional"); err == nil {
		return next, Optional
	}
	if next, err := keyword(c, "repeated"); err == nil {
		return next, Repeated
	}
	return c, ModifierNone
}

// scalarType matches one of the type keywords, tried in declaration order.
func scalarType(c cursor) (cursor, ScalarType, *ParseError) {
	for _, t := range scalarTypes {
		if next, err := keyword(c, t.String()); err == nil {
			return next, t, nil
		}
	}
	return c, 0, c.fail(UnknownFieldType, "field type")
}

// field returns the rule for one scalar field. Doc comments may appear
// between any two of its tokens and after its semicolon. Fields directly in a
// message must carry a modifier; oneof members need not.
func field(requireModifier bool) rule[*ScalarField] {
	return func(c cursor) (cursor, *ScalarField, *ParseError) {
		var docs docSink
		var err *ParseError
		f := &ScalarField{}

		c = docs.skip(c)
		modAt := c
		c, f.Modifier = modifier(c)
		c = docs.skip(c)
		if c, f.Type, err = scalarType(c); err != nil {
			return c, nil, err
		}
		if requireModifier && f.Modifier == ModifierNone {
			return c, nil, modAt.fail(UnexpectedToken, `"optional" or "repeated"`)
		}
		if c, err = requireSpace(c); err != nil {
			return c, nil, err
		}
		c = docs.skip(c)
		if c, f.Name, err = identifier(c); err != nil {
			return c, nil, err
		}
		c = docs.skip(c)
		if c, err = tag(c, "="); err != nil {
			return c, nil, err
		}
		c = docs.skip(c)
		if c, f.Number, err = number(c); err != nil {
			return c, nil, err
		}
		c = docs.skip(c)
		if c, err = tag(c, ";"); err != nil {
			return c, nil, err
		}
		c = docs.skip(c)

		f.Docs = docs
		return c, f, nil
	}
}

var (
	messageScalarField = field(true)
	oneofMember        = field(false)
	oneofMembers       = many(oneofMember)
)

// oneofField matches `oneof name { member* }`.
func oneofField(c cursor) (cursor, *OneOfField, *ParseError) {
	var err *ParseError
	o := &OneOfField{}

	c, _ = docComments(c)
	if c, err = exactKeyword(c, "oneof"); err != nil {
		return c, nil, err
	}
	c = whitespace(c)
	if c, o.Name, err = identifier(c); err != nil {
		return c, nil, err
	}
	c = whitespace(c)
	if c, err = tag(c, "{"); err != nil {
		return c, nil, err
	}
	c = whitespace(c)
	c, o.Members = oneofMembers(c)
	c = whitespace(c)
	if c, err = tag(c, "}"); err != nil {
		return c, nil, err
	}
	return whitespace(c), o, nil
}

// messageField is a scalar field or, failing that, a oneof group.
var messageField = alt(
	as(messageScalarField, func(f *ScalarField) MessageField { return f }),
	as(oneofField, func(o *OneOfField) MessageField { return o }),
)

// enumValue matches `NAME = number;`.
func enumValue(c cursor) (cursor, *EnumValue, *ParseError) {
	var err *ParseError
	v := &EnumValue{}

	c, v.Docs = docComments(c)
	if c, v.Name, err = identifier(c); err != nil {
		return c, nil, err
	}
	c = whitespace(c)
	if c, err = tag(c, "="); err != nil {
		return c, nil, err
	}
	c = whitespace(c)
	if c, v.Number, err = number(c); err != nil {
		return c, nil, err
	}
	c = whitespace(c)
	if c, err = tag(c, ";"); err != nil {
		return c, nil, err
	}
	return whitespace(c), v, nil
}
