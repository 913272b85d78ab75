// Package easyprot parses a small Protocol Buffers style schema language.
//
// A source file holds an optional `syntax = "...";` statement followed by any
// number of Message and Enum declarations:
//
//	syntax = "proto3";
//
//	/** A person. */
//	Message Person {
//	  optional string name = 1;
//	  repeated uint32 luckyNumbers = 2;
//	  oneof contact {
//	    string email = 3;
//	    uint64 phone = 4;
//	  }
//	}
//
//	Enum Color {
//	  RED = 0;
//	  GREEN = 1;
//	}
//
// Keywords other than `oneof` are case insensitive. Identifiers are ASCII
// letters and digits only. Doc comments (`/** ... */`) may appear between any
// two tokens of a field declaration and in front of declarations, oneof
// groups and enum values.
//
// Parsing is a pure function of the source text; it is safe to parse
// different documents from multiple goroutines.
package easyprot

var declarations = many(declaration)

// syntaxStatement matches `syntax = "literal";`.
func syntaxStatement(c cursor) (cursor, string, *ParseError) {
	var lit string
	var err *ParseError
	if c, err = keyword(c, "syntax"); err != nil {
		return c, "", err
	}
	c = whitespace(c)
	if c, err = tag(c, "="); err != nil {
		return c, "", err
	}
	c = whitespace(c)
	if c, lit, err = stringLiteral(c); err != nil {
		return c, "", err
	}
	c = whitespace(c)
	if c, err = tag(c, ";"); err != nil {
		return c, "", err
	}
	return whitespace(c), lit, nil
}

// document matches a whole source file. It never fails: whatever cannot be
// matched is left on the returned cursor. Doc comments after the last
// declaration document nothing and are skipped.
func document(c cursor) (cursor, *Document) {
	doc := &Document{}
	c = whitespace(c)
	if next, lit, err := syntaxStatement(c); err != nil {
		c = c.note(err)
	} else {
		c = next
		doc.Syntax = &lit
	}
	c, doc.Declarations = declarations(c)
	c, _ = docComments(c)
	return c, doc
}

// Prefix is the result of ParsePrefix.
type Prefix struct {
	Document *Document
	// Rest is the input left over after the last complete declaration.
	Rest string
	// Offset is the byte offset of Rest in the source.
	Offset int
	// Stop explains why parsing ended before the end of the source. It is
	// nil when the whole source was consumed.
	Stop *ParseError
}

// ParsePrefix parses as much of source as forms a document and reports the
// remainder.
func ParsePrefix(source string) Prefix {
	c, doc := document(newCursor(source))
	p := Prefix{Document: doc, Rest: c.rest(), Offset: c.off}
	if c.atEnd() {
		return p
	}
	// A failure past the stopping point explains why the next declaration
	// was rejected; otherwise nothing even started to match there.
	if f := c.furthest; f != nil && f.Offset > c.off {
		p.Stop = f.located(source)
	} else {
		p.Stop = (&ParseError{Kind: TrailingInput, Offset: c.off, Expected: "declaration or end of input"}).located(source)
	}
	return p
}

// Parse parses a complete document. Any input that does not belong to the
// document is an error.
func Parse(source string) (*Document, error) {
	p := ParsePrefix(source)
	if p.Stop != nil {
		return nil, p.Stop
	}
	return p.Document, nil
}
