package easyprot

import (
	"strconv"
	"strings"
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || isDigit(b)
}

// span returns the length of the longest prefix of s whose bytes satisfy ok.
func span(s string, ok func(byte) bool) int {
	n := 0
	for n < len(s) && ok(s[n]) {
		n++
	}
	return n
}

// whitespace skips a run of blanks and newlines. It never fails.
func whitespace(c cursor) cursor {
	return c.advance(span(c.rest(), isSpace))
}

// requireSpace is whitespace that must match at least one character.
func requireSpace(c cursor) (cursor, *ParseError) {
	n := span(c.rest(), isSpace)
	if n == 0 {
		return c, c.fail(UnexpectedToken, "whitespace")
	}
	return c.advance(n), nil
}

// identifier matches [A-Za-z0-9]+.
func identifier(c cursor) (cursor, string, *ParseError) {
	n := span(c.rest(), isAlnum)
	if n == 0 {
		return c, "", c.fail(EmptyIdentifier, "identifier")
	}
	return c.advance(n), strings.Clone(c.rest()[:n]), nil
}

// digits matches [0-9]+.
func digits(c cursor) (cursor, string, *ParseError) {
	n := span(c.rest(), isDigit)
	if n == 0 {
		return c, "", c.fail(EmptyNumber, "number")
	}
	return c.advance(n), c.rest()[:n], nil
}

// number matches a digit run that fits in a uint64.
func number(c cursor) (cursor, uint64, *ParseError) {
	next, text, err := digits(c)
	if err != nil {
		return c, 0, err
	}
	v, perr := strconv.ParseUint(text, 10, 64)
	if perr != nil {
		return c, 0, c.failWith(MalformedFieldNumber, "number that fits in 64 bits", perr)
	}
	return next, v, nil
}

const (
	docOpen  = "/**"
	docClose = "*/"
)

// docComments skips whitespace and any `/** ... */` blocks interleaved with
// it, returning the trimmed comment bodies in order. It never fails; an
// unterminated block is left in place and recorded as a failure so that
// later errors point at its end.
func docComments(c cursor) (cursor, []DocComment) {
	var docs []DocComment
	for {
		c = whitespace(c)
		rest := c.rest()
		if !strings.HasPrefix(rest, docOpen) {
			return c, docs
		}
		end := strings.Index(rest[len(docOpen):], docClose)
		if end < 0 {
			return c.note(c.advance(len(rest)).fail(UnexpectedToken, quote(docClose))), docs
		}
		text := strings.TrimSpace(rest[len(docOpen) : len(docOpen)+end])
		docs = append(docs, DocComment{Text: strings.Clone(text)})
		c = c.advance(len(docOpen) + end + len(docClose))
	}
}

// docSink accumulates the doc comments found at the interleave points of a
// single declaration.
type docSink []DocComment

func (s *docSink) skip(c cursor) cursor {
	c, docs := docComments(c)
	*s = append(*s, docs...)
	return c
}
