package easyprot

import "strings"

const escapedQuote = `\"`

// stringFragment matches either a non-empty run free of quotes and
// backslashes, or an escaped quote.
func stringFragment(c cursor) (cursor, string, *ParseError) {
	if c.atEnd() {
		return c, "", c.fail(UnterminatedString, `closing "`)
	}
	if n := strings.IndexAny(c.rest(), `"\`); n != 0 {
		if n < 0 {
			n = len(c.rest())
		}
		return c.advance(n), c.rest()[:n], nil
	}
	next, err := tag(c, escapedQuote)
	if err != nil {
		return c, "", err
	}
	return next, escapedQuote, nil
}

// stringLiteral matches a double-quoted string. The contents are returned as
// written: an escaped quote keeps its backslash.
func stringLiteral(c cursor) (cursor, string, *ParseError) {
	c, err := tag(c, `"`)
	if err != nil {
		return c, "", err
	}
	var b strings.Builder
	for {
		next, frag, err := stringFragment(c)
		if err != nil {
			break
		}
		b.WriteString(frag)
		c = next
	}
	if c.atEnd() || !strings.Contains(c.rest(), `"`) {
		return c, "", c.fail(UnterminatedString, `closing "`)
	}
	c, err = tag(c, `"`)
	if err != nil {
		return c, "", err
	}
	return c, b.String(), nil
}
