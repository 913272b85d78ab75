package easyprot

import "strings"

// cursor is an immutable view of the input that remains to be parsed.
//
// Rules take a cursor by value and hand back a new one. A rule that fails
// never changes the caller's cursor, so backtracking to try another
// alternative is just a matter of reusing it.
type cursor struct {
	src string
	off int

	// furthest is the deepest failure recorded by an abandoned alternative.
	furthest *ParseError
}

// rule is a single grammar production. On failure the returned cursor must
// not be used.
type rule[T any] func(c cursor) (cursor, T, *ParseError)

func newCursor(src string) cursor {
	return cursor{src: src}
}

func (c cursor) rest() string {
	return c.src[c.off:]
}

func (c cursor) atEnd() bool {
	return c.off >= len(c.src)
}

func (c cursor) advance(n int) cursor {
	c.off += n
	return c
}

// fail builds a failure at the current offset. If an abandoned alternative
// got further into the input, that failure is reported instead.
func (c cursor) fail(kind ErrorKind, expected string) *ParseError {
	return deeper(c.furthest, &ParseError{Kind: kind, Offset: c.off, Expected: expected})
}

func (c cursor) failWith(kind ErrorKind, expected string, cause error) *ParseError {
	return deeper(c.furthest, &ParseError{Kind: kind, Offset: c.off, Expected: expected, Err: cause})
}

// note records err as the furthest failure if it reached deeper than the one
// already recorded.
func (c cursor) note(err *ParseError) cursor {
	c.furthest = deeper(c.furthest, err)
	return c
}

// deeper returns whichever failure has the larger offset. On a tie the one
// recorded first wins.
func deeper(recorded, err *ParseError) *ParseError {
	switch {
	case recorded == nil:
		return err
	case err == nil:
		return recorded
	case err.Offset > recorded.Offset:
		return err
	default:
		return recorded
	}
}

// alt tries each rule in order from the same cursor and returns the first
// success. When every rule fails, the deepest of their failures is returned.
func alt[T any](first rule[T], others ...rule[T]) rule[T] {
	return func(c cursor) (cursor, T, *ParseError) {
		next, v, err := first(c)
		for _, r := range others {
			if err == nil {
				break
			}
			c = c.note(err)
			next, v, err = r(c)
		}
		if err != nil {
			return c, v, deeper(c.furthest, err)
		}
		return next, v, nil
	}
}

// many applies r until it fails or stops making progress. It never fails;
// the failure that ended the repetition is kept on the returned cursor.
func many[T any](r rule[T]) func(c cursor) (cursor, []T) {
	return func(c cursor) (cursor, []T) {
		var out []T
		for {
			next, v, err := r(c)
			if err != nil {
				return c.note(err), out
			}
			if next.off == c.off {
				return next, out
			}
			out = append(out, v)
			c = next
		}
	}
}

// as lifts a rule producing T into one producing U.
func as[T, U any](r rule[T], f func(T) U) rule[U] {
	return func(c cursor) (cursor, U, *ParseError) {
		next, v, err := r(c)
		if err != nil {
			var zero U
			return c, zero, err
		}
		return next, f(v), nil
	}
}

// tag matches lit exactly.
func tag(c cursor, lit string) (cursor, *ParseError) {
	if !strings.HasPrefix(c.rest(), lit) {
		return c, c.fail(UnexpectedToken, quote(lit))
	}
	return c.advance(len(lit)), nil
}

// keyword matches kw ignoring ASCII case. The keyword must not run on into
// further identifier characters.
func keyword(c cursor, kw string) (cursor, *ParseError) {
	rest := c.rest()
	if len(rest) < len(kw) || !strings.EqualFold(rest[:len(kw)], kw) || continuesWord(rest, len(kw)) {
		return c, c.fail(UnexpectedToken, quote(kw))
	}
	return c.advance(len(kw)), nil
}

// exactKeyword is keyword without case folding.
func exactKeyword(c cursor, kw string) (cursor, *ParseError) {
	rest := c.rest()
	if !strings.HasPrefix(rest, kw) || continuesWord(rest, len(kw)) {
		return c, c.fail(UnexpectedToken, quote(kw))
	}
	return c.advance(len(kw)), nil
}

func continuesWord(s string, i int) bool {
	return i < len(s) && isAlnum(s[i])
}

func quote(s string) string {
	return `"` + s + `"`
}
