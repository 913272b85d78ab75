package easyprot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lit is a rule matching s and returning it.
func lit(s string) rule[string] {
	return func(c cursor) (cursor, string, *ParseError) {
		next, err := tag(c, s)
		if err != nil {
			return c, "", err
		}
		return next, s, nil
	}
}

func TestAlt_FirstMatchWins(t *testing.T) {
	r := alt(lit("ab"), lit("a"))
	c, v, err := r(newCursor("abc"))
	require.Nil(t, err)
	assert.Equal(t, "ab", v)
	assert.Equal(t, "c", c.rest())

	r = alt(lit("a"), lit("ab"))
	c, v, err = r(newCursor("abc"))
	require.Nil(t, err)
	assert.Equal(t, "a", v)
	assert.Equal(t, "bc", c.rest())
}

func TestAlt_BacktracksFromPartialMatch(t *testing.T) {
	ab := func(c cursor) (cursor, string, *ParseError) {
		c, err := tag(c, "a")
		if err != nil {
			return c, "", err
		}
		c, err = tag(c, "b")
		if err != nil {
			return c, "", err
		}
		return c, "ab", nil
	}
	r := alt(ab, lit("ax"))
	c, v, err := r(newCursor("ax"))
	require.Nil(t, err)
	assert.Equal(t, "ax", v)
	assert.True(t, c.atEnd())
}

func TestAlt_ReportsDeepestFailure(t *testing.T) {
	deep := func(c cursor) (cursor, string, *ParseError) {
		c, err := tag(c, "abc")
		if err != nil {
			return c, "", err
		}
		return c, "", c.fail(EmptyNumber, "number")
	}
	r := alt(lit("x"), deep, lit("y"))
	_, _, err := r(newCursor("abcdef"))
	require.NotNil(t, err)
	assert.Equal(t, EmptyNumber, err.Kind)
	assert.Equal(t, 3, err.Offset)
}

func TestAlt_TieKeepsFirstFailure(t *testing.T) {
	r := alt(lit("x"), lit("y"))
	_, _, err := r(newCursor("z"))
	require.NotNil(t, err)
	assert.Equal(t, `"x"`, err.Expected)
	assert.Equal(t, 0, err.Offset)
}

func TestAlt_DoesNotMoveCallerCursor(t *testing.T) {
	start := newCursor("abc").advance(1)
	r := alt(lit("x"), lit("y"))
	_, _, err := r(start)
	require.NotNil(t, err)
	assert.Equal(t, 1, start.off)
	assert.Nil(t, start.furthest)
}

func TestMany(t *testing.T) {
	r := many(lit("ab"))
	c, vs := r(newCursor("ababa"))
	assert.Equal(t, []string{"ab", "ab"}, vs)
	assert.Equal(t, "a", c.rest())
	require.NotNil(t, c.furthest)
	assert.Equal(t, 4, c.furthest.Offset)

	c, vs = r(newCursor(""))
	assert.Empty(t, vs)
	assert.Equal(t, 0, c.off)
}

func TestMany_StopsWithoutProgress(t *testing.T) {
	empty := func(c cursor) (cursor, string, *ParseError) { return c, "", nil }
	c, vs := many(empty)(newCursor("abc"))
	assert.Empty(t, vs)
	assert.Equal(t, 0, c.off)
}

func TestCursor_FailPrefersRecordedDeeperFailure(t *testing.T) {
	c := newCursor("0123456789")
	recorded := c.advance(7).fail(UnterminatedString, "quote")
	c = c.advance(2).note(recorded)

	err := c.fail(UnexpectedToken, "x")
	assert.Same(t, recorded, err)

	c = c.advance(6)
	err = c.fail(UnexpectedToken, "x")
	assert.Equal(t, 8, err.Offset)
	assert.Equal(t, UnexpectedToken, err.Kind)
}

func TestAs(t *testing.T) {
	r := as(lit("7"), func(s string) int { return len(s) * 10 })
	_, v, err := r(newCursor("7"))
	require.Nil(t, err)
	assert.Equal(t, 10, v)

	_, v, err = r(newCursor("8"))
	require.NotNil(t, err)
	assert.Zero(t, v)
}
