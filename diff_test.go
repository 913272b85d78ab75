package easyprot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffStrings(t *testing.T) {
	assert.Empty(t, DiffStrings("a\nb\n", "a\nb\n", "x", "y"))

	diff := DiffStrings("a\nb\n", "a\nc\n", "before", "after")
	assert.Contains(t, diff, "--- before")
	assert.Contains(t, diff, "+++ after")
	assert.Contains(t, diff, "-b")
	assert.Contains(t, diff, "+c")
}
