package easyprot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	got := Summarize(mustParse(t, personSource))
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if assert.Len(t, lines, 4) {
		assert.Equal(t, `Syntax: "proto3"`, lines[0])
		assert.Equal(t, "Declarations: 2", lines[1])
		assert.Contains(t, lines[2], "message Person")
		assert.Contains(t, lines[2], "fields=2")
		assert.Contains(t, lines[2], "oneofs=1")
		assert.Contains(t, lines[2], "[contact(2)]")
		assert.Contains(t, lines[3], "enum    Color")
		assert.Contains(t, lines[3], "values=2")
	}
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, "Syntax: (none)\nDeclarations: 0\n", Summarize(&Document{}))
}

func TestSummarize_NoOneofs(t *testing.T) {
	got := Summarize(mustParse(t, `Message A { optional bool b = 1; }`))
	assert.NotContains(t, got, "[")
}
