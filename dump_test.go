package easyprot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dumpSource = `syntax = "proto3";
/** A thing. */
Message Thing {
  optional string name = 1; /** display */
  oneof id { uint64 num = 0; }
}
Enum Kind { A = 0; }
`

func TestDumpYAML(t *testing.T) {
	out, err := DumpYAML(mustParse(t, dumpSource))
	require.NoError(t, err)
	assert.YAMLEq(t, `
syntax: proto3
declarations:
  - kind: message
    name: Thing
    docs: [A thing.]
    fields:
      - kind: scalar
        modifier: optional
        type: string
        name: name
        number: 1
        docs: [display]
      - kind: oneof
        name: id
        members:
          - kind: scalar
            type: uint64
            name: num
            number: 0
  - kind: enum
    name: Kind
    values:
      - name: A
        number: 0
`, string(out))
}

func TestDumpJSON(t *testing.T) {
	out, err := DumpJSON(mustParse(t, `Enum E { X = 7; }`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"declarations":[{"kind":"enum","name":"E","values":[{"name":"X","number":7}]}]}`, string(out))
	assert.Equal(t, byte('\n'), out[len(out)-1])
}

func TestDumpJSON_EmptyDocument(t *testing.T) {
	out, err := DumpJSON(&Document{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"declarations":[]}`, string(out))
}
