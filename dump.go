package easyprot

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// The dump types give the tree a plain, tagged shape for serialization.

type documentDump struct {
	Syntax       *string    `yaml:"syntax,omitempty" json:"syntax,omitempty"`
	Declarations []declDump `yaml:"declarations" json:"declarations"`
}

type declDump struct {
	Kind   string      `yaml:"kind" json:"kind"`
	Name   string      `yaml:"name" json:"name"`
	Docs   []string    `yaml:"docs,omitempty" json:"docs,omitempty"`
	Fields []fieldDump `yaml:"fields,omitempty" json:"fields,omitempty"`
	Values []valueDump `yaml:"values,omitempty" json:"values,omitempty"`
}

type fieldDump struct {
	Kind     string      `yaml:"kind" json:"kind"`
	Modifier string      `yaml:"modifier,omitempty" json:"modifier,omitempty"`
	Type     string      `yaml:"type,omitempty" json:"type,omitempty"`
	Name     string      `yaml:"name" json:"name"`
	Number   *uint64     `yaml:"number,omitempty" json:"number,omitempty"`
	Docs     []string    `yaml:"docs,omitempty" json:"docs,omitempty"`
	Members  []fieldDump `yaml:"members,omitempty" json:"members,omitempty"`
}

type valueDump struct {
	Name   string   `yaml:"name" json:"name"`
	Number uint64   `yaml:"number" json:"number"`
	Docs   []string `yaml:"docs,omitempty" json:"docs,omitempty"`
}

// DumpYAML renders the tree as YAML.
func DumpYAML(doc *Document) ([]byte, error) {
	return yaml.Marshal(dump(doc))
}

// DumpJSON renders the tree as indented JSON.
func DumpJSON(doc *Document) ([]byte, error) {
	out, err := json.MarshalIndent(dump(doc), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func dump(doc *Document) documentDump {
	out := documentDump{Syntax: doc.Syntax, Declarations: []declDump{}}
	for _, decl := range doc.Declarations {
		switch d := decl.(type) {
		case *Message:
			dd := declDump{Kind: "message", Name: d.Name, Docs: docStrings(d.Docs)}
			for _, f := range d.Fields {
				dd.Fields = append(dd.Fields, dumpField(f))
			}
			out.Declarations = append(out.Declarations, dd)
		case *Enum:
			dd := declDump{Kind: "enum", Name: d.Name, Docs: docStrings(d.Docs)}
			for _, v := range d.Values {
				dd.Values = append(dd.Values, valueDump{Name: v.Name, Number: v.Number, Docs: docStrings(v.Docs)})
			}
			out.Declarations = append(out.Declarations, dd)
		}
	}
	return out
}

func dumpField(f MessageField) fieldDump {
	switch f := f.(type) {
	case *ScalarField:
		n := f.Number
		return fieldDump{
			Kind:     "scalar",
			Modifier: f.Modifier.String(),
			Type:     f.Type.String(),
			Name:     f.Name,
			Number:   &n,
			Docs:     docStrings(f.Docs),
		}
	case *OneOfField:
		fd := fieldDump{Kind: "oneof", Name: f.Name}
		for _, m := range f.Members {
			fd.Members = append(fd.Members, dumpField(m))
		}
		return fd
	}
	return fieldDump{}
}

func docStrings(docs []DocComment) []string {
	var out []string
	for _, d := range docs {
		out = append(out, d.Text)
	}
	return out
}
