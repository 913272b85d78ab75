package easyprot

import (
	"strconv"
	"strings"
)

// FormatOptions controls the canonical rendering of a document.
type FormatOptions struct {
	// Indent is the number of spaces per nesting level. Zero means two.
	Indent int
}

// Format renders doc in canonical form with the default options.
func Format(doc *Document) string {
	return FormatOptions{}.Format(doc)
}

// Format renders doc in canonical form. Parsing the result yields a document
// equal to doc.
func (o FormatOptions) Format(doc *Document) string {
	indent := o.Indent
	if indent <= 0 {
		indent = 2
	}
	w := &writer{indent: strings.Repeat(" ", indent)}

	if doc.Syntax != nil {
		w.line(0, `syntax = "`+*doc.Syntax+`";`)
	}

	for i, decl := range doc.Declarations {
		if i > 0 || doc.Syntax != nil {
			w.out.WriteByte('\n')
		}
		switch d := decl.(type) {
		case *Message:
			w.docs(0, d.Docs)
			w.block(0, "Message "+d.Name, len(d.Fields) == 0, func() {
				for _, f := range d.Fields {
					w.messageField(1, f)
				}
			})
		case *Enum:
			w.docs(0, d.Docs)
			w.block(0, "Enum "+d.Name, len(d.Values) == 0, func() {
				for _, v := range d.Values {
					w.docs(1, v.Docs)
					w.line(1, v.Name+" = "+strconv.FormatUint(v.Number, 10)+";")
				}
			})
		}
	}

	return w.out.String()
}

type writer struct {
	out    strings.Builder
	indent string
}

func (w *writer) line(depth int, s string) {
	for range depth {
		w.out.WriteString(w.indent)
	}
	w.out.WriteString(s)
	w.out.WriteByte('\n')
}

func (w *writer) docs(depth int, docs []DocComment) {
	for _, d := range docs {
		w.line(depth, docText(d))
	}
}

func docText(d DocComment) string {
	if d.Text == "" {
		return "/** */"
	}
	return "/** " + d.Text + " */"
}

// block writes `head { ... }`, collapsing an empty body onto one line.
func (w *writer) block(depth int, head string, empty bool, body func()) {
	if empty {
		w.line(depth, head+" {}")
		return
	}
	w.line(depth, head+" {")
	body()
	w.line(depth, "}")
}

func (w *writer) messageField(depth int, f MessageField) {
	switch f := f.(type) {
	case *ScalarField:
		w.scalarField(depth, f)
	case *OneOfField:
		w.block(depth, "oneof "+f.Name, len(f.Members) == 0, func() {
			for _, m := range f.Members {
				w.scalarField(depth+1, m)
			}
		})
	}
}

// scalarField writes a field with its doc comments after the semicolon. A
// comment on the line before would be claimed by the preceding field.
func (w *writer) scalarField(depth int, f *ScalarField) {
	var b strings.Builder
	if f.Modifier != ModifierNone {
		b.WriteString(f.Modifier.String())
		b.WriteByte(' ')
	}
	b.WriteString(f.Type.String())
	b.WriteByte(' ')
	b.WriteString(f.Name)
	b.WriteString(" = ")
	b.WriteString(strconv.FormatUint(f.Number, 10))
	b.WriteByte(';')
	for _, d := range f.Docs {
		b.WriteByte(' ')
		b.WriteString(docText(d))
	}
	w.line(depth, b.String())
}
