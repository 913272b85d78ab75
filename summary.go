package easyprot

import (
	"fmt"
	"strings"
)

// Summarize generates a per-declaration report for --verbose mode.
func Summarize(doc *Document) string {
	var report strings.Builder

	syntax := "(none)"
	if doc.Syntax != nil {
		syntax = fmt.Sprintf("%q", *doc.Syntax)
	}
	fmt.Fprintf(&report, "Syntax: %s\n", syntax)
	fmt.Fprintf(&report, "Declarations: %d\n", len(doc.Declarations))

	for _, decl := range doc.Declarations {
		switch d := decl.(type) {
		case *Message:
			scalars, oneofs := 0, 0
			var groups []string
			for _, f := range d.Fields {
				switch f := f.(type) {
				case *ScalarField:
					scalars++
				case *OneOfField:
					oneofs++
					groups = append(groups, fmt.Sprintf("%s(%d)", f.Name, len(f.Members)))
				}
			}
			fmt.Fprintf(&report, "  message %-30s fields=%-3d oneofs=%d", d.Name, scalars, oneofs)
			if len(groups) > 0 {
				fmt.Fprintf(&report, "  [%s]", strings.Join(groups, ", "))
			}
		case *Enum:
			fmt.Fprintf(&report, "  enum    %-30s values=%d", d.Name, len(d.Values))
		}
		report.WriteByte('\n')
	}

	return report.String()
}
