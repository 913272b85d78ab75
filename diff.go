package easyprot

import "github.com/pmezard/go-difflib/difflib"

// DiffStrings produces a unified diff between two strings with 3 lines of
// context. It returns "" when they are equal.
func DiffStrings(a, b, nameA, nameB string) string {
	if a == b {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: nameA,
		ToFile:   nameB,
		Context:  3,
	})
	if err != nil {
		// Only returned when writing to the underlying buffer fails.
		panic(err)
	}
	return diff
}
