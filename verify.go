package easyprot

import (
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"google.golang.org/protobuf/proto"
)

// Equal reports whether two documents have the same structure, treating nil
// and empty lists alike.
func Equal(a, b *Document) bool {
	return cmp.Equal(a, b, cmpopts.EquateEmpty())
}

// Verify checks that the canonical rendering of source is faithful: it must
// parse back to the same document and lower to the same descriptor.
func Verify(source string) error {
	doc, err := Parse(source)
	if err != nil {
		return err
	}

	formatted := Format(doc)
	again, err := Parse(formatted)
	if err != nil {
		return fmt.Errorf("re-parsing canonical output: %w", err)
	}
	if diff := cmp.Diff(doc, again, cmpopts.EquateEmpty()); diff != "" {
		return fmt.Errorf("canonical output changes the document (-source +canonical):\n%s", diff)
	}

	if err := verifyDescriptors(doc, again); err != nil {
		return fmt.Errorf("descriptor verification failed: %w", err)
	}
	return nil
}

// verifyDescriptors compares the lowered forms of two documents. Documents
// that cannot be lowered at all have nothing to compare.
func verifyDescriptors(a, b *Document) error {
	const name = "file.proto"
	da, err := Descriptor(a, name)
	var derr *DescriptorError
	if errors.As(err, &derr) {
		return nil
	}
	if err != nil {
		return err
	}
	db, err := Descriptor(b, name)
	if err != nil {
		return fmt.Errorf("lowering canonical output: %w", err)
	}
	if !proto.Equal(da, db) {
		return errors.New("descriptors differ after formatting")
	}
	return nil
}
