package easyprot

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// ErrorKind classifies why a parse failed. Every kind is itself an error, so
// callers can test for one with errors.Is(err, easyprot.UnknownFieldType).
type ErrorKind int

const (
	// UnexpectedToken: a required keyword, symbol or punctuation was missing.
	UnexpectedToken ErrorKind = iota + 1
	// EmptyIdentifier: an identifier was required but none was found.
	EmptyIdentifier
	// EmptyNumber: a digit run was required but none was found.
	EmptyNumber
	// UnknownFieldType: none of the scalar type keywords matched.
	UnknownFieldType
	// MalformedFieldNumber: a digit run does not fit in 64 bits.
	MalformedFieldNumber
	// UnterminatedString: a string literal has no closing quote.
	UnterminatedString
	// TrailingInput: Parse stopped before the end of the source.
	TrailingInput
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case EmptyIdentifier:
		return "missing identifier"
	case EmptyNumber:
		return "missing number"
	case UnknownFieldType:
		return "unknown field type"
	case MalformedFieldNumber:
		return "malformed number"
	case UnterminatedString:
		return "unterminated string"
	case TrailingInput:
		return "trailing input"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) Error() string {
	return k.String()
}

// ParseError reports where and why matching stopped.
type ParseError struct {
	Kind ErrorKind
	// Offset is the byte offset into the source.
	Offset int
	// Line and Column are 1-based. Column counts grapheme clusters.
	Line   int
	Column int
	// Expected describes what the grammar was looking for.
	Expected string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "%d:%d: ", e.Line, e.Column)
	} else {
		fmt.Fprintf(&b, "offset %d: ", e.Offset)
	}
	b.WriteString(e.Kind.String())
	if e.Expected != "" {
		b.WriteString(", expected ")
		b.WriteString(e.Expected)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// located returns a copy of e with Line and Column filled in from src.
func (e *ParseError) located(src string) *ParseError {
	out := *e
	off := min(e.Offset, len(src))
	before := src[:off]
	out.Line = strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	out.Column = uniseg.GraphemeClusterCount(before[lineStart:]) + 1
	return &out
}

// DescriptorError is returned when a parsed document cannot be expressed as a
// protobuf descriptor.
type DescriptorError struct {
	Decl  string
	Field string
	Err   error
}

func (e *DescriptorError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s.%s: %v", e.Decl, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Decl, e.Err)
}

func (e *DescriptorError) Unwrap() error {
	return e.Err
}
