package easyprot

// Document is the root of the tree returned by Parse.
type Document struct {
	// Syntax is the literal from a leading `syntax = "...";` statement, nil
	// when the statement is absent.
	Syntax       *string
	Declarations []Declaration
}

// Declaration is a top-level declaration: *Message or *Enum.
type Declaration interface {
	DeclName() string
	declaration()
}

// Message is a `Message Name { ... }` declaration.
type Message struct {
	Name   string
	Fields []MessageField
	Docs   []DocComment
}

// Enum is an `Enum Name { ... }` declaration.
type Enum struct {
	Name   string
	Values []*EnumValue
	Docs   []DocComment
}

func (m *Message) DeclName() string { return m.Name }
func (e *Enum) DeclName() string    { return e.Name }

func (*Message) declaration() {}
func (*Enum) declaration()    {}

// EnumValue is one `NAME = number;` entry of an enum.
type EnumValue struct {
	Name   string
	Number uint64
	Docs   []DocComment
}

// MessageField is an entry of a message body: *ScalarField or *OneOfField.
type MessageField interface {
	FieldName() string
	messageField()
}

// ScalarField holds a single value of one primitive type.
type ScalarField struct {
	// Modifier is ModifierNone only for members of a oneof.
	Modifier Modifier
	Type     ScalarType
	Name     string
	Number   uint64
	// Docs collects every doc comment found inside the field declaration,
	// in source order, including those after the semicolon.
	Docs []DocComment
}

// OneOfField is a named group of mutually exclusive scalar fields. Doc
// comments in front of a oneof are accepted but not kept.
type OneOfField struct {
	Name    string
	Members []*ScalarField
}

func (f *ScalarField) FieldName() string { return f.Name }
func (f *OneOfField) FieldName() string  { return f.Name }

func (*ScalarField) messageField() {}
func (*OneOfField) messageField()  {}

// DocComment is the trimmed body of a `/** ... */` block.
type DocComment struct {
	Text string
}

// Modifier is the cardinality keyword in front of a field.
type Modifier int

const (
	ModifierNone Modifier = iota
	Optional
	Repeated
)

func (m Modifier) String() string {
	switch m {
	case ModifierNone:
		return ""
	case Optional:
		return "optional"
	case Repeated:
		return "repeated"
	default:
		return "unknown"
	}
}

// ScalarType is the closed set of primitive field types.
type ScalarType int

const (
	String ScalarType = iota
	UInt64
	UInt32
	Int64
	Int32
	Bool
	Bytes
)

// scalarTypes lists the type keywords in the order the field parser tries them.
var scalarTypes = [...]ScalarType{String, UInt64, UInt32, Int64, Int32, Bool, Bytes}

// String returns the canonical keyword for t.
func (t ScalarType) String() string {
	switch t {
	case String:
		return "string"
	case UInt64:
		return "uint64"
	case UInt32:
		return "uint32"
	case Int64:
		return "int64"
	case Int32:
		return "int32"
	case Bool:
		return "bool"
	case Bytes:
		return "bytes"
	default:
		return "unknown"
	}
}
