package easyprot

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	descriptorpb "google.golang.org/protobuf/types/descriptorpb"
)

var fieldTypes = map[ScalarType]descriptorpb.FieldDescriptorProto_Type{
	String: descriptorpb.FieldDescriptorProto_TYPE_STRING,
	UInt64: descriptorpb.FieldDescriptorProto_TYPE_UINT64,
	UInt32: descriptorpb.FieldDescriptorProto_TYPE_UINT32,
	Int64:  descriptorpb.FieldDescriptorProto_TYPE_INT64,
	Int32:  descriptorpb.FieldDescriptorProto_TYPE_INT32,
	Bool:   descriptorpb.FieldDescriptorProto_TYPE_BOOL,
	Bytes:  descriptorpb.FieldDescriptorProto_TYPE_BYTES,
}

// Descriptor lowers doc to a FileDescriptorProto named filename. Numbers
// that do not fit a descriptor's int32 fields are rejected with a
// *DescriptorError; no other checks are made.
func Descriptor(doc *Document, filename string) (*descriptorpb.FileDescriptorProto, error) {
	fd := &descriptorpb.FileDescriptorProto{
		Name: proto.String(filename),
	}
	if doc.Syntax != nil {
		fd.Syntax = proto.String(*doc.Syntax)
	}

	for _, decl := range doc.Declarations {
		switch d := decl.(type) {
		case *Message:
			md, err := messageDescriptor(d)
			if err != nil {
				return nil, err
			}
			fd.MessageType = append(fd.MessageType, md)
		case *Enum:
			ed, err := enumDescriptor(d)
			if err != nil {
				return nil, err
			}
			fd.EnumType = append(fd.EnumType, ed)
		}
	}
	return fd, nil
}

// Build lowers doc and links the result, which applies protobuf's own
// validation rules (unique numbers, proto3 enum defaults and so on).
func Build(doc *Document, filename string) (protoreflect.FileDescriptor, error) {
	fd, err := Descriptor(doc, filename)
	if err != nil {
		return nil, err
	}
	return protodesc.NewFile(fd, new(protoregistry.Files))
}

func messageDescriptor(m *Message) (*descriptorpb.DescriptorProto, error) {
	md := &descriptorpb.DescriptorProto{Name: proto.String(m.Name)}
	for _, f := range m.Fields {
		switch f := f.(type) {
		case *ScalarField:
			fdp, err := fieldDescriptor(m.Name, f)
			if err != nil {
				return nil, err
			}
			md.Field = append(md.Field, fdp)
		case *OneOfField:
			idx := int32(len(md.OneofDecl))
			md.OneofDecl = append(md.OneofDecl, &descriptorpb.OneofDescriptorProto{Name: proto.String(f.Name)})
			for _, member := range f.Members {
				fdp, err := fieldDescriptor(m.Name, member)
				if err != nil {
					return nil, err
				}
				fdp.OneofIndex = proto.Int32(idx)
				md.Field = append(md.Field, fdp)
			}
		}
	}
	return md, nil
}

func fieldDescriptor(msg string, f *ScalarField) (*descriptorpb.FieldDescriptorProto, error) {
	if f.Number > math.MaxInt32 {
		return nil, &DescriptorError{Decl: msg, Field: f.Name, Err: fmt.Errorf("field number %d out of range", f.Number)}
	}
	label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	if f.Modifier == Repeated {
		label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	}
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(f.Name),
		Number: proto.Int32(int32(f.Number)),
		Label:  label.Enum(),
		Type:   fieldTypes[f.Type].Enum(),
	}, nil
}

func enumDescriptor(e *Enum) (*descriptorpb.EnumDescriptorProto, error) {
	ed := &descriptorpb.EnumDescriptorProto{Name: proto.String(e.Name)}
	for _, v := range e.Values {
		if v.Number > math.MaxInt32 {
			return nil, &DescriptorError{Decl: e.Name, Field: v.Name, Err: fmt.Errorf("enum value %d out of range", v.Number)}
		}
		ed.Value = append(ed.Value, &descriptorpb.EnumValueDescriptorProto{
			Name:   proto.String(v.Name),
			Number: proto.Int32(int32(v.Number)),
		})
	}
	return ed, nil
}
