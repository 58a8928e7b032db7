package ir

// Package ir defines the minimal intermediate representation handed to the
// code renderer. This package is internal and not part of the public API.

// File is one generated artifact: a package clause, the SDK import the
// handler signatures need, and one Unit per group.
type File struct {
	Package   string
	SDKImport string
	Units     []Unit
}

// Unit is one multiplexed entry point: the composite args struct plus the
// dispatch method that narrows it back to a specific schema.
type Unit struct {
	Group         string
	ArgsType      string
	Handler       string
	RecvName      string
	RecvType      string
	Discriminator FieldSpec
	Fields        []FieldSpec
	Cases         []DispatchCase
}

// FieldSpec is one struct row. JSONKey and OmitEmpty become the json tag;
// Doc, when present, becomes the jsonschema tag.
type FieldSpec struct {
	GoName    string
	GoType    string
	JSONKey   string
	OmitEmpty bool
	Doc       string
}

// DispatchCase is one arm of the dispatch switch. Copies lists the composite
// fields feeding the narrowed literal; an empty list renders a zero value.
type DispatchCase struct {
	Action     string
	SchemaType string
	Handler    string
	Copies     []FieldCopy
}

// FieldCopy assigns composite field Source to schema field Target.
type FieldCopy struct {
	Target string
	Source string
}
