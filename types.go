package toolmux

// Field is one wire-visible member of an argument schema. GoName and GoType
// carry the Go declaration verbatim; Key is the JSON wire key after tag
// normalization. Doc is the human-readable description attached to the field
// (the jsonschema tag payload) and is passed through to generated output
// untouched.
type Field struct {
	GoName    string
	GoType    string
	Key       string
	Doc       string
	OmitEmpty bool
	Required  bool
}

// Schema is a named flat field list parsed from the catalog source. Fields
// keep their declaration order.
type Schema struct {
	Name   string
	Fields []Field
}

// ActionMapping binds one discriminator value to the handler that serves it
// and the schema describing its arguments.
type ActionMapping struct {
	Action  string `yaml:"action"`
	Handler string `yaml:"handler"`
	Schema  string `yaml:"schema"`
}

// Group declares one multiplexed entry point: the name used for generated
// identifiers, the discriminator wire key (default "action"), an optional
// wire key to use when a member field collides with the discriminator, and
// the ordered action table.
type Group struct {
	Name          string          `yaml:"name"`
	Discriminator string          `yaml:"discriminator"`
	CollisionKey  string          `yaml:"collision_key"`
	Actions       []ActionMapping `yaml:"actions"`
}

// Rename records one collision repair made while unifying a group: field
// GoName of Schema was emitted into the composite under RenamedGoName and
// RenamedKey instead of its own identity.
type Rename struct {
	Schema        string
	GoName        string
	Key           string
	RenamedGoName string
	RenamedKey    string
}

// Composite is the unified argument surface of one group: the discriminator
// first, then the union of every member schema's fields in first-seen order.
type Composite struct {
	Group         string
	Discriminator Field
	Fields        []Field
	Renames       []Rename
}

// SourceFor returns the composite field that carries the value of the given
// schema field, accounting for collision renames.
func (c Composite) SourceFor(schema, goName string) string {
	for _, r := range c.Renames {
		if r.Schema == schema && r.GoName == goName {
			return r.RenamedGoName
		}
	}
	return goName
}
