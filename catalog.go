package toolmux

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"reflect"
	"strings"
)

// Catalog indexes the argument schemas declared in a single Go source file.
// Lookups are by type name; Names preserves declaration order.
type Catalog struct {
	schemas map[string]Schema
	order   []string
}

// ParseCatalogFile reads path and parses every exported struct declaration
// into a catalog.
func ParseCatalogFile(path string) (*Catalog, Diag, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("toolmux: reading catalog: %w", err)
	}
	return ParseCatalog(src, path)
}

// ParseCatalog parses catalog source. Source that does not parse as Go is a
// fatal error; individual field declarations the catalog cannot represent
// (embedded fields, multi-name lines, inline struct types) are skipped with
// a recorded warning.
func ParseCatalog(src []byte, filename string) (*Catalog, Diag, error) {
	d := &diagSink{}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, d, fmt.Errorf("toolmux: parsing %s: %w", filename, err)
	}
	c := &Catalog{schemas: map[string]Schema{}}
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Name == nil || !ts.Name.IsExported() {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok || st.Fields == nil {
				continue
			}
			sch := Schema{Name: ts.Name.Name}
			for _, field := range st.Fields.List {
				ff, ok := parseField(sch.Name, field, d)
				if !ok {
					continue
				}
				sch.Fields = append(sch.Fields, ff)
			}
			if _, dup := c.schemas[sch.Name]; dup {
				return nil, d, fmt.Errorf("toolmux: %s: schema %s declared twice", filename, sch.Name)
			}
			c.schemas[sch.Name] = sch
			c.order = append(c.order, sch.Name)
		}
	}
	return c, d, nil
}

// parseField normalizes one struct field. The wire key is the first segment
// of the json tag (field name when absent), omitempty flips Required off, and
// the jsonschema tag rides along as the description.
func parseField(schema string, field *ast.Field, d *diagSink) (Field, bool) {
	if len(field.Names) == 0 {
		d.warnf(CodeFieldSkipped, "", "%s: embedded field %s skipped", schema, types.ExprString(field.Type))
		return Field{}, false
	}
	if len(field.Names) > 1 {
		names := make([]string, 0, len(field.Names))
		for _, n := range field.Names {
			names = append(names, n.Name)
		}
		d.warnf(CodeFieldSkipped, "", "%s: multi-name declaration %s skipped", schema, strings.Join(names, ", "))
		return Field{}, false
	}
	name := field.Names[0].Name
	if !ast.IsExported(name) {
		return Field{}, false
	}
	if _, inline := field.Type.(*ast.StructType); inline {
		d.warnf(CodeFieldSkipped, "", "%s: field %s has an inline struct type; only flat fields are supported", schema, name)
		return Field{}, false
	}
	ff := Field{
		GoName:   name,
		GoType:   types.ExprString(field.Type),
		Key:      name,
		Required: true,
	}
	if field.Tag != nil {
		tag := reflect.StructTag(strings.Trim(field.Tag.Value, "`"))
		if j := tag.Get("json"); j != "" {
			parts := strings.Split(j, ",")
			if parts[0] == "-" {
				return Field{}, false
			}
			if parts[0] != "" {
				ff.Key = parts[0]
			}
			for _, opt := range parts[1:] {
				if strings.TrimSpace(opt) == "omitempty" {
					ff.OmitEmpty = true
					ff.Required = false
					break
				}
			}
		}
		ff.Doc = tag.Get("jsonschema")
	}
	return ff, true
}

// Resolve returns the schema declared under name.
func (c *Catalog) Resolve(name string) (Schema, bool) {
	s, ok := c.schemas[name]
	return s, ok
}

// Names lists every schema in declaration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Len reports how many schemas the catalog holds.
func (c *Catalog) Len() int { return len(c.schemas) }
