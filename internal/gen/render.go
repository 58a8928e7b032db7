package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path"

	"github.com/reoring/toolmux/internal/ir"
)

// RenderFile emits the Go source for one generated artifact and runs it
// through go/format so the output is always gofmt-clean. Rendering is plain
// text assembly; anything structurally wrong surfaces as a format error.
func RenderFile(f ir.File) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("// Code generated by toolmux. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", f.Package)
	b.WriteString("import (\n")
	b.WriteString("\t\"context\"\n")
	b.WriteString("\t\"fmt\"\n\n")
	fmt.Fprintf(&b, "\t%q\n", f.SDKImport)
	b.WriteString(")\n\n")
	qual := path.Base(f.SDKImport)
	for _, u := range f.Units {
		renderUnit(&b, u, qual)
	}
	out, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gen: format: %w", err)
	}
	return out, nil
}

func renderUnit(b *bytes.Buffer, u ir.Unit, qual string) {
	fmt.Fprintf(b, "// %s multiplexed args\n", u.ArgsType)
	fmt.Fprintf(b, "type %s struct {\n", u.ArgsType)
	writeField(b, u.Discriminator)
	for _, f := range u.Fields {
		writeField(b, f)
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "// %s routes to the specific handler\n", u.Handler)
	fmt.Fprintf(b, "func (%s *%s) %s(ctx context.Context, req *%s.CallToolRequest, args %s) (*%s.CallToolResult, any, error) {\n",
		u.RecvName, u.RecvType, u.Handler, qual, u.ArgsType, qual)
	fmt.Fprintf(b, "\tswitch args.%s {\n", u.Discriminator.GoName)
	for _, c := range u.Cases {
		fmt.Fprintf(b, "\tcase %q:\n", c.Action)
		if len(c.Copies) == 0 {
			fmt.Fprintf(b, "\t\tspecificArgs := %s{}\n", c.SchemaType)
		} else {
			fmt.Fprintf(b, "\t\tspecificArgs := %s{\n", c.SchemaType)
			for _, cp := range c.Copies {
				fmt.Fprintf(b, "\t\t\t%s: args.%s,\n", cp.Target, cp.Source)
			}
			b.WriteString("\t\t}\n")
		}
		fmt.Fprintf(b, "\t\treturn %s.%s(ctx, req, specificArgs)\n", u.RecvName, c.Handler)
	}
	b.WriteString("\tdefault:\n")
	fmt.Fprintf(b, "\t\treturn nil, nil, fmt.Errorf(\"unknown %s: %%s\", args.%s)\n", u.Discriminator.JSONKey, u.Discriminator.GoName)
	b.WriteString("\t}\n")
	b.WriteString("}\n\n")
}

// writeField emits one struct row; go/format aligns the columns afterwards.
func writeField(b *bytes.Buffer, f ir.FieldSpec) {
	tag := "json:\"" + f.JSONKey
	if f.OmitEmpty {
		tag += ",omitempty"
	}
	tag += "\""
	if f.Doc != "" {
		tag += " jsonschema:\"" + f.Doc + "\""
	}
	fmt.Fprintf(b, "\t%s %s `%s`\n", f.GoName, f.GoType, tag)
}
