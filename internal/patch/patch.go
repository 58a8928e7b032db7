package patch

// Package patch implements the corrective pass run over freshly rendered
// artifacts: residual discriminator-key duplicates inside composite structs
// are renamed, the dispatch assignments reading them are rewritten to match,
// and imports left unused are pruned. Applying the pass to already corrected
// source is a no-op. This package is internal and not part of the public API.

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"
)

const argsTypeSuffix = "MultiplexArgs"

// Apply parses src, repairs every composite unit it finds, and returns the
// reprinted source. src must be valid Go; the result is gofmt-clean.
func Apply(src []byte) ([]byte, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "multiplex.go", src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("patch: parse: %w", err)
	}

	renamesByType := map[string]map[string]string{}
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Name == nil || !strings.HasSuffix(ts.Name.Name, argsTypeSuffix) {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok || st.Fields == nil {
				continue
			}
			if ren := fixDuplicates(st); len(ren) > 0 {
				renamesByType[ts.Name.Name] = ren
			}
		}
	}

	for _, decl := range f.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || fd.Body == nil || fd.Type.Params == nil {
			continue
		}
		params := fd.Type.Params.List
		if len(params) == 0 {
			continue
		}
		last := params[len(params)-1]
		tn, ok := last.Type.(*ast.Ident)
		if !ok {
			continue
		}
		ren := renamesByType[tn.Name]
		if len(ren) == 0 {
			continue
		}
		argsName := "args"
		if len(last.Names) > 0 {
			argsName = last.Names[0].Name
		}
		rewriteAssignments(fd.Body, argsName, ren)
	}

	pruneImports(f)

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, f); err != nil {
		return nil, fmt.Errorf("patch: print: %w", err)
	}
	return buf.Bytes(), nil
}

// fixDuplicates renames every field after the first whose wire key equals the
// discriminator's. The first row is authoritative; later rows move to the
// "sub_" key (numbered when several collide) and gain omitempty. Returns the
// Go-name renames performed.
func fixDuplicates(st *ast.StructType) map[string]string {
	fields := st.Fields.List
	if len(fields) < 2 || len(fields[0].Names) == 0 {
		return nil
	}
	discKey := wireKey(fields[0])
	if discKey == "" {
		return nil
	}
	used := map[string]bool{}
	for _, fl := range fields {
		for _, n := range fl.Names {
			used[n.Name] = true
		}
	}
	renames := map[string]string{}
	for _, fl := range fields[1:] {
		if len(fl.Names) != 1 || wireKey(fl) != discKey {
			continue
		}
		newKey := "sub_" + discKey
		newName := exportIdent(newKey)
		for i := 2; used[newName]; i++ {
			newKey = "sub_" + discKey + strconv.Itoa(i)
			newName = exportIdent(newKey)
		}
		used[newName] = true
		old := fl.Names[0].Name
		fl.Names[0].Name = newName
		retag(fl, newKey)
		renames[old] = newName
	}
	return renames
}

// rewriteAssignments updates composite reads inside dispatch literals:
// an element `X: args.X` where X was renamed becomes `X: args.<renamed>`.
func rewriteAssignments(body *ast.BlockStmt, argsName string, ren map[string]string) {
	ast.Inspect(body, func(n ast.Node) bool {
		cl, ok := n.(*ast.CompositeLit)
		if !ok {
			return true
		}
		for _, elt := range cl.Elts {
			kv, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				continue
			}
			key, ok := kv.Key.(*ast.Ident)
			if !ok {
				continue
			}
			newName, hit := ren[key.Name]
			if !hit {
				continue
			}
			sel, ok := kv.Value.(*ast.SelectorExpr)
			if !ok {
				continue
			}
			x, ok := sel.X.(*ast.Ident)
			if !ok || x.Name != argsName || sel.Sel.Name != key.Name {
				continue
			}
			sel.Sel.Name = newName
		}
		return true
	})
}

// pruneImports drops import specs whose package name no longer appears in a
// selector. Blank and dot imports are kept as-is.
func pruneImports(f *ast.File) {
	used := map[string]bool{}
	ast.Inspect(f, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok {
			used[id.Name] = true
		}
		return true
	})
	var decls []ast.Decl
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.IMPORT {
			decls = append(decls, decl)
			continue
		}
		var kept []ast.Spec
		for _, spec := range gd.Specs {
			im, ok := spec.(*ast.ImportSpec)
			if !ok {
				kept = append(kept, spec)
				continue
			}
			name := importName(im)
			if name == "_" || name == "." || used[name] {
				kept = append(kept, spec)
			}
		}
		if len(kept) == 0 {
			continue
		}
		gd.Specs = kept
		decls = append(decls, gd)
	}
	f.Decls = decls
}

func importName(im *ast.ImportSpec) string {
	if im.Name != nil {
		return im.Name.Name
	}
	p := strings.Trim(im.Path.Value, `"`)
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	return p
}

// wireKey returns the first json tag segment of a field, or "" when the field
// carries no usable tag.
func wireKey(f *ast.Field) string {
	if f.Tag == nil {
		return ""
	}
	tag := reflect.StructTag(strings.Trim(f.Tag.Value, "`"))
	j := tag.Get("json")
	if j == "" {
		return ""
	}
	return strings.Split(j, ",")[0]
}

// retag rewrites the field's json key, forcing omitempty and carrying the
// jsonschema description over unchanged.
func retag(f *ast.Field, newKey string) {
	tag := reflect.StructTag(strings.Trim(f.Tag.Value, "`"))
	opts := strings.Split(tag.Get("json"), ",")[1:]
	hasOmit := false
	for _, o := range opts {
		if o == "omitempty" {
			hasOmit = true
			break
		}
	}
	if !hasOmit {
		opts = append(opts, "omitempty")
	}
	v := "`json:\"" + strings.Join(append([]string{newKey}, opts...), ",") + "\""
	if doc := tag.Get("jsonschema"); doc != "" {
		v += " jsonschema:\"" + doc + "\""
	}
	f.Tag.Value = v + "`"
}

// exportIdent converts a wire key like "sub_action" into the exported Go
// identifier SubAction.
func exportIdent(key string) string {
	var b strings.Builder
	for _, p := range strings.Split(key, "_") {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
