package toolmux

import (
	"fmt"

	"github.com/reoring/toolmux/internal/gen"
	"github.com/reoring/toolmux/internal/ir"
	"github.com/reoring/toolmux/internal/patch"
)

// GroupReport summarizes one generated unit.
type GroupReport struct {
	Group    string `json:"group"`
	ArgsType string `json:"args_type"`
	Handler  string `json:"handler"`
	Actions  int    `json:"actions"`
	Fields   int    `json:"fields"`
	Renames  int    `json:"renames"`
}

// Report is the machine-readable account of one generation run.
type Report struct {
	Source   string        `json:"source"`
	Output   string        `json:"output"`
	Groups   []GroupReport `json:"groups"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// Generate runs the whole pipeline for one manifest: parse the catalog,
// unify each group in declared order, render the artifact, and run the
// corrective pass over it. The returned bytes are gofmt-clean Go source;
// Generate never writes files. Identical inputs produce identical bytes.
func Generate(man Manifest, opts Options) ([]byte, Report, error) {
	man = man.withDefaults()
	if err := man.validate(); err != nil {
		return nil, Report{}, err
	}
	rep := Report{Source: man.Source, Output: man.Output}

	cat, cdiag, err := ParseCatalogFile(man.Source)
	if err != nil {
		return nil, rep, err
	}
	rep.Warnings = append(rep.Warnings, cdiag.Warnings()...)

	file := ir.File{Package: man.Package, SDKImport: man.SDK}
	for _, g := range man.Groups {
		comp, gdiag, err := Unify(g, cat, opts)
		if err != nil {
			return nil, rep, err
		}
		rep.Warnings = append(rep.Warnings, gdiag.Warnings()...)
		unit := buildUnit(man, g, comp, cat)
		file.Units = append(file.Units, unit)
		rep.Groups = append(rep.Groups, GroupReport{
			Group:    g.Name,
			ArgsType: unit.ArgsType,
			Handler:  unit.Handler,
			Actions:  len(g.Actions),
			Fields:   len(comp.Fields),
			Renames:  len(comp.Renames),
		})
	}

	src, err := gen.RenderFile(file)
	if err != nil {
		return nil, rep, fmt.Errorf("toolmux: rendering %s: %w", man.Output, err)
	}
	out, err := patch.Apply(src)
	if err != nil {
		return nil, rep, fmt.Errorf("toolmux: correcting %s: %w", man.Output, err)
	}
	return out, rep, nil
}

// buildUnit converts one unified group into its render form. Dispatch copies
// read the composite field that carries each schema field, so collision
// renames flow through to the narrowed literals.
func buildUnit(man Manifest, g Group, comp Composite, cat *Catalog) ir.Unit {
	u := ir.Unit{
		Group:         g.Name,
		ArgsType:      g.Name + "MultiplexArgs",
		Handler:       g.Name + "MultiplexHandler",
		RecvName:      man.Receiver.Name,
		RecvType:      man.Receiver.Type,
		Discriminator: fieldSpec(comp.Discriminator),
	}
	for _, f := range comp.Fields {
		u.Fields = append(u.Fields, fieldSpec(f))
	}
	for _, a := range g.Actions {
		c := ir.DispatchCase{Action: a.Action, SchemaType: a.Schema, Handler: a.Handler}
		if sch, ok := cat.Resolve(a.Schema); ok {
			for _, f := range sch.Fields {
				c.Copies = append(c.Copies, ir.FieldCopy{
					Target: f.GoName,
					Source: comp.SourceFor(sch.Name, f.GoName),
				})
			}
		}
		u.Cases = append(u.Cases, c)
	}
	return u
}

func fieldSpec(f Field) ir.FieldSpec {
	return ir.FieldSpec{
		GoName:    f.GoName,
		GoType:    f.GoType,
		JSONKey:   f.Key,
		OmitEmpty: f.OmitEmpty,
		Doc:       f.Doc,
	}
}
