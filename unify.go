package toolmux

import (
	"fmt"
	"strings"
)

// ConflictPolicy selects how Unify treats two actions contributing the same
// field name with different Go types.
type ConflictPolicy int

const (
	ConflictWarn ConflictPolicy = iota // Keep the first-seen type and record a warning.
	ConflictFail                       // Stop generation on the first conflicting type.
)

// Options tunes unification. The zero value is the default behavior.
type Options struct {
	OnConflict ConflictPolicy
}

// Unify folds the schemas of every action in g into one composite surface:
// the discriminator field first, then the union of member fields in the order
// an action first contributes them. Duplicate names with identical types
// merge silently; a member field whose Go name matches the discriminator is
// renamed once per group (collision_key when set, "sub_"+discriminator
// otherwise) and every colliding occurrence reuses that identity. Every
// unified field is emitted optional regardless of how its schema declared it,
// since only the subset matching the chosen action is ever populated.
func Unify(g Group, cat *Catalog, opts Options) (Composite, Diag, error) {
	d := &diagSink{}
	discKey := g.Discriminator
	if discKey == "" {
		discKey = defaultDiscriminator
	}
	discName := exportIdent(discKey)
	renKey := g.CollisionKey
	if renKey == "" {
		renKey = "sub_" + discKey
	}
	renName := exportIdent(renKey)

	comp := Composite{
		Group: g.Name,
		Discriminator: Field{
			GoName:   discName,
			GoType:   "string",
			Key:      discKey,
			Doc:      discriminatorDoc(discName, g.Actions),
			Required: true,
		},
	}

	unified := map[string]Field{}
	firstFrom := map[string]string{}
	var order []string
	for _, a := range g.Actions {
		sch, ok := cat.Resolve(a.Schema)
		if !ok {
			d.warnf(CodeSchemaMissing, g.Name, "action %q: no schema named %s in the catalog; dispatch will pass a zero value", a.Action, a.Schema)
			continue
		}
		for _, f := range sch.Fields {
			name, key := f.GoName, f.Key
			if name == discName {
				d.warnf(CodeCollisionRenamed, g.Name, "field %s of %s collides with the discriminator; emitted as %s (key %q)", f.GoName, sch.Name, renName, renKey)
				comp.Renames = append(comp.Renames, Rename{
					Schema:        sch.Name,
					GoName:        f.GoName,
					Key:           f.Key,
					RenamedGoName: renName,
					RenamedKey:    renKey,
				})
				name, key = renName, renKey
			}
			prev, dup := unified[name]
			if !dup {
				nf := f
				nf.GoName, nf.Key = name, key
				nf.OmitEmpty, nf.Required = true, false
				unified[name] = nf
				firstFrom[name] = sch.Name
				order = append(order, name)
				continue
			}
			if prev.GoType != f.GoType {
				if opts.OnConflict == ConflictFail {
					return Composite{}, d, fmt.Errorf("toolmux: group %s: field %s has type %s in %s but %s in %s", g.Name, name, prev.GoType, firstFrom[name], f.GoType, sch.Name)
				}
				d.warnf(CodeTypeConflict, g.Name, "field %s has type %s in %s but %s in %s; keeping %s", name, prev.GoType, firstFrom[name], f.GoType, sch.Name, prev.GoType)
			}
		}
	}
	for _, n := range order {
		comp.Fields = append(comp.Fields, unified[n])
	}
	return comp, d, nil
}

// discriminatorDoc enumerates the accepted values in declared order, e.g.
// "Action to perform: 'read', 'write'".
func discriminatorDoc(discName string, actions []ActionMapping) string {
	quoted := make([]string, 0, len(actions))
	for _, a := range actions {
		quoted = append(quoted, "'"+a.Action+"'")
	}
	return fmt.Sprintf("%s to perform: %s", discName, strings.Join(quoted, ", "))
}

// exportIdent converts a wire key like "tag_action" into the exported Go
// identifier TagAction.
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
