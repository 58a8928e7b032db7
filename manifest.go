package toolmux

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSDK is the import path emitted for the request/result types when the
// manifest does not name one.
const DefaultSDK = "github.com/modelcontextprotocol/go-sdk/mcp"

const (
	manifestVersion      = "1"
	defaultDiscriminator = "action"
)

// Receiver names the value generated handlers hang off of, e.g. {v, Vault}.
type Receiver struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Manifest is the generator's declarative input: where the schema catalog
// lives, where the artifact goes, and the group table. Load it once and pass
// it by value; nothing in the pipeline mutates it.
type Manifest struct {
	Version  string   `yaml:"version"`
	Source   string   `yaml:"source"`
	Output   string   `yaml:"output"`
	Package  string   `yaml:"package"`
	Receiver Receiver `yaml:"receiver"`
	SDK      string   `yaml:"sdk"`
	Groups   []Group  `yaml:"groups"`
}

// LoadManifest reads, decodes, and validates a manifest file.
func LoadManifest(path string) (Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("toolmux: reading manifest: %w", err)
	}
	return ParseManifest(b)
}

// ParseManifest decodes manifest YAML, fills defaults, and validates shape.
// Unknown keys are rejected so a misspelled option fails loudly instead of
// silently generating the wrong surface.
func ParseManifest(b []byte) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return Manifest{}, errors.New("toolmux: manifest: empty document")
		}
		return Manifest{}, fmt.Errorf("toolmux: manifest: %w", err)
	}
	m = m.withDefaults()
	if err := m.validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// withDefaults returns a copy with the sdk path and per-group discriminator
// defaults filled in. The receiver's group slice is left untouched.
func (m Manifest) withDefaults() Manifest {
	if m.SDK == "" {
		m.SDK = DefaultSDK
	}
	groups := make([]Group, len(m.Groups))
	copy(groups, m.Groups)
	for i := range groups {
		if groups[i].Discriminator == "" {
			groups[i].Discriminator = defaultDiscriminator
		}
	}
	m.Groups = groups
	return m
}

func (m Manifest) validate() error {
	switch m.Version {
	case manifestVersion:
	case "":
		return fmt.Errorf("toolmux: manifest: missing version (want %q)", manifestVersion)
	default:
		return fmt.Errorf("toolmux: manifest: unsupported version %q (want %q)", m.Version, manifestVersion)
	}
	if m.Source == "" {
		return errors.New("toolmux: manifest: missing source")
	}
	if m.Output == "" {
		return errors.New("toolmux: manifest: missing output")
	}
	if !token.IsIdentifier(m.Package) {
		return fmt.Errorf("toolmux: manifest: package %q is not a valid identifier", m.Package)
	}
	if !token.IsIdentifier(m.Receiver.Name) {
		return fmt.Errorf("toolmux: manifest: receiver name %q is not a valid identifier", m.Receiver.Name)
	}
	if !isExportedIdent(m.Receiver.Type) {
		return fmt.Errorf("toolmux: manifest: receiver type %q is not an exported identifier", m.Receiver.Type)
	}
	if len(m.Groups) == 0 {
		return errors.New("toolmux: manifest: no groups declared")
	}
	seenGroups := map[string]bool{}
	for _, g := range m.Groups {
		if err := g.validate(); err != nil {
			return err
		}
		if seenGroups[g.Name] {
			return fmt.Errorf("toolmux: manifest: duplicate group %s", g.Name)
		}
		seenGroups[g.Name] = true
	}
	return nil
}

func (g Group) validate() error {
	if !isExportedIdent(g.Name) {
		return fmt.Errorf("toolmux: manifest: group name %q is not an exported identifier", g.Name)
	}
	if !isWireKey(g.Discriminator) {
		return fmt.Errorf("toolmux: manifest: group %s: discriminator %q is not a valid wire key", g.Name, g.Discriminator)
	}
	if g.CollisionKey != "" && !isWireKey(g.CollisionKey) {
		return fmt.Errorf("toolmux: manifest: group %s: collision_key %q is not a valid wire key", g.Name, g.CollisionKey)
	}
	if len(g.Actions) == 0 {
		return fmt.Errorf("toolmux: manifest: group %s: no actions declared", g.Name)
	}
	seen := map[string]bool{}
	for _, a := range g.Actions {
		if a.Action == "" {
			return fmt.Errorf("toolmux: manifest: group %s: empty action value", g.Name)
		}
		if seen[a.Action] {
			return fmt.Errorf("toolmux: manifest: group %s: duplicate action %q", g.Name, a.Action)
		}
		seen[a.Action] = true
		if !isExportedIdent(a.Handler) {
			return fmt.Errorf("toolmux: manifest: group %s action %q: handler %q is not an exported identifier", g.Name, a.Action, a.Handler)
		}
		if !isExportedIdent(a.Schema) {
			return fmt.Errorf("toolmux: manifest: group %s action %q: schema %q is not an exported identifier", g.Name, a.Action, a.Schema)
		}
	}
	return nil
}

func isExportedIdent(s string) bool {
	return token.IsIdentifier(s) && ast.IsExported(s)
}

// isWireKey accepts lower_snake JSON keys: a letter followed by letters,
// digits, or underscores.
func isWireKey(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r == '_' && i > 0:
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
