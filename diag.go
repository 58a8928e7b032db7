package toolmux

import "fmt"

// Warning codes (exported consts for IDE completion and type safety by convention)
const (
	CodeSchemaMissing    = "schema_missing"
	CodeTypeConflict     = "type_conflict"
	CodeFieldSkipped     = "field_skipped"
	CodeCollisionRenamed = "collision_renamed"
)

// Warning is a single non-fatal finding. Group names the group being unified
// for group-scoped findings; catalog-level findings leave it empty.
type Warning struct {
	Code    string `json:"code"`
	Group   string `json:"group,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Group == "" {
		return w.Code + ": " + w.Message
	}
	return w.Code + " (" + w.Group + "): " + w.Message
}

// Diag carries the non-fatal findings of a parse or unify step. Warnings
// never stop generation; callers decide how loudly to surface them.
type Diag interface {
	HasWarnings() bool
	Warnings() []Warning
}

type diagSink struct{ ws []Warning }

func (d *diagSink) HasWarnings() bool   { return len(d.ws) > 0 }
func (d *diagSink) Warnings() []Warning { return append([]Warning(nil), d.ws...) }

func (d *diagSink) warnf(code, group, format string, a ...any) {
	d.ws = append(d.ws, Warning{Code: code, Group: group, Message: fmt.Sprintf(format, a...)})
}
