package toolmux_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reoring/toolmux"
)

func TestWarningString(t *testing.T) {
	w := toolmux.Warning{Code: toolmux.CodeTypeConflict, Group: "Search", Message: "field Limit has two types"}
	assert.Equal(t, "type_conflict (Search): field Limit has two types", w.String())

	w = toolmux.Warning{Code: toolmux.CodeFieldSkipped, Message: "OddArgs: embedded field Base skipped"}
	assert.Equal(t, "field_skipped: OddArgs: embedded field Base skipped", w.String())
}
