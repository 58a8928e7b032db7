package toolmux_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/toolmux"
)

func TestLoadManifest_Fixture(t *testing.T) {
	man, err := toolmux.LoadManifest("testdata/toolmux.yaml")
	require.NoError(t, err)

	assert.Equal(t, "testdata/vault_types.go", man.Source)
	assert.Equal(t, "vault/multiplex.go", man.Output)
	assert.Equal(t, "vault", man.Package)
	assert.Equal(t, toolmux.Receiver{Name: "v", Type: "Vault"}, man.Receiver)
	assert.Equal(t, toolmux.DefaultSDK, man.SDK, "sdk path defaults to the official module")

	require.Len(t, man.Groups, 3)
	assert.Equal(t, "action", man.Groups[0].Discriminator, "discriminator defaults per group")
	assert.Equal(t, "tag_action", man.Groups[1].CollisionKey)
	require.Len(t, man.Groups[0].Actions, 4)
	assert.Equal(t, toolmux.ActionMapping{Action: "read", Handler: "ReadNoteHandler", Schema: "ReadNoteArgs"}, man.Groups[0].Actions[0])
}

func TestLoadManifest_MissingFile(t *testing.T) {
	_, err := toolmux.LoadManifest("testdata/absent.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading manifest")
}

const validManifest = `version: "1"
source: t.go
output: o.go
package: vault
receiver: {name: v, type: Vault}
groups:
  - name: Manage
    actions:
      - {action: read, handler: ReadHandler, schema: ReadArgs}
`

func TestParseManifest_Valid(t *testing.T) {
	man, err := toolmux.ParseManifest([]byte(validManifest))
	require.NoError(t, err)
	assert.Equal(t, "action", man.Groups[0].Discriminator)
}

func TestParseManifest_Invalid(t *testing.T) {
	cases := []struct {
		name string
		edit func(string) string
		want string
	}{
		{"empty document", func(string) string { return "" }, "empty document"},
		{"unsupported version", func(s string) string { return strings.Replace(s, `version: "1"`, `version: "2"`, 1) }, "unsupported version"},
		{"missing version", func(s string) string { return strings.Replace(s, `version: "1"`+"\n", "", 1) }, "missing version"},
		{"missing source", func(s string) string { return strings.Replace(s, "source: t.go\n", "", 1) }, "missing source"},
		{"missing output", func(s string) string { return strings.Replace(s, "output: o.go\n", "", 1) }, "missing output"},
		{"bad package", func(s string) string { return strings.Replace(s, "package: vault", "package: my-vault", 1) }, "not a valid identifier"},
		{"bad receiver type", func(s string) string { return strings.Replace(s, "type: Vault", "type: vault", 1) }, "not an exported identifier"},
		{"no groups", func(s string) string { return s[:strings.Index(s, "groups:")] + "groups: []\n" }, "no groups"},
		{"bad group name", func(s string) string { return strings.Replace(s, "name: Manage", "name: manage", 1) }, "not an exported identifier"},
		{"bad handler", func(s string) string { return strings.Replace(s, "handler: ReadHandler", "handler: readHandler", 1) }, "not an exported identifier"},
		{"bad schema", func(s string) string { return strings.Replace(s, "schema: ReadArgs", "schema: read-args", 1) }, "not an exported identifier"},
		{"no actions", func(s string) string { return s[:strings.Index(s, "    actions:")] + "    actions: []\n" }, "no actions"},
		{"unknown key", func(s string) string { return s + "extra: true\n" }, "extra"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := toolmux.ParseManifest([]byte(tc.edit(validManifest)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseManifest_DuplicateAction(t *testing.T) {
	doc := strings.Replace(validManifest,
		"      - {action: read, handler: ReadHandler, schema: ReadArgs}\n",
		"      - {action: read, handler: ReadHandler, schema: ReadArgs}\n      - {action: read, handler: OtherHandler, schema: OtherArgs}\n", 1)
	_, err := toolmux.ParseManifest([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate action "read"`)
}

func TestParseManifest_DuplicateGroup(t *testing.T) {
	doc := validManifest + `  - name: Manage
    actions:
      - {action: other, handler: OtherHandler, schema: OtherArgs}
`
	_, err := toolmux.ParseManifest([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate group Manage")
}

func TestParseManifest_BadDiscriminator(t *testing.T) {
	doc := strings.Replace(validManifest, "  - name: Manage\n", "  - name: Manage\n    discriminator: Bad_Key\n", 1)
	_, err := toolmux.ParseManifest([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid wire key")
}

func TestParseManifest_CustomDiscriminatorAndSDK(t *testing.T) {
	doc := strings.Replace(validManifest, "  - name: Manage\n", "  - name: Manage\n    discriminator: mode\n", 1)
	doc = strings.Replace(doc, "package: vault\n", "package: vault\nsdk: example.com/alt/mcp\n", 1)
	man, err := toolmux.ParseManifest([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "mode", man.Groups[0].Discriminator)
	assert.Equal(t, "example.com/alt/mcp", man.SDK)
}
