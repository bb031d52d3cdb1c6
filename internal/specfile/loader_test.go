package specfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opconnect/itemsync/internal/reconcile"
	"github.com/opconnect/itemsync/pkg/connect"
)

const fullDocument = `
vault: Automation
name: Database Credentials
state: present
category: database
urls:
  - https://db.example.com
favorite: true
tags:
  - managed
fields:
  - label: username
    value: svc-app
  - label: password
    field_type: concealed
    generate_value: on_create
    generator_recipe:
      length: 40
      include_symbols: false
  - label: totp seed
    field_type: otp
    section: MFA
`

func TestParseFullDocument(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(fullDocument))
	require.NoError(t, err)

	assert.Equal(t, "Automation", doc.Vault)
	assert.Equal(t, "Database Credentials", doc.Name)

	params, err := doc.Params()
	require.NoError(t, err)

	assert.Equal(t, "Database Credentials", params.Title)
	assert.Equal(t, connect.CategoryDatabase, params.Category)
	assert.Equal(t, reconcile.StatePresent, params.State)
	assert.Equal(t, []string{"https://db.example.com"}, params.URLs)
	assert.Equal(t, []string{"managed"}, params.Tags)
	assert.True(t, params.Favorite)

	require.Len(t, params.Fields, 3)

	username := params.Fields[0]
	assert.Equal(t, connect.FieldTypeString, username.Type, "field_type defaults to string")
	assert.Equal(t, reconcile.GenerateNever, username.Policy, "generate_value defaults to never")
	assert.Nil(t, username.Recipe)

	password := params.Fields[1]
	assert.Equal(t, connect.FieldTypeConcealed, password.Type)
	assert.Equal(t, reconcile.GenerateOnCreate, password.Policy)
	require.NotNil(t, password.Recipe)
	assert.Equal(t, 40, password.Recipe.Length)
	require.NotNil(t, password.Recipe.IncludeSymbols)
	assert.False(t, *password.Recipe.IncludeSymbols)
	assert.Nil(t, password.Recipe.IncludeDigits, "unset flags stay tri-state")

	totp := params.Fields[2]
	assert.Equal(t, connect.FieldTypeTOTP, totp.Type, "otp maps to the TOTP wire type")
	assert.Equal(t, "MFA", totp.Section)
}

func TestParseAppliesDefaults(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte("name: Minimal\n"))
	require.NoError(t, err)

	params, err := doc.Params()
	require.NoError(t, err)

	assert.Equal(t, connect.CategoryAPICredential, params.Category)
	assert.Equal(t, reconcile.StatePresent, params.State)
	assert.Empty(t, params.Fields)
}

func TestParseRecipeDefaultLength(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`
name: Generated
fields:
  - label: secret
    field_type: concealed
    generate_value: always
    generator_recipe:
      include_symbols: false
`))
	require.NoError(t, err)

	params, err := doc.Params()
	require.NoError(t, err)

	require.Len(t, params.Fields, 1)
	require.NotNil(t, params.Fields[0].Recipe)
	assert.Equal(t, defaultRecipeLength, params.Fields[0].Recipe.Length)
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown top-level key", doc: "name: x\nbogus: y\n"},
		{name: "unknown category", doc: "name: x\ncategory: spaceship\n"},
		{name: "unknown state", doc: "name: x\nstate: destroyed\n"},
		{name: "field without label", doc: "name: x\nfields:\n  - value: v\n"},
		{name: "empty field label", doc: "name: x\nfields:\n  - label: \"\"\n"},
		{name: "unknown field type", doc: "name: x\nfields:\n  - label: f\n    field_type: blob\n"},
		{name: "recipe length too large", doc: "name: x\nfields:\n  - label: f\n    generator_recipe:\n      length: 65\n"},
		{name: "recipe length zero", doc: "name: x\nfields:\n  - label: f\n    generator_recipe:\n      length: 0\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, reconcile.IsValidation(err), "schema rejection classifies as validation: %v", err)
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("name: [unclosed"))
	require.Error(t, err)
	assert.False(t, reconcile.IsValidation(err), "broken YAML is not a schema violation")
}

func TestParamsRequiresNameWhenPresent(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte("state: present\n"))
	require.NoError(t, err)

	_, err = doc.Params()
	require.Error(t, err)
	assert.True(t, reconcile.IsValidation(err))

	// A UUID alone is enough to address the item.
	doc, err = Parse([]byte("state: present\nuuid: hfnjvi6aymbsnfc2xeeoheizda\n"))
	require.NoError(t, err)
	_, err = doc.Params()
	assert.NoError(t, err)

	// Absent never needs a name.
	doc, err = Parse([]byte("state: absent\n"))
	require.NoError(t, err)
	_, err = doc.Params()
	assert.NoError(t, err)
}

func TestParamsPrefersTitleOverName(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte("name: legacy\ntitle: Preferred\n"))
	require.NoError(t, err)

	params, err := doc.Params()
	require.NoError(t, err)
	assert.Equal(t, "Preferred", params.Title)
}

func TestLoadReadsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "item.yml")
	require.NoError(t, os.WriteFile(path, []byte(fullDocument), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Database Credentials", doc.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
