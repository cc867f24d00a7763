package docschema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "editor": {"type": "string"},
    "default_priority": {"type": "integer", "minimum": 1, "maximum": 5},
    "ui": {
      "type": "object",
      "properties": {"color": {"enum": ["auto", "always", "never"]}}
    }
  }
}`

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateConforming(t *testing.T) {
	path := writeSchema(t, testSchema)
	result, err := Validate(map[string]any{
		"editor":           "vi",
		"default_priority": 3,
		"ui":               map[string]any{"color": "auto"},
	}, path)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateReportsPaths(t *testing.T) {
	path := writeSchema(t, testSchema)
	result, err := Validate(map[string]any{
		"default_priority": 9,
		"ui":               map[string]any{"color": "purple"},
	}, path)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	var paths []string
	for _, e := range result.Errors {
		var ve *ValidationError
		require.ErrorAs(t, e, &ve)
		paths = append(paths, ve.Path)
	}
	assert.ElementsMatch(t, []string{"default_priority", "ui__color"}, paths)
}

func TestValidateSchemaUnavailable(t *testing.T) {
	_, err := Validate(map[string]any{}, filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrSchemaUnavailable)

	_, err = Validate(map[string]any{}, writeSchema(t, `{"type": 12}`))
	assert.ErrorIs(t, err, ErrSchemaUnavailable)
}

func TestValidationErrorFormat(t *testing.T) {
	e := &ValidationError{Path: "ui__color", Err: os.ErrInvalid}
	assert.Equal(t, "ui__color: invalid argument", e.Error())
	assert.ErrorIs(t, e, os.ErrInvalid)

	e = &ValidationError{Err: os.ErrInvalid}
	assert.Equal(t, "invalid argument", e.Error())
}

func TestPointerPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/editor", "editor"},
		{"/ui/color", "ui__color"},
		{"#/sync/interval", "sync__interval"},
		{"/tags/0", "tags[0]"},
		{"/a~1b/c~0d", "a/b__c~d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pointerPath(tt.ptr), tt.ptr)
	}
}
