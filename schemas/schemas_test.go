package schemas_test

import (
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/jonathan/resume-studio/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	files, err := fs.Glob(schemas.FS, "*.schema.json")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, schemaFile := range files {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := fs.ReadFile(schemas.FS, schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]any
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON: %s", schemaFile)

			_, hasSchema := schemaObj["$schema"]
			_, hasProps := schemaObj["properties"]
			assert.True(t, hasSchema && hasProps, "schema should declare $schema and properties")
		})
	}
}

func TestResumeDocumentSchema_TemplateEnum(t *testing.T) {
	data, err := fs.ReadFile(schemas.FS, schemas.ResumeDocument)
	require.NoError(t, err)

	var schemaObj struct {
		Properties map[string]struct {
			Enum []string `json:"enum"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &schemaObj))
	assert.ElementsMatch(t,
		[]string{"modern", "classic", "minimal", "professional"},
		schemaObj.Properties["template"].Enum)
}
