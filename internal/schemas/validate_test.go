package schemas

import (
	"errors"
	"testing"

	"github.com/jonathan/resume-studio/internal/types"
	embedded "github.com/jonathan/resume-studio/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument_Valid(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Name = "Backend CV"
	doc.PersonalInfo = &types.PersonalInfo{Name: "Ada", Email: "ada@example.com"}
	doc.Experience = []types.ExperienceEntry{{Title: "Engineer", Company: "Acme", StartDate: "2020", Current: true}}
	doc.Education = []types.EducationEntry{{Institution: "MIT", Degree: "BSc", StartDate: "2014", EndDate: "2018"}}
	doc.Skills = []string{"Go"}

	assert.NoError(t, ValidateDocument(doc))
}

func TestValidateDocument_UnknownTemplate(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Template = "fancy"

	err := ValidateDocument(doc)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.NotEmpty(t, ve.Errors)
	assert.Equal(t, "template", ve.Errors[0].Field)
}

func TestValidateDocument_BlankSkill(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Skills = []string{"Go", ""}

	err := ValidateDocument(doc)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Error(), "skills.1")
}

func TestValidateDocument_Nil(t *testing.T) {
	assert.Error(t, ValidateDocument(nil))
}

func TestValidateBytes_WrongType(t *testing.T) {
	err := ValidateBytes(embedded.ResumeDocument, []byte(`{"skills": "Go"}`))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "skills", ve.Errors[0].Field)
}

func TestLoad_UnknownSchema(t *testing.T) {
	_, err := Load("missing.schema.json")
	require.Error(t, err)

	var le *SchemaLoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "missing.schema.json", le.Path)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestLoad_Cached(t *testing.T) {
	a, err := Load(embedded.ResumeDocument)
	require.NoError(t, err)
	b, err := Load(embedded.ResumeDocument)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name":"x"}`))

	err := ValidateJSONString(schema, `{}`)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "(root)", ve.Errors[0].Field)
}
