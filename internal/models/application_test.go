package models_test

import (
	"encoding/json"
	"testing"

	"github.com/oreline/careers-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestProficiencyOrdering(t *testing.T) {
	tests := []struct {
		name string
		a, b models.Proficiency
		less bool
	}{
		{name: "beginner below intermediate", a: models.ProficiencyBeginner, b: models.ProficiencyIntermediate, less: true},
		{name: "intermediate below advanced", a: models.ProficiencyIntermediate, b: models.ProficiencyAdvanced, less: true},
		{name: "advanced below native", a: models.ProficiencyAdvanced, b: models.ProficiencyNative, less: true},
		{name: "native not below beginner", a: models.ProficiencyNative, b: models.ProficiencyBeginner, less: false},
		{name: "equal levels", a: models.ProficiencyAdvanced, b: models.ProficiencyAdvanced, less: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.less, tt.a.Less(tt.b))
		})
	}
}

func TestProficiencyValid(t *testing.T) {
	assert.True(t, models.ProficiencyNative.Valid())
	assert.False(t, models.Proficiency("Fluent").Valid())
	assert.Equal(t, 0, models.Proficiency("").Rank())
	assert.Equal(t, []string{"Beginner", "Intermediate", "Advanced", "Native"}, models.ProficiencyOptions())
}

func TestNewApplication_TemplateEntries(t *testing.T) {
	app := models.NewApplication()

	require.Len(t, app.Languages, 1)
	assert.Equal(t, models.NewLanguageSkill(), app.Languages[0])
	assert.Equal(t, models.ProficiencyBeginner, app.Languages[0].Speaking)
	assert.Len(t, app.Experiences, 1)
	assert.Len(t, app.HigherEducation, 1)
	assert.Len(t, app.Certificates, 1)
	assert.Len(t, app.Trainings, 1)
	assert.Len(t, app.Relatives, 1)
	assert.Len(t, app.Recommenders, 1)
	assert.Nil(t, app.CV)
}

func TestApplication_JSONIsFlatAndExcludesCV(t *testing.T) {
	app := models.NewApplication()
	app.FirstName = "Aysel"
	app.Questions.Motivation = "I want to build mines"
	app.CV = &models.Attachment{FileName: "cv.pdf", ContentType: models.CVContentType, Data: []byte("%PDF-1.4")}

	raw, err := json.Marshal(app)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "Aysel", doc["firstName"])
	assert.Contains(t, doc, "languages")
	assert.Contains(t, doc, "secondaryEducation")
	assert.Contains(t, doc, "questions")
	assert.NotContains(t, doc, "cv")
	assert.NotContains(t, doc, "CV")
	assert.NotContains(t, doc, "PersonalInfo")
}

func TestApplication_YAMLInline(t *testing.T) {
	answers := `
firstName: Aysel
lastName: Mammadova
languages:
  - language: English
    speaking: Advanced
    reading: Native
    writing: Intermediate
questions:
  motivation: I have ten years in open-pit mining
`
	var app models.Application
	require.NoError(t, yaml.Unmarshal([]byte(answers), &app))

	assert.Equal(t, "Aysel", app.FirstName)
	assert.Equal(t, "Aysel Mammadova", app.FullName())
	require.Len(t, app.Languages, 1)
	assert.Equal(t, models.ProficiencyNative, app.Languages[0].Reading)
	assert.Equal(t, "I have ten years in open-pit mining", app.Questions.Motivation)
}

func TestAttachment(t *testing.T) {
	var missing *models.Attachment
	assert.Equal(t, 0, missing.Size())
	assert.False(t, missing.IsPDF())

	pdf := &models.Attachment{FileName: "cv.pdf", ContentType: "application/pdf", Data: []byte("abc")}
	assert.Equal(t, 3, pdf.Size())
	assert.True(t, pdf.IsPDF())

	doc := &models.Attachment{FileName: "cv.docx", ContentType: "application/msword"}
	assert.False(t, doc.IsPDF())
}
