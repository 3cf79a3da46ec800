package form

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oreline/careers-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalAnswers = `
firstName: Aysel
lastName: Mammadova
fatherName: Rashid
email: aysel@example.com
phone: "+994501234567"
actualAddress: 12 Nizami street, Baku
registrationAddress: 12 Nizami street, Baku
birthCity: Baku
birthCountry: Azerbaijan
citizenship: Azerbaijani
languages:
  - language: English
    speaking: Advanced
    reading: Native
    writing: Intermediate
experiences:
  - company: Azergold
    position: Laborant
    startDate: "2020-01-01"
    current: true
    description: Assayed ore samples every shift
secondaryEducation:
  school: School 6
  graduationYear: "2012"
higherEducation:
  - institution: Baku State University
    degree: Bachelor
    field: Chemistry
    graduationYear: "2016"
questions:
  motivation: I want to grow as a laboratory specialist
  availability: Immediately
`

func TestDecodeAnswers_MinimalApplicationValidates(t *testing.T) {
	app, err := DecodeAnswers(strings.NewReader(minimalAnswers))
	require.NoError(t, err)

	assert.Equal(t, "Aysel", app.FirstName)
	assert.Equal(t, models.ProficiencyNative, app.Languages[0].Reading)
	assert.True(t, app.Experiences[0].Current)
	assert.Empty(t, app.Certificates)
	assert.Empty(t, app.Relatives)

	app.CV = NewAttachment("aysel_cv.pdf", pdfBytes)
	assert.Empty(t, ValidateApplication(app))
}

func TestDecodeAnswers_RejectsUnknownKeys(t *testing.T) {
	_, err := DecodeAnswers(strings.NewReader("firstName: Aysel\nfirstname: typo\n"))
	require.Error(t, err)
}

func TestDecodeAnswers_EmptyDocument(t *testing.T) {
	app, err := DecodeAnswers(strings.NewReader(""))
	require.NoError(t, err)
	assert.NotEmpty(t, ValidateApplication(app))
}

func TestLoadAnswers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalAnswers), 0o600))

	app, err := LoadAnswers(path)
	require.NoError(t, err)
	assert.Equal(t, "Mammadova", app.LastName)

	_, err = LoadAnswers(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
