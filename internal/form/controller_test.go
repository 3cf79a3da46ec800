package form

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/oreline/careers-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_Metadata(t *testing.T) {
	assert.Equal(t, "Personal Information", StepPersonalInfo.Title())
	assert.Equal(t, "Enter your personal details", StepPersonalInfo.Description())
	assert.Equal(t, "Certificates & Training", StepCertificates.Title())
	assert.Equal(t, "Relatives, recommenders, and questions", StepAdditionalInfo.Description())
	assert.Equal(t, "Step 3 of 6: Professional Experience", StepProfessionalExperience.String())
	assert.False(t, Step(0).Valid())
	assert.False(t, Step(7).Valid())
	assert.Empty(t, Step(7).Title())

	for _, step := range Steps {
		assert.True(t, step.Valid())
		assert.NotEmpty(t, step.Title())
		assert.NotEmpty(t, step.Description())
	}
}

func TestController_AdvanceAndRetreatStayInBounds(t *testing.T) {
	c := NewController(&fakeSubmitter{})
	assert.Equal(t, StepPersonalInfo, c.Step())

	c.Retreat()
	assert.Equal(t, StepPersonalInfo, c.Step())

	for i := 0; i < 10; i++ {
		c.Advance()
	}
	assert.Equal(t, StepAdditionalInfo, c.Step())

	c.Retreat()
	assert.Equal(t, StepCertificates, c.Step())
}

func TestController_AdvanceIgnoresValidation(t *testing.T) {
	c := NewController(&fakeSubmitter{})
	require.NotEmpty(t, ValidateStep(StepPersonalInfo, c.Application()))

	c.Advance()
	assert.Equal(t, StepLanguageSkills, c.Step())
}

func TestController_NavigationPreservesApplication(t *testing.T) {
	c := newControllerWith(validApplication(), &fakeSubmitter{})
	c.Application().Questions.Salary = "1500-2000 AZN"
	before := validApplication()
	before.Questions.Salary = "1500-2000 AZN"

	for _, start := range Steps {
		c.step = start
		for c.Step() != LastStep {
			c.Advance()
		}
		for c.Step() != FirstStep {
			c.Retreat()
		}
		if diff := cmp.Diff(before, c.Application()); diff != "" {
			t.Fatalf("application changed after navigating from %s (-want +got):\n%s", start, diff)
		}
	}
}

func TestController_AddEntry(t *testing.T) {
	templates := map[ListName]func(app *models.Application) (last any, want any){
		ListLanguages: func(app *models.Application) (any, any) {
			return app.Languages[len(app.Languages)-1], models.NewLanguageSkill()
		},
		ListExperiences: func(app *models.Application) (any, any) {
			return app.Experiences[len(app.Experiences)-1], models.NewExperience()
		},
		ListHigherEducation: func(app *models.Application) (any, any) {
			return app.HigherEducation[len(app.HigherEducation)-1], models.NewHigherEducation()
		},
		ListCertificates: func(app *models.Application) (any, any) {
			return app.Certificates[len(app.Certificates)-1], models.NewCertificate()
		},
		ListTrainings: func(app *models.Application) (any, any) {
			return app.Trainings[len(app.Trainings)-1], models.NewTraining()
		},
		ListRelatives: func(app *models.Application) (any, any) {
			return app.Relatives[len(app.Relatives)-1], models.NewRelative()
		},
		ListRecommenders: func(app *models.Application) (any, any) {
			return app.Recommenders[len(app.Recommenders)-1], models.NewRecommender()
		},
	}
	require.Len(t, templates, len(Lists))

	for _, list := range Lists {
		t.Run(string(list), func(t *testing.T) {
			c := newControllerWith(validApplication(), &fakeSubmitter{})

			lengths := make(map[ListName]int, len(Lists))
			for _, other := range Lists {
				lengths[other] = c.ListLen(other)
			}

			require.NoError(t, c.AddEntry(list))

			for _, other := range Lists {
				want := lengths[other]
				if other == list {
					want++
				}
				assert.Equal(t, want, c.ListLen(other), string(other))
			}

			last, want := templates[list](c.Application())
			assert.Empty(t, cmp.Diff(want, last))
		})
	}
}

func TestController_AddEntryUnknownList(t *testing.T) {
	c := NewController(&fakeSubmitter{})
	before := models.NewApplication()

	err := c.AddEntry("pets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pets")
	assert.Equal(t, -1, c.ListLen("pets"))
	assert.Empty(t, cmp.Diff(before, c.Application()))
}

func TestController_SubmitMinimalValidApplication(t *testing.T) {
	submitter := &fakeSubmitter{}
	c := newControllerWith(validApplication(), submitter)
	for c.Step() != LastStep {
		c.Advance()
	}

	submitter.during = func() {
		assert.True(t, c.Submitting())
	}

	confirmation, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, confirmation)

	assert.Equal(t, 1, submitter.calls)
	assert.Equal(t, "Aysel", submitter.received.FirstName)
	assert.Equal(t, "aysel_cv.pdf", confirmation.CVFileName)
	assert.Equal(t, "Aysel_Mammadova_1700000000000.pdf", confirmation.StoredName)
	assert.Contains(t, confirmation.Text(), `"aysel_cv.pdf"`)
	assert.False(t, c.Submitting())

	assert.Equal(t, StepPersonalInfo, c.Step())
	assert.Empty(t, cmp.Diff(models.NewApplication(), c.Application()))
	assert.Nil(t, c.StepErrors(StepPersonalInfo))
}

func TestController_SubmitEmptyMotivationBlocked(t *testing.T) {
	submitter := &fakeSubmitter{}
	app := validApplication()
	app.Questions.Motivation = ""
	c := newControllerWith(app, submitter)
	for c.Step() != LastStep {
		c.Advance()
	}

	confirmation, err := c.Submit(context.Background())
	assert.Nil(t, confirmation)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, submitter.calls)
	assert.Equal(t, StepAdditionalInfo, c.Step())

	stepErrs := c.Errors()[StepAdditionalInfo]
	assert.Equal(t, "Motivation must be at least 20 characters", MessageFor(stepErrs, "questions.motivation"))
	assert.Len(t, c.Errors(), 1)
	assert.Equal(t, "Motivation must be at least 20 characters", MessageFor(c.StepErrors(StepAdditionalInfo), "questions.motivation"))
}

func TestController_SubmitNonPDFBlocked(t *testing.T) {
	submitter := &fakeSubmitter{}
	app := validApplication()
	app.CV = NewAttachment("cv.docx", []byte("PK\x03\x04 not really a pdf"))
	c := newControllerWith(app, submitter)

	_, err := c.Submit(context.Background())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, submitter.calls)
	assert.Equal(t, "Only PDF files are allowed", MessageFor(c.Errors()[StepAdditionalInfo], "cv"))
}

func TestController_SubmitMissingCVBlocked(t *testing.T) {
	submitter := &fakeSubmitter{}
	app := validApplication()
	app.CV = nil
	c := newControllerWith(app, submitter)

	_, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, submitter.calls)
	assert.Equal(t, "Please upload a CV file", MessageFor(validationErrors(t, err), "cv"))
}

func TestController_SubmitTransportFailurePreservesState(t *testing.T) {
	submitter := &fakeSubmitter{err: errors.New("upload endpoint unavailable")}
	c := newControllerWith(validApplication(), submitter)
	for c.Step() != LastStep {
		c.Advance()
	}

	confirmation, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.Nil(t, confirmation)
	assert.Equal(t, 1, submitter.calls)
	assert.Equal(t, StepAdditionalInfo, c.Step())
	assert.Empty(t, cmp.Diff(validApplication(), c.Application()))
	assert.False(t, c.Submitting())

	// a retry reuses the preserved application
	submitter.err = nil
	confirmation, err = c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "aysel_cv.pdf", confirmation.CVFileName)
	assert.Equal(t, 2, submitter.calls)
}

func TestController_StepErrorsAreAdvisoryAfterFirstAttempt(t *testing.T) {
	c := NewController(&fakeSubmitter{})
	assert.Nil(t, c.StepErrors(StepPersonalInfo))

	_, err := c.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, "First name must be at least 2 characters", MessageFor(c.StepErrors(StepPersonalInfo), "firstName"))

	c.Application().FirstName = "Aysel"
	assert.Empty(t, MessageFor(c.StepErrors(StepPersonalInfo), "firstName"))

	c.Advance()
	assert.Equal(t, StepLanguageSkills, c.Step())
}

func validationErrors(t *testing.T, err error) []FieldError {
	t.Helper()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	return validationErr.Errors
}
