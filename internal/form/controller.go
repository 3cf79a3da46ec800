package form

import (
	"context"
	"fmt"

	"github.com/oreline/careers-api/internal/models"
)

// ListName names a repeatable section of the application
type ListName string

const (
	ListLanguages       ListName = "languages"
	ListExperiences     ListName = "experiences"
	ListHigherEducation ListName = "higherEducation"
	ListCertificates    ListName = "certificates"
	ListTrainings       ListName = "trainings"
	ListRelatives       ListName = "relatives"
	ListRecommenders    ListName = "recommenders"
)

// Lists holds every repeatable section in form order
var Lists = []ListName{
	ListLanguages,
	ListExperiences,
	ListHigherEducation,
	ListCertificates,
	ListTrainings,
	ListRelatives,
	ListRecommenders,
}

// Submitter delivers a validated application to the upload endpoint
type Submitter interface {
	Submit(ctx context.Context, app *models.Application) (*models.ApplyResponse, error)
}

// Confirmation is what the applicant sees after the endpoint acknowledges
type Confirmation struct {
	CVFileName string
	StoredName string
	Message    string
}

// Text is the body of the success dialog
func (c *Confirmation) Text() string {
	return fmt.Sprintf("Thank you for your interest in the Laborant position. "+
		"We have received your application with the CV file %q. "+
		"Our HR team will review your application and contact you within 5-7 business days.", c.CVFileName)
}

// Controller owns the step pointer and the application for one applicant.
// It is not safe for concurrent use.
type Controller struct {
	step       Step
	app        *models.Application
	submitter  Submitter
	errors     map[Step][]FieldError
	attempted  bool
	submitting bool
}

// NewController starts at step 1 with an empty application
func NewController(submitter Submitter) *Controller {
	return &Controller{
		step:      FirstStep,
		app:       models.NewApplication(),
		submitter: submitter,
	}
}

// Prefill replaces the application, e.g. with answers loaded from a file.
// The step pointer and any recorded errors are left alone.
func (c *Controller) Prefill(app *models.Application) {
	if app != nil {
		c.app = app
	}
}

func (c *Controller) Step() Step {
	return c.step
}

// Application returns the owned value; edits through it are edits to the form
func (c *Controller) Application() *models.Application {
	return c.app
}

// Advance moves to the next step regardless of validation state
func (c *Controller) Advance() {
	c.step = c.step.Next()
}

func (c *Controller) Retreat() {
	c.step = c.step.Prev()
}

// AddEntry appends the template entry to the named list
func (c *Controller) AddEntry(list ListName) error {
	switch list {
	case ListLanguages:
		c.app.Languages = append(c.app.Languages, models.NewLanguageSkill())
	case ListExperiences:
		c.app.Experiences = append(c.app.Experiences, models.NewExperience())
	case ListHigherEducation:
		c.app.HigherEducation = append(c.app.HigherEducation, models.NewHigherEducation())
	case ListCertificates:
		c.app.Certificates = append(c.app.Certificates, models.NewCertificate())
	case ListTrainings:
		c.app.Trainings = append(c.app.Trainings, models.NewTraining())
	case ListRelatives:
		c.app.Relatives = append(c.app.Relatives, models.NewRelative())
	case ListRecommenders:
		c.app.Recommenders = append(c.app.Recommenders, models.NewRecommender())
	default:
		return fmt.Errorf("unknown list %q", list)
	}
	return nil
}

// ListLen reports the number of entries in the named list, or -1 for unknown lists
func (c *Controller) ListLen(list ListName) int {
	switch list {
	case ListLanguages:
		return len(c.app.Languages)
	case ListExperiences:
		return len(c.app.Experiences)
	case ListHigherEducation:
		return len(c.app.HigherEducation)
	case ListCertificates:
		return len(c.app.Certificates)
	case ListTrainings:
		return len(c.app.Trainings)
	case ListRelatives:
		return len(c.app.Relatives)
	case ListRecommenders:
		return len(c.app.Recommenders)
	}
	return -1
}

// StepErrors returns advisory errors for step. Nothing is reported until the
// first submit attempt; after that the step is revalidated on every call.
func (c *Controller) StepErrors(step Step) []FieldError {
	if !c.attempted {
		return nil
	}
	return ValidateStep(step, c.app)
}

// Errors returns the per-step errors recorded by the last rejected Submit
func (c *Controller) Errors() map[Step][]FieldError {
	return c.errors
}

// Submitting reports whether a submission is in flight
func (c *Controller) Submitting() bool {
	return c.submitting
}

// Submit validates the whole application and hands it to the submitter.
// A rejected application returns *ValidationError without a network call.
// Transport failures leave the form untouched so the applicant can retry.
// On acknowledgement the form resets to step 1 with an empty application.
func (c *Controller) Submit(ctx context.Context) (*Confirmation, error) {
	c.attempted = true

	errs := make(map[Step][]FieldError)
	var all []FieldError
	for _, step := range Steps {
		if stepErrs := ValidateStep(step, c.app); len(stepErrs) > 0 {
			errs[step] = stepErrs
			all = append(all, stepErrs...)
		}
	}
	if len(all) > 0 {
		c.errors = errs
		return nil, &ValidationError{Errors: all}
	}
	c.errors = nil

	c.submitting = true
	defer func() { c.submitting = false }()

	cvName := c.app.CV.FileName
	resp, err := c.submitter.Submit(ctx, c.app)
	if err != nil {
		return nil, err
	}

	c.reset()

	return &Confirmation{
		CVFileName: cvName,
		StoredName: resp.FileName,
		Message:    resp.Message,
	}, nil
}

func (c *Controller) reset() {
	c.step = FirstStep
	c.app = models.NewApplication()
	c.errors = nil
	c.attempted = false
}
