package form

import (
	"context"

	"github.com/oreline/careers-api/internal/models"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

// validApplication is the smallest application every step accepts
func validApplication() *models.Application {
	app := models.NewApplication()
	app.PersonalInfo = models.PersonalInfo{
		FirstName:           "Aysel",
		LastName:            "Mammadova",
		FatherName:          "Rashid",
		Email:               "aysel@example.com",
		Phone:               "+994501234567",
		ActualAddress:       "12 Nizami street, Baku",
		RegistrationAddress: "12 Nizami street, Baku",
		BirthCity:           "Baku",
		BirthCountry:        "Azerbaijan",
		Citizenship:         "Azerbaijani",
	}
	app.Languages[0].Language = "English"
	app.Experiences[0] = models.Experience{
		Company:     "Azergold",
		Position:    "Laborant",
		StartDate:   "2020-01-01",
		Current:     true,
		Description: "Assayed ore samples every shift",
	}
	app.SecondaryEducation = models.SecondaryEducation{School: "School 6", GraduationYear: "2012"}
	app.HigherEducation[0] = models.HigherEducation{
		Institution:    "Baku State University",
		Degree:         "Bachelor",
		Field:          "Chemistry",
		GraduationYear: "2016",
	}
	app.Certificates = []models.Certificate{}
	app.Trainings = []models.Training{}
	app.Relatives = []models.Relative{}
	app.Recommenders = []models.Recommender{}
	app.Questions = models.Questions{
		Motivation:   "I want to grow as a laboratory specialist",
		Availability: "Immediately",
	}
	app.CV = &models.Attachment{FileName: "aysel_cv.pdf", ContentType: models.CVContentType, Data: pdfBytes}
	return app
}

type fakeSubmitter struct {
	calls    int
	err      error
	resp     *models.ApplyResponse
	received *models.Application
	during   func()
}

func (f *fakeSubmitter) Submit(_ context.Context, app *models.Application) (*models.ApplyResponse, error) {
	f.calls++
	f.received = app
	if f.during != nil {
		f.during()
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &models.ApplyResponse{
		Success:  true,
		Message:  "Application submitted successfully",
		FileName: "Aysel_Mammadova_1700000000000.pdf",
	}, nil
}

func newControllerWith(app *models.Application, submitter Submitter) *Controller {
	c := NewController(submitter)
	c.Prefill(app)
	return c
}
