package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/oreline/careers-api/internal/models"
)

// FieldError is one failing input, keyed by its JSON path (e.g. languages[0].language)
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned by Submit when the joint schema rejects the application
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "application is invalid"
	case 1:
		return fmt.Sprintf("application is invalid: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	default:
		return fmt.Sprintf("application is invalid: %s: %s (and %d more)",
			e.Errors[0].Field, e.Errors[0].Message, len(e.Errors)-1)
	}
}

// MessageFor returns the first message reported for field, or ""
func MessageFor(errs []FieldError, field string) string {
	for _, fe := range errs {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			name = fld.Tag.Get("form")
		}
		return name
	})
	return v
}

// messages maps a field path (list indices collapsed to []) to the text shown
// next to the input. A "|tag" suffix narrows the entry to one rule.
var messages = map[string]string{
	"firstName":           "First name must be at least 2 characters",
	"lastName":            "Last name must be at least 2 characters",
	"fatherName":          "Father's name must be at least 2 characters",
	"email":               "Please enter a valid email address",
	"phone":               "Phone number must be at least 10 digits",
	"actualAddress":       "Address must be at least 5 characters",
	"registrationAddress": "Registration address must be at least 5 characters",
	"birthCity":           "Birth city is required",
	"birthCountry":        "Birth country is required",
	"citizenship":         "Citizenship is required",

	"languages":            "At least one language is required",
	"languages[].language": "Language is required",

	"experiences":               "At least one experience is required",
	"experiences[].company":     "Company name is required",
	"experiences[].position":    "Position is required",
	"experiences[].startDate":   "Start date is required",
	"experiences[].description": "Description must be at least 10 characters",

	"secondaryEducation.school":         "School name is required",
	"secondaryEducation.graduationYear": "Graduation year is required",
	"higherEducation[].institution":     "Institution name is required",
	"higherEducation[].degree":          "Degree is required",
	"higherEducation[].field":           "Field of study is required",
	"higherEducation[].graduationYear":  "Graduation year is required",

	"certificates[].name":       "Certificate name is required",
	"certificates[].issuer":     "Issuer is required",
	"certificates[].date":       "Date is required",
	"trainings[].name":          "Training name is required",
	"trainings[].institution":   "Institution is required",
	"trainings[].duration":      "Duration is required",
	"trainings[].date":          "Date is required",
	"relatives[].name":          "Name is required",
	"relatives[].relationship":  "Relationship is required",
	"relatives[].workplace":     "Workplace is required",
	"relatives[].position":      "Position is required",
	"recommenders[].name":       "Name is required",
	"recommenders[].position":   "Position is required",
	"recommenders[].company":    "Company is required",
	"recommenders[].phone":      "Phone number is required",
	"recommenders[].email":      "Valid email is required",
	"questions.motivation":      "Motivation must be at least 20 characters",
	"questions.availability":    "Availability is required",
	"cv|required":               "Please upload a CV file",
	"cv.contentType":            "Only PDF files are allowed",
}

// Errors on nested attachment fields are reported against the input that holds the file
var fieldAliases = map[string]string{
	"cv.contentType": "cv",
}

var indexPattern = regexp.MustCompile(`\[\d+\]`)

// section returns the part of app validated by step
func section(step Step, app *models.Application) any {
	switch step {
	case StepPersonalInfo:
		return &app.PersonalInfo
	case StepLanguageSkills:
		return &app.LanguageSkills
	case StepProfessionalExperience:
		return &app.ProfessionalExperience
	case StepEducation:
		return &app.Education
	case StepCertificates:
		return &app.CertificatesAndTrainings
	case StepAdditionalInfo:
		return &app.AdditionalInfo
	}
	return nil
}

// ValidateStep runs one step schema. It never blocks navigation; callers show
// the result next to the inputs.
func ValidateStep(step Step, app *models.Application) []FieldError {
	target := section(step, app)
	if target == nil || app == nil {
		return nil
	}
	return toFieldErrors(validate.Struct(target))
}

// ValidateApplication is the joint schema: the union of every step schema
func ValidateApplication(app *models.Application) []FieldError {
	var out []FieldError
	for _, step := range Steps {
		out = append(out, ValidateStep(step, app)...)
	}
	return out
}

func toFieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		path := fieldPath(fe.Namespace())
		field := path
		key := indexPattern.ReplaceAllString(path, "[]")
		if alias, ok := fieldAliases[key]; ok {
			field = alias
		}
		out = append(out, FieldError{
			Field:   field,
			Message: messageFor(key, fe),
		})
	}
	return out
}

// fieldPath drops the leading struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func messageFor(key string, fe validator.FieldError) string {
	if msg, ok := messages[key+"|"+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[key]; ok {
		return msg
	}
	return defaultMessage(fe)
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "eq":
		return fe.Field() + " must be " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
