package form

import (
	"fmt"
	"strconv"

	"github.com/oreline/careers-api/internal/models"
)

// FieldKind selects the input widget for a field
type FieldKind int

const (
	KindText FieldKind = iota
	KindEmail
	KindPhone
	KindDate
	KindSelect
	KindTextArea
	KindCheckbox
	KindFile
)

// Field is one input bound to the application it was rendered from
type Field struct {
	Path        string
	Label       string
	Kind        FieldKind
	Placeholder string
	Options     []string
	Required    bool

	Get func() string
	Set func(value string) error
}

// Section groups the fields of one fixed record or one list entry
type Section struct {
	Title  string
	Fields []Field
}

// AddAction offers a new template entry for a repeatable list
type AddAction struct {
	List  ListName
	Label string
}

// StepView is everything needed to draw one step
type StepView struct {
	Step        Step
	Title       string
	Description string
	Sections    []Section
	Actions     []AddAction
}

// Fields flattens the sections in display order
func (v StepView) Fields() []Field {
	var out []Field
	for _, s := range v.Sections {
		out = append(out, s.Fields...)
	}
	return out
}

var (
	birthCityOptions    = []string{"Baku", "Ganja", "Sumgayit", "Other"}
	birthCountryOptions = []string{"Azerbaijan", "Turkey", "Russia", "Other"}
	citizenshipOptions  = []string{"Azerbaijani", "Turkish", "Russian", "Other"}
)

// Render builds the view for step. Fields point into app, so a view must be
// rendered again after AddEntry grows a list.
func Render(step Step, app *models.Application) StepView {
	view := StepView{
		Step:        step,
		Title:       step.Title(),
		Description: step.Description(),
	}

	switch step {
	case StepPersonalInfo:
		renderPersonalInfo(&view, &app.PersonalInfo)
	case StepLanguageSkills:
		renderLanguageSkills(&view, &app.LanguageSkills)
	case StepProfessionalExperience:
		renderExperience(&view, &app.ProfessionalExperience)
	case StepEducation:
		renderEducation(&view, &app.Education)
	case StepCertificates:
		renderCertificates(&view, &app.CertificatesAndTrainings)
	case StepAdditionalInfo:
		renderAdditionalInfo(&view, &app.AdditionalInfo)
	}

	return view
}

func renderPersonalInfo(view *StepView, p *models.PersonalInfo) {
	view.Sections = []Section{{
		Title: "Personal Information",
		Fields: []Field{
			textField("firstName", "First Name", "Enter your first name", KindText, true, &p.FirstName),
			textField("lastName", "Last Name", "Enter your last name", KindText, true, &p.LastName),
			textField("fatherName", "Father's Name", "Enter your father's name", KindText, true, &p.FatherName),
			textField("email", "Email", "Enter your email", KindEmail, true, &p.Email),
			textField("phone", "Phone Number", "+994 ___ __ __", KindPhone, true, &p.Phone),
			textField("actualAddress", "Actual Address", "Enter your actual address", KindText, true, &p.ActualAddress),
			textField("registrationAddress", "Registration Address", "Enter your registration address", KindText, true, &p.RegistrationAddress),
			selectField("birthCity", "Birth City", birthCityOptions, &p.BirthCity),
			selectField("birthCountry", "Birth Country", birthCountryOptions, &p.BirthCountry),
			selectField("citizenship", "Citizenship", citizenshipOptions, &p.Citizenship),
		},
	}}
}

func renderLanguageSkills(view *StepView, l *models.LanguageSkills) {
	for i := range l.Languages {
		entry := &l.Languages[i]
		prefix := fmt.Sprintf("languages[%d]", i)
		view.Sections = append(view.Sections, Section{
			Title: fmt.Sprintf("Language %d", i+1),
			Fields: []Field{
				textField(prefix+".language", "Language", "e.g., English, Azerbaijani", KindText, true, &entry.Language),
				proficiencyField(prefix+".speaking", "Speaking", &entry.Speaking),
				proficiencyField(prefix+".reading", "Reading", &entry.Reading),
				proficiencyField(prefix+".writing", "Writing", &entry.Writing),
			},
		})
	}
	view.Actions = []AddAction{{List: ListLanguages, Label: "Add Language"}}
}

func renderExperience(view *StepView, e *models.ProfessionalExperience) {
	for i := range e.Experiences {
		entry := &e.Experiences[i]
		prefix := fmt.Sprintf("experiences[%d]", i)
		view.Sections = append(view.Sections, Section{
			Title: fmt.Sprintf("Experience %d", i+1),
			Fields: []Field{
				textField(prefix+".company", "Company", "Company name", KindText, true, &entry.Company),
				textField(prefix+".position", "Position", "Your position", KindText, true, &entry.Position),
				textField(prefix+".startDate", "Start Date", "YYYY-MM-DD", KindDate, true, &entry.StartDate),
				textField(prefix+".endDate", "End Date", "YYYY-MM-DD", KindDate, false, &entry.EndDate),
				checkboxField(prefix+".current", "Currently working here", &entry.Current),
				textField(prefix+".description", "Description", "Describe your responsibilities and achievements", KindTextArea, true, &entry.Description),
			},
		})
	}
	view.Actions = []AddAction{{List: ListExperiences, Label: "Add Experience"}}
}

func renderEducation(view *StepView, e *models.Education) {
	school := &e.SecondaryEducation
	view.Sections = append(view.Sections, Section{
		Title: "Secondary Education",
		Fields: []Field{
			textField("secondaryEducation.school", "School", "School name", KindText, true, &school.School),
			textField("secondaryEducation.graduationYear", "Graduation Year", "2020", KindText, true, &school.GraduationYear),
			textField("secondaryEducation.gpa", "GPA (Optional)", "3.5", KindText, false, &school.GPA),
		},
	})

	for i := range e.HigherEducation {
		entry := &e.HigherEducation[i]
		prefix := fmt.Sprintf("higherEducation[%d]", i)
		view.Sections = append(view.Sections, Section{
			Title: fmt.Sprintf("Higher Education %d", i+1),
			Fields: []Field{
				textField(prefix+".institution", "Institution", "University name", KindText, true, &entry.Institution),
				textField(prefix+".degree", "Degree", "Bachelor, Master, PhD", KindText, true, &entry.Degree),
				textField(prefix+".field", "Field of Study", "Chemistry, Geology, etc.", KindText, true, &entry.Field),
				textField(prefix+".graduationYear", "Graduation Year", "2020", KindText, true, &entry.GraduationYear),
				textField(prefix+".gpa", "GPA (Optional)", "3.5", KindText, false, &entry.GPA),
			},
		})
	}
	view.Actions = []AddAction{{List: ListHigherEducation, Label: "Add Education"}}
}

func renderCertificates(view *StepView, c *models.CertificatesAndTrainings) {
	for i := range c.Certificates {
		entry := &c.Certificates[i]
		prefix := fmt.Sprintf("certificates[%d]", i)
		view.Sections = append(view.Sections, Section{
			Title: fmt.Sprintf("Certificate %d", i+1),
			Fields: []Field{
				textField(prefix+".name", "Certificate Name", "Certificate name", KindText, true, &entry.Name),
				textField(prefix+".issuer", "Issuer", "Issuing organization", KindText, true, &entry.Issuer),
				textField(prefix+".date", "Date", "YYYY-MM-DD", KindDate, true, &entry.Date),
			},
		})
	}
	for i := range c.Trainings {
		entry := &c.Trainings[i]
		prefix := fmt.Sprintf("trainings[%d]", i)
		view.Sections = append(view.Sections, Section{
			Title: fmt.Sprintf("Training %d", i+1),
			Fields: []Field{
				textField(prefix+".name", "Training Name", "Training name", KindText, true, &entry.Name),
				textField(prefix+".institution", "Institution", "Training institution", KindText, true, &entry.Institution),
				textField(prefix+".duration", "Duration", "e.g., 3 months, 40 hours", KindText, true, &entry.Duration),
				textField(prefix+".date", "Date", "YYYY-MM-DD", KindDate, true, &entry.Date),
			},
		})
	}
	view.Actions = []AddAction{
		{List: ListCertificates, Label: "Add Certificate"},
		{List: ListTrainings, Label: "Add Training"},
	}
}

func renderAdditionalInfo(view *StepView, a *models.AdditionalInfo) {
	for i := range a.Relatives {
		entry := &a.Relatives[i]
		prefix := fmt.Sprintf("relatives[%d]", i)
		view.Sections = append(view.Sections, Section{
			Title: fmt.Sprintf("Relative %d", i+1),
			Fields: []Field{
				textField(prefix+".name", "Name", "Relative's name", KindText, true, &entry.Name),
				textField(prefix+".relationship", "Relationship", "Father, Mother, Brother, etc.", KindText, true, &entry.Relationship),
				textField(prefix+".workplace", "Workplace", "Workplace name", KindText, true, &entry.Workplace),
				textField(prefix+".position", "Position", "Position title", KindText, true, &entry.Position),
			},
		})
	}
	for i := range a.Recommenders {
		entry := &a.Recommenders[i]
		prefix := fmt.Sprintf("recommenders[%d]", i)
		view.Sections = append(view.Sections, Section{
			Title: fmt.Sprintf("Recommender %d", i+1),
			Fields: []Field{
				textField(prefix+".name", "Name", "Recommender's name", KindText, true, &entry.Name),
				textField(prefix+".position", "Position", "Position title", KindText, true, &entry.Position),
				textField(prefix+".company", "Company", "Company name", KindText, true, &entry.Company),
				textField(prefix+".phone", "Phone", "Phone number", KindPhone, true, &entry.Phone),
				textField(prefix+".email", "Email", "Email address", KindEmail, true, &entry.Email),
			},
		})
	}

	q := &a.Questions
	view.Sections = append(view.Sections, Section{
		Title: "Questions",
		Fields: []Field{
			textField("questions.motivation", "Why do you want to work for us?", "Tell us about your motivation...", KindTextArea, true, &q.Motivation),
			textField("questions.availability", "When can you start?", "e.g., Immediately, 2 weeks notice", KindText, true, &q.Availability),
			textField("questions.salary", "Expected Salary (Optional)", "e.g., 1500-2000 AZN", KindText, false, &q.Salary),
			textField("questions.additionalInfo", "Additional Information", "Any additional information you'd like to share...", KindTextArea, false, &q.AdditionalInfo),
			fileField("cv", "Upload CV (PDF only)", &a.CV),
		},
	})

	view.Actions = []AddAction{
		{List: ListRelatives, Label: "Add Relative"},
		{List: ListRecommenders, Label: "Add Recommender"},
	}
}

func textField(path, label, placeholder string, kind FieldKind, required bool, target *string) Field {
	return Field{
		Path:        path,
		Label:       label,
		Kind:        kind,
		Placeholder: placeholder,
		Required:    required,
		Get:         func() string { return *target },
		Set: func(value string) error {
			*target = value
			return nil
		},
	}
}

func selectField(path, label string, options []string, target *string) Field {
	return Field{
		Path:     path,
		Label:    label,
		Kind:     KindSelect,
		Options:  options,
		Required: true,
		Get:      func() string { return *target },
		Set: func(value string) error {
			*target = value
			return nil
		},
	}
}

func proficiencyField(path, label string, target *models.Proficiency) Field {
	return Field{
		Path:    path,
		Label:   label,
		Kind:    KindSelect,
		Options: models.ProficiencyOptions(),
		Get:     func() string { return string(*target) },
		Set: func(value string) error {
			level := models.Proficiency(value)
			if !level.Valid() {
				return fmt.Errorf("unknown proficiency %q", value)
			}
			*target = level
			return nil
		},
	}
}

func checkboxField(path, label string, target *bool) Field {
	return Field{
		Path:  path,
		Label: label,
		Kind:  KindCheckbox,
		Get:   func() string { return strconv.FormatBool(*target) },
		Set: func(value string) error {
			checked, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid checkbox value %q: %w", value, err)
			}
			*target = checked
			return nil
		},
	}
}

// fileField takes a path on disk as its value and loads the file into the attachment
func fileField(path, label string, target **models.Attachment) Field {
	return Field{
		Path:     path,
		Label:    label,
		Kind:     KindFile,
		Required: true,
		Get: func() string {
			if *target == nil {
				return ""
			}
			return (*target).FileName
		},
		Set: func(value string) error {
			if value == "" {
				*target = nil
				return nil
			}
			attachment, err := LoadAttachment(value)
			if err != nil {
				return err
			}
			*target = attachment
			return nil
		},
	}
}
