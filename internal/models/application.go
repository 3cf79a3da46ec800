package models

// CVContentType is the only accepted CV media type
const CVContentType = "application/pdf"

// Proficiency is a language level on a fixed ordinal scale
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
	ProficiencyNative       Proficiency = "Native"
)

// Proficiencies lists every level in ascending order
var Proficiencies = []Proficiency{
	ProficiencyBeginner,
	ProficiencyIntermediate,
	ProficiencyAdvanced,
	ProficiencyNative,
}

// Rank returns 1..4 for known levels and 0 otherwise
func (p Proficiency) Rank() int {
	for i, level := range Proficiencies {
		if level == p {
			return i + 1
		}
	}
	return 0
}

// Valid reports whether p is one of the four levels
func (p Proficiency) Valid() bool {
	return p.Rank() > 0
}

// Less orders levels Beginner < Intermediate < Advanced < Native
func (p Proficiency) Less(other Proficiency) bool {
	return p.Rank() < other.Rank()
}

// ProficiencyOptions returns the levels as select options
func ProficiencyOptions() []string {
	out := make([]string, len(Proficiencies))
	for i, level := range Proficiencies {
		out[i] = string(level)
	}
	return out
}

// Application is everything collected by the six-step careers form.
// Each embedded struct is one step; JSON stays flat like the website payload.
type Application struct {
	PersonalInfo             `yaml:",inline"`
	LanguageSkills           `yaml:",inline"`
	ProfessionalExperience   `yaml:",inline"`
	Education                `yaml:",inline"`
	CertificatesAndTrainings `yaml:",inline"`
	AdditionalInfo           `yaml:",inline"`
}

// Step 1
type PersonalInfo struct {
	FirstName           string `json:"firstName" yaml:"firstName" validate:"min=2"`
	LastName            string `json:"lastName" yaml:"lastName" validate:"min=2"`
	FatherName          string `json:"fatherName" yaml:"fatherName" validate:"min=2"`
	Email               string `json:"email" yaml:"email" validate:"email"`
	Phone               string `json:"phone" yaml:"phone" validate:"min=10"`
	ActualAddress       string `json:"actualAddress" yaml:"actualAddress" validate:"min=5"`
	RegistrationAddress string `json:"registrationAddress" yaml:"registrationAddress" validate:"min=5"`
	BirthCity           string `json:"birthCity" yaml:"birthCity" validate:"min=2"`
	BirthCountry        string `json:"birthCountry" yaml:"birthCountry" validate:"min=2"`
	Citizenship         string `json:"citizenship" yaml:"citizenship" validate:"min=2"`
}

// Step 2
type LanguageSkills struct {
	Languages []LanguageSkill `json:"languages" yaml:"languages" validate:"min=1,dive"`
}

type LanguageSkill struct {
	Language string      `json:"language" yaml:"language" validate:"min=1"`
	Speaking Proficiency `json:"speaking" yaml:"speaking" validate:"oneof=Beginner Intermediate Advanced Native"`
	Reading  Proficiency `json:"reading" yaml:"reading" validate:"oneof=Beginner Intermediate Advanced Native"`
	Writing  Proficiency `json:"writing" yaml:"writing" validate:"oneof=Beginner Intermediate Advanced Native"`
}

// Step 3
type ProfessionalExperience struct {
	Experiences []Experience `json:"experiences" yaml:"experiences" validate:"min=1,dive"`
}

type Experience struct {
	Company     string `json:"company" yaml:"company" validate:"min=1"`
	Position    string `json:"position" yaml:"position" validate:"min=1"`
	StartDate   string `json:"startDate" yaml:"startDate" validate:"min=1"`
	EndDate     string `json:"endDate" yaml:"endDate"`
	Current     bool   `json:"current" yaml:"current"`
	Description string `json:"description" yaml:"description" validate:"min=10"`
}

// Step 4
type Education struct {
	SecondaryEducation SecondaryEducation `json:"secondaryEducation" yaml:"secondaryEducation"`
	HigherEducation    []HigherEducation  `json:"higherEducation" yaml:"higherEducation" validate:"dive"`
}

type SecondaryEducation struct {
	School         string `json:"school" yaml:"school" validate:"min=1"`
	GraduationYear string `json:"graduationYear" yaml:"graduationYear" validate:"min=4"`
	GPA            string `json:"gpa" yaml:"gpa"`
}

type HigherEducation struct {
	Institution    string `json:"institution" yaml:"institution" validate:"min=1"`
	Degree         string `json:"degree" yaml:"degree" validate:"min=1"`
	Field          string `json:"field" yaml:"field" validate:"min=1"`
	GraduationYear string `json:"graduationYear" yaml:"graduationYear" validate:"min=4"`
	GPA            string `json:"gpa" yaml:"gpa"`
}

// Step 5
type CertificatesAndTrainings struct {
	Certificates []Certificate `json:"certificates" yaml:"certificates" validate:"dive"`
	Trainings    []Training    `json:"trainings" yaml:"trainings" validate:"dive"`
}

type Certificate struct {
	Name   string `json:"name" yaml:"name" validate:"min=1"`
	Issuer string `json:"issuer" yaml:"issuer" validate:"min=1"`
	Date   string `json:"date" yaml:"date" validate:"min=1"`
}

type Training struct {
	Name        string `json:"name" yaml:"name" validate:"min=1"`
	Institution string `json:"institution" yaml:"institution" validate:"min=1"`
	Duration    string `json:"duration" yaml:"duration" validate:"min=1"`
	Date        string `json:"date" yaml:"date" validate:"min=1"`
}

// Step 6
type AdditionalInfo struct {
	Relatives    []Relative    `json:"relatives" yaml:"relatives" validate:"dive"`
	Recommenders []Recommender `json:"recommenders" yaml:"recommenders" validate:"dive"`
	Questions    Questions     `json:"questions" yaml:"questions"`

	// CV travels as its own multipart part, never inside the JSON document.
	CV *Attachment `json:"-" yaml:"-" form:"cv" validate:"required"`
}

type Relative struct {
	Name         string `json:"name" yaml:"name" validate:"min=1"`
	Relationship string `json:"relationship" yaml:"relationship" validate:"min=1"`
	Workplace    string `json:"workplace" yaml:"workplace" validate:"min=1"`
	Position     string `json:"position" yaml:"position" validate:"min=1"`
}

type Recommender struct {
	Name     string `json:"name" yaml:"name" validate:"min=1"`
	Position string `json:"position" yaml:"position" validate:"min=1"`
	Company  string `json:"company" yaml:"company" validate:"min=1"`
	Phone    string `json:"phone" yaml:"phone" validate:"min=10"`
	Email    string `json:"email" yaml:"email" validate:"email"`
}

type Questions struct {
	Motivation     string `json:"motivation" yaml:"motivation" validate:"min=20"`
	Availability   string `json:"availability" yaml:"availability" validate:"min=1"`
	Salary         string `json:"salary" yaml:"salary"`
	AdditionalInfo string `json:"additionalInfo" yaml:"additionalInfo"`
}

// Attachment is a file picked by the applicant
type Attachment struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType" validate:"eq=application/pdf"`
	Data        []byte `json:"-"`
}

// Size returns the payload length in bytes
func (a *Attachment) Size() int {
	if a == nil {
		return 0
	}
	return len(a.Data)
}

// IsPDF reports whether the attachment carries the accepted CV type
func (a *Attachment) IsPDF() bool {
	return a != nil && a.ContentType == CVContentType
}

// Template entries. Every repeatable list starts with exactly one of these.

func NewLanguageSkill() LanguageSkill {
	return LanguageSkill{
		Speaking: ProficiencyBeginner,
		Reading:  ProficiencyBeginner,
		Writing:  ProficiencyBeginner,
	}
}

func NewExperience() Experience { return Experience{} }
func NewHigherEducation() HigherEducation { return HigherEducation{} }
func NewCertificate() Certificate { return Certificate{} }
func NewTraining() Training { return Training{} }
func NewRelative() Relative { return Relative{} }
func NewRecommender() Recommender { return Recommender{} }

// NewApplication returns the empty form: one template entry per repeatable list
func NewApplication() *Application {
	return &Application{
		LanguageSkills:         LanguageSkills{Languages: []LanguageSkill{NewLanguageSkill()}},
		ProfessionalExperience: ProfessionalExperience{Experiences: []Experience{NewExperience()}},
		Education: Education{
			HigherEducation: []HigherEducation{NewHigherEducation()},
		},
		CertificatesAndTrainings: CertificatesAndTrainings{
			Certificates: []Certificate{NewCertificate()},
			Trainings:    []Training{NewTraining()},
		},
		AdditionalInfo: AdditionalInfo{
			Relatives:    []Relative{NewRelative()},
			Recommenders: []Recommender{NewRecommender()},
		},
	}
}

// FullName joins first and last name
func (a *Application) FullName() string {
	return a.FirstName + " " + a.LastName
}
