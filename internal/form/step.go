package form

import "fmt"

// Step identifies one of the six screens of the careers form
type Step int

const (
	StepPersonalInfo Step = iota + 1
	StepLanguageSkills
	StepProfessionalExperience
	StepEducation
	StepCertificates
	StepAdditionalInfo
)

const (
	FirstStep = StepPersonalInfo
	LastStep  = StepAdditionalInfo
)

// Steps lists every step in navigation order
var Steps = []Step{
	StepPersonalInfo,
	StepLanguageSkills,
	StepProfessionalExperience,
	StepEducation,
	StepCertificates,
	StepAdditionalInfo,
}

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

func (s Step) Title() string {
	switch s {
	case StepPersonalInfo:
		return "Personal Information"
	case StepLanguageSkills:
		return "Language Skills"
	case StepProfessionalExperience:
		return "Professional Experience"
	case StepEducation:
		return "Education"
	case StepCertificates:
		return "Certificates & Training"
	case StepAdditionalInfo:
		return "Additional Information"
	}
	return ""
}

func (s Step) Description() string {
	switch s {
	case StepPersonalInfo:
		return "Enter your personal details"
	case StepLanguageSkills:
		return "Your language proficiency"
	case StepProfessionalExperience:
		return "Your work experience"
	case StepEducation:
		return "Your educational background"
	case StepCertificates:
		return "Your certifications and training"
	case StepAdditionalInfo:
		return "Relatives, recommenders, and questions"
	}
	return ""
}

// Next returns the following step, or s itself on the last step
func (s Step) Next() Step {
	if s >= LastStep {
		return LastStep
	}
	return s + 1
}

// Prev returns the preceding step, or s itself on the first step
func (s Step) Prev() Step {
	if s <= FirstStep {
		return FirstStep
	}
	return s - 1
}

func (s Step) String() string {
	return fmt.Sprintf("Step %d of %d: %s", int(s), len(Steps), s.Title())
}
