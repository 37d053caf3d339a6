package types

import "time"

// FormData holds one field model per wizard step.
type FormData struct {
	BasicInfo      BasicInfo      `json:"step1"`
	Infrastructure Infrastructure `json:"step2"`
	CoursesFees    CoursesFees    `json:"step3"`
	Faculty        Faculty        `json:"step4"`
	Results        Results        `json:"step5"`
	Documents      Documents      `json:"step6"`
	Declaration    Declaration    `json:"step7"`
}

// NewFormData returns form data with every field at its default. Slices are
// empty rather than nil so the serialized form is fully populated.
func NewFormData() FormData {
	return FormData{
		Infrastructure: Infrastructure{Photos: []Attachment{}},
		CoursesFees:    CoursesFees{Courses: []Course{}},
		Faculty:        Faculty{Members: []FacultyMember{}},
		Results:        Results{ExamResults: []ExamResult{}, Awards: []Attachment{}},
		Documents:      Documents{Additional: []Attachment{}},
	}
}

// FormState is the serialized aggregate wizard state for one session.
type FormState struct {
	CurrentStep StepID    `json:"currentStep"`
	Steps       FormData  `json:"steps"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PendingProfile is staged after account creation and consumed once the
// account's email is verified.
type PendingProfile struct {
	AccountID string    `json:"accountId"`
	CreatedAt time.Time `json:"createdAt"`
	State     FormState `json:"state"`
}

// AccountHints tag a newly created identity.
type AccountHints struct {
	Role        string
	DisplayName string
}

const RoleInstitution = "institution"

// Staging keys within a session scope
const (
	StagingKeyWizardState    = "wizard_state"
	StagingKeyPendingProfile = "pending_institution_profile"
)
