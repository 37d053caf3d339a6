package types

type StepSummary struct {
	Step   StepID           `json:"step"`
	Title  string           `json:"title"`
	Status CompletionStatus `json:"status"`
}

type WizardView struct {
	CurrentStep    StepID        `json:"currentStep"`
	TotalSteps     int           `json:"totalSteps"`
	Steps          []StepSummary `json:"steps"`
	IsFormComplete bool          `json:"isFormComplete"`
}

type StepView struct {
	Step    StepID            `json:"step"`
	Title   string            `json:"title"`
	Status  CompletionStatus  `json:"status"`
	Data    StepModel         `json:"data"`
	Hints   map[string]string `json:"hints,omitempty"`
	Notices []string          `json:"notices,omitempty"`
}

type SubmitResponse struct {
	Message   string `json:"message"`
	AccountID string `json:"accountId"`
}

type ConfirmResponse struct {
	Message string              `json:"message"`
	Profile *InstitutionProfile `json:"profile,omitempty"`
}

type DashboardResponse struct {
	Profile         *InstitutionProfile `json:"profile"`
	EnrollmentCount int                 `json:"enrollmentCount"`
}

type ErrorResponse struct {
	Error       string            `json:"error"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}
