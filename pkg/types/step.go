package types

type StepID int

const (
	StepBasicInfo StepID = iota + 1
	StepInfrastructure
	StepCoursesFees
	StepFaculty
	StepResults
	StepDocuments
	StepDeclaration
)

const TotalSteps = int(StepDeclaration)

var stepTitles = map[StepID]string{
	StepBasicInfo:      "Basic Information",
	StepInfrastructure: "Infrastructure & Facilities",
	StepCoursesFees:    "Courses & Fees",
	StepFaculty:        "Faculty",
	StepResults:        "Results & Achievements",
	StepDocuments:      "Documents",
	StepDeclaration:    "Bank Details & Declaration",
}

func (s StepID) Valid() bool {
	return s >= StepBasicInfo && s <= StepDeclaration
}

func (s StepID) Title() string {
	if t, ok := stepTitles[s]; ok {
		return t
	}
	return "Unknown"
}

// AllSteps returns the wizard steps in navigation order.
func AllSteps() []StepID {
	out := make([]StepID, 0, TotalSteps)
	for s := StepBasicInfo; s <= StepDeclaration; s++ {
		out = append(out, s)
	}
	return out
}

// StepModel is implemented by each of the seven step field models.
type StepModel interface {
	Step() StepID
}

type CompletionStatus string

const (
	StatusNotStarted CompletionStatus = "not_started"
	StatusInProgress CompletionStatus = "in_progress"
	StatusCompleted  CompletionStatus = "completed"
)
