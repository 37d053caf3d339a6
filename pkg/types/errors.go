package types

import "errors"

var (
	ErrMissingCredentials   = errors.New("email and password are required to create an account")
	ErrNoPendingProfile     = errors.New("no pending profile staged for this session")
	ErrUnknownStep          = errors.New("unknown wizard step")
	ErrStepIncomplete       = errors.New("current step is incomplete")
	ErrFormIncomplete       = errors.New("registration form is incomplete")
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
	ErrInstitutionNotFound  = errors.New("institution not found")
	ErrSelfEnrollment       = errors.New("an institution cannot enroll in its own course")
	ErrInvalidEnrollment    = errors.New("enrollment requires a student and a course")
	ErrDuplicateEnrollment  = errors.New("student is already enrolled in this course")
)

// SubmissionError wraps a collaborator failure during submission. Message is
// the collaborator's message, verbatim.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	return "submission failed: " + e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
