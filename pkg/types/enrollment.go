package types

import "time"

type EnrollmentStatus string

const (
	EnrollmentStatusPending   EnrollmentStatus = "PENDING"
	EnrollmentStatusActive    EnrollmentStatus = "ACTIVE"
	EnrollmentStatusWithdrawn EnrollmentStatus = "WITHDRAWN"
)

// Enrollment links a student account to one of an institution's courses.
type Enrollment struct {
	ID            string           `db:"id" json:"id" form:"-"`
	InstitutionID string           `db:"institution_id" json:"institutionId" form:"-"`
	CourseName    string           `db:"course_name" json:"courseName" form:"course_name"`
	StudentID     string           `db:"student_id" json:"studentId" form:"student_id"`
	StudentName   string           `db:"student_name" json:"studentName" form:"student_name"`
	StudentEmail  *string          `db:"student_email" json:"studentEmail" form:"student_email"`
	Status        EnrollmentStatus `db:"status" json:"status" form:"-"`
	CreatedAt     time.Time        `db:"created_at" json:"createdAt" form:"-"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updatedAt" form:"-"`
}
