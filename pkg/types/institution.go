package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type InstitutionStatus string

const (
	InstitutionStatusPendingReview InstitutionStatus = "PENDING_REVIEW"
	InstitutionStatusActive        InstitutionStatus = "ACTIVE"
	InstitutionStatusSuspended     InstitutionStatus = "SUSPENDED"
)

// InstitutionProfile is the persisted profile row. Attachments are stored as
// storage paths only.
type InstitutionProfile struct {
	ID                   string               `db:"id" json:"id"`
	Email                string               `db:"email" json:"email"`
	InstitutionName      string               `db:"institution_name" json:"institutionName"`
	InstitutionType      string               `db:"institution_type" json:"institutionType"`
	InstitutionTypeOther *string              `db:"institution_type_other" json:"institutionTypeOther"`
	EstablishmentYear    *string              `db:"establishment_year" json:"establishmentYear"`
	RegistrationNumber   string               `db:"registration_number" json:"registrationNumber"`
	PAN                  string               `db:"pan" json:"pan"`
	ContactNumber        string               `db:"contact_number" json:"contactNumber"`
	Website              *string              `db:"website" json:"website"`
	Address              string               `db:"address" json:"address"`
	City                 string               `db:"city" json:"city"`
	State                string               `db:"state" json:"state"`
	Pincode              string               `db:"pincode" json:"pincode"`
	OwnerName            string               `db:"owner_name" json:"ownerName"`
	OwnerContact         string               `db:"owner_contact" json:"ownerContact"`
	LogoPath             *string              `db:"logo_path" json:"logoPath"`
	Infrastructure       InfrastructureRecord `db:"infrastructure" json:"infrastructure"`
	CoursesFees          CoursesFeesRecord    `db:"courses_fees" json:"coursesFees"`
	Faculty              FacultyRecord        `db:"faculty" json:"faculty"`
	Results              ResultsRecord        `db:"results" json:"results"`
	Documents            DocumentPaths        `db:"documents" json:"documents"`
	Declaration          DeclarationRecord    `db:"declaration" json:"declaration"`
	Status               InstitutionStatus    `db:"status" json:"status"`
	VerifiedAt           *time.Time           `db:"verified_at" json:"verifiedAt"`
	CreatedAt            time.Time            `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time            `db:"updated_at" json:"updatedAt"`
}

type InfrastructureRecord struct {
	CampusArea       string     `json:"campusArea"`
	ClassroomCount   string     `json:"classroomCount"`
	SeatingCapacity  string     `json:"seatingCapacity"`
	Facilities       Facilities `json:"facilities"`
	TransportDetails string     `json:"transportDetails"`
	PhotoPaths       []string   `json:"photoPaths"`
}

type CoursesFeesRecord struct {
	TeachingMedium       string   `json:"teachingMedium"`
	TeachingMediumOther  string   `json:"teachingMediumOther"`
	AffiliationBoard     string   `json:"affiliationBoard"`
	Courses              []Course `json:"courses"`
	ScholarshipAvailable bool     `json:"scholarshipAvailable"`
	ScholarshipDetails   string   `json:"scholarshipDetails"`
	FeeStructurePath     string   `json:"feeStructurePath"`
}

type FacultyRecord Faculty

type ResultsRecord struct {
	PassPercentage string       `json:"passPercentage"`
	ExamResults    []ExamResult `json:"examResults"`
	Achievements   string       `json:"achievements"`
	AwardPaths     []string     `json:"awardPaths"`
}

type DocumentPaths struct {
	RegistrationCertificate string   `json:"registrationCertificate"`
	AffiliationCertificate  string   `json:"affiliationCertificate"`
	PANCard                 string   `json:"panCard"`
	AddressProof            string   `json:"addressProof"`
	OwnerIDProof            string   `json:"ownerIdProof"`
	Additional              []string `json:"additional"`
}

// DeclarationRecord keeps only the last four digits of the account number.
type DeclarationRecord struct {
	AccountHolder       string `json:"accountHolder"`
	BankName            string `json:"bankName"`
	AccountNumberLast4  string `json:"accountNumberLast4"`
	IFSC                string `json:"ifsc"`
	TermsAccepted       bool   `json:"termsAccepted"`
	InformationDeclared bool   `json:"informationDeclared"`
	SignatoryName       string `json:"signatoryName"`
}

// jsonb columns

func (r InfrastructureRecord) Value() (driver.Value, error) { return json.Marshal(r) }
func (r *InfrastructureRecord) Scan(src any) error          { return scanJSON(src, r) }

func (r CoursesFeesRecord) Value() (driver.Value, error) { return json.Marshal(r) }
func (r *CoursesFeesRecord) Scan(src any) error          { return scanJSON(src, r) }

func (r FacultyRecord) Value() (driver.Value, error) { return json.Marshal(Faculty(r)) }
func (r *FacultyRecord) Scan(src any) error          { return scanJSON(src, (*Faculty)(r)) }

func (r ResultsRecord) Value() (driver.Value, error) { return json.Marshal(r) }
func (r *ResultsRecord) Scan(src any) error          { return scanJSON(src, r) }

func (r DocumentPaths) Value() (driver.Value, error) { return json.Marshal(r) }
func (r *DocumentPaths) Scan(src any) error          { return scanJSON(src, r) }

func (r DeclarationRecord) Value() (driver.Value, error) { return json.Marshal(r) }
func (r *DeclarationRecord) Scan(src any) error          { return scanJSON(src, r) }

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dst)
	}
}
