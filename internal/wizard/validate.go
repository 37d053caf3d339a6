package wizard

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"edureg/pkg/types"
)

// Validate reports whether every mandatory field of the step is filled in.
func Validate(m types.StepModel) bool {
	switch v := m.(type) {
	case types.BasicInfo:
		return ValidateBasicInfo(v)
	case types.Infrastructure:
		return ValidateInfrastructure(v)
	case types.CoursesFees:
		return ValidateCoursesFees(v)
	case types.Faculty:
		return ValidateFaculty(v)
	case types.Results:
		return ValidateResults(v)
	case types.Documents:
		return ValidateDocuments(v)
	case types.Declaration:
		return ValidateDeclaration(v)
	default:
		return false
	}
}

func ValidateBasicInfo(b types.BasicInfo) bool {
	if RequiresQualifier(b.InstitutionType) && !filled(b.InstitutionTypeOther) {
		return false
	}
	return filled(
		b.InstitutionName,
		b.InstitutionType,
		b.EstablishmentYear,
		b.RegistrationNumber,
		b.PAN,
		b.Email,
		b.Password,
		b.ContactNumber,
		b.Address,
		b.City,
		b.State,
		b.Pincode,
		b.OwnerName,
		b.OwnerContact,
	)
}

func ValidateInfrastructure(i types.Infrastructure) bool {
	return filled(i.CampusArea, i.ClassroomCount) && len(i.Photos) > 0
}

func ValidateCoursesFees(c types.CoursesFees) bool {
	if !filled(c.TeachingMedium) {
		return false
	}
	if RequiresQualifier(c.TeachingMedium) && !filled(c.TeachingMediumOther) {
		return false
	}
	if len(c.Courses) == 0 {
		return false
	}
	for _, course := range c.Courses {
		if !filled(course.Name, course.AnnualFee) {
			return false
		}
	}
	return true
}

func ValidateFaculty(f types.Faculty) bool {
	return filled(f.HeadName, f.HeadQualification, f.TotalFaculty)
}

func ValidateResults(r types.Results) bool {
	return filled(r.PassPercentage) && len(r.ExamResults) > 0
}

func ValidateDocuments(d types.Documents) bool {
	return d.RegistrationCertificate != nil &&
		d.PANCard != nil &&
		d.AddressProof != nil &&
		d.OwnerIDProof != nil
}

func ValidateDeclaration(d types.Declaration) bool {
	return filled(d.AccountHolder, d.AccountNumber, d.IFSC, d.SignatoryName) &&
		d.TermsAccepted &&
		d.InformationDeclared
}

func filled(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

var (
	hasUpperReg  = regexp.MustCompile(`[A-Z]`)
	hasLowerReg  = regexp.MustCompile(`[a-z]`)
	hasDigitReg  = regexp.MustCompile(`[0-9]`)
	hasSymbolReg = regexp.MustCompile(`[^A-Za-z0-9]`)

	panReg  = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	ifscReg = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

const MinAddressLength = 20

// Hints returns advisory messages keyed by form field. They are shown inline
// and never block navigation or submission.
func Hints(m types.StepModel) map[string]string {
	hints := map[string]string{}

	switch v := m.(type) {
	case types.BasicInfo:
		if RequiresQualifier(v.InstitutionType) && !filled(v.InstitutionTypeOther) {
			hints["institution_type_other"] = "Please describe the institution type."
		}
		if v.Email != "" {
			if _, err := mail.ParseAddress(v.Email); err != nil {
				hints["email"] = "Enter a valid email address."
			}
		}
		if v.Password != "" && !strongPassword(v.Password) {
			hints["password"] = types.PasswordRuleMessage
		}
		if v.PAN != "" && !panReg.MatchString(v.PAN) {
			hints["pan"] = "PAN should look like ABCDE1234F."
		}
		if v.ContactNumber != "" && len(v.ContactNumber) != PhoneDigits {
			hints["contact_number"] = "Contact number should have 10 digits."
		}
		if v.OwnerContact != "" && len(v.OwnerContact) != PhoneDigits {
			hints["owner_contact"] = "Owner contact should have 10 digits."
		}
		if v.Pincode != "" && len(v.Pincode) != PincodeDigits {
			hints["pincode"] = "Pincode should have 6 digits."
		}
		if v.Address != "" && len(strings.TrimSpace(v.Address)) < MinAddressLength {
			hints["address"] = "Address should be at least 20 characters."
		}
		if v.Website != "" {
			if u, err := url.ParseRequestURI(v.Website); err != nil || u.Host == "" {
				hints["website"] = "Enter a full URL, e.g. https://example.edu."
			}
		}
	case types.Infrastructure:
		if v.Facilities.Transport && !filled(v.TransportDetails) {
			hints["transport_details"] = "Describe routes or vehicles for the transport facility."
		}
		if v.ClassroomCount != "" && !isDigits(v.ClassroomCount) {
			hints["classroom_count"] = "Classroom count should be a number."
		}
	case types.CoursesFees:
		if RequiresQualifier(v.TeachingMedium) && !filled(v.TeachingMediumOther) {
			hints["teaching_medium_other"] = "Please specify the medium of instruction."
		}
		if v.ScholarshipAvailable && !filled(v.ScholarshipDetails) {
			hints["scholarship_details"] = "Describe the scholarships offered."
		}
	case types.Declaration:
		if v.IFSC != "" && !ifscReg.MatchString(v.IFSC) {
			hints["ifsc"] = "IFSC should look like ABCD0123456."
		}
		if v.AccountNumber != "" && len(v.AccountNumber) < 9 {
			hints["account_number"] = "Account number should have 9 to 18 digits."
		}
	}

	return hints
}

func strongPassword(p string) bool {
	return len(p) >= types.MinPasswordLength &&
		hasUpperReg.MatchString(p) &&
		hasLowerReg.MatchString(p) &&
		hasDigitReg.MatchString(p) &&
		hasSymbolReg.MatchString(p)
}
