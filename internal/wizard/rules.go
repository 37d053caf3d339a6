package wizard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"edureg/pkg/types"
)

// Input limits for digit-only and numeric-range fields.
const (
	PhoneDigits         = 10
	PincodeDigits       = 6
	AccountNumberDigits = 18
	CountDigits         = 5

	MinEstablishmentYear = 1800
	MaxEstablishmentYear = 2100
	MinPassPercentage    = 0
	MaxPassPercentage    = 100
)

var plainDecimal = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Limits are the configurable input caps.
type Limits struct {
	MaxPhotos int
}

// DigitsOnly strips every non-digit from input and truncates the result to
// max characters.
func DigitsOnly(input string, max int) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// AcceptRange returns input if it is empty or is a plain decimal within
// [min, max]; otherwise the edit is rejected and prev is kept.
func AcceptRange(prev, input string, min, max float64) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if !plainDecimal.MatchString(trimmed) {
		return prev
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || v < min || v > max {
		return prev
	}
	return trimmed
}

// SelectFiles replaces a multi-file field with selected. A positive max
// truncates the selection and returns an advisory message.
func SelectFiles(selected []types.Attachment, max int) ([]types.Attachment, string) {
	out := make([]types.Attachment, len(selected))
	copy(out, selected)
	if max > 0 && len(out) > max {
		return out[:max], fmt.Sprintf("Only the first %d files were kept.", max)
	}
	return out, ""
}

// RequiresQualifier reports whether a free-text qualifier is shown and
// required for an enumerated value.
func RequiresQualifier(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "other")
}

// constrain applies input rules to next, which holds the edited copy of prev.
// It returns advisory notices for edits that were altered.
func constrain(prev, next types.StepModel, limits Limits) []string {
	notices := make([]string, 0)

	switch n := next.(type) {
	case *types.BasicInfo:
		p := prev.(types.BasicInfo)
		n.ContactNumber = DigitsOnly(n.ContactNumber, PhoneDigits)
		n.OwnerContact = DigitsOnly(n.OwnerContact, PhoneDigits)
		n.Pincode = DigitsOnly(n.Pincode, PincodeDigits)
		n.EstablishmentYear = AcceptRange(p.EstablishmentYear, n.EstablishmentYear, MinEstablishmentYear, MaxEstablishmentYear)
		n.PAN = strings.ToUpper(strings.TrimSpace(n.PAN))
	case *types.Infrastructure:
		n.ClassroomCount = DigitsOnly(n.ClassroomCount, CountDigits)
		n.SeatingCapacity = DigitsOnly(n.SeatingCapacity, CountDigits)
		var notice string
		n.Photos, notice = SelectFiles(n.Photos, limits.MaxPhotos)
		if notice != "" {
			notices = append(notices, notice)
		}
	case *types.CoursesFees:
		for i := range n.Courses {
			n.Courses[i].Seats = DigitsOnly(n.Courses[i].Seats, CountDigits)
		}
	case *types.Faculty:
		n.TotalFaculty = DigitsOnly(n.TotalFaculty, CountDigits)
	case *types.Results:
		p := prev.(types.Results)
		n.PassPercentage = AcceptRange(p.PassPercentage, n.PassPercentage, MinPassPercentage, MaxPassPercentage)
	case *types.Declaration:
		n.AccountNumber = DigitsOnly(n.AccountNumber, AccountNumberDigits)
		n.IFSC = strings.ToUpper(strings.TrimSpace(n.IFSC))
	}

	return notices
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
