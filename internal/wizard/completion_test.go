package wizard

import (
	"testing"

	"edureg/pkg/types"
)

func TestValidateBasicInfo(t *testing.T) {
	if !ValidateBasicInfo(validBasicInfo()) {
		t.Fatal("expected the populated step 1 to validate")
	}

	other := validBasicInfo()
	other.InstitutionType = types.InstitutionTypeOther
	if ValidateBasicInfo(other) {
		t.Fatal("type other without a qualifier must not validate")
	}
	other.InstitutionTypeOther = "Music academy"
	if !ValidateBasicInfo(other) {
		t.Fatal("type other with a qualifier should validate")
	}

	noWebsite := validBasicInfo()
	noWebsite.Website = ""
	if !ValidateBasicInfo(noWebsite) {
		t.Fatal("website is optional")
	}
}

func TestStatusOf(t *testing.T) {
	complete := validBasicInfo()

	missingOne := validBasicInfo()
	missingOne.Pincode = ""

	tests := []struct {
		name string
		in   types.StepModel
		want types.CompletionStatus
	}{
		{name: "all mandatory fields", in: complete, want: types.StatusCompleted},
		{name: "one mandatory field cleared", in: missingOne, want: types.StatusInProgress},
		{name: "all defaults", in: types.BasicInfo{}, want: types.StatusNotStarted},
		{name: "only optional field", in: types.BasicInfo{Website: "https://x.example"}, want: types.StatusInProgress},
		{name: "empty slices are defaults", in: types.Infrastructure{Photos: []types.Attachment{}}, want: types.StatusNotStarted},
		{name: "flag group counts as edited", in: types.Infrastructure{Facilities: types.Facilities{Library: true}}, want: types.StatusInProgress},
		{name: "nil model", in: nil, want: types.StatusNotStarted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.in); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestValidators(t *testing.T) {
	reg := attachment("registration.pdf")
	pan := attachment("pan.pdf")
	addr := attachment("address.pdf")
	id := attachment("id.pdf")

	tests := []struct {
		name string
		in   types.StepModel
		want bool
	}{
		{name: "infrastructure", in: types.Infrastructure{CampusArea: "1 acre", ClassroomCount: "20", Photos: []types.Attachment{attachment("a.jpg")}}, want: true},
		{name: "infrastructure without photos", in: types.Infrastructure{CampusArea: "1 acre", ClassroomCount: "20"}, want: false},
		{name: "courses", in: types.CoursesFees{TeachingMedium: types.MediumEnglish, Courses: []types.Course{{Name: "Class X", AnnualFee: "45000"}}}, want: true},
		{name: "courses missing fee", in: types.CoursesFees{TeachingMedium: types.MediumEnglish, Courses: []types.Course{{Name: "Class X"}}}, want: false},
		{name: "courses other medium without qualifier", in: types.CoursesFees{TeachingMedium: types.MediumOther, Courses: []types.Course{{Name: "X", AnnualFee: "1"}}}, want: false},
		{name: "faculty", in: types.Faculty{HeadName: "Dr. Rao", HeadQualification: "PhD", TotalFaculty: "32"}, want: true},
		{name: "results", in: types.Results{PassPercentage: "96", ExamResults: []types.ExamResult{{Exam: "CBSE X", Year: "2025"}}}, want: true},
		{name: "results without exams", in: types.Results{PassPercentage: "96"}, want: false},
		{name: "documents", in: types.Documents{RegistrationCertificate: &reg, PANCard: &pan, AddressProof: &addr, OwnerIDProof: &id}, want: true},
		{name: "documents missing id proof", in: types.Documents{RegistrationCertificate: &reg, PANCard: &pan, AddressProof: &addr}, want: false},
		{name: "declaration", in: types.Declaration{AccountHolder: "Sunrise Trust", AccountNumber: "123456789012", IFSC: "SBIN0001234", SignatoryName: "Asha", TermsAccepted: true, InformationDeclared: true}, want: true},
		{name: "declaration without terms", in: types.Declaration{AccountHolder: "Sunrise Trust", AccountNumber: "123456789012", IFSC: "SBIN0001234", SignatoryName: "Asha", InformationDeclared: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.in); got != tt.want {
				t.Fatalf("Validate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHintsAreAdvisory(t *testing.T) {
	b := validBasicInfo()
	b.Email = "not-an-email"
	b.Address = "short"
	b.PAN = "12345"

	hints := Hints(b)
	for _, field := range []string{"email", "address", "pan"} {
		if hints[field] == "" {
			t.Errorf("expected a hint for %s", field)
		}
	}

	if StatusOf(b) != types.StatusCompleted {
		t.Fatal("format hints must not affect completion")
	}

	if len(Hints(validBasicInfo())) != 0 {
		t.Fatalf("unexpected hints for valid data: %v", Hints(validBasicInfo()))
	}
}

func TestPasswordHintMatchesAccountRule(t *testing.T) {
	b := validBasicInfo()
	b.Password = "Ab1!xyz"

	if got := Hints(b)["password"]; got != types.PasswordRuleMessage {
		t.Fatalf("password hint = %q, want %q", got, types.PasswordRuleMessage)
	}

	b.Password = "Ab1!wxyz"
	if got := Hints(b)["password"]; got != "" {
		t.Fatalf("unexpected hint for a password of the minimum length: %q", got)
	}
}

func TestTrackerFollowsState(t *testing.T) {
	s := New()
	_ = s.UpdateStepData(types.StepBasicInfo, validBasicInfo())
	if s.Status(types.StepBasicInfo) != types.StatusCompleted {
		t.Fatal("expected completed")
	}

	_ = s.UpdateStepData(types.StepBasicInfo, types.BasicInfo{}, "owner_contact")
	if s.Status(types.StepBasicInfo) != types.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", s.Status(types.StepBasicInfo))
	}
}
