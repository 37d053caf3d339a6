package types

// Account password rule, shared by the wizard hint and the sign-up error.
const (
	MinPasswordLength   = 8
	PasswordRuleMessage = "Password must be at least 8 characters and include uppercase, lowercase, number, and symbol."
)

// Institution type options. InstitutionTypeOther requires a qualifier.
const (
	InstitutionTypeSchool     = "school"
	InstitutionTypeCollege    = "college"
	InstitutionTypeCoaching   = "coaching"
	InstitutionTypeUniversity = "university"
	InstitutionTypeVocational = "vocational"
	InstitutionTypeOther      = "other"
)

var InstitutionTypes = []string{
	InstitutionTypeSchool,
	InstitutionTypeCollege,
	InstitutionTypeCoaching,
	InstitutionTypeUniversity,
	InstitutionTypeVocational,
	InstitutionTypeOther,
}

const (
	MediumEnglish   = "english"
	MediumHindi     = "hindi"
	MediumRegional  = "regional"
	MediumBilingual = "bilingual"
	MediumOther     = "other"
)

var TeachingMediums = []string{MediumEnglish, MediumHindi, MediumRegional, MediumBilingual, MediumOther}

const (
	CourseModeOnline  = "online"
	CourseModeOffline = "offline"
	CourseModeHybrid  = "hybrid"
)

// BasicInfo is step 1. It also carries the account credentials used at
// submission time.
type BasicInfo struct {
	InstitutionName      string      `json:"institutionName" form:"institution_name"`
	InstitutionType      string      `json:"institutionType" form:"institution_type"`
	InstitutionTypeOther string      `json:"institutionTypeOther" form:"institution_type_other"`
	EstablishmentYear    string      `json:"establishmentYear" form:"establishment_year"`
	RegistrationNumber   string      `json:"registrationNumber" form:"registration_number"`
	PAN                  string      `json:"pan" form:"pan"`
	Email                string      `json:"email" form:"email"`
	Password             string      `json:"password" form:"password"`
	ContactNumber        string      `json:"contactNumber" form:"contact_number"`
	Website              string      `json:"website" form:"website"`
	Address              string      `json:"address" form:"address"`
	City                 string      `json:"city" form:"city"`
	State                string      `json:"state" form:"state"`
	Pincode              string      `json:"pincode" form:"pincode"`
	OwnerName            string      `json:"ownerName" form:"owner_name"`
	OwnerContact         string      `json:"ownerContact" form:"owner_contact"`
	Logo                 *Attachment `json:"logo" form:"logo"`
}

func (BasicInfo) Step() StepID { return StepBasicInfo }

type Facilities struct {
	Library      bool `json:"library" form:"library"`
	ComputerLab  bool `json:"computerLab" form:"computer_lab"`
	ScienceLab   bool `json:"scienceLab" form:"science_lab"`
	Playground   bool `json:"playground" form:"playground"`
	Cafeteria    bool `json:"cafeteria" form:"cafeteria"`
	Transport    bool `json:"transport" form:"transport"`
	Hostel       bool `json:"hostel" form:"hostel"`
	WiFi         bool `json:"wifi" form:"wifi"`
	SmartClasses bool `json:"smartClasses" form:"smart_classes"`
	CCTV         bool `json:"cctv" form:"cctv"`
	MedicalRoom  bool `json:"medicalRoom" form:"medical_room"`
	Auditorium   bool `json:"auditorium" form:"auditorium"`
}

type Infrastructure struct {
	CampusArea       string       `json:"campusArea" form:"campus_area"`
	ClassroomCount   string       `json:"classroomCount" form:"classroom_count"`
	SeatingCapacity  string       `json:"seatingCapacity" form:"seating_capacity"`
	Facilities       Facilities   `json:"facilities" form:"facilities"`
	TransportDetails string       `json:"transportDetails" form:"transport_details"`
	Photos           []Attachment `json:"photos" form:"photos"`
}

func (Infrastructure) Step() StepID { return StepInfrastructure }

type Course struct {
	Name      string `json:"name" form:"name"`
	Duration  string `json:"duration" form:"duration"`
	AnnualFee string `json:"annualFee" form:"annual_fee"`
	Seats     string `json:"seats" form:"seats"`
	Mode      string `json:"mode" form:"mode"`
}

type CoursesFees struct {
	TeachingMedium       string      `json:"teachingMedium" form:"teaching_medium"`
	TeachingMediumOther  string      `json:"teachingMediumOther" form:"teaching_medium_other"`
	AffiliationBoard     string      `json:"affiliationBoard" form:"affiliation_board"`
	Courses              []Course    `json:"courses" form:"courses"`
	ScholarshipAvailable bool        `json:"scholarshipAvailable" form:"scholarship_available"`
	ScholarshipDetails   string      `json:"scholarshipDetails" form:"scholarship_details"`
	FeeStructure         *Attachment `json:"feeStructure" form:"fee_structure"`
}

func (CoursesFees) Step() StepID { return StepCoursesFees }

type FacultyMember struct {
	Name            string `json:"name" form:"name"`
	Qualification   string `json:"qualification" form:"qualification"`
	Subject         string `json:"subject" form:"subject"`
	ExperienceYears string `json:"experienceYears" form:"experience_years"`
}

type Faculty struct {
	HeadName            string          `json:"headName" form:"head_name"`
	HeadQualification   string          `json:"headQualification" form:"head_qualification"`
	TotalFaculty        string          `json:"totalFaculty" form:"total_faculty"`
	StudentTeacherRatio string          `json:"studentTeacherRatio" form:"student_teacher_ratio"`
	Members             []FacultyMember `json:"members" form:"members"`
}

func (Faculty) Step() StepID { return StepFaculty }

type ExamResult struct {
	Exam         string `json:"exam" form:"exam"`
	Year         string `json:"year" form:"year"`
	Appeared     string `json:"appeared" form:"appeared"`
	Passed       string `json:"passed" form:"passed"`
	Distinctions string `json:"distinctions" form:"distinctions"`
}

type Results struct {
	PassPercentage string       `json:"passPercentage" form:"pass_percentage"`
	ExamResults    []ExamResult `json:"examResults" form:"exam_results"`
	Achievements   string       `json:"achievements" form:"achievements"`
	Awards         []Attachment `json:"awards" form:"awards"`
}

func (Results) Step() StepID { return StepResults }

type Documents struct {
	RegistrationCertificate *Attachment  `json:"registrationCertificate" form:"registration_certificate"`
	AffiliationCertificate  *Attachment  `json:"affiliationCertificate" form:"affiliation_certificate"`
	PANCard                 *Attachment  `json:"panCard" form:"pan_card"`
	AddressProof            *Attachment  `json:"addressProof" form:"address_proof"`
	OwnerIDProof            *Attachment  `json:"ownerIdProof" form:"owner_id_proof"`
	Additional              []Attachment `json:"additional" form:"additional"`
}

func (Documents) Step() StepID { return StepDocuments }

type Declaration struct {
	AccountHolder       string `json:"accountHolder" form:"account_holder"`
	BankName            string `json:"bankName" form:"bank_name"`
	AccountNumber       string `json:"accountNumber" form:"account_number"`
	IFSC                string `json:"ifsc" form:"ifsc"`
	TermsAccepted       bool   `json:"termsAccepted" form:"terms_accepted"`
	InformationDeclared bool   `json:"informationDeclared" form:"information_declared"`
	SignatoryName       string `json:"signatoryName" form:"signatory_name"`
}

func (Declaration) Step() StepID { return StepDeclaration }
