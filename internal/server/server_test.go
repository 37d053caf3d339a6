package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"edureg/internal/identity"
	"edureg/internal/registration"
	"edureg/internal/staging"
	"edureg/pkg/types"

	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

type fakeIdentity struct {
	mu      sync.Mutex
	created []string
	err     error
}

func (f *fakeIdentity) CreateAccount(ctx context.Context, email, secret string, hints types.AccountHints) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, email)
	return "acct-1", nil
}

func (f *fakeIdentity) ConfirmAccount(ctx context.Context, email, code string) error {
	if code != "123456" {
		return &identity.Error{Message: "Invalid confirmation code. Please check the code and try again."}
	}
	return nil
}

func (f *fakeIdentity) SignIn(ctx context.Context, email, password string) (*identity.Session, error) {
	if password != "Sup3rSecret!" {
		return nil, &identity.Error{Message: "Invalid credentials."}
	}
	return &identity.Session{AccessToken: "token-acct-1", ExpiresIn: 3600}, nil
}

type fakeUploader struct{}

func (fakeUploader) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	return key, nil
}

func (fakeUploader) Delete(ctx context.Context, key string) error { return nil }

type fakeInstitutions struct {
	mu       sync.Mutex
	profiles map[string]*types.InstitutionProfile
}

func (f *fakeInstitutions) Upsert(ctx context.Context, p *types.InstitutionProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeInstitutions) Institution(ctx context.Context, id string) (*types.InstitutionProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, types.ErrInstitutionNotFound
	}
	return p, nil
}

type fakeEnrollments struct {
	rows []*types.Enrollment
}

func (f *fakeEnrollments) Create(ctx context.Context, e *types.Enrollment) error {
	if e.StudentID == e.InstitutionID {
		return types.ErrSelfEnrollment
	}
	e.ID = "enr-1"
	f.rows = append(f.rows, e)
	return nil
}

func (f *fakeEnrollments) ByInstitution(ctx context.Context, id string) ([]*types.Enrollment, error) {
	return f.rows, nil
}

func (f *fakeEnrollments) CountByInstitution(ctx context.Context, id string) (int, error) {
	return len(f.rows), nil
}

type testEnv struct {
	service      *Service
	identity     *fakeIdentity
	institutions *fakeInstitutions
	cookies      map[string]*http.Cookie
}

func newTestEnv(t *testing.T, mutate func(*types.Config)) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	config := &types.Config{
		CookieName:       "wizard_session",
		SessionMaxAgeSec: 3600,
		CookieHashKey:    base64.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)),
		CookieBlockKey:   base64.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)),
		MaxUploadBytes:   1 << 20,
		MaxPhotos:        2,
	}
	if mutate != nil {
		mutate(config)
	}

	id := &fakeIdentity{}
	institutions := &fakeInstitutions{profiles: map[string]*types.InstitutionProfile{}}

	s, err := New(
		config,
		logger,
		staging.NewMemory(time.Hour),
		id,
		registration.NewSubmitter(logger, id),
		registration.NewFinalizer(logger, fakeUploader{}, institutions, 2),
		institutions,
		&fakeEnrollments{},
		nil,
		"",
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	s.verify = func(ctx context.Context, token string) (string, string, error) {
		if token != "token-acct-1" {
			return "", "", errors.New("bad token")
		}
		return "acct-1", "owner@inst.example", nil
	}

	return &testEnv{service: s, identity: id, institutions: institutions, cookies: map[string]*http.Cookie{}}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	for _, c := range e.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.service.Handler().ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(e.cookies, c.Name)
			continue
		}
		e.cookies[c.Name] = c
	}
	return rec
}

func (e *testEnv) post(t *testing.T, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req)
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func basicInfoValues() url.Values {
	return url.Values{
		"institution_name":    {"Green Valley School"},
		"institution_type":    {"school"},
		"establishment_year":  {"1998"},
		"registration_number": {"REG-2211"},
		"pan":                 {"abcde1234f"},
		"email":               {"owner@inst.example"},
		"password":            {"Sup3rSecret!"},
		"contact_number":      {"98765-43210"},
		"address":             {"42 Lake View Road, Sector 9"},
		"city":                {"Pune"},
		"state":               {"Maharashtra"},
		"pincode":             {"411001"},
		"owner_name":          {"Asha Rao"},
		"owner_contact":       {"9123456780"},
	}
}

func TestWizardRegistrationFlow(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get(t, "/register/wizard")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET wizard: %d %s", rec.Code, rec.Body.String())
	}
	if _, ok := env.cookies["wizard_session"]; !ok {
		t.Fatal("expected a wizard session cookie")
	}
	if view := decode[types.WizardView](t, rec); view.CurrentStep != 1 || view.TotalSteps != types.TotalSteps {
		t.Fatalf("unexpected view %+v", view)
	}

	rec = env.post(t, "/register/wizard/steps/1", basicInfoValues())
	if rec.Code != http.StatusOK {
		t.Fatalf("POST step 1: %d %s", rec.Code, rec.Body.String())
	}
	step := decode[map[string]any](t, rec)
	if step["status"] != string(types.StatusCompleted) {
		t.Fatalf("expected step 1 completed, got %v", step["status"])
	}
	data := step["data"].(map[string]any)
	if data["contactNumber"] != "9876543210" || data["pan"] != "ABCDE1234F" {
		t.Fatalf("input rules not applied: %v", data)
	}

	rec = env.post(t, "/register/wizard/next", nil)
	if view := decode[types.WizardView](t, rec); view.CurrentStep != 2 {
		t.Fatalf("expected step 2, got %+v", view)
	}
	rec = env.post(t, "/register/wizard/goto?step=99", nil)
	if view := decode[types.WizardView](t, rec); view.CurrentStep != types.StepDeclaration {
		t.Fatalf("goto should clamp, got %+v", view)
	}

	rec = env.post(t, "/register/wizard/submit", nil)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("submit: %d %s", rec.Code, rec.Body.String())
	}
	if len(env.identity.created) != 1 || env.identity.created[0] != "owner@inst.example" {
		t.Fatalf("unexpected identity calls %v", env.identity.created)
	}

	rec = env.post(t, "/register/confirm", url.Values{"code": {"000000"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("wrong code should be rejected, got %d", rec.Code)
	}

	rec = env.post(t, "/register/confirm", url.Values{"code": {"123456"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm: %d %s", rec.Code, rec.Body.String())
	}
	confirmed := decode[types.ConfirmResponse](t, rec)
	if confirmed.Profile == nil || confirmed.Profile.ID != "acct-1" || confirmed.Profile.InstitutionName != "Green Valley School" {
		t.Fatalf("unexpected profile %+v", confirmed.Profile)
	}

	rec = env.get(t, "/register/wizard")
	if view := decode[types.WizardView](t, rec); view.CurrentStep != 1 || view.Steps[0].Status != types.StatusNotStarted {
		t.Fatalf("draft should be cleared after finalize, got %+v", view)
	}
}

func TestWizardStepErrors(t *testing.T) {
	env := newTestEnv(t, nil)

	if rec := env.get(t, "/register/wizard/steps/8"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for step 8, got %d", rec.Code)
	}
	if rec := env.post(t, "/register/wizard/goto?step=x", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad goto, got %d", rec.Code)
	}
	if rec := env.post(t, "/register/confirm", url.Values{"code": {"123456"}}); rec.Code != http.StatusNotFound {
		t.Fatalf("confirm without a pending profile should be 404, got %d", rec.Code)
	}
}

func TestWizardSubmitWithoutCredentials(t *testing.T) {
	env := newTestEnv(t, nil)

	values := basicInfoValues()
	values.Del("password")
	env.post(t, "/register/wizard/steps/1", values)

	rec := env.post(t, "/register/wizard/submit", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d %s", rec.Code, rec.Body.String())
	}
	if len(env.identity.created) != 0 {
		t.Fatal("identity must not be called")
	}
}

func TestWizardSubmitIdentityFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	env.identity.err = &identity.Error{Message: "An account with this email already exists."}

	env.post(t, "/register/wizard/steps/1", basicInfoValues())
	rec := env.post(t, "/register/wizard/submit", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decode[types.ErrorResponse](t, rec); body.Error != "submission failed: An account with this email already exists." {
		t.Fatalf("unexpected error %q", body.Error)
	}
}

func TestWizardSubmitRejectsReentry(t *testing.T) {
	env := newTestEnv(t, nil)
	env.service.submitting.Store("sess-1", struct{}{})

	req := httptest.NewRequest(http.MethodPost, "/register/wizard/submit", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyWizardSession, "sess-1"))
	rec := httptest.NewRecorder()
	env.service.handlePostWizardSubmit(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestGatedNavigation(t *testing.T) {
	env := newTestEnv(t, func(c *types.Config) { c.GateIncompleteSteps = true })

	if rec := env.post(t, "/register/wizard/next", nil); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for an incomplete step, got %d", rec.Code)
	}
	if rec := env.post(t, "/register/wizard/submit", nil); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for an incomplete form, got %d", rec.Code)
	}

	env.post(t, "/register/wizard/steps/1", basicInfoValues())
	if rec := env.post(t, "/register/wizard/next", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected to move on, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestWizardMultipartPhotos(t *testing.T) {
	env := newTestEnv(t, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("campus_area", "2 acres")
	_ = mw.WriteField("classroom_count", "24 rooms")
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		fw, _ := mw.CreateFormFile("photos", name)
		_, _ = fw.Write([]byte("jpeg-bytes"))
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/register/wizard/steps/2", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := env.do(t, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST step 2: %d %s", rec.Code, rec.Body.String())
	}

	view := decode[struct {
		Status  types.CompletionStatus `json:"status"`
		Notices []string               `json:"notices"`
		Data    types.Infrastructure   `json:"data"`
	}](t, rec)
	if len(view.Data.Photos) != 2 || len(view.Notices) != 1 {
		t.Fatalf("expected photos capped at 2 with a notice, got %d %v", len(view.Data.Photos), view.Notices)
	}
	if view.Data.Photos[0].Content != nil {
		t.Fatal("attachment bytes must not be returned")
	}
	if view.Data.ClassroomCount != "24" || view.Status != types.StatusCompleted {
		t.Fatalf("unexpected step %+v", view)
	}
}

func TestWizardReset(t *testing.T) {
	env := newTestEnv(t, nil)
	env.post(t, "/register/wizard/steps/1", basicInfoValues())
	env.post(t, "/register/wizard/next", nil)

	rec := env.post(t, "/register/wizard/reset", nil)
	view := decode[types.WizardView](t, rec)
	if view.CurrentStep != 1 || view.Steps[0].Status != types.StatusNotStarted {
		t.Fatalf("reset should restore defaults, got %+v", view)
	}
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t, nil)

	if rec := env.get(t, "/dashboard"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without login, got %d", rec.Code)
	}

	if rec := env.post(t, "/login", url.Values{"email": {"owner@inst.example"}, "password": {"wrong"}}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d", rec.Code)
	}
	if rec := env.post(t, "/login", url.Values{"email": {"owner@inst.example"}, "password": {"Sup3rSecret!"}}); rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}

	if rec := env.get(t, "/dashboard"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before the profile exists, got %d", rec.Code)
	}

	env.institutions.profiles["acct-1"] = &types.InstitutionProfile{ID: "acct-1", InstitutionName: "Green Valley School"}

	rec := env.post(t, "/dashboard/enrollments", url.Values{"student_id": {"acct-1"}, "course_name": {"Class XI"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("self-enrollment should be rejected, got %d", rec.Code)
	}
	rec = env.post(t, "/dashboard/enrollments", url.Values{"student_id": {"stu-9"}, "course_name": {"Class XI"}, "student_name": {"Ravi"}})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create enrollment: %d %s", rec.Code, rec.Body.String())
	}

	rec = env.get(t, "/dashboard")
	dash := decode[types.DashboardResponse](t, rec)
	if dash.Profile == nil || dash.Profile.ID != "acct-1" || dash.EnrollmentCount != 1 {
		t.Fatalf("unexpected dashboard %+v", dash)
	}

	env.post(t, "/logout", nil)
	if rec := env.get(t, "/dashboard"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}
