package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"
	"time"

	"edureg/internal/identity"
	"edureg/internal/registration"
	"edureg/internal/staging"
	"edureg/internal/wizard"
	"edureg/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

// Accounts confirms and signs in identity accounts.
type Accounts interface {
	ConfirmAccount(ctx context.Context, email, code string) error
	SignIn(ctx context.Context, email, password string) (*identity.Session, error)
}

type InstitutionReader interface {
	Institution(ctx context.Context, id string) (*types.InstitutionProfile, error)
}

type EnrollmentStore interface {
	Create(ctx context.Context, enrollment *types.Enrollment) error
	ByInstitution(ctx context.Context, institutionID string) ([]*types.Enrollment, error)
	CountByInstitution(ctx context.Context, institutionID string) (int, error)
}

type Service struct {
	logger *logrus.Logger
	config *types.Config

	staging   staging.Provider
	accounts  Accounts
	submitter *registration.Submitter
	finalizer *registration.Finalizer

	institutions InstitutionReader
	enrollments  EnrollmentStore

	navigator wizard.Navigator
	limits    wizard.Limits

	cookie *securecookie.SecureCookie

	jwksCache *jwk.Cache
	jwksURL   string
	verify    tokenVerifier

	// wizard session ids with a submission in flight
	submitting sync.Map

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	provider staging.Provider,
	accounts Accounts,
	submitter *registration.Submitter,
	finalizer *registration.Finalizer,
	institutions InstitutionReader,
	enrollments EnrollmentStore,
	jwkCache *jwk.Cache,
	jwksURL string,
) (*Service, error) {
	mux := flow.New()

	hashKey, err := base64.StdEncoding.DecodeString(config.CookieHashKey)
	if err != nil {
		return nil, fmt.Errorf("decode cookie hash key: %w", err)
	}
	blockKey, err := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if err != nil {
		return nil, fmt.Errorf("decode cookie block key: %w", err)
	}

	s := &Service{
		logger: logger,
		config: config,

		staging:   provider,
		accounts:  accounts,
		submitter: submitter,
		finalizer: finalizer,

		institutions: institutions,
		enrollments:  enrollments,

		navigator: wizard.Navigator{Gate: config.GateIncompleteSteps},
		limits:    wizard.Limits{MaxPhotos: config.MaxPhotos},

		cookie: securecookie.New(hashKey, blockKey),

		jwksCache: jwkCache,
		jwksURL:   jwksURL,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}
	s.verify = s.verifyJWKS

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handlePostLogout, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.WizardSession)

		r.HandleFunc("/register/wizard", s.handleGetWizard, http.MethodGet)
		r.HandleFunc("/register/wizard/steps/:step", s.handleGetWizardStep, http.MethodGet)
		r.HandleFunc("/register/wizard/steps/:step", s.handlePostWizardStep, http.MethodPost)
		r.HandleFunc("/register/wizard/next", s.handlePostWizardNext, http.MethodPost)
		r.HandleFunc("/register/wizard/prev", s.handlePostWizardPrev, http.MethodPost)
		r.HandleFunc("/register/wizard/goto", s.handlePostWizardGoto, http.MethodPost)
		r.HandleFunc("/register/wizard/reset", s.handlePostWizardReset, http.MethodPost)
		r.HandleFunc("/register/wizard/submit", s.handlePostWizardSubmit, http.MethodPost)
		r.HandleFunc("/register/confirm", s.handlePostRegisterConfirm, http.MethodPost)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/dashboard", s.handleGetDashboard, http.MethodGet)
		r.HandleFunc("/dashboard/enrollments", s.handleGetEnrollments, http.MethodGet)
		r.HandleFunc("/dashboard/enrollments", s.handlePostEnrollment, http.MethodPost)
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Service) accountIDFromContext(ctx context.Context) (string, error) {
	accountID, ok := ctx.Value(contextKeyAccountID).(string)
	if !ok || accountID == "" {
		return "", fmt.Errorf("account id not found in context")
	}
	return accountID, nil
}

func (s *Service) wizardSessionFromContext(ctx context.Context) (string, error) {
	sessionID, ok := ctx.Value(contextKeyWizardSession).(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("wizard session not found in context")
	}
	return sessionID, nil
}
