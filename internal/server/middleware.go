package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"edureg/internal"
	"edureg/internal/utils"

	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const (
	contextKeyAccountID     contextKey = "account_id"
	contextKeyEmail         contextKey = "email"
	contextKeyWizardSession contextKey = "wizard_session"
)

type tokenVerifier func(ctx context.Context, accessToken string) (accountID, email string, err error)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// RequireAuth middleware checks for valid access token and adds the account
// to context
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Get the cookie
		cookie, err := r.Cookie(internal.COOKIE_ACCESS_TOKEN_NAME)
		if err != nil {
			s.logger.WithError(err).Debug("no access token cookie found")
			s.writeError(w, http.StatusUnauthorized, "login required")
			return
		}

		// 2. Decrypt the token
		var accessToken string
		err = s.cookie.Decode(internal.COOKIE_ACCESS_TOKEN_NAME, cookie.Value, &accessToken)
		if err != nil {
			s.logger.WithError(err).Error("failed to decrypt access token")
			s.writeError(w, http.StatusUnauthorized, "login required")
			return
		}

		// 3. Verify and extract the account
		accountID, email, err := s.verify(r.Context(), accessToken)
		if err != nil {
			s.logger.WithError(err).Error("failed to verify access token")
			s.writeError(w, http.StatusUnauthorized, "login required")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, contextKeyAccountID, accountID)
		if email != "" {
			ctx = context.WithValue(ctx, contextKeyEmail, email)
		}

		s.logger.WithFields(logrus.Fields{
			"account_id": accountID,
			"email":      email,
		}).Debug("authenticated account")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// verifyJWKS validates a Cognito access token against the pool's JWKS.
func (s *Service) verifyJWKS(ctx context.Context, accessToken string) (string, string, error) {
	set, err := s.jwksCache.Lookup(ctx, s.jwksURL)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch JWKS: %w", err)
	}

	token, err := jwt.Parse(
		[]byte(accessToken),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
	)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse JWT: %w", err)
	}

	accountID, ok := token.Subject()
	if !ok || accountID == "" {
		return "", "", fmt.Errorf("no account id in JWT subject claim")
	}

	// email is optional
	var email string
	_ = token.Get("email", &email)

	return accountID, email, nil
}

// WizardSession attaches the wizard session id from the encrypted session
// cookie, starting a new session when the cookie is missing or invalid.
func (s *Service) WizardSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := s.config.CookieName

		var sessionID string
		if cookie, err := r.Cookie(name); err == nil {
			if err := s.cookie.Decode(name, cookie.Value, &sessionID); err != nil {
				s.logger.WithError(err).Warn("discarding invalid wizard session cookie")
				sessionID = ""
			}
		}

		if sessionID == "" {
			sessionID = utils.NanoID()

			encoded, err := s.cookie.Encode(name, sessionID)
			if err != nil {
				s.logger.WithError(err).Error("failed to encode wizard session cookie")
				s.internalServerError(w)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     name,
				Value:    encoded,
				HttpOnly: true,
				Secure:   true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   s.config.SessionMaxAgeSec,
				Path:     "/",
			})
		}

		ctx := context.WithValue(r.Context(), contextKeyWizardSession, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") {
			newURL := *r.URL
			newURL.Path = strings.TrimSuffix(path, "/")

			// Preserve query string
			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}
