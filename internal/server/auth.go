package server

import (
	"net/http"
	"strings"

	"edureg/internal"
)

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if !required(email) || password == "" {
		s.writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := s.accounts.SignIn(r.Context(), email, password)
	if err != nil {
		s.logger.WithError(err).WithField("email", email).Info("login failed")
		s.writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	encryptedToken, err := s.cookie.Encode(internal.COOKIE_ACCESS_TOKEN_NAME, session.AccessToken)
	if err != nil {
		s.logger.WithError(err).Error("failed to encrypt access token")
		s.internalServerError(w)
		return
	}

	// Set httpOnly, secure cookie with access token
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_ACCESS_TOKEN_NAME,
		Value:    encryptedToken,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   session.ExpiresIn,
		Path:     "/",
	})

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "logged in"})
}

func (s *Service) handlePostLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_ACCESS_TOKEN_NAME,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func required(v string) bool {
	return strings.TrimSpace(v) != ""
}
