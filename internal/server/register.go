package server

import (
	"net/http"
	"strings"

	"edureg/internal/registration"
	"edureg/pkg/types"
)

const confirmMessage = "Email verified. Your institution profile has been submitted for review."

// handlePostRegisterConfirm verifies the account email and materializes the
// staged profile for this wizard session. The email defaults to the one
// staged with the pending profile.
func (s *Service) handlePostRegisterConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	code := strings.TrimSpace(r.FormValue("code"))
	if !required(code) {
		s.writeError(w, http.StatusBadRequest, "confirmation code is required")
		return
	}

	scope, err := s.wizardScope(r)
	if err != nil {
		s.logger.WithError(err).Error("wizard session missing")
		s.internalServerError(w)
		return
	}

	pending, err := registration.Pending(ctx, scope)
	if err != nil {
		s.writeFailure(w, err, "failed to read pending profile")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		email = pending.State.Steps.BasicInfo.Email
	}

	if err := s.accounts.ConfirmAccount(ctx, email, code); err != nil {
		s.logger.WithError(err).WithField("account_id", pending.AccountID).Info("account confirmation failed")
		s.writeFailure(w, err, "failed to confirm account")
		return
	}

	profile, err := s.finalizer.Finalize(ctx, scope)
	if err != nil {
		s.writeFailure(w, err, "failed to finalize institution profile")
		return
	}

	s.writeJSON(w, http.StatusOK, types.ConfirmResponse{Message: confirmMessage, Profile: profile})
}
