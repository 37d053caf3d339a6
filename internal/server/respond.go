package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"edureg/internal/identity"
	"edureg/pkg/types"
)

func (s *Service) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Service) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, types.ErrorResponse{Error: msg})
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	s.writeError(w, http.StatusInternalServerError, "internal server error")
}

// writeFailure maps known errors onto a status and their message. Anything
// else is logged and reported as an internal error.
func (s *Service) writeFailure(w http.ResponseWriter, err error, msg string) {
	var subErr *types.SubmissionError
	var idErr *identity.Error

	switch {
	case errors.Is(err, types.ErrUnknownStep):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, types.ErrNoPendingProfile), errors.Is(err, types.ErrInstitutionNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, types.ErrSubmissionInProgress), errors.Is(err, types.ErrDuplicateEnrollment):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, types.ErrMissingCredentials),
		errors.Is(err, types.ErrStepIncomplete),
		errors.Is(err, types.ErrFormIncomplete),
		errors.Is(err, types.ErrSelfEnrollment),
		errors.Is(err, types.ErrInvalidEnrollment):
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &subErr):
		s.logger.WithError(err).Error(msg)
		status := http.StatusBadGateway
		if errors.As(err, &idErr) {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, subErr.Error())
	case errors.As(err, &idErr):
		s.writeError(w, http.StatusBadRequest, idErr.Message)
	default:
		s.logger.WithError(err).Error(msg)
		s.internalServerError(w)
	}
}
