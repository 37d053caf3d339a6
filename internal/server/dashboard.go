package server

import (
	"net/http"

	"edureg/pkg/types"
)

func (s *Service) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, err := s.accountIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("account id not found in context")
		s.internalServerError(w)
		return
	}

	profile, err := s.institutions.Institution(ctx, accountID)
	if err != nil {
		s.writeFailure(w, err, "failed to fetch institution for dashboard")
		return
	}

	count, err := s.enrollments.CountByInstitution(ctx, accountID)
	if err != nil {
		s.writeFailure(w, err, "failed to count enrollments")
		return
	}

	s.writeJSON(w, http.StatusOK, types.DashboardResponse{Profile: profile, EnrollmentCount: count})
}

func (s *Service) handleGetEnrollments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, err := s.accountIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("account id not found in context")
		s.internalServerError(w)
		return
	}

	enrollments, err := s.enrollments.ByInstitution(ctx, accountID)
	if err != nil {
		s.writeFailure(w, err, "failed to fetch enrollments")
		return
	}

	s.writeJSON(w, http.StatusOK, enrollments)
}

func (s *Service) handlePostEnrollment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, err := s.accountIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("account id not found in context")
		s.internalServerError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	var enrollment = new(types.Enrollment)
	if err := decoder.Decode(enrollment, r.PostForm); err != nil {
		s.logger.WithError(err).Info("failed to decode enrollment")
		s.writeError(w, http.StatusBadRequest, "invalid enrollment")
		return
	}
	enrollment.InstitutionID = accountID

	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		s.writeFailure(w, err, "failed to create enrollment")
		return
	}

	s.writeJSON(w, http.StatusCreated, enrollment)
}
