package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"edureg/internal/staging"
	"edureg/internal/wizard"
	"edureg/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) wizardScope(r *http.Request) (staging.Store, error) {
	sessionID, err := s.wizardSessionFromContext(r.Context())
	if err != nil {
		return nil, err
	}
	return s.staging.Scope(sessionID), nil
}

// loadWizard restores the session's wizard state. A nil state means the
// response has already been written.
func (s *Service) loadWizard(w http.ResponseWriter, r *http.Request) (*wizard.State, staging.Store) {
	scope, err := s.wizardScope(r)
	if err != nil {
		s.logger.WithError(err).Error("wizard session missing")
		s.internalServerError(w)
		return nil, nil
	}

	state, err := wizard.Load(r.Context(), scope)
	if err != nil {
		s.logger.WithError(err).Error("failed to load wizard state")
		s.internalServerError(w)
		return nil, nil
	}

	return state, scope
}

func (s *Service) saveWizard(w http.ResponseWriter, r *http.Request, scope staging.Store, state *wizard.State) bool {
	if err := wizard.Save(r.Context(), scope, state); err != nil {
		s.logger.WithError(err).Error("failed to save wizard state")
		s.internalServerError(w)
		return false
	}
	return true
}

func stepParam(r *http.Request) (types.StepID, error) {
	n, err := strconv.Atoi(flow.Param(r.Context(), "step"))
	if err != nil || !types.StepID(n).Valid() {
		return 0, fmt.Errorf("%w: %q", types.ErrUnknownStep, flow.Param(r.Context(), "step"))
	}
	return types.StepID(n), nil
}

func (s *Service) handleGetWizard(w http.ResponseWriter, r *http.Request) {
	state, _ := s.loadWizard(w, r)
	if state == nil {
		return
	}

	s.writeJSON(w, http.StatusOK, state.Summary())
}

func (s *Service) handleGetWizardStep(w http.ResponseWriter, r *http.Request) {
	id, err := stepParam(r)
	if err != nil {
		s.writeFailure(w, err, "invalid step")
		return
	}

	state, _ := s.loadWizard(w, r)
	if state == nil {
		return
	}

	view, err := wizard.View(state, id, nil)
	if err != nil {
		s.writeFailure(w, err, "failed to build step view")
		return
	}

	s.writeJSON(w, http.StatusOK, view)
}

func (s *Service) handlePostWizardStep(w http.ResponseWriter, r *http.Request) {
	id, err := stepParam(r)
	if err != nil {
		s.writeFailure(w, err, "invalid step")
		return
	}

	edit, err := s.readEdit(w, r)
	if err != nil {
		s.logger.WithError(err).WithField("step", id).Info("rejected wizard edit")
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, scope := s.loadWizard(w, r)
	if state == nil {
		return
	}

	res, err := wizard.ApplyStepEdit(state, id, edit, s.limits)
	if err != nil {
		s.logger.WithError(err).WithField("step", id).Info("failed to apply wizard edit")
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !s.saveWizard(w, r, scope, state) {
		return
	}

	view, err := wizard.View(state, id, res.Notices)
	if err != nil {
		s.writeFailure(w, err, "failed to build step view")
		return
	}

	s.writeJSON(w, http.StatusOK, view)
}

// readEdit parses an urlencoded or multipart body into a wizard edit. File
// parts become attachments keyed by their form field.
func (s *Service) readEdit(w http.ResponseWriter, r *http.Request) (wizard.Edit, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return wizard.Edit{}, fmt.Errorf("invalid form payload: %w", err)
		}
		return wizard.Edit{Values: r.PostForm}, nil
	}

	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return wizard.Edit{}, fmt.Errorf("upload exceeds %d bytes", tooLarge.Limit)
		}
		return wizard.Edit{}, fmt.Errorf("invalid multipart payload: %w", err)
	}

	edit := wizard.Edit{
		Values: url.Values(r.MultipartForm.Value),
		Files:  make(map[string][]types.Attachment, len(r.MultipartForm.File)),
	}
	for field, headers := range r.MultipartForm.File {
		files := make([]types.Attachment, 0, len(headers))
		for _, fh := range headers {
			a, err := readAttachment(fh)
			if err != nil {
				return wizard.Edit{}, err
			}
			files = append(files, a)
		}
		edit.Files[field] = files
	}

	return edit, nil
}

func readAttachment(fh *multipart.FileHeader) (types.Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return types.Attachment{}, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return types.Attachment{}, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(content)
	}

	return types.Attachment{
		Name:     fh.Filename,
		Size:     fh.Size,
		MimeType: mimeType,
		Content:  content,
	}, nil
}

func (s *Service) handlePostWizardNext(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, s.navigator.Next)
}

func (s *Service) handlePostWizardPrev(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, s.navigator.Prev)
}

func (s *Service) handlePostWizardGoto(w http.ResponseWriter, r *http.Request) {
	target, err := strconv.Atoi(r.URL.Query().Get("step"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "step must be a number")
		return
	}

	s.navigate(w, r, func(state *wizard.State) (types.StepID, error) {
		return s.navigator.Goto(state, target)
	})
}

func (s *Service) navigate(w http.ResponseWriter, r *http.Request, move func(*wizard.State) (types.StepID, error)) {
	state, scope := s.loadWizard(w, r)
	if state == nil {
		return
	}

	if _, err := move(state); err != nil {
		s.writeFailure(w, err, "failed to move wizard step")
		return
	}

	if !s.saveWizard(w, r, scope, state) {
		return
	}

	s.writeJSON(w, http.StatusOK, state.Summary())
}

func (s *Service) handlePostWizardReset(w http.ResponseWriter, r *http.Request) {
	state, scope := s.loadWizard(w, r)
	if state == nil {
		return
	}

	state.Reset()

	if !s.saveWizard(w, r, scope, state) {
		return
	}

	s.writeJSON(w, http.StatusOK, state.Summary())
}

func (s *Service) handlePostWizardSubmit(w http.ResponseWriter, r *http.Request) {
	sessionID, err := s.wizardSessionFromContext(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("wizard session missing")
		s.internalServerError(w)
		return
	}

	if _, busy := s.submitting.LoadOrStore(sessionID, struct{}{}); busy {
		s.writeFailure(w, types.ErrSubmissionInProgress, "submission in progress")
		return
	}
	defer s.submitting.Delete(sessionID)

	state, scope := s.loadWizard(w, r)
	if state == nil {
		return
	}

	if err := s.navigator.CanSubmit(state); err != nil {
		s.writeFailure(w, err, "wizard not ready for submission")
		return
	}

	res, err := s.submitter.SubmitAll(r.Context(), state, scope)
	if err != nil {
		s.writeFailure(w, err, "failed to submit registration")
		return
	}

	s.writeJSON(w, http.StatusAccepted, res)
}
