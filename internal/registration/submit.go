// Package registration creates the institution account from a completed
// wizard and later turns the staged answers into the persisted profile.
package registration

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"edureg/internal/staging"
	"edureg/internal/wizard"
	"edureg/pkg/types"

	"github.com/sirupsen/logrus"
)

const SubmitMessage = "Registration received. Please verify your email to finish setting up your institution profile."

// Identity creates login accounts.
type Identity interface {
	CreateAccount(ctx context.Context, email, secret string, hints types.AccountHints) (string, error)
}

type Submitter struct {
	logger   *logrus.Logger
	identity Identity
	now      func() time.Time
}

func NewSubmitter(logger *logrus.Logger, identity Identity) *Submitter {
	return &Submitter{logger: logger, identity: identity, now: time.Now}
}

// SubmitAll creates the account from the basic information step and stages
// the whole form as a pending profile until the email is verified. Missing
// credentials fail before the identity collaborator is called.
func (s *Submitter) SubmitAll(ctx context.Context, state *wizard.State, store staging.Store) (*types.SubmitResponse, error) {
	basic := wizard.Data[types.BasicInfo](state)
	email := strings.TrimSpace(basic.Email)
	if email == "" || strings.TrimSpace(basic.Password) == "" {
		return nil, types.ErrMissingCredentials
	}

	accountID, err := s.identity.CreateAccount(ctx, email, basic.Password, types.AccountHints{
		Role:        types.RoleInstitution,
		DisplayName: strings.TrimSpace(basic.InstitutionName),
	})
	if err != nil {
		s.logger.WithError(err).WithField("email", email).Error("failed to create institution account")
		return nil, &types.SubmissionError{Message: err.Error(), Err: err}
	}

	pending := types.PendingProfile{
		AccountID: accountID,
		CreatedAt: s.now().UTC(),
		State:     state.FormState(),
	}
	// the secret now lives with the identity provider only
	pending.State.Steps.BasicInfo.Password = ""

	raw, err := json.Marshal(pending)
	if err != nil {
		return nil, fmt.Errorf("failed to encode pending profile: %w", err)
	}
	if err := store.SetItem(ctx, types.StagingKeyPendingProfile, raw); err != nil {
		return nil, &types.SubmissionError{Message: "could not save your registration, please try again", Err: err}
	}

	s.logger.WithField("account_id", accountID).Info("institution account created, profile pending verification")

	return &types.SubmitResponse{Message: SubmitMessage, AccountID: accountID}, nil
}

// Pending reads the staged pending profile.
func Pending(ctx context.Context, store staging.Store) (*types.PendingProfile, error) {
	raw, ok, err := store.GetItem(ctx, types.StagingKeyPendingProfile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.ErrNoPendingProfile
	}

	var pending types.PendingProfile
	if err := json.Unmarshal(raw, &pending); err != nil {
		return nil, fmt.Errorf("failed to decode pending profile: %w", err)
	}
	return &pending, nil
}
