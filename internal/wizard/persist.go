package wizard

import (
	"context"
	"encoding/json"
	"fmt"

	"edureg/internal/staging"
	"edureg/pkg/types"
)

// Load restores the session's in-progress answers, or returns a fresh state
// when nothing is staged.
func Load(ctx context.Context, store staging.Store) (*State, error) {
	raw, ok, err := store.GetItem(ctx, types.StagingKeyWizardState)
	if err != nil {
		return nil, err
	}
	if !ok {
		return New(), nil
	}

	var fs types.FormState
	if err := json.Unmarshal(raw, &fs); err != nil {
		return nil, fmt.Errorf("failed to decode staged wizard state: %w", err)
	}
	return FromFormState(fs), nil
}

func Save(ctx context.Context, store staging.Store, s *State) error {
	raw, err := json.Marshal(s.FormState())
	if err != nil {
		return fmt.Errorf("failed to encode wizard state: %w", err)
	}
	return store.SetItem(ctx, types.StagingKeyWizardState, raw)
}

func Clear(ctx context.Context, store staging.Store) error {
	return store.RemoveItem(ctx, types.StagingKeyWizardState)
}
