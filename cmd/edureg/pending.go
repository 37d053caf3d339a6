package main

import (
	"context"
	"fmt"

	"edureg/internal/registration"
	"edureg/internal/wizard"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

var pendingCommand = &cli.Command{
	Name:   "pending",
	Usage:  "Print the pending profile staged for a session",
	Flags:  []cli.Flag{sessionFlag},
	Action: pending,
}

func pending(cCtx *cli.Context) error {
	ctx := context.Background()

	logger := newLogger()

	config, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	provider, closeStaging, err := newSharedStagingProvider(ctx, logger, config)
	if err != nil {
		return err
	}
	defer closeStaging()

	scope := provider.Scope(cCtx.String("session"))

	payload, err := registration.Pending(ctx, scope)
	if err != nil {
		return fmt.Errorf("read pending profile: %w", err)
	}

	state := wizard.FromFormState(payload.State)

	pp.Println(payload.AccountID, payload.CreatedAt)
	pp.Println(state.Summary())
	for _, step := range state.Summary().Steps {
		pp.Println(wizard.Redact(state.StepData(step.Step)))
	}

	return nil
}
