package main

import (
	"context"
	"fmt"

	"edureg/internal/db"
	"edureg/internal/registration"
	"edureg/internal/storage"
	"edureg/internal/store"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v2"
)

var sessionFlag = &cli.StringFlag{
	Name:     "session",
	Aliases:  []string{"s"},
	Usage:    "Wizard session id",
	Required: true,
}

var finalizeCommand = &cli.Command{
	Name:   "finalize",
	Usage:  "Upload and persist the pending profile staged for a session",
	Flags:  []cli.Flag{sessionFlag},
	Action: finalize,
}

func finalize(cCtx *cli.Context) error {
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

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	finalizer := registration.NewFinalizer(
		logger,
		storage.NewS3Storage(s3.NewFromConfig(awsConfig), config.S3BucketName),
		store.NewInstitutionRepository(pool),
		config.UploadConcurrency,
	)

	profile, err := finalizer.Finalize(ctx, provider.Scope(cCtx.String("session")))
	if err != nil {
		return fmt.Errorf("finalize session: %w", err)
	}

	logger.WithField("account_id", profile.ID).Info("pending profile finalized")

	return nil
}
