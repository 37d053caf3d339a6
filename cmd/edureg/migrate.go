package main

import (
	"context"

	"edureg/internal/db"

	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Create the database schema",
	Action: func(cCtx *cli.Context) error {
		ctx := context.Background()

		config, err := loadConfig(cCtx)
		if err != nil {
			return err
		}

		pool, err := db.Connect(ctx, config)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := db.EnsureSchema(ctx, pool); err != nil {
			return err
		}

		newLogger().Info("schema applied")
		return nil
	},
}
