package main

import (
	"fmt"
	"time"

	"wehire/internal/auth"
	"wehire/internal/db"
	"wehire/internal/interview"
	"wehire/internal/jobs"
	"wehire/internal/seed"
	"wehire/internal/store"

	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with demo users and jobs",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger := newLogger(cfg)

		pool, err := db.Connect(c.Context, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logger.Info("connected to database")

		if err := db.Migrate(c.Context, pool, logger); err != nil {
			return err
		}

		st := store.New(pool)
		// Seeding never issues tokens; the secret only has to be non-empty.
		tokens := auth.NewTokens("seed", time.Minute)
		seeder := seed.New(
			st,
			auth.New(st, tokens, logger),
			jobs.New(st, interview.New(st, logger), logger),
			logger,
		)

		if err := seeder.Run(c.Context); err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}

		logger.Info("seed complete")

		return nil
	},
}
