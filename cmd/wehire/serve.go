package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wehire/internal/auth"
	"wehire/internal/candidates"
	"wehire/internal/db"
	"wehire/internal/interview"
	"wehire/internal/jobs"
	"wehire/internal/server"
	"wehire/internal/store"

	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Start the HTTP server",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "migrate",
			Usage: "Apply pending migrations before serving",
		},
	},
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig(cCtx)
	if err != nil {
		return err
	}
	if config.JWTSecret == "" {
		return fmt.Errorf("set %s_JWT_SECRET", cCtx.String("env-prefix"))
	}

	logger := newLogger(config)

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cCtx.Bool("migrate") {
		if err := db.Migrate(ctx, pool, logger); err != nil {
			return err
		}
	}

	st := store.New(pool)
	tokens := auth.NewTokens(config.JWTSecret, time.Duration(config.TokenTTLMin)*time.Minute)

	interviewService := interview.New(st, logger)
	srv := server.New(
		config,
		logger,
		auth.New(st, tokens, logger),
		jobs.New(st, interviewService, logger),
		interviewService,
		candidates.New(st, logger),
	)

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
