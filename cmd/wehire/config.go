package main

import (
	"errors"
	"fmt"
	"io/fs"

	"wehire/pkg/types"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func loadConfig(cCtx *cli.Context) (*types.Config, error) {
	if err := godotenv.Load(cCtx.String("env-file")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	c := new(types.Config)
	prefix := cCtx.String("env-prefix")
	if err := envconfig.Process(prefix, c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("set %s_DATABASE_URL", prefix)
	}

	if c.ServerPort == 0 {
		c.ServerPort = 8080
	}

	return c, nil
}

func newLogger(config *types.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		logger.WithError(err).Warn("invalid log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
