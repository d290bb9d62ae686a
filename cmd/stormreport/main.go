package main

import (
	"log/slog"
	"os"

	"github.com/couchcryptid/storm-impact-report/internal/cli"
	"github.com/couchcryptid/storm-impact-report/internal/config"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	c := cli.New(cli.Options{
		Config: cfg,
		Logger: logger,
		Output: os.Stdout,
	})

	if err := c.Execute(); err != nil {
		logger.Error("report failed", "error", err)
		os.Exit(1)
	}
}
