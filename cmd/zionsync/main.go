package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/zion-platform/zion-sync/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	if cfg.IsDev {
		logger = bootstrap.InitDevLogger()
	}

	logger.InfoContext(ctx, "starting zion sync engine",
		"api_base_url", cfg.API.BaseURL,
		"session_store", string(cfg.Session.Store),
		"poll_interval", cfg.Sync.PollInterval.String(),
		"push_enabled", cfg.Push.Enabled)

	engine, err := bootstrap.NewEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := engine.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close engine failed", "error", cerr)
		}
	}()

	return engine.Run(ctx)
}
