package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/vendosaas/vendo/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting vendo dashboard shell",
		"addr", cfg.HTTP.Addr,
		"session_backend", cfg.SessionBackend,
		"dev", cfg.IsDev,
	)

	services, err := bootstrap.BuildServices(&bootstrap.ServiceDeps{
		Config: &cfg,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	server := bootstrap.NewHTTPServer(&bootstrap.HTTPServerConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})

	return bootstrap.RunServerWithShutdown(server, logger)
}
