package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/envisionar/portal/internal/app"
	"github.com/envisionar/portal/internal/config"
	"github.com/envisionar/portal/internal/logging"
	"github.com/envisionar/portal/internal/server"
)

func main() {
	cfg := config.New()
	logging.New() // Initialize the structured logger

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := server.ShutdownContext(context.Background())
	defer stop()

	deps, err := app.Build(ctx, cfg)
	if err != nil {
		slog.Error("Failed to build application", "error", err)
		os.Exit(1)
	}

	s := server.New(deps)
	s.RegisterRoutes()
	if err := s.Start(ctx, cfg.GetAppAddr()); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
