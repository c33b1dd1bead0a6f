// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/festy23/tournament_platform/internal/app"
	"github.com/festy23/tournament_platform/internal/config"
	"github.com/festy23/tournament_platform/pkg/logger"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	gin.SetMode(cfg.GinMode)

	srv, err := app.NewServer(cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to build server", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		sugar.Fatalw("server stopped with error", "error", err)
	}
	sugar.Infow("server stopped")
}
