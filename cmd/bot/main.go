// Package main runs the chat bot that drives the tournament API.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/festy23/tournament_platform/internal/bot/apiclient"
	"github.com/festy23/tournament_platform/internal/bot/commands"
	botConfig "github.com/festy23/tournament_platform/internal/bot/config"
	"github.com/festy23/tournament_platform/internal/bot/telegram"
	"github.com/festy23/tournament_platform/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := botConfig.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sugar, err := logger.New()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()
	sugar = sugar.Named("bot")

	api := apiclient.New(cfg.APIBaseURL, cfg.BotAPIKey, cfg.RequestTimeout, sugar.Named("api"))
	commander := commands.New(api, cfg.CommandPrefix, cfg.Cooldown, sugar)
	poller := telegram.NewPoller(
		telegram.NewClient(cfg.TelegramBaseURL, cfg.TelegramToken, cfg.PollTimeout),
		commander,
		cfg.PollTimeout,
		sugar.Named("telegram"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return poller.Run(gctx)
	})

	sugar.Infow("bot started", "api_base_url", cfg.APIBaseURL, "prefix", cfg.CommandPrefix)
	if err := g.Wait(); err != nil {
		sugar.Fatalw("bot stopped with error", "error", err)
	}
	sugar.Infow("bot stopped")
}
