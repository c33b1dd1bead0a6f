// Package config loads chat bot configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls the chat bot.
type Config struct {
	APIBaseURL      string        `env:"API_BASE_URL"         envDefault:"http://localhost:3001"`
	BotAPIKey       string        `env:"BOT_API_KEY"`
	TelegramToken   string        `env:"TELEGRAM_TOKEN"`
	TelegramBaseURL string        `env:"TELEGRAM_BASE_URL"    envDefault:"https://api.telegram.org"`
	PollTimeout     time.Duration `env:"TELEGRAM_POLL_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"BOT_REQUEST_TIMEOUT"  envDefault:"10s"`
	CommandPrefix   string        `env:"BOT_COMMAND_PREFIX"   envDefault:"cf!"`
	Cooldown        time.Duration `env:"BOT_COMMAND_COOLDOWN" envDefault:"5s"`
}

// Load parses the bot configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse bot config: %w", err)
	}
	return cfg, nil
}

// Validate validates the bot configuration.
func (c Config) Validate() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN must be set")
	}
	if c.BotAPIKey == "" {
		return errors.New("BOT_API_KEY must be set")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q", c.APIBaseURL)
	}
	if strings.TrimSpace(c.CommandPrefix) == "" {
		return errors.New("command prefix cannot be empty")
	}
	if c.PollTimeout <= 0 || c.RequestTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	if c.Cooldown < 0 {
		return errors.New("cooldown cannot be negative")
	}
	return nil
}
