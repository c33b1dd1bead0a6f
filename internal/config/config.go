// Package config provides server configuration loaded from the environment.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server holds HTTP server configuration.
	Server ServerConfig
	// Logger holds logger configuration.
	Logger LoggerConfig
	// Auth holds credential and token configuration.
	Auth AuthConfig
	// Hub holds websocket broadcast configuration.
	Hub HubConfig
	// GinMode is the Gin framework mode (debug, release, test).
	GinMode string
}

// Load reads an optional .env file and then loads configuration from the environment.
// Variables already present in the environment win over the file.
func Load() Config {
	_ = godotenv.Load()
	return LoadFromEnv()
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() Config {
	return Config{
		Server:  LoadServerConfigFromEnv(),
		Logger:  LoadLoggerConfigFromEnv(),
		Auth:    LoadAuthConfigFromEnv(),
		Hub:     LoadHubConfigFromEnv(),
		GinMode: GetEnv("GIN_MODE", "release"),
	}
}

// Validate validates all configuration.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger config validation failed: %w", err)
	}

	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth config validation failed: %w", err)
	}

	if err := c.Hub.Validate(); err != nil {
		return fmt.Errorf("hub config validation failed: %w", err)
	}

	validGinModes := map[string]bool{
		"debug":   true,
		"release": true,
		"test":    true,
	}
	if !validGinModes[c.GinMode] {
		return fmt.Errorf("invalid GIN_MODE: %s (must be: debug, release, test)", c.GinMode)
	}

	return nil
}
