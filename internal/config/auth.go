package config

import (
	"fmt"
	"time"
)

// AuthConfig holds credential and token configuration.
type AuthConfig struct {
	// JWTSecret signs access tokens (HS256).
	JWTSecret string
	// TokenTTL is the lifetime of issued access tokens.
	TokenTTL time.Duration
	// BcryptCost is the bcrypt work factor for password hashes.
	BcryptCost int
	// HashTimeout bounds a single password hash computation.
	HashTimeout time.Duration
	// BotAPIKey authenticates the chat bot against mutating endpoints.
	BotAPIKey string
}

// LoadAuthConfigFromEnv loads auth configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		JWTSecret:   GetEnv("JWT_SECRET", ""),
		TokenTTL:    GetEnvDuration("JWT_TTL", 7*24*time.Hour),
		BcryptCost:  GetEnvInt("AUTH_BCRYPT_COST", 10),
		HashTimeout: GetEnvDuration("AUTH_HASH_TIMEOUT", 5*time.Second),
		BotAPIKey:   GetEnv("BOT_API_KEY", ""),
	}
}

// Validate validates auth configuration.
func (c AuthConfig) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TokenTTL must be greater than 0")
	}
	// bcrypt accepts costs in [4, 31].
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("invalid bcrypt cost: %d (must be between 4 and 31)", c.BcryptCost)
	}
	if c.HashTimeout <= 0 {
		return fmt.Errorf("HashTimeout must be greater than 0")
	}
	return nil
}
