package config

import (
	"fmt"
	"time"
)

// HubConfig holds websocket broadcast configuration.
type HubConfig struct {
	// SendBuffer is the per-subscriber outgoing message buffer.
	SendBuffer int
	// WriteTimeout bounds a single websocket write.
	WriteTimeout time.Duration
	// PingInterval is how often idle connections are pinged.
	PingInterval time.Duration
	// AllowedOrigins lists origins accepted on upgrade; "*" accepts any.
	AllowedOrigins []string
}

// LoadHubConfigFromEnv loads websocket hub configuration from environment variables.
func LoadHubConfigFromEnv() HubConfig {
	return HubConfig{
		SendBuffer:     GetEnvInt("WS_SEND_BUFFER", 64),
		WriteTimeout:   GetEnvDuration("WS_WRITE_TIMEOUT", 10*time.Second),
		PingInterval:   GetEnvDuration("WS_PING_INTERVAL", 30*time.Second),
		AllowedOrigins: GetEnvList("WS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// Validate validates hub configuration.
func (c HubConfig) Validate() error {
	if c.SendBuffer <= 0 {
		return fmt.Errorf("SendBuffer must be greater than 0")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("WriteTimeout must be greater than 0")
	}
	if c.PingInterval <= 0 {
		return fmt.Errorf("PingInterval must be greater than 0")
	}
	return nil
}

// AllowsAnyOrigin reports whether every origin is accepted.
func (c HubConfig) AllowsAnyOrigin() bool {
	for _, origin := range c.AllowedOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
