// Package config loads application configuration from environment
// variables. The portal and CAS origins are deliberately absent: they
// are compile-time constants of the portal package, not inputs.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Portal  PortalConfig
	Logging LogConfig
}

// ServerConfig holds the local command surface configuration.
type ServerConfig struct {
	Port string `envconfig:"SISGATE_PORT" default:"8600"`
	// Loopback only by default: the surface carries credentials.
	Host    string   `envconfig:"SISGATE_HOST" default:"127.0.0.1"`
	Origins []string `envconfig:"SISGATE_ORIGINS" default:"tauri://localhost,http://localhost:1420"`
}

// PortalConfig holds outbound HTTP behavior toward the provider.
type PortalConfig struct {
	// DataDir overrides the session/settings location. Empty means
	// the per-user config directory.
	DataDir           string        `envconfig:"SISGATE_DATA_DIR" default:""`
	HTTPTimeout       time.Duration `envconfig:"SISGATE_HTTP_TIMEOUT" default:"30s"`
	RequestsPerSecond float64       `envconfig:"SISGATE_RPS" default:"4"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    "8600",
			Host:    "127.0.0.1",
			Origins: []string{"tauri://localhost", "http://localhost:1420"},
		},
		Portal: PortalConfig{
			HTTPTimeout:       30 * time.Second,
			RequestsPerSecond: 4,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
