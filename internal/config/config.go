package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backend names.
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	Addr    string `env:"TECHFEST_ADDR" envDefault:":8080"`
	Env     string `env:"TECHFEST_ENV" envDefault:"development"`
	Storage string `env:"TECHFEST_STORAGE" envDefault:"sqlite"`
	DBPath  string `env:"TECHFEST_DB_PATH" envDefault:"techfest.db"`
	DataDir string `env:"TECHFEST_DATA_DIR" envDefault:"data"`

	EventName string `env:"TECHFEST_EVENT_NAME" envDefault:"TechFest 2026"`
	// EventInfoPath points at a markdown file describing the event, rendered
	// on the registration page when present.
	EventInfoPath string `env:"TECHFEST_EVENT_INFO"`

	// DeadlineRFC3339 fixes the registration cutoff. When empty the legacy
	// rolling window (start + 7 days, end of day) is used instead.
	DeadlineRFC3339 string `env:"TECHFEST_DEADLINE"`

	CSRFKey            string        `env:"TECHFEST_CSRF_KEY"`
	RateLimitPerSecond int           `env:"TECHFEST_RATE_LIMIT" envDefault:"20"`
	RefreshInterval    time.Duration `env:"TECHFEST_REFRESH_INTERVAL" envDefault:"30s"`

	ResendAPIKey string `env:"TECHFEST_RESEND_API_KEY"`
	EmailFrom    string `env:"TECHFEST_EMAIL_FROM" envDefault:"TechFest <noreply@techfest.example>"`

	// DeadlineAt is the parsed DeadlineRFC3339, nil when unset.
	DeadlineAt *time.Time `env:"-"`
}

// Load parses configuration from the environment.
// POST: Returns a validated Config; DeadlineAt is populated when a fixed
// deadline was configured
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Storage != StorageSQLite && cfg.Storage != StorageFile {
		return Config{}, fmt.Errorf("TECHFEST_STORAGE must be %q or %q, got %q", StorageSQLite, StorageFile, cfg.Storage)
	}
	if cfg.RefreshInterval < time.Second {
		return Config{}, fmt.Errorf("TECHFEST_REFRESH_INTERVAL must be at least 1s, got %s", cfg.RefreshInterval)
	}

	if cfg.DeadlineRFC3339 != "" {
		at, err := time.Parse(time.RFC3339, cfg.DeadlineRFC3339)
		if err != nil {
			return Config{}, fmt.Errorf("TECHFEST_DEADLINE must be RFC3339: %w", err)
		}
		cfg.DeadlineAt = &at
	}
	return cfg, nil
}
