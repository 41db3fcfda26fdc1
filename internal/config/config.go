// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"VSM_DB_PATH" envDefault:"./data/vsm.db"`
	SessionSecret string `env:"VSM_SESSION_SECRET,required"`
	ServerHost    string `env:"VSM_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"VSM_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"VSM_ENV" envDefault:"development"`
	LogLevel      string `env:"VSM_LOG_LEVEL" envDefault:"info"`

	// Storage configuration
	Storage         string `env:"VSM_STORAGE" envDefault:"sqlite"`  // sqlite, redis or memory
	RedisURL        string `env:"VSM_REDIS_URL"`                    // Required when Storage is redis
	RedisPrefix     string `env:"VSM_REDIS_PREFIX" envDefault:"vsm:"`
	StorageFallback bool   `env:"VSM_STORAGE_FALLBACK" envDefault:"true"` // Use memory when Redis is down

	// Organization
	EmailDomain string `env:"VSM_EMAIL_DOMAIN" envDefault:"vsm.org.vn"`
	DefaultLang string `env:"VSM_DEFAULT_LANG" envDefault:"vi"`

	// Demo mode
	DemoMode          bool   `env:"VSM_DEMO_MODE" envDefault:"false"`
	DemoResetSchedule string `env:"VSM_DEMO_RESET_SCHEDULE" envDefault:"0 3 * * *"`

	EventLogLimit int `env:"VSM_EVENT_LOG_LIMIT" envDefault:"500"`

	// Cached workspaces
	MaxWorkspaces        int           `env:"VSM_MAX_WORKSPACES" envDefault:"10000"`
	WorkspaceIdleTimeout time.Duration `env:"VSM_WORKSPACE_IDLE_TIMEOUT" envDefault:"24h"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedis returns true if the Redis backend is selected.
func (c Config) UseRedis() bool {
	return c.Storage == StorageRedis
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("VSM_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// Validate checks values that env tags cannot express.
func (c *Config) Validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("VSM_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}
	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return errors.New("VSM_SESSION_SECRET is a known default value and must not be used")
		}
	}

	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	switch c.Storage {
	case StorageSQLite, StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return errors.New("VSM_REDIS_URL is required when VSM_STORAGE=redis")
		}
	default:
		return fmt.Errorf("VSM_STORAGE %q is not one of sqlite, redis, memory", c.Storage)
	}

	c.EmailDomain = strings.TrimPrefix(strings.TrimSpace(c.EmailDomain), "@")
	if c.EmailDomain == "" {
		return errors.New("VSM_EMAIL_DOMAIN must not be empty")
	}

	if c.DemoMode {
		if _, err := cron.ParseStandard(c.DemoResetSchedule); err != nil {
			return fmt.Errorf("VSM_DEMO_RESET_SCHEDULE: %w", err)
		}
	}

	if c.EventLogLimit <= 0 {
		return fmt.Errorf("VSM_EVENT_LOG_LIMIT must be positive, got %d", c.EventLogLimit)
	}
	if c.MaxWorkspaces <= 0 {
		return fmt.Errorf("VSM_MAX_WORKSPACES must be positive, got %d", c.MaxWorkspaces)
	}
	if c.WorkspaceIdleTimeout <= 0 {
		return fmt.Errorf("VSM_WORKSPACE_IDLE_TIMEOUT must be positive, got %s", c.WorkspaceIdleTimeout)
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
