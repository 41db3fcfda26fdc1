// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// Backend kinds accepted by Open.
const (
	KindSQLite = "sqlite"
	KindRedis  = "redis"
	KindMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Kind string

	// DB is the migrated database for the sqlite backend.
	DB *sql.DB

	RedisURL    string
	RedisPrefix string

	// FallbackToMemory opens a memory store when Redis is unreachable.
	FallbackToMemory bool
}

// Open builds the configured backend. It returns the kind actually opened,
// which differs from opts.Kind after a fallback.
func Open(opts Options) (Store, string, error) {
	switch opts.Kind {
	case KindSQLite, "":
		if opts.DB == nil {
			return nil, "", errors.New("sqlite store requires a database")
		}
		return NewSQLStore(opts.DB), KindSQLite, nil

	case KindRedis:
		ro := DefaultRedisOptions()
		ro.URL = opts.RedisURL
		if opts.RedisPrefix != "" {
			ro.Prefix = opts.RedisPrefix
		}
		rs, err := NewRedisStore(ro)
		if err == nil {
			return rs, KindRedis, nil
		}
		if !opts.FallbackToMemory {
			return nil, "", fmt.Errorf("opening redis store: %w", err)
		}
		slog.Warn("redis storage unavailable, falling back to memory", "error", err)
		return NewMemoryStore(), KindMemory, nil

	case KindMemory:
		return NewMemoryStore(), KindMemory, nil

	default:
		return nil, "", fmt.Errorf("unknown store kind %q", opts.Kind)
	}
}
