// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"slices"
	"testing"

	"github.com/alicebob/miniredis/v2"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates a temporary migrated database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "vsm-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// testMemoryDB opens an in-memory database through the cgo driver.
func testMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func testRedis(t *testing.T) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	opts := DefaultRedisOptions()
	opts.URL = "redis://" + mr.Addr()
	opts.Prefix = "test:"

	rs, err := NewRedisStore(opts)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	t.Cleanup(func() { _ = rs.Close() })
	return rs
}

func backends(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory":        func(t *testing.T) Store { return NewMemoryStore() },
		"sqlite":        func(t *testing.T) Store { return NewSQLStore(testDB(t)) },
		"sqlite-memory": func(t *testing.T) Store { return NewSQLStore(testMemoryDB(t)) },
		"redis":         func(t *testing.T) Store { return testRedis(t) },
		"namespace": func(t *testing.T) Store {
			base := NewMemoryStore()
			_ = base.Set(context.Background(), "other", []byte("x"))
			return Namespace(base, "ws:1:")
		},
	}
}

func TestStoreBasic(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()

			if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
			}

			if err := s.Set(ctx, "vsm_user", []byte(`{"name":"Long"}`)); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			got, err := s.Get(ctx, "vsm_user")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if string(got) != `{"name":"Long"}` {
				t.Errorf("Get = %q", got)
			}

			if err := s.Set(ctx, "vsm_user", []byte(`{}`)); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			got, _ = s.Get(ctx, "vsm_user")
			if string(got) != `{}` {
				t.Errorf("Get after overwrite = %q", got)
			}

			if err := s.Delete(ctx, "vsm_user", "never-existed"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if _, err := s.Get(ctx, "vsm_user"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
			}
			if err := s.Delete(ctx); err != nil {
				t.Errorf("Delete() with no keys error = %v", err)
			}
		})
	}
}

func TestStoreKeysAndClear(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()

			for _, k := range []string{"ws:b:vsm_articles", "ws:a:vsm_user", "ws:a:vsm_articles", "vsm_events"} {
				if err := s.Set(ctx, k, []byte("[]")); err != nil {
					t.Fatalf("Set(%s): %v", k, err)
				}
			}

			keys, err := s.Keys(ctx, "ws:a:")
			if err != nil {
				t.Fatalf("Keys failed: %v", err)
			}
			want := []string{"ws:a:vsm_articles", "ws:a:vsm_user"}
			if !slices.Equal(keys, want) {
				t.Errorf("Keys(ws:a:) = %v, want %v", keys, want)
			}

			if err := Clear(ctx, s, "ws:a:"); err != nil {
				t.Fatalf("Clear failed: %v", err)
			}
			all, _ := s.Keys(ctx, "")
			want = []string{"vsm_events", "ws:b:vsm_articles"}
			if !slices.Equal(all, want) {
				t.Errorf("Keys after Clear = %v, want %v", all, want)
			}
		})
	}
}

func TestStoreClosed(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Close()
	if err := s.Set(context.Background(), "k", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close error = %v, want ErrClosed", err)
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	val := []byte("abc")
	_ = s.Set(ctx, "k", val)
	val[0] = 'x'

	got, _ := s.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value mutated through input slice: %q", got)
	}
	got[0] = 'y'
	again, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}

func TestNamespaceIsolation(t *testing.T) {
	base := NewMemoryStore()
	ctx := context.Background()
	a := Namespace(base, "ws:a:")
	b := Namespace(base, "ws:b:")

	_ = a.Set(ctx, "vsm_user", []byte("a"))
	if _, err := b.Get(ctx, "vsm_user"); !errors.Is(err, ErrNotFound) {
		t.Errorf("namespace b sees a's key: %v", err)
	}
	if _, err := base.Get(ctx, "ws:a:vsm_user"); err != nil {
		t.Errorf("base key missing: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := base.Get(ctx, "ws:a:vsm_user"); err != nil {
		t.Errorf("closing a namespace closed the base: %v", err)
	}
}

func TestJSONHelpers(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	type rec struct {
		ID string `json:"id"`
	}

	got, found, err := LoadJSON[[]rec](ctx, s, "vsm_articles")
	if err != nil || found || got != nil {
		t.Fatalf("LoadJSON(absent) = %v, %v, %v", got, found, err)
	}

	if err := SaveJSON(ctx, s, "vsm_articles", []rec{{ID: "1"}, {ID: "2"}}); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	got, found, err = LoadJSON[[]rec](ctx, s, "vsm_articles")
	if err != nil || !found {
		t.Fatalf("LoadJSON = %v, %v", found, err)
	}
	if len(got) != 2 || got[1].ID != "2" {
		t.Errorf("LoadJSON = %v", got)
	}

	_ = s.Set(ctx, "broken", []byte("{"))
	if _, _, err := LoadJSON[[]rec](ctx, s, "broken"); err == nil {
		t.Error("LoadJSON(broken) error = nil")
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantKind string
		wantErr  bool
	}{
		{"memory", Options{Kind: KindMemory}, KindMemory, false},
		{"sqlite without db", Options{Kind: KindSQLite}, "", true},
		{"unknown", Options{Kind: "etcd"}, "", true},
		{"redis unreachable with fallback", Options{Kind: KindRedis, RedisURL: "redis://127.0.0.1:1/0", FallbackToMemory: true}, KindMemory, false},
		{"redis unreachable", Options{Kind: KindRedis, RedisURL: "redis://127.0.0.1:1/0"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, kind, err := Open(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Open() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer func() { _ = s.Close() }()
			if kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", kind, tt.wantKind)
			}
		})
	}

	t.Run("sqlite", func(t *testing.T) {
		s, kind, err := Open(Options{Kind: KindSQLite, DB: testDB(t)})
		if err != nil || kind != KindSQLite {
			t.Fatalf("Open() = %q, %v", kind, err)
		}
		if _, ok := s.(*SQLStore); !ok {
			t.Errorf("Open() returned %T", s)
		}
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		s, kind, err := Open(Options{Kind: KindRedis, RedisURL: "redis://" + mr.Addr()})
		if err != nil || kind != KindRedis {
			t.Fatalf("Open() = %q, %v", kind, err)
		}
		defer func() { _ = s.Close() }()
		_ = s.Set(context.Background(), "k", []byte("v"))
		if !mr.Exists("vsm:k") {
			t.Error("default prefix not applied")
		}
	})
}

func TestDSN(t *testing.T) {
	tests := []struct {
		path    string
		pragmas []string
		want    string
	}{
		{"./data/vsm.db", nil, "./data/vsm.db"},
		{"./data/vsm.db", []string{"busy_timeout(5000)"}, "./data/vsm.db?_pragma=busy_timeout(5000)"},
		{"file:vsm.db?mode=rwc", []string{"journal_mode(WAL)", "synchronous(NORMAL)"},
			"file:vsm.db?mode=rwc&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"},
	}
	for _, tt := range tests {
		if got := dsn(tt.path, tt.pragmas); got != tt.want {
			t.Errorf("dsn(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNewDBAppliesPragmas(t *testing.T) {
	db := testDB(t)

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("reading journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	// Migrating twice is a no-op.
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}
