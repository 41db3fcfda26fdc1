// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/vsm-cms/internal/auth"
	"github.com/olegiv/vsm-cms/internal/config"
	"github.com/olegiv/vsm-cms/internal/demo"
	"github.com/olegiv/vsm-cms/internal/handler/api"
	"github.com/olegiv/vsm-cms/internal/i18n"
	"github.com/olegiv/vsm-cms/internal/logging"
	"github.com/olegiv/vsm-cms/internal/middleware"
	"github.com/olegiv/vsm-cms/internal/scheduler"
	"github.com/olegiv/vsm-cms/internal/service"
	"github.com/olegiv/vsm-cms/internal/session"
	"github.com/olegiv/vsm-cms/internal/store"
	"github.com/olegiv/vsm-cms/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

const (
	demoResetJob      = "demo-reset"
	workspaceSweepJob = "workspace-sweep"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "VSM CMS - content and calendar API for the VSM collaborator team\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VSM_SESSION_SECRET       Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VSM_DB_PATH              SQLite database path (default: ./data/vsm.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VSM_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VSM_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VSM_STORAGE              Storage backend: sqlite|redis|memory (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VSM_REDIS_URL            Redis URL when VSM_STORAGE=redis\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VSM_EMAIL_DOMAIN         Organization email domain (default: vsm.org.vn)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VSM_DEMO_MODE            Wipe workspaces on a schedule (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
	if *showVersion {
		_, _ = fmt.Printf("vsm %s\n", versionInfo)
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func run(versionInfo version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLevel(cfg.LogLevel)
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(textHandler)
	slog.SetDefault(logger)

	if err := i18n.Init(logger, cfg.DefaultLang); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	// The database backs sessions and, for the sqlite backend, the store.
	var db *sql.DB
	if cfg.Storage != config.StorageMemory {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		slog.Info("initializing database", "path", cfg.DBPath)
		db, err = store.NewDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("initializing database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("error closing database connection", "error", err)
			}
		}()
		if err := store.Migrate(db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database ready")
	}

	kv, kind, err := store.Open(store.Options{
		Kind:             cfg.Storage,
		DB:               db,
		RedisURL:         cfg.RedisURL,
		RedisPrefix:      cfg.RedisPrefix,
		FallbackToMemory: cfg.StorageFallback,
	})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			slog.Error("error closing store", "error", err)
		}
	}()
	if kind != cfg.Storage {
		slog.Warn("storage fallback active", "configured", cfg.Storage, "backend", kind)
	} else {
		slog.Info("storage ready", "backend", kind)
	}

	// Warnings and errors also land in the activity log.
	events := service.NewEventService(kv, cfg.EventLogLimit, nil, nil)
	logger = slog.New(logging.NewEventLogHandler(textHandler, events))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	hub := service.NewHub(kv, service.Options{
		Policy:        auth.NewPolicy(cfg.EmailDomain),
		MaxWorkspaces: cfg.MaxWorkspaces,
		IdleTimeout:   cfg.WorkspaceIdleTimeout,
	})

	sessionManager := session.New(db, cfg.IsDevelopment())

	sched := scheduler.New(logger)
	if cfg.DemoMode {
		resetter := demo.NewResetter(kv, hub, nil)
		if _, err := resetter.ResetIfNeeded(context.Background()); err != nil {
			slog.Error("demo reset at startup failed", "error", err)
		}
		if err := sched.AddJob(demoResetJob, cfg.DemoResetSchedule, resetter.Reset); err != nil {
			return fmt.Errorf("scheduling demo reset: %w", err)
		}
		slog.Info("demo mode enabled", "schedule", cfg.DemoResetSchedule)
	}
	if err := sched.AddJob(workspaceSweepJob, "@hourly", func(context.Context) error {
		if n := hub.Sweep(); n > 0 {
			slog.Info("idle workspaces dropped", "count", n)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("scheduling workspace sweep: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Stop()
	slog.Info("login protection initialized",
		"ip_rate_limit", "0.5 req/s",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	apiHandler := api.NewHandler(api.Config{
		Store:           kv,
		Events:          events,
		Sessions:        sessionManager,
		LoginProtection: loginProtection,
		Jobs:            sched,
		Workspaces:      middleware.Workspace(sessionManager, hub),
		EmailDomain:     cfg.EmailDomain,
		Version:         versionInfo,
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.RequestPath)
	r.Use(middleware.Language)
	r.Use(middleware.RateLimit(10, 20))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))

	apiHandler.Routes(r)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
