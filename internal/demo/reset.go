// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package demo resets the shared store of a public demo instance.
package demo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/olegiv/vsm-cms/internal/service"
	"github.com/olegiv/vsm-cms/internal/store"
)

const (
	// KeyLastReset holds the Unix time of the last reset.
	KeyLastReset = "vsm_last_reset"

	// ResetInterval is how often the demo data should be refreshed.
	ResetInterval = 24 * time.Hour

	workspacesPrefix = "ws:"
)

// Workspaces runs fn while no workspace operation is in flight and drops
// the cached workspaces afterwards.
type Workspaces interface {
	Exclusive(fn func() error) error
}

// Resetter wipes every workspace and the activity log.
type Resetter struct {
	kv  store.Store
	hub Workspaces
	now func() time.Time
}

// NewResetter creates a resetter over the unscoped store. hub may be nil.
func NewResetter(kv store.Store, hub Workspaces, now func() time.Time) *Resetter {
	if now == nil {
		now = time.Now
	}
	return &Resetter{kv: kv, hub: hub, now: now}
}

// LastReset returns the time of the last reset, or the zero time.
func (r *Resetter) LastReset(ctx context.Context) (time.Time, error) {
	data, err := r.kv.Get(ctx, KeyLastReset)
	if errors.Is(err, store.ErrNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading reset timestamp: %w", err)
	}
	unixSec, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return time.Time{}, nil
	}
	return time.Unix(unixSec, 0), nil
}

// ResetIfNeeded performs a reset when the last one is older than
// ResetInterval or unknown. This covers instances that were stopped
// over the scheduled time.
func (r *Resetter) ResetIfNeeded(ctx context.Context) (bool, error) {
	last, err := r.LastReset(ctx)
	if err != nil {
		return false, err
	}
	if !last.IsZero() && r.now().Sub(last) < ResetInterval {
		slog.Info("demo reset not needed",
			"last_reset", last.UTC().Format(time.RFC3339),
			"next_reset", last.Add(ResetInterval).UTC().Format(time.RFC3339),
		)
		return false, nil
	}

	slog.Info("demo reset overdue, clearing workspaces")
	return true, r.Reset(ctx)
}

// Reset deletes every workspace collection and the activity log, drops
// cached workspaces and records the reset time. Workspace requests wait
// until the wipe is done.
func (r *Resetter) Reset(ctx context.Context) error {
	wipe := func() error {
		if err := store.Clear(ctx, r.kv, workspacesPrefix); err != nil {
			return fmt.Errorf("clearing workspaces: %w", err)
		}
		if err := r.kv.Delete(ctx, service.KeyEvents); err != nil {
			return fmt.Errorf("clearing activity log: %w", err)
		}
		return nil
	}

	var err error
	if r.hub != nil {
		err = r.hub.Exclusive(wipe)
	} else {
		err = wipe()
	}
	if err != nil {
		return err
	}

	stamp := strconv.FormatInt(r.now().UTC().Unix(), 10)
	if err := r.kv.Set(ctx, KeyLastReset, []byte(stamp)); err != nil {
		return fmt.Errorf("writing reset timestamp: %w", err)
	}

	slog.Info("demo reset complete")
	return nil
}
