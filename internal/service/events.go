// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the content stores (session, articles, calendar
// notes, member roster), the chat room, statistics and the activity log on
// top of the key-value store.
package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/olegiv/vsm-cms/internal/model"
	"github.com/olegiv/vsm-cms/internal/store"
)

// KeyEvents is the global activity log key.
const KeyEvents = "vsm_events"

// DefaultEventLimit is the number of events kept when no limit is configured.
const DefaultEventLimit = 500

// EventService provides event logging functionality.
type EventService struct {
	kv    store.Store
	mu    sync.Mutex
	ids   *IDGenerator
	now   func() time.Time
	limit int
}

// NewEventService creates an activity log that keeps the newest limit events.
func NewEventService(kv store.Store, limit int, ids *IDGenerator, now func() time.Time) *EventService {
	if limit <= 0 {
		limit = DefaultEventLimit
	}
	if now == nil {
		now = time.Now
	}
	if ids == nil {
		ids = NewIDGenerator(now)
	}
	return &EventService{kv: kv, ids: ids, now: now, limit: limit}
}

// LogEvent appends an event, dropping the oldest beyond the limit.
func (s *EventService) LogEvent(ctx context.Context, level, category, message, actor string, metadata map[string]any) error {
	ev := model.Event{
		ID:        s.ids.Next(),
		Level:     level,
		Category:  category,
		Message:   message,
		Actor:     actor,
		Metadata:  metadata,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, _, err := store.LoadJSON[[]model.Event](ctx, s.kv, KeyEvents)
	if err != nil {
		// Not slog: the logging handler forwards warnings here.
		return err
	}
	events = append(events, ev)
	if over := len(events) - s.limit; over > 0 {
		events = events[over:]
	}
	return store.SaveJSON(ctx, s.kv, KeyEvents, events)
}

// LogInfo logs an info-level event.
func (s *EventService) LogInfo(ctx context.Context, category, message, actor string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, category, message, actor, metadata)
}

// LogWarning logs a warning-level event.
func (s *EventService) LogWarning(ctx context.Context, category, message, actor string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelWarning, category, message, actor, metadata)
}

// LogError logs an error-level event.
func (s *EventService) LogError(ctx context.Context, category, message, actor string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelError, category, message, actor, metadata)
}

// Record logs an info event and reports a storage failure through slog
// instead of returning it. Handlers use it for audit entries.
func (s *EventService) Record(ctx context.Context, category, message, actor string, metadata map[string]any) {
	if err := s.LogInfo(ctx, category, message, actor, metadata); err != nil {
		slog.Debug("failed to record event", "category", category, "error", err)
	}
}

// List returns up to limit events, newest first. limit <= 0 returns all.
func (s *EventService) List(ctx context.Context, limit int) ([]model.Event, error) {
	s.mu.Lock()
	events, _, err := store.LoadJSON[[]model.Event](ctx, s.kv, KeyEvents)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	slices.Reverse(events)
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}
