// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/vsm-cms/internal/calendar"
	"github.com/olegiv/vsm-cms/internal/model"
	"github.com/olegiv/vsm-cms/internal/store"
)

// Notes manages the calendar notes of one workspace.
type Notes struct {
	kv            store.Store
	mu            *sync.Mutex
	ids           *IDGenerator
	announcements AnnouncementSource
}

// NewNotes creates the note store. announcements may be nil.
func NewNotes(kv store.Store, mu *sync.Mutex, ids *IDGenerator, announcements AnnouncementSource) *Notes {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	if announcements == nil {
		announcements = StaticAnnouncements(nil)
	}
	return &Notes{kv: kv, mu: mu, ids: ids, announcements: announcements}
}

func (n *Notes) load(ctx context.Context) ([]model.CalendarNote, error) {
	items, _, err := store.LoadJSON[[]model.CalendarNote](ctx, n.kv, KeyNotes)
	return items, err
}

func (n *Notes) save(ctx context.Context, items []model.CalendarNote) error {
	return store.SaveJSON(ctx, n.kv, KeyNotes, items)
}

// All returns every stored note in stored order.
func (n *Notes) All(ctx context.Context) ([]model.CalendarNote, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.load(ctx)
}

// List returns the user notes on date in stored order.
func (n *Notes) List(ctx context.Context, date string) ([]model.CalendarNote, error) {
	all, err := n.All(ctx)
	if err != nil {
		return nil, err
	}
	return notesOn(all, date), nil
}

func notesOn(all []model.CalendarNote, date string) []model.CalendarNote {
	out := make([]model.CalendarNote, 0)
	for _, note := range all {
		if note.Date == date {
			out = append(out, note)
		}
	}
	return out
}

// ListWithAnnouncements returns the announcements on date followed by the
// user notes on date.
func (n *Notes) ListWithAnnouncements(ctx context.Context, date string) ([]model.CalendarEntry, error) {
	notes, err := n.List(ctx, date)
	if err != nil {
		return nil, err
	}
	return model.MergeDay(n.announcements.ForDate(date), notes), nil
}

// Month lays out the merged entries of a month.
func (n *Notes) Month(ctx context.Context, year int, month time.Month, today time.Time) (calendar.Month, error) {
	all, err := n.All(ctx)
	if err != nil {
		return calendar.Month{}, err
	}
	return calendar.Build(year, month, today, func(date string) []model.CalendarEntry {
		return model.MergeDay(n.announcements.ForDate(date), notesOn(all, date))
	}), nil
}

// Create validates in and appends a new note.
func (n *Notes) Create(ctx context.Context, in model.NoteInput) (model.CalendarNote, error) {
	in = in.Normalized()
	if err := in.Validate(); err != nil {
		return model.CalendarNote{}, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	items, err := n.load(ctx)
	if err != nil {
		return model.CalendarNote{}, err
	}
	note := in.Apply(model.CalendarNote{ID: n.ids.Next()})
	if err := n.save(ctx, append(items, note)); err != nil {
		return model.CalendarNote{}, err
	}
	return note, nil
}

// Update replaces note id in place, keeping its id. An empty date keeps the
// note on its current day. A missing id, including an announcement id, is
// ignored and reports applied=false.
func (n *Notes) Update(ctx context.Context, id string, in model.NoteInput) (model.CalendarNote, bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	items, err := n.load(ctx)
	if err != nil {
		return model.CalendarNote{}, false, err
	}
	i := slices.IndexFunc(items, func(it model.CalendarNote) bool { return it.ID == id })
	if i < 0 {
		return model.CalendarNote{}, false, nil
	}

	if strings.TrimSpace(in.Date) == "" {
		in.Date = items[i].Date
	}
	in = in.Normalized()
	if err := in.Validate(); err != nil {
		return model.CalendarNote{}, false, err
	}

	items[i] = in.Apply(items[i])
	if err := n.save(ctx, items); err != nil {
		return model.CalendarNote{}, false, err
	}
	return items[i], true, nil
}

// Remove deletes note id. Removing a missing id is a no-op.
func (n *Notes) Remove(ctx context.Context, id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	items, err := n.load(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(items, func(it model.CalendarNote) bool { return it.ID == id })
	if i < 0 {
		return nil
	}
	return n.save(ctx, slices.Delete(items, i, i+1))
}
