// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/vsm-cms/internal/calendar"
	"github.com/olegiv/vsm-cms/internal/i18n"
	"github.com/olegiv/vsm-cms/internal/model"
	"github.com/olegiv/vsm-cms/internal/service"
)

// DefaultEventsLimit is the page size of GET /api/events.
const DefaultEventsLimit = 50

// MetaResponse lists the fixed option sets clients build forms from.
type MetaResponse struct {
	Categories  []string          `json:"categories"`
	NoteColors  []model.NoteColor `json:"noteColors"`
	Roles       []string          `json:"roles"`
	Statuses    []string          `json:"statuses"`
	Weekdays    []string          `json:"weekdays"`
	Languages   []string          `json:"languages"`
	EmailDomain string            `json:"emailDomain"`
}

// Meta handles GET /api/meta.
func (h *Handler) Meta(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, MetaResponse{
		Categories:  model.Categories,
		NoteColors:  model.NoteColors,
		Roles:       []string{model.RoleAdmin, model.RoleCollaborator},
		Statuses:    []string{model.StatusActive, model.StatusInactive},
		Weekdays:    calendar.Weekdays,
		Languages:   i18n.SupportedLanguages,
		EmailDomain: h.emailDomain,
	}, nil)
}

// Statistics handles GET /api/statistics?year=. The year defaults to the
// current one.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	year, ok := intParam(w, r, "year", r.URL.Query().Get("year"), h.now().Year())
	if !ok {
		return
	}
	items, err := ws.Articles.List(r.Context())
	if err != nil {
		h.writeError(w, r, "article", err)
		return
	}
	WriteSuccess(w, service.ComputeStatistics(items, year), nil)
}

// ListEvents handles GET /api/events?limit=.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(w, r, "limit", r.URL.Query().Get("limit"), DefaultEventsLimit)
	if !ok {
		return
	}
	if h.events == nil {
		writeList(w, []model.Event{})
		return
	}
	events, err := h.events.List(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, "event", err)
		return
	}
	writeList(w, events)
}
