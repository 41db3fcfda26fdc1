// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/vsm-cms/internal/i18n"
	"github.com/olegiv/vsm-cms/internal/middleware"
	"github.com/olegiv/vsm-cms/internal/model"
)

// ListNotes handles GET /api/notes?date=YYYY-MM-DD. Without a date it
// returns every stored note; with one it returns the merged day view.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		notes, err := ws.Notes.All(r.Context())
		if err != nil {
			h.writeError(w, r, "note", err)
			return
		}
		writeList(w, notes)
		return
	}
	if !model.ValidDate(date) {
		middleware.WriteAPIError(w, http.StatusBadRequest, "bad_request",
			i18n.T(middleware.GetLang(r), "error.invalid_param", "date"), nil)
		return
	}

	entries, err := ws.Notes.ListWithAnnouncements(r.Context(), date)
	if err != nil {
		h.writeError(w, r, "note", err)
		return
	}
	writeList(w, entries)
}

// CalendarMonth handles GET /api/calendar/{year}/{month}.
func (h *Handler) CalendarMonth(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	year, ok := intParam(w, r, "year", chi.URLParam(r, "year"), 0)
	if !ok {
		return
	}
	month, ok := intParam(w, r, "month", chi.URLParam(r, "month"), 0)
	if !ok {
		return
	}
	if year < 1 || year > 9999 || month < 1 || month > 12 {
		middleware.WriteAPIError(w, http.StatusBadRequest, "bad_request",
			i18n.T(middleware.GetLang(r), "error.invalid_param", "month"), nil)
		return
	}

	grid, err := ws.Notes.Month(r.Context(), year, time.Month(month), h.now())
	if err != nil {
		h.writeError(w, r, "note", err)
		return
	}
	WriteSuccess(w, grid, nil)
}

// CreateNote handles POST /api/notes.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	var in model.NoteInput
	if !decodeJSON(w, r, &in) {
		return
	}
	note, err := ws.Notes.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, "note", err)
		return
	}
	h.record(r, model.EventCategoryNote, "Calendar note created", map[string]any{"id": note.ID, "date": note.Date})
	WriteCreated(w, note)
}

// UpdateNote handles PUT /api/notes/{id}. Unknown ids, announcements
// included, answer 204 and change nothing.
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	var in model.NoteInput
	if !decodeJSON(w, r, &in) {
		return
	}
	note, applied, err := ws.Notes.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeError(w, r, "note", err)
		return
	}
	if !applied {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.record(r, model.EventCategoryNote, "Calendar note updated", map[string]any{"id": note.ID, "date": note.Date})
	WriteSuccess(w, note, nil)
}

// DeleteNote handles DELETE /api/notes/{id}?confirm=true.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	if !confirmed(r) {
		h.writeError(w, r, "note", model.ErrConfirmationRequired)
		return
	}
	id := chi.URLParam(r, "id")
	if err := ws.Notes.Remove(r.Context(), id); err != nil {
		h.writeError(w, r, "note", err)
		return
	}
	h.record(r, model.EventCategoryNote, "Calendar note deleted", map[string]any{"id": id})
	w.WriteHeader(http.StatusNoContent)
}
