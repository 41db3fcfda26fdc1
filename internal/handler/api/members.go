// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/vsm-cms/internal/model"
	"github.com/olegiv/vsm-cms/internal/service"
)

// MemberListMeta extends Meta with the roster summary.
type MemberListMeta struct {
	Total int                 `json:"total"`
	Stats service.RosterStats `json:"stats"`
}

// ListMembers handles GET /api/members?q=&role=. Stats cover the whole roster.
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	items, err := ws.Roster.List(r.Context())
	if err != nil {
		h.writeError(w, r, "member", err)
		return
	}
	q := r.URL.Query()
	filtered := service.FilterMembers(items, service.MemberQuery{Search: q.Get("q"), Role: q.Get("role")})
	if filtered == nil {
		filtered = []model.User{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"data": filtered,
		"meta": MemberListMeta{Total: len(filtered), Stats: service.SummarizeMembers(items)},
	})
}

// CreateMember handles POST /api/members.
func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	var in model.MemberInput
	if !decodeJSON(w, r, &in) {
		return
	}
	m, err := ws.Roster.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, "member", err)
		return
	}
	h.record(r, model.EventCategoryMember, "Member added", map[string]any{"id": m.ID, "email": m.Email})
	WriteCreated(w, m)
}

// UpdateMember handles PUT /api/members/{id}. An unknown id answers 204.
func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	var in model.MemberInput
	if !decodeJSON(w, r, &in) {
		return
	}
	m, applied, err := ws.Roster.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeError(w, r, "member", err)
		return
	}
	if !applied {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.record(r, model.EventCategoryMember, "Member updated", map[string]any{"id": m.ID, "email": m.Email})
	WriteSuccess(w, m, nil)
}

// DeleteMember handles DELETE /api/members/{id}?confirm=true.
func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	if !confirmed(r) {
		h.writeError(w, r, "member", model.ErrConfirmationRequired)
		return
	}
	id := chi.URLParam(r, "id")
	if err := ws.Roster.Remove(r.Context(), id); err != nil {
		h.writeError(w, r, "member", err)
		return
	}
	h.record(r, model.EventCategoryMember, "Member removed", map[string]any{"id": id})
	w.WriteHeader(http.StatusNoContent)
}
