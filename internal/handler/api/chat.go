// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/vsm-cms/internal/middleware"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Content string `json:"content"`
}

// ListChat handles GET /api/chat.
func (h *Handler) ListChat(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	writeList(w, ws.Chat.Messages())
}

// SendChat handles POST /api/chat. Messages live only in memory.
func (h *Handler) SendChat(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	var req ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sender := ""
	if u := middleware.GetUser(r); u != nil {
		sender = u.Name
	}
	msg, err := ws.Chat.Send(sender, req.Content)
	if err != nil {
		h.writeError(w, r, "member", err)
		return
	}
	WriteCreated(w, msg)
}
