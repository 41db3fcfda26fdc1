// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON API over the workspace stores.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/vsm-cms/internal/i18n"
	"github.com/olegiv/vsm-cms/internal/middleware"
	"github.com/olegiv/vsm-cms/internal/model"
	"github.com/olegiv/vsm-cms/internal/service"
	"github.com/olegiv/vsm-cms/internal/store"
	"github.com/olegiv/vsm-cms/internal/version"
)

// maxBodyBytes caps request bodies. Article content is HTML and can be large.
const maxBodyBytes = 1 << 20

// Config holds the dependencies of the API handlers.
type Config struct {
	Store           store.Store
	Events          *service.EventService
	Sessions        *scs.SessionManager
	LoginProtection *middleware.LoginProtection
	Jobs            JobRunner
	// Workspaces binds the request to its workspace. Routes that need no
	// workspace skip it.
	Workspaces      func(http.Handler) http.Handler
	EmailDomain     string
	Version         version.Info
	Now             func() time.Time
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	store       store.Store
	events      *service.EventService
	sessions    *scs.SessionManager
	lp          *middleware.LoginProtection
	jobs        JobRunner
	bind        func(http.Handler) http.Handler
	emailDomain string
	version     version.Info
	now         func() time.Time
	startTime   time.Time
}

// NewHandler creates a new API handler.
func NewHandler(cfg Config) *Handler {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Handler{
		store:       cfg.Store,
		events:      cfg.Events,
		sessions:    cfg.Sessions,
		lp:          cfg.LoginProtection,
		jobs:        cfg.Jobs,
		bind:        cfg.Workspaces,
		emailDomain: cfg.EmailDomain,
		version:     cfg.Version,
		now:         cfg.Now,
		startTime:   cfg.Now(),
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries list metadata.
type Meta struct {
	Total int `json:"total"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// writeList writes items with their count.
func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	WriteSuccess(w, items, &Meta{Total: len(items)})
}

// writeError maps a service error to its HTTP response. entity names the
// record kind for not-found messages.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, entity string, err error) {
	lang := middleware.GetLang(r)

	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error",
			i18n.T(lang, "error.validation"), h.translateFields(lang, verr))
	case errors.Is(err, model.ErrAuthRequired):
		middleware.WriteAuthRequired(w, r)
	case errors.Is(err, model.ErrNotFound):
		middleware.WriteAPIError(w, http.StatusNotFound, "not_found",
			i18n.T(lang, "error.not_found", i18n.T(lang, "entity."+entity)), nil)
	case errors.Is(err, model.ErrCannotDeleteSelf):
		middleware.WriteAPIError(w, http.StatusForbidden, "cannot_delete_self",
			i18n.T(lang, "error.cannot_delete_self"), nil)
	case errors.Is(err, model.ErrForbidden):
		middleware.WriteAPIError(w, http.StatusForbidden, "forbidden",
			i18n.T(lang, "error.forbidden"), nil)
	case errors.Is(err, model.ErrConfirmationRequired):
		middleware.WriteAPIError(w, http.StatusConflict, "confirmation_required",
			i18n.T(lang, "error.confirmation_required"), nil)
	default:
		slog.Error("api request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, "internal_error",
			i18n.T(lang, "error.internal"), nil)
	}
}

func (h *Handler) translateFields(lang string, verr *model.ValidationError) map[string]string {
	out := make(map[string]string, len(verr.Fields))
	for field, key := range verr.Fields {
		if key == model.MsgEmailDomain {
			out[field] = i18n.T(lang, key, h.emailDomain)
			continue
		}
		out[field] = i18n.T(lang, key)
	}
	return out
}

// decodeJSON reads the request body into dst. It writes a 400 and returns
// false on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		middleware.WriteAPIError(w, http.StatusBadRequest, "bad_request",
			i18n.T(middleware.GetLang(r), "error.invalid_json"), nil)
		return false
	}
	return true
}

// workspace returns the request's workspace or writes a 500.
func workspace(w http.ResponseWriter, r *http.Request) (*service.Workspace, bool) {
	ws := middleware.GetWorkspace(r)
	if ws == nil {
		slog.Error("workspace missing from request context", "path", r.URL.Path)
		middleware.WriteAPIError(w, http.StatusInternalServerError, "internal_error",
			i18n.T(middleware.GetLang(r), "error.internal"), nil)
		return nil, false
	}
	return ws, true
}

// confirmed reports whether a destructive request carries confirm=true.
func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}

// intParam parses an integer query or path value. An empty value yields def.
func intParam(w http.ResponseWriter, r *http.Request, name, raw string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		middleware.WriteAPIError(w, http.StatusBadRequest, "bad_request",
			i18n.T(middleware.GetLang(r), "error.invalid_param", name), nil)
		return 0, false
	}
	return n, true
}

// record writes an audit event for the request's user.
func (h *Handler) record(r *http.Request, category, message string, metadata map[string]any) {
	if h.events == nil {
		return
	}
	h.events.Record(r.Context(), category, message, middleware.GetUserEmail(r), metadata)
}
