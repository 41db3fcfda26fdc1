// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for workspace binding,
// authorization, and request context handling.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"

	"github.com/olegiv/vsm-cms/internal/i18n"
	"github.com/olegiv/vsm-cms/internal/model"
	"github.com/olegiv/vsm-cms/internal/service"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request data.
const (
	ContextKeyWorkspace   ContextKey = "workspace"
	ContextKeyUser        ContextKey = "user"
	ContextKeyRequestPath ContextKey = "request_path"
)

// SessionKeyWorkspace is the session key holding the browser's workspace id.
const SessionKeyWorkspace = "workspace_id"

// LoginPath is where unauthenticated clients are sent.
const LoginPath = "/login"

// WorkspaceProvider hands out workspaces by id.
type WorkspaceProvider interface {
	Workspace(id string) *service.Workspace
}

// Workspace binds the browser session to a workspace, creating a new
// workspace id on first visit, and stores the workspace in the context.
func Workspace(sm *scs.SessionManager, hub WorkspaceProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id := sm.GetString(ctx, SessionKeyWorkspace)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
				sm.Put(ctx, SessionKeyWorkspace, id)
				slog.Debug("workspace created", "workspace", id)
			}

			ctx = context.WithValue(ctx, ContextKeyWorkspace, hub.Workspace(id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithWorkspace returns a copy of ctx carrying ws.
func WithWorkspace(ctx context.Context, ws *service.Workspace) context.Context {
	return context.WithValue(ctx, ContextKeyWorkspace, ws)
}

// GetWorkspace retrieves the workspace from the request context.
// Returns nil if no workspace is in context.
func GetWorkspace(r *http.Request) *service.Workspace {
	ws, _ := r.Context().Value(ContextKeyWorkspace).(*service.Workspace)
	return ws
}

// LoadUser loads the signed-in user of the workspace into the context.
// Requests without a user continue anonymously.
func LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws := GetWorkspace(r)
		if ws == nil {
			next.ServeHTTP(w, r)
			return
		}

		user, err := ws.Session.Current(r.Context())
		if err != nil {
			if !errors.Is(err, model.ErrAuthRequired) {
				slog.Error("failed to load session user", "workspace", ws.ID, "error", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUser, *user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(model.User)
	if !ok {
		return nil
	}
	return &user
}

// GetUserEmail returns the current user's email from context, or empty string if not found.
func GetUserEmail(r *http.Request) string {
	if user := GetUser(r); user != nil {
		return user.Email
	}
	return ""
}

// RequireUser rejects requests without a signed-in user with 401 and a
// redirect to the login page.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r) == nil {
			WriteAuthRequired(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests from anyone but an admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r)
		if user == nil {
			WriteAuthRequired(w, r)
			return
		}
		if !user.IsAdmin() {
			slog.Warn("admin route refused", "category", model.EventCategoryAuth,
				"actor", user.Email, "path", r.URL.Path)
			WriteAPIError(w, http.StatusForbidden, "forbidden", i18n.T(GetLang(r), "error.forbidden"), nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WriteAuthRequired writes the 401 response that sends the client to login.
func WriteAuthRequired(w http.ResponseWriter, r *http.Request) {
	WriteAPIErrorBody(w, http.StatusUnauthorized, APIErrorBody{
		Code:     "auth_required",
		Message:  i18n.T(GetLang(r), "error.auth_required"),
		Redirect: LoginPath,
	})
}

// RequestPath creates middleware that stores the request path in the context.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
