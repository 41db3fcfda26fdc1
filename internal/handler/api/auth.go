// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mileusna/useragent"

	"github.com/olegiv/vsm-cms/internal/i18n"
	"github.com/olegiv/vsm-cms/internal/middleware"
	"github.com/olegiv/vsm-cms/internal/model"
	"github.com/olegiv/vsm-cms/internal/service"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordRequest is the body of POST /api/me/password.
type PasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// clientInfo summarizes the caller for audit metadata.
func clientInfo(r *http.Request) map[string]any {
	ua := useragent.Parse(r.UserAgent())

	device := "desktop"
	switch {
	case ua.Mobile:
		device = "mobile"
	case ua.Tablet:
		device = "tablet"
	case ua.Bot:
		device = "bot"
	}

	info := map[string]any{
		"ip":     middleware.GetClientIP(r),
		"device": device,
	}
	if ua.Name != "" {
		info["browser"] = ua.Name
	}
	if ua.OS != "" {
		info["os"] = ua.OS
	}
	return info
}

// Login signs the workspace in with an organization email.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	email := strings.TrimSpace(req.Email)
	lang := middleware.GetLang(r)
	meta := clientInfo(r)
	meta["email"] = email

	if h.lp != nil && email != "" {
		if locked, remaining := h.lp.IsAccountLocked(email); locked {
			h.logEvent(r, model.EventLevelWarning, "Login attempt on locked account", email, meta)
			middleware.WriteAPIError(w, http.StatusTooManyRequests, "account_locked",
				i18n.T(lang, "error.account_locked", remaining.Round(time.Second).String()), nil)
			return
		}
	}

	user, err := ws.Session.Login(r.Context(), email, req.Password)
	if err != nil {
		if model.IsValidation(err) && h.lp != nil && email != "" {
			if locked, d := h.lp.RecordFailedAttempt(email); locked {
				meta["duration"] = d.String()
				h.logEvent(r, model.EventLevelWarning, "Account locked due to failed login attempts", email, meta)
			}
		}
		h.logEvent(r, model.EventLevelWarning, "Login failed", email, meta)
		h.writeError(w, r, "member", err)
		return
	}

	if h.lp != nil {
		h.lp.RecordSuccessfulLogin(email)
	}
	if h.sessions != nil {
		if err := h.sessions.RenewToken(r.Context()); err != nil {
			slog.Error("session renewal failed", "error", err)
		}
	}

	slog.Info("user logged in", "workspace", ws.ID, "email", user.Email, "role", user.Role)
	h.logEvent(r, model.EventLevelInfo, "User logged in", user.Email, meta)
	WriteSuccess(w, user, nil)
}

// Logout clears the signed-in user and the workspace's collections.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	actor := middleware.GetUserEmail(r)

	if err := ws.Session.Clear(r.Context()); err != nil {
		h.writeError(w, r, "member", err)
		return
	}
	if h.sessions != nil {
		if err := h.sessions.RenewToken(r.Context()); err != nil {
			slog.Error("session renewal failed", "error", err)
		}
	}

	if actor != "" {
		slog.Info("user logged out", "workspace", ws.ID, "email", actor)
		h.logEvent(r, model.EventLevelInfo, "User logged out", actor, nil)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed-in user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, middleware.GetUser(r), nil)
}

// UpdateMe changes the display name and avatar.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	var in service.ProfileInput
	if !decodeJSON(w, r, &in) {
		return
	}
	user, err := ws.Session.UpdateProfile(r.Context(), in)
	if err != nil {
		h.writeError(w, r, "member", err)
		return
	}
	h.record(r, model.EventCategoryAuth, "Profile updated", nil)
	WriteSuccess(w, user, nil)
}

// ChangePassword validates a password change. The current password is not
// checked because credentials are not stored.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	var req PasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		middleware.WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error",
			i18n.T(middleware.GetLang(r), "error.fields_required"), nil)
		return
	}
	if err := ws.Session.ChangePassword(r.Context(), req.NewPassword, req.ConfirmPassword); err != nil {
		h.writeError(w, r, "member", err)
		return
	}
	h.record(r, model.EventCategoryAuth, "Password changed", nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logEvent(r *http.Request, level, message, actor string, metadata map[string]any) {
	if h.events == nil {
		return
	}
	if err := h.events.LogEvent(r.Context(), level, model.EventCategoryAuth, message, actor, metadata); err != nil {
		slog.Debug("failed to record auth event", "error", err)
	}
}
