// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/vsm-cms/internal/i18n"
	"github.com/olegiv/vsm-cms/internal/middleware"
	"github.com/olegiv/vsm-cms/internal/model"
	"github.com/olegiv/vsm-cms/internal/scheduler"
)

// JobRunner lists and triggers scheduled jobs.
type JobRunner interface {
	Jobs() []scheduler.JobInfo
	Trigger(name string) error
}

// ListJobs handles GET /api/jobs.
func (h *Handler) ListJobs(w http.ResponseWriter, _ *http.Request) {
	if h.jobs == nil {
		writeList(w, []scheduler.JobInfo{})
		return
	}
	writeList(w, h.jobs.Jobs())
}

// RunJob handles POST /api/jobs/{name}/run.
func (h *Handler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	lang := middleware.GetLang(r)

	if h.jobs == nil {
		middleware.WriteAPIError(w, http.StatusNotFound, "not_found", i18n.T(lang, "error.not_found", name), nil)
		return
	}
	if err := h.jobs.Trigger(name); err != nil {
		if errors.Is(err, scheduler.ErrJobNotFound) {
			middleware.WriteAPIError(w, http.StatusNotFound, "not_found", i18n.T(lang, "error.not_found", name), nil)
			return
		}
		slog.Error("manual job run failed", "job", name, "error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, "internal_error", i18n.T(lang, "error.internal"), nil)
		return
	}

	h.record(r, model.EventCategorySystem, "Job triggered manually", map[string]any{"job": name})
	w.WriteHeader(http.StatusNoContent)
}
