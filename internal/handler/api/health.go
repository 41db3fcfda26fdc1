// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/olegiv/vsm-cms/internal/store"
)

// healthProbeKey is read to check that the store answers.
const healthProbeKey = "vsm_health_probe"

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

// Check is a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /health. A failing store answers 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	storeCheck := h.checkStore(r.Context())

	status := HealthStatus{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Uptime:    h.now().Sub(h.startTime).Round(time.Second).String(),
		Version:   h.version.String(),
		Checks:    map[string]Check{"store": storeCheck},
	}

	code := http.StatusOK
	if storeCheck.Status != "healthy" {
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	}
	WriteJSON(w, code, status)
}

func (h *Handler) checkStore(ctx context.Context) Check {
	if h.store == nil {
		return Check{Status: "unhealthy", Message: "store not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	_, err := h.store.Get(ctx, healthProbeKey)
	latency := time.Since(start)

	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return Check{Status: "unhealthy", Message: "store unreachable", Latency: latency.String()}
	}
	return Check{Status: "healthy", Latency: latency.String()}
}
