// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var testAuthKey = []byte("12345678901234567890123456789012")

func TestDefaultCSRFConfig(t *testing.T) {
	dev := DefaultCSRFConfig(testAuthKey, true)
	if len(dev.AuthKey) != 32 {
		t.Errorf("expected 32-byte AuthKey, got %d bytes", len(dev.AuthKey))
	}
	if len(dev.TrustedOrigins) == 0 {
		t.Error("expected trusted local origins in development")
	}
	for _, origin := range dev.TrustedOrigins {
		// The csrf library expects host:port, not a URL.
		if strings.Contains(origin, "://") || !strings.Contains(origin, ":") {
			t.Errorf("TrustedOrigin %q should be host:port", origin)
		}
	}

	prod := DefaultCSRFConfig(testAuthKey, false)
	if len(prod.TrustedOrigins) != 0 {
		t.Errorf("expected no TrustedOrigins in production, got %v", prod.TrustedOrigins)
	}
}

func TestCSRFHeaderName(t *testing.T) {
	if CSRFHeaderName != "X-CSRF-Token" {
		t.Errorf("CSRFHeaderName = %q, want X-CSRF-Token", CSRFHeaderName)
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCSRF_CrossSiteRejected(t *testing.T) {
	h := CSRF(DefaultCSRFConfig(testAuthKey, false))(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/articles", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	req.Header.Set("Origin", "https://evil.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"code":"csrf"`) {
		t.Errorf("body = %q, want JSON csrf error", rr.Body.String())
	}
}

func TestCSRF_SafeMethodAllowed(t *testing.T) {
	h := CSRF(DefaultCSRFConfig(testAuthKey, false))(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestCSRF_SameOriginAllowed(t *testing.T) {
	h := CSRF(DefaultCSRFConfig(testAuthKey, false))(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/articles", nil)
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestCSRF_CustomErrorHandler(t *testing.T) {
	cfg := DefaultCSRFConfig(testAuthKey, false)
	called := false
	cfg.ErrorHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})
	h := CSRF(cfg)(okHandler())

	req := httptest.NewRequest(http.MethodDelete, "/api/notes/1", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if !called || rr.Code != http.StatusTeapot {
		t.Errorf("custom handler called=%v status=%d, want true 418", called, rr.Code)
	}
}

func TestSkipCSRF(t *testing.T) {
	h := SkipCSRF("/health")(CSRF(DefaultCSRFConfig(testAuthKey, false))(okHandler()))

	tests := []struct {
		path string
		want int
	}{
		{"/health", http.StatusOK},
		{"/api/articles", http.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, tt.path, nil)
		req.Header.Set("Sec-Fetch-Site", "cross-site")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.path, rr.Code, tt.want)
		}
	}
}
