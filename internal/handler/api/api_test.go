// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/olegiv/vsm-cms/internal/i18n"
	"github.com/olegiv/vsm-cms/internal/middleware"
	"github.com/olegiv/vsm-cms/internal/model"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(nil, "en"); err != nil {
		fmt.Fprintf(os.Stderr, "i18n init: %v\n", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

// assertStatusCode checks that the response has the expected status code.
func assertStatusCode(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("expected status %d, got %d (body %s)", expected, w.Code, w.Body.String())
	}
}

// assertErrorResponse unmarshals and validates an error response.
func assertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) middleware.APIError {
	t.Helper()
	var resp middleware.APIError
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error.Code != expectedCode {
		t.Errorf("expected code %q, got %q", expectedCode, resp.Error.Code)
	}
	return resp
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusOK, map[string]string{"key": "value"})

	assertStatusCode(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got %s", ct)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp["key"] != "value" {
		t.Errorf("expected key 'value', got %s", resp["key"])
	}
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"name": "test"}, &Meta{Total: 7})

	assertStatusCode(t, w, http.StatusOK)
	var resp struct {
		Data map[string]string `json:"data"`
		Meta *Meta             `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Meta == nil || resp.Meta.Total != 7 {
		t.Errorf("meta = %+v, want total 7", resp.Meta)
	}
	if resp.Data["name"] != "test" {
		t.Errorf("data.name = %q, want test", resp.Data["name"])
	}
}

func TestWriteCreated(t *testing.T) {
	w := httptest.NewRecorder()
	WriteCreated(w, map[string]string{"id": "123"})
	assertStatusCode(t, w, http.StatusCreated)
	if strings.Contains(w.Body.String(), `"meta"`) {
		t.Errorf("created response should omit meta: %s", w.Body.String())
	}
}

func TestWriteListNeverNull(t *testing.T) {
	w := httptest.NewRecorder()
	writeList[model.Event](w, nil)
	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Errorf("body = %s, want empty array", w.Body.String())
	}
}

func TestWriteErrorMapping(t *testing.T) {
	h := NewHandler(Config{EmailDomain: "vsm.org.vn"})

	emailErr := &model.ValidationError{}
	emailErr.Add("email", model.MsgEmailDomain)
	emailErr.Add("password", model.MsgRequired)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", emailErr, http.StatusUnprocessableEntity, "validation_error"},
		{"not found", fmt.Errorf("article 9: %w", model.ErrNotFound), http.StatusNotFound, "not_found"},
		{"auth", model.ErrAuthRequired, http.StatusUnauthorized, "auth_required"},
		{"forbidden", model.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"self delete", model.ErrCannotDeleteSelf, http.StatusForbidden, "cannot_delete_self"},
		{"confirm", model.ErrConfirmationRequired, http.StatusConflict, "confirmation_required"},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/articles/9", nil)
			h.writeError(w, r, "article", tt.err)

			assertStatusCode(t, w, tt.wantStatus)
			resp := assertErrorResponse(t, w, tt.wantCode)
			if strings.Contains(resp.Error.Message, "disk on fire") {
				t.Errorf("internal error leaked: %q", resp.Error.Message)
			}
		})
	}
}

func TestWriteErrorTranslatesFields(t *testing.T) {
	h := NewHandler(Config{EmailDomain: "vsm.org.vn"})

	verr := &model.ValidationError{}
	verr.Add("email", model.MsgEmailDomain)
	verr.Add("title", model.MsgRequired)

	w := httptest.NewRecorder()
	h.writeError(w, httptest.NewRequest(http.MethodPost, "/", nil), "article", verr)

	resp := assertErrorResponse(t, w, "validation_error")
	if got := resp.Error.Details["email"]; got != "Only emails ending with @vsm.org.vn are accepted" {
		t.Errorf("details.email = %q", got)
	}
	if got := resp.Error.Details["title"]; got != "This field is required" {
		t.Errorf("details.title = %q", got)
	}
}

func TestNotFoundMessageNamesEntity(t *testing.T) {
	h := NewHandler(Config{})
	w := httptest.NewRecorder()
	h.writeError(w, httptest.NewRequest(http.MethodGet, "/", nil), "note", model.ErrNotFound)

	resp := assertErrorResponse(t, w, "not_found")
	if resp.Error.Message != "note not found" {
		t.Errorf("message = %q, want %q", resp.Error.Message, "note not found")
	}
}

func TestConfirmed(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"", false},
		{"?confirm=true", true},
		{"?confirm=1", true},
		{"?confirm=yes", false},
		{"?confirm=false", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodDelete, "/api/notes/1"+tt.query, nil)
		if got := confirmed(r); got != tt.want {
			t.Errorf("confirmed(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestDecodeJSONRejectsMalformed(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	var dst LoginRequest
	if decodeJSON(w, r, &dst) {
		t.Fatal("decodeJSON() = true, want false")
	}
	assertStatusCode(t, w, http.StatusBadRequest)
	assertErrorResponse(t, w, "bad_request")
}
