// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/moodvie/moodvie/internal/logging"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var envelope APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v\nbody: %s", err, w.Body.String())
	}
	return envelope
}

func TestResponseWriter_Success(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)

	rw := NewResponseWriter(w, r)
	rw.Success(map[string]interface{}{"hello": "world"})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	envelope := decodeEnvelope(t, w)
	if !envelope.Success {
		t.Error("success should be true")
	}
	if envelope.Error != nil {
		t.Errorf("error should be nil, got %+v", envelope.Error)
	}
	if envelope.Meta == nil {
		t.Fatal("meta should be set")
	}
	if envelope.Meta.Timestamp.IsZero() {
		t.Error("meta timestamp should be set")
	}
	if envelope.Meta.DurationMs < 0 {
		t.Errorf("duration_ms = %d, want >= 0", envelope.Meta.DurationMs)
	}

	data, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data = %T, want object", envelope.Data)
	}
	if data["hello"] != "world" {
		t.Errorf("data = %v", data)
	}
}

func TestResponseWriter_Created(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := NewResponseWriter(w, httptest.NewRequest(http.MethodPost, "/test", nil))
	rw.Created(map[string]interface{}{"id": 1})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if envelope := decodeEnvelope(t, w); !envelope.Success {
		t.Error("success should be true")
	}
}

func TestResponseWriter_NoContent(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := NewResponseWriter(w, httptest.NewRequest(http.MethodDelete, "/test", nil))
	rw.NoContent()

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
}

func TestResponseWriter_ErrorHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		write      func(rw *ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "bad request",
			write:      func(rw *ResponseWriter) { rw.BadRequest("bad input") },
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeBadRequest,
		},
		{
			name:       "unauthorized",
			write:      func(rw *ResponseWriter) { rw.Unauthorized("who are you") },
			wantStatus: http.StatusUnauthorized,
			wantCode:   ErrCodeUnauthorized,
		},
		{
			name:       "forbidden",
			write:      func(rw *ResponseWriter) { rw.Forbidden("not yours") },
			wantStatus: http.StatusForbidden,
			wantCode:   ErrCodeForbidden,
		},
		{
			name:       "not found",
			write:      func(rw *ResponseWriter) { rw.NotFound("gone") },
			wantStatus: http.StatusNotFound,
			wantCode:   ErrCodeNotFound,
		},
		{
			name:       "internal error",
			write:      func(rw *ResponseWriter) { rw.InternalError("boom") },
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeInternalError,
		},
		{
			name:       "service unavailable",
			write:      func(rw *ResponseWriter) { rw.ServiceUnavailable("later") },
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   ErrCodeServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			rw := NewResponseWriter(w, httptest.NewRequest(http.MethodGet, "/test", nil))
			tt.write(rw)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			envelope := decodeEnvelope(t, w)
			if envelope.Success {
				t.Error("success should be false")
			}
			if envelope.Error == nil {
				t.Fatal("error should be set")
			}
			if envelope.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", envelope.Error.Code, tt.wantCode)
			}
			if envelope.Error.Message == "" {
				t.Error("message should not be empty")
			}
		})
	}
}

func TestResponseWriter_ValidationError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := NewResponseWriter(w, httptest.NewRequest(http.MethodPost, "/test", nil))
	rw.ValidationError("Validation failed", map[string]interface{}{
		"message": "message is required",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	envelope := decodeEnvelope(t, w)
	if envelope.Error == nil {
		t.Fatal("error should be set")
	}
	if envelope.Error.Code != ErrCodeValidationFailed {
		t.Errorf("code = %q, want %q", envelope.Error.Code, ErrCodeValidationFailed)
	}
	details, ok := envelope.Error.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("details = %T, want object", envelope.Error.Details)
	}
	if details["message"] != "message is required" {
		t.Errorf("details = %v", details)
	}
}

func TestResponseWriter_CatalogError_HidesCause(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := NewResponseWriter(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	rw.CatalogError(errCatalogDown)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}

	envelope := decodeEnvelope(t, w)
	if envelope.Error == nil {
		t.Fatal("error should be set")
	}
	if envelope.Error.Code != ErrCodeCatalogError {
		t.Errorf("code = %q, want %q", envelope.Error.Code, ErrCodeCatalogError)
	}
	if strings.Contains(envelope.Error.Message, errCatalogDown.Error()) {
		t.Error("the underlying error must not leak to the client")
	}
}

func TestResponseWriter_RequestIDInMeta(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	r = r.WithContext(logging.ContextWithRequestID(r.Context(), "req-12345"))

	w := httptest.NewRecorder()
	NewResponseWriter(w, r).Success(nil)

	envelope := decodeEnvelope(t, w)
	if envelope.Meta == nil || envelope.Meta.RequestID != "req-12345" {
		t.Errorf("meta = %+v, want request_id req-12345", envelope.Meta)
	}
}
