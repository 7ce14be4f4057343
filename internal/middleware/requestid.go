// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/moodvie/moodvie/internal/logging"
)

// RequestID assigns each request a unique ID, honoring one supplied by
// an upstream proxy via X-Request-ID. The ID is echoed in the response
// header and stored in the logging context, so every log line written
// while serving the request carries it and the response envelope can
// report it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
