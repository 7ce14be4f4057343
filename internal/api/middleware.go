// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Chi middleware factories: CORS via go-chi/cors and per-group rate
// limits via go-chi/httprate.

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"

	"github.com/moodvie/moodvie/internal/config"
)

// RateLimitConfig defines rate limit parameters for one route group.
type RateLimitConfig struct {
	// Requests is the number of requests allowed in the window
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
}

// Per-group rate limits. The default API limit comes from configuration;
// these cover groups whose cost profile differs from it.
var (
	// RateLimitChat is strict for chat turns since each one can cost an
	// LLM round trip.
	RateLimitChat = RateLimitConfig{Requests: 20, Window: time.Minute}

	// RateLimitLogin is very strict for login attempts.
	RateLimitLogin = RateLimitConfig{Requests: 5, Window: 5 * time.Minute}

	// RateLimitHealth is permissive so monitoring can probe freely.
	RateLimitHealth = RateLimitConfig{Requests: 1000, Window: time.Minute}
)

// ChiMiddleware builds the router's CORS handler and rate limiters from
// the security configuration.
type ChiMiddleware struct {
	cors     func(http.Handler) http.Handler
	requests int
	window   time.Duration
	disabled bool
}

// NewChiMiddleware creates the middleware factory. CORS origins default
// to empty, which denies cross-origin browsers until the operator
// configures CORS_ORIGINS.
func NewChiMiddleware(cfg *config.SecurityConfig) *ChiMiddleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           86400,
	})

	return &ChiMiddleware{
		cors:     corsHandler,
		requests: cfg.RateLimitReqs,
		window:   cfg.RateLimitWindow,
		disabled: cfg.RateLimitDisabled,
	}
}

// CORS returns the CORS middleware. Mounted globally so OPTIONS
// preflights are answered on every route.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit returns the default per-IP limiter from configuration.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.limit(RateLimitConfig{Requests: m.requests, Window: m.window})
}

// RateLimitChat returns the limiter for the chat endpoint.
func (m *ChiMiddleware) RateLimitChat() func(http.Handler) http.Handler {
	return m.limit(RateLimitChat)
}

// RateLimitLogin returns the limiter for the login endpoint.
func (m *ChiMiddleware) RateLimitLogin() func(http.Handler) http.Handler {
	return m.limit(RateLimitLogin)
}

// RateLimitHealth returns the limiter for health endpoints.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	return m.limit(RateLimitHealth)
}

// limit builds a per-IP httprate limiter, or a no-op when limiting is
// disabled. Rejections answer with the standard envelope so clients
// never have to parse two error shapes.
func (m *ChiMiddleware) limit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if m.disabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		cfg.Requests,
		cfg.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimited),
	)
}

// rateLimited answers a throttled request with the envelope.
func rateLimited(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusTooManyRequests)
	//nolint:errcheck // nothing to do if the rejection itself fails to write
	json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Error: &APIError{
			Code:    ErrCodeTooManyRequests,
			Message: "Rate limit exceeded, retry later",
		},
		Meta: &APIMeta{Timestamp: time.Now()},
	})
}
