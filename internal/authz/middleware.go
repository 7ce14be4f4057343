// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package authz

import (
	"net/http"

	"github.com/moodvie/moodvie/internal/auth"
	"github.com/moodvie/moodvie/internal/logging"
)

// Middleware enforces the loaded policy on every request it wraps.
type Middleware struct {
	enforcer *Enforcer
}

// NewMiddleware creates authorization middleware over an enforcer.
func NewMiddleware(enforcer *Enforcer) *Middleware {
	return &Middleware{enforcer: enforcer}
}

// Authorize derives the subject from the request's claims (falling
// back to the default role for claimless requests), maps the HTTP
// method to an action, and enforces the policy against the URL path.
// Must run after auth.Middleware.Authenticate.
func (m *Middleware) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject := m.enforcer.DefaultRole()
		if claims := auth.ClaimsFromContext(r.Context()); claims != nil && claims.Role != "" {
			subject = claims.Role
		}

		action := methodToAction(r.Method)
		object := r.URL.Path

		allowed, err := m.enforcer.Enforce(subject, object, action)
		if err != nil {
			logging.Error().Err(err).
				Str("subject", subject).
				Str("object", object).
				Str("action", action).
				Msg("Authorization error")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if !allowed {
			logging.Warn().
				Str("subject", subject).
				Str("object", object).
				Str("action", action).
				Msg("Request denied by policy")
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// methodToAction maps HTTP methods to policy actions.
func methodToAction(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return "read"
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return "write"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}
