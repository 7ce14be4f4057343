// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package api is the HTTP surface of the recommendation service.
//
// Routing is chi v5. The Router assembles the middleware stack (request
// IDs, real IP, panic recovery, CORS, security headers, Prometheus
// instrumentation, per-group rate limits) and mounts three kinds of
// routes:
//
//   - Public plumbing: /health*, /metrics, /swagger/*, /ws, and
//     POST /api/v1/auth/login.
//   - The conversational API under /api/v1, behind authentication and
//     casbin authorization: chat turns, session management, catalog
//     lookups, direct recommendations, and the genre vocabulary.
//   - Admin surfaces under /api/v1/admin (seed import, diagnostics),
//     which the embedded policy reserves for the admin role.
//
// Every JSON response uses the envelope in response.go:
//
//	{"success": bool, "data": ..., "error": {"code", "message"},
//	 "meta": {"request_id", "timestamp", "duration_ms"}}
//
// Request bodies are decoded with goccy/go-json and validated through
// the validation package before any work happens; violations come back
// as VALIDATION_ERROR with per-field details.
package api
