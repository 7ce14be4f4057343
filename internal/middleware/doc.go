// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package middleware provides cross-cutting HTTP middleware for the
// API router: request ID propagation wired into the logging context,
// Prometheus request metrics keyed by chi route pattern, security
// headers, gzip compression, and an in-memory performance monitor
// whose aggregates the admin diagnostics endpoint exposes.
//
// Authentication and authorization middleware live in internal/auth
// and internal/authz. Compression must not wrap /metrics (the
// Prometheus handler negotiates its own encoding) or the WebSocket
// upgrade; the router mounts it on the API groups only.
package middleware
