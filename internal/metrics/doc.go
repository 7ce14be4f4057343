// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package metrics defines the Prometheus collectors for the service and
// small recording helpers around them.
//
// Collectors are package-level promauto variables registered against the
// default registry and scraped at /metrics. Instrumented areas: chat
// turns and sessions, mood inference sources, completion and embedding
// provider calls, catalog queries, result caches, the HTTP surface,
// WebSocket connections, circuit breakers, and the event pipeline.
package metrics
