// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package audit records security-relevant actions to a queryable trail.
//
// The trail covers authentication outcomes and mutations of user-owned
// or shared state: logins, session deletion, session export, preference
// changes, and catalog seeding. Read-only lookups are not recorded.
//
// Events flow through an asynchronous Logger into a Store. The DuckDB
// store shares the catalog database file and is the production backend;
// the in-memory store backs tests and ephemeral deployments. When the
// write buffer fills, events are dropped and counted rather than
// blocking the request path.
//
//	logger := audit.NewLogger(store, 1000)
//	defer logger.Close()
//
//	logger.LogAuthSuccess(ctx, actor, source)
//
// Retention is enforced by a periodic prune (see the supervisor's
// audit janitor service), not by the Logger itself.
package audit
