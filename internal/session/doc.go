// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package session stores conversation state between chat turns.
//
// A Store holds serialized sessions with a TTL; two backends exist, an
// in-memory map for development and a BadgerDB store for persistence
// across restarts. Both round sessions through JSON so a loaded session
// is always a private copy.
//
// The Manager layers per-session locking on top of a Store. A chat turn
// runs inside Manager.Turn, which holds the session's lock from load to
// save so concurrent requests against one conversation serialize while
// distinct conversations proceed in parallel.
package session
