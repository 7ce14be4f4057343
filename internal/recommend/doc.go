// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package recommend turns a mood context into a ranked movie list.
//
// Retrieval prefers vector similarity over the mood's query text when an
// encoder is configured, constrained to the mood's genres, and falls back
// to a popularity-ordered genre filter. Candidates already recommended in
// the session are excluded unless that would starve the result. Scoring
// blends similarity with a rating/popularity/vote-volume formula, applies
// deterministic per-context jitter, and optionally session genre
// preferences. Failures degrade to smaller result sets, never to errors.
package recommend
