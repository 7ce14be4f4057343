// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package genre implements the closed bidirectional mapping between film
// genre names and the TMDB numeric code space the catalog stores.
//
// The mapping is a pure lookup table loaded once. Name resolution is
// case-insensitive and drops unknowns silently; code resolution yields
// canonical title-cased names with an "Unknown" placeholder for codes
// outside the vocabulary.
package genre
