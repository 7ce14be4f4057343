// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package review condenses movie reviews into one colloquial Indonesian
// sentence.
//
// Review payloads arrive in whatever shape the source produced: JSON
// arrays, delimited strings, or single blobs. Normalization coerces them
// into at most six snippets, one completion call summarizes, and post
// processing strips the artifacts local models leave behind. A summary
// outside sane length bounds, or any backend failure, degrades to a
// sentiment-keyword heuristic picking one of three canned sentences.
package review
