// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package mood infers a structured mood judgment from free-form user text.
//
// The primary path prompts an LLM for a JSON verdict covering detected
// moods, intensity, polarity, an empathetic summary, and genre
// suggestions. Recent conversation turns are folded into the prompt so
// follow-up messages are judged in context. When the backend is
// unreachable or the completion cannot be parsed, a keyword table produces
// an equivalent judgment so the recommendation flow never stalls.
package mood
