// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package embedding turns movie documents and mood queries into dense
// vectors via an OpenAI-compatible /v1/embeddings backend.
//
// The encoder is optional: when embeddings are disabled in configuration
// the recommendation pipeline falls back to rating-based scoring and this
// package is never called. When enabled, catalog documents are embedded at
// seed time and mood queries at request time, and cosine similarity between
// them feeds the semantic half of the ranking score.
//
// Batch calls preserve input order even when the backend reports vectors
// out of order, and vectors whose dimensionality does not match the
// configured value are rejected rather than silently stored.
package embedding
