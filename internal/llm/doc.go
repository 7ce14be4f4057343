// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package llm wraps an OpenAI-compatible chat completion backend behind the
// Completer interface.
//
// The Client adds three protections around the raw SDK call:
//
//   - a token-bucket rate limiter (golang.org/x/time/rate) so bursts of chat
//     traffic cannot flood a small local model server
//   - a circuit breaker (sony/gobreaker) that opens after consecutive
//     failures and rejects calls during the cooldown
//   - a per-call timeout independent of the caller's context
//
// Retry policy intentionally lives with callers: mood analysis retries
// transient failures with backoff before falling back to keyword heuristics,
// while review summarization gives the backend a single chance. IsTransient
// and IsUnavailable classify errors for those decisions.
//
// The backend is selected purely by configuration. With LLM_BASE_URL unset the
// client talks to the OpenAI API; pointed at http://127.0.0.1:11434/v1 it talks
// to a local Ollama instance with the same code path.
package llm
