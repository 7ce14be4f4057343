// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package llm

import (
	"context"
	"errors"
	"strings"

	gobreaker "github.com/sony/gobreaker/v2"
)

var (
	// ErrNoMessages is returned when a request carries an empty prompt.
	ErrNoMessages = errors.New("llm: no prompt messages")

	// ErrEmptyCompletion is returned when the backend answers without content.
	ErrEmptyCompletion = errors.New("llm: empty completion")
)

// IsUnavailable reports whether the circuit breaker rejected the call without
// reaching the backend. Retrying before the cooldown elapses is pointless.
func IsUnavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests)
}

// IsTransient reports whether a failed call is worth retrying after a short
// backoff. Breaker rejections are excluded because the cooldown outlasts any
// retry budget.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if IsUnavailable(err) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if isRateLimitError(err) || isServerError(err) {
		return true
	}

	s := strings.ToLower(err.Error())
	return strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset") ||
		strings.Contains(s, "unexpected eof") ||
		strings.Contains(s, "no such host")
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "bad gateway") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "server_error") ||
		strings.Contains(errStr, "overloaded")
}
