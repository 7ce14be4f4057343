// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFromContext(ctx))

	ctx = ContextWithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
}

func TestSessionIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, SessionIDFromContext(ctx))

	ctx = ContextWithSessionID(ctx, "sess-abc")
	assert.Equal(t, "sess-abc", SessionIDFromContext(ctx))
}

func TestGenerateRequestIDUnique(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()
	require.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestCtxAddsIdentifiers(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	ctx := ContextWithRequestID(context.Background(), "req-9")
	ctx = ContextWithSessionID(ctx, "sess-7")

	Ctx(ctx).Info().Msg("turn")

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-9"`)
	assert.Contains(t, out, `"session_id":"sess-7"`)
}

func TestLoggerFromContextFallsBackToGlobal(t *testing.T) {
	// No logger stored: must not panic, must return a usable logger.
	logger := LoggerFromContext(context.Background())
	logger.Debug().Msg("ok")

	var buf bytes.Buffer
	stored := NewTestLogger(&buf)
	ctx := ContextWithLogger(context.Background(), stored)
	got := LoggerFromContext(ctx)
	got.Info().Msg("stored logger used")
	assert.Contains(t, buf.String(), "stored logger used")
}
