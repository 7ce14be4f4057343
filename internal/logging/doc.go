// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package logging provides centralized zerolog-based structured logging.
//
// The package exposes a global logger configured once at startup plus
// helpers for component child loggers and context-aware logging. JSON
// output is the production default; console output is available for
// development.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("component", "gate").Msg("Session opened")
//	logging.Ctx(ctx).Error().Err(err).Msg("Turn failed")
//
// Component loggers carry a fixed field so pipeline stages are easy to
// filter:
//
//	moodLogger := logging.WithComponent("mood")
//
// Always terminate log chains with .Msg() or .Send(); a chain without a
// terminator is never emitted.
//
// The slog adapter (NewSlogLogger) bridges the global logger into
// libraries that speak log/slog, which the supervision tree requires.
package logging
