// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package events

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"

	"github.com/moodvie/moodvie/internal/logging"
)

// watermillLogger routes watermill's internal logging through zerolog
// so bus diagnostics land in the same stream as everything else.
// Watermill is chatty at trace level; those lines map to zerolog trace
// and stay invisible at normal levels.
type watermillLogger struct {
	logger zerolog.Logger
}

// NewWatermillLogger returns a watermill adapter over the process
// logger, tagged with the events component.
func NewWatermillLogger() watermill.LoggerAdapter {
	return &watermillLogger{logger: logging.WithComponent("events")}
}

func (l *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.withFields(l.logger.Error().Err(err), fields).Msg(msg)
}

func (l *watermillLogger) Info(msg string, fields watermill.LogFields) {
	l.withFields(l.logger.Info(), fields).Msg(msg)
}

func (l *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	l.withFields(l.logger.Debug(), fields).Msg(msg)
}

func (l *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	l.withFields(l.logger.Trace(), fields).Msg(msg)
}

func (l *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	ctx := l.logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &watermillLogger{logger: ctx.Logger()}
}

func (l *watermillLogger) withFields(event *zerolog.Event, fields watermill.LogFields) *zerolog.Event {
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	return event
}
