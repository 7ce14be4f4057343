// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package audit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/moodvie/moodvie/internal/logging"
	"github.com/moodvie/moodvie/internal/metrics"
)

// writeTimeout bounds one store write so a wedged database cannot stall
// the writer goroutine forever.
const writeTimeout = 5 * time.Second

// Logger accepts audit events and persists them asynchronously. Log
// never blocks the caller: events queue into a bounded buffer drained
// by a single writer goroutine, and are dropped with a counter bump
// when the buffer is full.
//
// All methods are safe on a nil *Logger, so callers can hold one
// unconditionally and leave it unset when auditing is disabled.
type Logger struct {
	store     Store
	events    chan *Event
	stop      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	dropped   atomic.Int64
}

// NewLogger creates an audit logger writing to store. bufferSize is the
// async queue depth; zero or negative means 1000.
func NewLogger(store Store, bufferSize int) *Logger {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	l := &Logger{
		store:  store,
		events: make(chan *Event, bufferSize),
		stop:   make(chan struct{}),
	}

	l.wg.Add(1)
	go l.writer()

	return l
}

// writer drains the event buffer until Close, then flushes what queued.
func (l *Logger) writer() {
	defer l.wg.Done()

	for {
		select {
		case <-l.stop:
			for {
				select {
				case event := <-l.events:
					l.write(event)
				default:
					return
				}
			}
		case event := <-l.events:
			l.write(event)
		}
	}
}

// write persists one event to the store.
func (l *Logger) write(event *Event) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := l.store.Save(ctx, event); err != nil {
		logging.Error().Err(err).
			Str("event_id", event.ID).
			Str("type", string(event.Type)).
			Msg("Failed to save audit event")
	}
}

// Log records an audit event. Missing ID and Timestamp are filled in.
func (l *Logger) Log(event *Event) {
	if l == nil || event == nil {
		return
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	select {
	case l.events <- event:
		metrics.AuditEventsRecorded.WithLabelValues(string(event.Type)).Inc()
	default:
		l.dropped.Add(1)
		metrics.AuditEventsDropped.Inc()
		logging.Warn().
			Str("event_id", event.ID).
			Str("type", string(event.Type)).
			Msg("Audit buffer full, dropping event")
	}
}

// Close flushes buffered events and stops the writer. Safe to call
// more than once.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.closeOnce.Do(func() { close(l.stop) })
	l.wg.Wait()
	return nil
}

// Dropped returns how many events were discarded due to a full buffer.
func (l *Logger) Dropped() int64 {
	if l == nil {
		return 0
	}
	return l.dropped.Load()
}

// Query retrieves events matching the filter, most recent first.
func (l *Logger) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	if l == nil {
		return nil, fmt.Errorf("audit logging is disabled")
	}
	return l.store.Query(ctx, filter)
}

// Count returns the number of events matching the filter.
func (l *Logger) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	if l == nil {
		return 0, fmt.Errorf("audit logging is disabled")
	}
	return l.store.Count(ctx, filter)
}

// Stats summarizes the stored trail.
func (l *Logger) Stats(ctx context.Context) (*Stats, error) {
	if l == nil {
		return nil, fmt.Errorf("audit logging is disabled")
	}
	return l.store.Stats(ctx)
}

// LogAuthSuccess records a successful login.
func (l *Logger) LogAuthSuccess(ctx context.Context, actor Actor, source Source) {
	l.Log(&Event{
		Type:        EventTypeAuthSuccess,
		Severity:    SeverityInfo,
		Outcome:     OutcomeSuccess,
		Actor:       actor,
		Source:      source,
		Action:      "authenticate",
		Description: "Login succeeded",
		RequestID:   logging.RequestIDFromContext(ctx),
	})
}

// LogAuthFailure records a rejected login attempt.
func (l *Logger) LogAuthFailure(ctx context.Context, username string, source Source, reason string) {
	l.Log(&Event{
		Type:     EventTypeAuthFailure,
		Severity: SeverityWarning,
		Outcome:  OutcomeFailure,
		Actor: Actor{
			ID:   username,
			Type: "user",
			Name: username,
		},
		Source:      source,
		Action:      "authenticate",
		Description: "Login rejected: " + reason,
		Metadata:    mustJSON(map[string]string{"reason": reason}),
		RequestID:   logging.RequestIDFromContext(ctx),
	})
}

// LogSessionDeleted records the deletion of a conversation session.
func (l *Logger) LogSessionDeleted(ctx context.Context, actor Actor, source Source, sessionID string) {
	l.Log(&Event{
		Type:        EventTypeSessionDeleted,
		Severity:    SeverityInfo,
		Outcome:     OutcomeSuccess,
		Actor:       actor,
		Target:      &Target{ID: sessionID, Type: "session"},
		Source:      source,
		Action:      "delete",
		Description: "Conversation session deleted",
		RequestID:   logging.RequestIDFromContext(ctx),
	})
}

// LogSessionExported records a session export download.
func (l *Logger) LogSessionExported(ctx context.Context, actor Actor, source Source, sessionID string, messages int) {
	l.Log(&Event{
		Type:        EventTypeSessionExported,
		Severity:    SeverityInfo,
		Outcome:     OutcomeSuccess,
		Actor:       actor,
		Target:      &Target{ID: sessionID, Type: "session"},
		Source:      source,
		Action:      "export",
		Description: "Conversation session exported",
		Metadata:    mustJSON(map[string]int{"messages": messages}),
		RequestID:   logging.RequestIDFromContext(ctx),
	})
}

// LogPreferencesUpdated records a replacement of session genre
// preferences.
func (l *Logger) LogPreferencesUpdated(ctx context.Context, actor Actor, source Source, sessionID string, preferred, disliked int) {
	l.Log(&Event{
		Type:        EventTypePreferencesUpdated,
		Severity:    SeverityInfo,
		Outcome:     OutcomeSuccess,
		Actor:       actor,
		Target:      &Target{ID: sessionID, Type: "session"},
		Source:      source,
		Action:      "update",
		Description: "Session genre preferences updated",
		Metadata: mustJSON(map[string]int{
			"preferred_genres": preferred,
			"disliked_genres":  disliked,
		}),
		RequestID: logging.RequestIDFromContext(ctx),
	})
}

// LogCatalogSeeded records a catalog seed import. seedSource names
// where the records came from: "request" or the seed file path.
func (l *Logger) LogCatalogSeeded(ctx context.Context, actor Actor, source Source, imported int, seedSource string) {
	l.Log(&Event{
		Type:        EventTypeCatalogSeeded,
		Severity:    SeverityWarning,
		Outcome:     OutcomeSuccess,
		Actor:       actor,
		Target:      &Target{ID: "movies", Type: "catalog"},
		Source:      source,
		Action:      "seed",
		Description: "Movie catalog seeded",
		Metadata: mustJSON(map[string]interface{}{
			"imported": imported,
			"source":   seedSource,
		}),
		RequestID: logging.RequestIDFromContext(ctx),
	})
}

// mustJSON marshals metadata, degrading to an empty object on error.
func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("{}")
	}
	return data
}
