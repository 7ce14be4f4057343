// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingStore blocks every Save until released, for buffer-overflow
// tests.
type blockingStore struct {
	release chan struct{}
}

func newBlockingStore() *blockingStore {
	return &blockingStore{release: make(chan struct{})}
}

func (s *blockingStore) Save(ctx context.Context, event *Event) error {
	select {
	case <-s.release:
	case <-ctx.Done():
	}
	return nil
}

func (s *blockingStore) Get(ctx context.Context, id string) (*Event, error) {
	return nil, nil
}

func (s *blockingStore) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	return nil, nil
}

func (s *blockingStore) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	return 0, nil
}

func (s *blockingStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	return 0, nil
}

func (s *blockingStore) Stats(ctx context.Context) (*Stats, error) {
	return &Stats{}, nil
}

func TestLogger_WritesThroughToStore(t *testing.T) {
	store := NewMemoryStore(100)
	logger := NewLogger(store, 10)

	logger.Log(&Event{
		Type:        EventTypeAuthSuccess,
		Severity:    SeverityInfo,
		Outcome:     OutcomeSuccess,
		Actor:       Actor{ID: "admin", Type: "user"},
		Action:      "authenticate",
		Description: "Login succeeded",
	})

	// Close drains the buffer, so the event is persisted afterwards.
	require.NoError(t, logger.Close())
	assert.Equal(t, 1, store.Len())

	events, err := store.Query(context.Background(), QueryFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].ID, "ID is filled in")
	assert.False(t, events[0].Timestamp.IsZero(), "timestamp is filled in")
}

func TestLogger_NilReceiverIsSafe(t *testing.T) {
	var logger *Logger

	logger.Log(&Event{Type: EventTypeAuthSuccess})
	logger.LogAuthSuccess(context.Background(), Actor{}, Source{})
	assert.Zero(t, logger.Dropped())
	require.NoError(t, logger.Close())

	_, err := logger.Query(context.Background(), QueryFilter{})
	assert.Error(t, err)
	_, err = logger.Count(context.Background(), QueryFilter{})
	assert.Error(t, err)
	_, err = logger.Stats(context.Background())
	assert.Error(t, err)
}

func TestLogger_DropsWhenBufferFull(t *testing.T) {
	store := newBlockingStore()
	logger := NewLogger(store, 1)

	// First event occupies the writer, second fills the buffer, third
	// must drop. Give the writer a moment to pick up the first.
	logger.Log(&Event{Type: EventTypeAuthSuccess, Description: "one"})
	time.Sleep(50 * time.Millisecond)
	logger.Log(&Event{Type: EventTypeAuthSuccess, Description: "two"})
	logger.Log(&Event{Type: EventTypeAuthSuccess, Description: "three"})

	assert.Equal(t, int64(1), logger.Dropped())

	close(store.release)
	require.NoError(t, logger.Close())
}

func TestLogger_QueryDelegates(t *testing.T) {
	store := NewMemoryStore(100)
	logger := NewLogger(store, 10)
	defer logger.Close()

	logger.Log(testEvent("d-1", EventTypeCatalogSeeded, OutcomeSuccess, time.Now()))

	// The write is asynchronous; poll briefly rather than flake.
	deadline := time.Now().Add(2 * time.Second)
	for store.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	events, err := logger.Query(context.Background(), QueryFilter{})
	require.NoError(t, err)
	assert.Len(t, events, 1)

	count, err := logger.Count(context.Background(), QueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stats, err := logger.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalEvents)
}

func TestLogger_HelperEventShapes(t *testing.T) {
	store := NewMemoryStore(100)
	logger := NewLogger(store, 10)
	ctx := context.Background()

	actor := Actor{ID: "admin", Type: "user", Name: "admin", Role: "admin"}
	source := Source{IPAddress: "10.0.0.1"}

	logger.LogAuthSuccess(ctx, actor, source)
	logger.LogAuthFailure(ctx, "mallory", source, "invalid credentials")
	logger.LogSessionDeleted(ctx, actor, source, "sess-1")
	logger.LogSessionExported(ctx, actor, source, "sess-1", 12)
	logger.LogPreferencesUpdated(ctx, actor, source, "sess-1", 2, 1)
	logger.LogCatalogSeeded(ctx, actor, source, 250, "request")

	require.NoError(t, logger.Close())
	require.Equal(t, 6, store.Len())

	byType := func(typ EventType) Event {
		t.Helper()
		events, err := store.Query(ctx, QueryFilter{Types: []EventType{typ}})
		require.NoError(t, err)
		require.Len(t, events, 1)
		return events[0]
	}

	success := byType(EventTypeAuthSuccess)
	assert.Equal(t, OutcomeSuccess, success.Outcome)
	assert.Equal(t, "authenticate", success.Action)

	failure := byType(EventTypeAuthFailure)
	assert.Equal(t, OutcomeFailure, failure.Outcome)
	assert.Equal(t, SeverityWarning, failure.Severity)
	assert.Equal(t, "mallory", failure.Actor.ID)
	assert.Contains(t, failure.Description, "invalid credentials")

	deleted := byType(EventTypeSessionDeleted)
	require.NotNil(t, deleted.Target)
	assert.Equal(t, "sess-1", deleted.Target.ID)
	assert.Equal(t, "session", deleted.Target.Type)

	exported := byType(EventTypeSessionExported)
	assert.JSONEq(t, `{"messages":12}`, string(exported.Metadata))

	prefs := byType(EventTypePreferencesUpdated)
	assert.JSONEq(t, `{"preferred_genres":2,"disliked_genres":1}`, string(prefs.Metadata))

	seeded := byType(EventTypeCatalogSeeded)
	assert.Equal(t, SeverityWarning, seeded.Severity)
	require.NotNil(t, seeded.Target)
	assert.Equal(t, "catalog", seeded.Target.Type)
	assert.JSONEq(t, `{"imported":250,"source":"request"}`, string(seeded.Metadata))
}

func TestActorConstructors(t *testing.T) {
	system := SystemActor()
	assert.Equal(t, "system", system.Type)
	assert.Equal(t, "MoodVie", system.Name)

	anon := AnonymousActor()
	assert.Equal(t, "anonymous", anon.Type)
	assert.Equal(t, "anonymous", anon.ID)
}
