// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodvie/moodvie/internal/models"
)

func newTestBadger(t *testing.T, ttl time.Duration) *BadgerStore {
	t.Helper()

	store, err := NewBadgerStore(t.TempDir(), ttl)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestBadgerStore_SaveGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestBadger(t, time.Hour)

	want := sampleSession("sess-1")
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBadgerStore_GetUnknown(t *testing.T) {
	store := newTestBadger(t, time.Hour)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBadgerStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newTestBadger(t, time.Hour)

	sess := sampleSession("sess-1")
	require.NoError(t, store.Save(ctx, sess))

	sess.Stats.Turns = 7
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stats.Turns)
}

func TestBadgerStore_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestBadger(t, time.Hour)

	require.NoError(t, store.Delete(ctx, "never-existed"))

	require.NoError(t, store.Save(ctx, sampleSession("sess-1")))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Delete(ctx, "sess-1"))
}

func TestBadgerStore_Count(t *testing.T) {
	ctx := context.Background()
	store := newTestBadger(t, time.Hour)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	for _, id := range []string{"sess-1", "sess-2", "sess-3"} {
		require.NoError(t, store.Save(ctx, sampleSession(id)))
	}

	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, store.Delete(ctx, "sess-2"))

	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestBadgerStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewBadgerStore(dir, time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sampleSession("sess-1")))
	require.NoError(t, store.Close())

	reopened, err := NewBadgerStore(dir, time.Hour)
	require.NoError(t, err)
	defer func() {
		_ = reopened.Close()
	}()

	got, err := reopened.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.ID)
	assert.Len(t, got.Messages, 2)
}

// Badger stores TTL deadlines with one-second granularity, so this test
// needs a multi-second TTL and sleep to be reliable.
func TestBadgerStore_TTLExpiry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping TTL expiry test in short mode")
	}

	ctx := context.Background()
	store := newTestBadger(t, 2*time.Second)
	require.NoError(t, store.Save(ctx, sampleSession("sess-1")))

	_, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)

	time.Sleep(3100 * time.Millisecond)

	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBadgerStore_CleanupExpiredIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := newTestBadger(t, time.Hour)
	require.NoError(t, store.Save(ctx, sampleSession("sess-1")))

	removed, err := store.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)

	_, err = store.Get(ctx, "sess-1")
	assert.NoError(t, err)
}

func TestBadgerStore_RunGC(t *testing.T) {
	ctx := context.Background()
	store := newTestBadger(t, time.Hour)

	for i := 0; i < 10; i++ {
		sess := sampleSession("sess-1")
		sess.Messages = append(sess.Messages, models.ChatMessage{
			Role:    models.RoleUser,
			Content: "pesan tambahan",
		})
		require.NoError(t, store.Save(ctx, sess))
	}

	// A small store has nothing to rewrite; ErrNoRewrite must be absorbed.
	assert.NoError(t, store.RunGC(ctx))
}

func TestBadgerStore_RunGCHonorsContext(t *testing.T) {
	store := newTestBadger(t, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, store.RunGC(ctx))
}
