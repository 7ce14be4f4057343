// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moodvie/moodvie/internal/logging"
	"github.com/moodvie/moodvie/internal/metrics"
	"github.com/moodvie/moodvie/internal/models"
)

// Manager coordinates access to conversation sessions.
//
// Every mutating operation runs under a per-session lock, so two requests
// against the same conversation serialize while distinct conversations
// proceed in parallel. Locks are reference counted and dropped once the
// last holder releases, keeping the lock table bounded by concurrency
// rather than by session count.
type Manager struct {
	store Store

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewManager creates a Manager on top of the given store.
func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
		locks: make(map[string]*sessionLock),
	}
}

// acquire locks the session with the given ID and returns the release
// function. Blocks while another holder has the lock.
func (m *Manager) acquire(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}

// newSession starts a fresh conversation with a generated ID.
func newSession() *models.Session {
	now := time.Now().UTC()
	metrics.SessionsCreated.Inc()
	return &models.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// begin locks and loads the session for a turn. An empty, unknown, or
// expired ID starts a fresh conversation under a newly issued ID; client
// supplied strings never become session keys.
func (m *Manager) begin(ctx context.Context, id string) (*models.Session, func(), error) {
	if id != "" {
		release := m.acquire(id)
		sess, err := m.store.Get(ctx, id)
		if err == nil {
			return sess, release, nil
		}
		release()
		if !errors.Is(err, ErrNotFound) {
			return nil, nil, err
		}
		logging.Debug().Str("session_id", id).Msg("Session missing or expired, starting fresh")
	}

	sess := newSession()
	release := m.acquire(sess.ID)
	return sess, release, nil
}

// Turn runs fn against the session identified by id, holding the
// session's lock from load to save. An empty or unknown id starts a new
// conversation; the returned session carries the ID the caller should
// hand back to the client. If fn returns an error the session is not
// saved.
func (m *Manager) Turn(ctx context.Context, id string, fn func(sess *models.Session) error) (*models.Session, error) {
	sess, release, err := m.begin(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := fn(sess); err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	m.refreshActive(ctx)
	return sess, nil
}

// Get retrieves a session without locking it. The store hands back a
// private copy, so readers never observe a turn in progress halfway.
func (m *Manager) Get(ctx context.Context, id string) (*models.Session, error) {
	return m.store.Get(ctx, id)
}

// Delete removes a session. Waits for an in-flight turn on the same
// session to finish first.
func (m *Manager) Delete(ctx context.Context, id string) error {
	release := m.acquire(id)
	defer release()

	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	m.refreshActive(ctx)
	logging.Info().Str("session_id", id).Msg("Session deleted")
	return nil
}

// UpdatePreferences replaces the session's liked and disliked genre
// lists. Duplicates are dropped, first occurrence wins.
func (m *Manager) UpdatePreferences(ctx context.Context, id string, preferred, disliked []string) (*models.Session, error) {
	release := m.acquire(id)
	defer release()

	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.PreferredGenres = dedupe(preferred)
	sess.DislikedGenres = dedupe(disliked)
	sess.UpdatedAt = time.Now().UTC()

	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Stats computes usage statistics for a session.
func (m *Manager) Stats(ctx context.Context, id string) (Stats, error) {
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return Stats{}, err
	}
	return StatsFor(sess), nil
}

// Export bundles the full session with derived statistics for download.
func (m *Manager) Export(ctx context.Context, id string) (*Export, error) {
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Export{
		ExportedAt: time.Now().UTC(),
		Session:    sess,
		Statistics: StatsFor(sess),
	}, nil
}

// CleanupExpired reclaims expired sessions and runs backend garbage
// collection when the store supports it.
func (m *Manager) CleanupExpired(ctx context.Context) (int, error) {
	count, err := m.store.CleanupExpired(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logging.Info().Int("count", count).Msg("Expired sessions removed")
	}

	if gc, ok := m.store.(GarbageCollector); ok {
		if err := gc.RunGC(ctx); err != nil {
			logging.Warn().Err(err).Msg("Session store garbage collection failed")
		}
	}

	m.refreshActive(ctx)
	return count, nil
}

// refreshActive updates the active-session gauge from the store count.
func (m *Manager) refreshActive(ctx context.Context) {
	count, err := m.store.Count(ctx)
	if err != nil {
		return
	}
	metrics.SessionsActive.Set(float64(count))
}

// dedupe drops repeated values, preserving first occurrence order.
func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
