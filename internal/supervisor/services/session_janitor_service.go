// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package services

import (
	"context"
	"time"

	"github.com/moodvie/moodvie/internal/logging"
)

// SessionStore is the slice of the session store the janitor needs.
type SessionStore interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// GarbageCollector is implemented by stores that also need periodic
// on-disk compaction (the Badger store's value log GC).
type GarbageCollector interface {
	RunGC(ctx context.Context) error
}

// SessionJanitorService reclaims expired sessions on an interval. When
// the store implements GarbageCollector, each sweep is followed by a
// GC pass.
type SessionJanitorService struct {
	store    SessionStore
	interval time.Duration
	name     string
}

// NewSessionJanitorService creates a session janitor service wrapper.
func NewSessionJanitorService(store SessionStore, interval time.Duration) *SessionJanitorService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &SessionJanitorService{
		store:    store,
		interval: interval,
		name:     "session-janitor",
	}
}

// Serve implements suture.Service. Sweep failures are logged, not
// fatal; a broken store should surface through request paths, not
// through janitor restarts.
func (s *SessionJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed, err := s.store.CleanupExpired(ctx)
			if err != nil {
				logging.Warn().Err(err).Msg("Session cleanup sweep failed")
				continue
			}
			if removed > 0 {
				logging.Debug().Int("removed", removed).Msg("Expired sessions reclaimed")
			}
			if gc, ok := s.store.(GarbageCollector); ok {
				if err := gc.RunGC(ctx); err != nil {
					logging.Warn().Err(err).Msg("Session store GC failed")
				}
			}
		}
	}
}

// String implements fmt.Stringer for supervision logs.
func (s *SessionJanitorService) String() string {
	return s.name
}
