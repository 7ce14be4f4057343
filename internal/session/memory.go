// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/moodvie/moodvie/internal/models"
)

// MemoryStore is an in-memory Store. Suitable for development and tests;
// sessions are lost on restart.
//
// Sessions are held as encoded JSON so Get decodes a private copy, the
// same round trip the Badger store performs.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// expired reports whether the entry's TTL has elapsed. Entries without a
// deadline never expire.
func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory session store. A ttl of zero
// disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

// Get retrieves a session by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || entry.expired(time.Now()) {
		return nil, ErrNotFound
	}

	var sess models.Session
	if err := json.Unmarshal(entry.data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// Save writes the session and resets its TTL.
func (s *MemoryStore) Save(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	entry := memoryEntry{data: data}
	if s.ttl > 0 {
		entry.expiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[sess.ID] = entry
	s.mu.Unlock()
	return nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// Count returns the number of live sessions.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	now := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, entry := range s.entries {
		if !entry.expired(now) {
			count++
		}
	}
	return count, nil
}

// CleanupExpired removes expired sessions and returns how many were removed.
func (s *MemoryStore) CleanupExpired(ctx context.Context) (int, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, entry := range s.entries {
		if entry.expired(now) {
			delete(s.entries, id)
			count++
		}
	}
	return count, nil
}

// Close releases backend resources. The memory store has none.
func (s *MemoryStore) Close() error {
	return nil
}
