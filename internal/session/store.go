// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/moodvie/moodvie/internal/config"
	"github.com/moodvie/moodvie/internal/models"
)

// ErrNotFound is returned when a session does not exist or has expired.
// Expired sessions behave exactly like missing ones.
var ErrNotFound = errors.New("session not found")

// StoreType identifies a session storage backend.
type StoreType string

const (
	// StoreMemory keeps sessions in process memory. Not persistent.
	StoreMemory StoreType = "memory"

	// StoreBadger persists sessions in a BadgerDB directory.
	StoreBadger StoreType = "badger"
)

// Store persists conversation sessions.
//
// Implementations serialize the session on Save and decode a fresh copy
// on Get, so callers never share a *models.Session with the store.
type Store interface {
	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session is missing or expired.
	Get(ctx context.Context, id string) (*models.Session, error)

	// Save writes the session and resets its TTL.
	Save(ctx context.Context, sess *models.Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Count returns the number of live sessions.
	Count(ctx context.Context) (int, error)

	// CleanupExpired reclaims expired sessions and returns how many were
	// removed. Backends that expire entries themselves may return 0.
	CleanupExpired(ctx context.Context) (int, error)

	// Close releases backend resources.
	Close() error
}

// GarbageCollector is implemented by stores that need periodic on-disk
// compaction in addition to CleanupExpired.
type GarbageCollector interface {
	RunGC(ctx context.Context) error
}

// NewStore creates the session store selected by cfg.Store.
func NewStore(cfg config.SessionConfig) (Store, error) {
	switch StoreType(cfg.Store) {
	case StoreMemory, "":
		return NewMemoryStore(cfg.TTL), nil
	case StoreBadger:
		return NewBadgerStore(cfg.StorePath, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}
