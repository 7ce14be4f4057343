// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"

	"github.com/moodvie/moodvie/internal/models"
)

// badgerKeyPrefix namespaces session keys inside the Badger directory.
const badgerKeyPrefix = "session:"

// BadgerStore persists sessions in a BadgerDB directory. Entries carry a
// TTL, so expired sessions disappear from reads without a sweep; RunGC
// reclaims the value-log space they leave behind.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
}

var (
	_ Store            = (*BadgerStore)(nil)
	_ GarbageCollector = (*BadgerStore)(nil)
)

// NewBadgerStore opens (or creates) a BadgerDB at path. A ttl of zero
// disables expiry.
func NewBadgerStore(path string, ttl time.Duration) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs
	// Sessions are small; keep value-log segments small too.
	opts.ValueLogFileSize = 16 << 20
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for sessions: %w", err)
	}

	return &BadgerStore{db: db, ttl: ttl}, nil
}

func badgerKey(id string) []byte {
	return []byte(badgerKeyPrefix + id)
}

// Get retrieves a session by ID.
func (s *BadgerStore) Get(ctx context.Context, id string) (*models.Session, error) {
	var sess models.Session

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sess)
		})
	})
	if err != nil {
		return nil, err
	}

	return &sess, nil
}

// Save writes the session and resets its TTL.
func (s *BadgerStore) Save(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(badgerKey(sess.ID), data)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *BadgerStore) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(badgerKey(id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

// Count returns the number of live sessions. Badger hides TTL-expired
// entries from iteration, so the count only covers live ones.
func (s *BadgerStore) Count(ctx context.Context) (int, error) {
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(badgerKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})

	return count, err
}

// CleanupExpired is a no-op for Badger. TTL entries drop out of reads on
// their own; RunGC reclaims the disk space.
func (s *BadgerStore) CleanupExpired(ctx context.Context) (int, error) {
	return 0, nil
}

// RunGC runs one value-log garbage collection pass. Badger returns
// ErrNoRewrite when nothing needed compacting; that is not an error.
func (s *BadgerStore) RunGC(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.db.RunValueLogGC(0.5); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return fmt.Errorf("badger value log gc: %w", err)
	}
	return nil
}

// Close closes the underlying BadgerDB.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
