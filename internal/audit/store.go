// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package audit

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MemoryStore implements Store with in-memory storage. Suitable for
// tests and ephemeral deployments; data is lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
	maxLen int
}

// NewMemoryStore creates an in-memory audit store holding at most
// maxLen events. Zero or negative means 10000.
func NewMemoryStore(maxLen int) *MemoryStore {
	if maxLen <= 0 {
		maxLen = 10000
	}
	return &MemoryStore{
		events: make([]Event, 0, maxLen),
		maxLen: maxLen,
	}
}

// Save persists an audit event, evicting the oldest tenth of the trail
// when the store is full.
func (s *MemoryStore) Save(ctx context.Context, event *Event) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.events) >= s.maxLen {
		removeCount := s.maxLen / 10
		if removeCount < 1 {
			removeCount = 1
		}
		s.events = s.events[removeCount:]
	}

	s.events = append(s.events, *event)
	return nil
}

// Get retrieves an event by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.events {
		if s.events[i].ID == id {
			event := s.events[i]
			return &event, nil
		}
	}
	return nil, fmt.Errorf("audit event not found: %s", id)
}

// Query retrieves events matching the filter, most recent first.
func (s *MemoryStore) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []Event
	skipped := 0

	// Events append in arrival order, so reverse iteration is
	// recent-first.
	for i := len(s.events) - 1; i >= 0; i-- {
		if !matchesFilter(&s.events[i], &filter) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		results = append(results, s.events[i])
		if filter.Limit > 0 && len(results) >= filter.Limit {
			break
		}
	}

	return results, nil
}

// Count returns the number of events matching the filter.
func (s *MemoryStore) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for i := range s.events {
		if matchesFilter(&s.events[i], &filter) {
			count++
		}
	}
	return count, nil
}

// Prune removes events older than the given time.
func (s *MemoryStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[:0]
	var pruned int64
	for i := range s.events {
		if s.events[i].Timestamp.Before(olderThan) {
			pruned++
			continue
		}
		kept = append(kept, s.events[i])
	}
	s.events = kept
	return pruned, nil
}

// Stats summarizes the stored trail.
func (s *MemoryStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{
		TotalEvents:     int64(len(s.events)),
		EventsByType:    make(map[string]int64),
		EventsByOutcome: make(map[string]int64),
	}

	for i := range s.events {
		event := &s.events[i]
		stats.EventsByType[string(event.Type)]++
		stats.EventsByOutcome[string(event.Outcome)]++

		if stats.OldestEvent == nil || event.Timestamp.Before(*stats.OldestEvent) {
			t := event.Timestamp
			stats.OldestEvent = &t
		}
		if stats.NewestEvent == nil || event.Timestamp.After(*stats.NewestEvent) {
			t := event.Timestamp
			stats.NewestEvent = &t
		}
	}

	return stats, nil
}

// Len returns the number of stored events.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// matchesFilter reports whether the event passes every filter criterion.
func matchesFilter(event *Event, filter *QueryFilter) bool {
	if len(filter.Types) > 0 && !containsString(filter.Types, event.Type) {
		return false
	}
	if len(filter.Severities) > 0 && !containsString(filter.Severities, event.Severity) {
		return false
	}
	if len(filter.Outcomes) > 0 && !containsString(filter.Outcomes, event.Outcome) {
		return false
	}

	if filter.ActorID != "" && event.Actor.ID != filter.ActorID {
		return false
	}
	if filter.TargetID != "" {
		if event.Target == nil || event.Target.ID != filter.TargetID {
			return false
		}
	}
	if filter.SourceIP != "" && event.Source.IPAddress != filter.SourceIP {
		return false
	}
	if filter.RequestID != "" && event.RequestID != filter.RequestID {
		return false
	}

	if filter.Since != nil && event.Timestamp.Before(*filter.Since) {
		return false
	}
	if filter.Until != nil && event.Timestamp.After(*filter.Until) {
		return false
	}

	if filter.SearchText != "" {
		needle := strings.ToLower(filter.SearchText)
		if !strings.Contains(strings.ToLower(event.Description), needle) &&
			!strings.Contains(strings.ToLower(event.Action), needle) {
			return false
		}
	}

	return true
}

// containsString reports whether values contains want. Works across the
// string-kinded filter types.
func containsString[T ~string](values []T, want T) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
