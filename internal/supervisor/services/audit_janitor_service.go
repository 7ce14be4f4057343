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

// AuditPruner is the slice of the audit store the janitor needs.
type AuditPruner interface {
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}

// AuditJanitorService prunes audit events past the retention window on
// an interval.
type AuditJanitorService struct {
	store     AuditPruner
	interval  time.Duration
	retention time.Duration
	name      string
}

// NewAuditJanitorService creates an audit janitor service wrapper.
func NewAuditJanitorService(store AuditPruner, interval, retention time.Duration) *AuditJanitorService {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	if retention <= 0 {
		retention = 90 * 24 * time.Hour
	}
	return &AuditJanitorService{
		store:     store,
		interval:  interval,
		retention: retention,
		name:      "audit-janitor",
	}
}

// Serve implements suture.Service. Prune failures are logged, not
// fatal; the trail keeps accepting writes either way.
func (s *AuditJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			pruned, err := s.store.Prune(ctx, time.Now().Add(-s.retention))
			if err != nil {
				logging.Warn().Err(err).Msg("Audit prune sweep failed")
				continue
			}
			if pruned > 0 {
				logging.Debug().Int64("pruned", pruned).Msg("Expired audit events pruned")
			}
		}
	}
}

// String implements fmt.Stringer for supervision logs.
func (s *AuditJanitorService) String() string {
	return s.name
}
