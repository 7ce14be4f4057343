// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockAuditPruner implements AuditPruner.
type mockAuditPruner struct {
	pruned   int64
	pruneErr error
	sweeps   atomic.Int32
	cutoff   atomic.Pointer[time.Time]
}

func (m *mockAuditPruner) Prune(_ context.Context, olderThan time.Time) (int64, error) {
	m.sweeps.Add(1)
	m.cutoff.Store(&olderThan)
	return m.pruned, m.pruneErr
}

func TestAuditJanitorService_Interface(t *testing.T) {
	t.Parallel()
	var _ suture.Service = (*AuditJanitorService)(nil)
}

func TestAuditJanitorService_Serve(t *testing.T) {
	t.Parallel()

	t.Run("prunes on the interval", func(t *testing.T) {
		t.Parallel()

		store := &mockAuditPruner{pruned: 5}
		svc := NewAuditJanitorService(store, 10*time.Millisecond, time.Hour)

		if svc.String() != "audit-janitor" {
			t.Errorf("String() = %q, want %q", svc.String(), "audit-janitor")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		err := svc.Serve(ctx)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Serve() error = %v, want context.DeadlineExceeded", err)
		}

		if store.sweeps.Load() < 2 {
			t.Errorf("Prune called %d times, want at least 2", store.sweeps.Load())
		}

		// The cutoff trails now by the retention window.
		cutoff := store.cutoff.Load()
		if cutoff == nil {
			t.Fatal("no cutoff recorded")
		}
		age := time.Since(*cutoff)
		if age < 55*time.Minute || age > 65*time.Minute {
			t.Errorf("cutoff age = %v, want about 1h", age)
		}
	})

	t.Run("keeps sweeping after prune errors", func(t *testing.T) {
		t.Parallel()

		store := &mockAuditPruner{pruneErr: errors.New("store offline")}
		svc := NewAuditJanitorService(store, 10*time.Millisecond, time.Hour)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		_ = svc.Serve(ctx)

		if store.sweeps.Load() < 2 {
			t.Errorf("Prune called %d times after errors, want at least 2", store.sweeps.Load())
		}
	})
}

func TestNewAuditJanitorService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewAuditJanitorService(&mockAuditPruner{}, 0, 0)
	if svc.interval != 24*time.Hour {
		t.Errorf("interval = %v, want default 24h", svc.interval)
	}
	if svc.retention != 90*24*time.Hour {
		t.Errorf("retention = %v, want default 90d", svc.retention)
	}
}
