// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockSweeper implements Sweeper and records the interval it received.
type mockSweeper struct {
	gotInterval time.Duration
	started     chan struct{}
}

func newMockSweeper() *mockSweeper {
	return &mockSweeper{started: make(chan struct{}, 1)}
}

func (m *mockSweeper) RunJanitor(ctx context.Context, interval time.Duration) {
	m.gotInterval = interval
	select {
	case m.started <- struct{}{}:
	default:
	}
	<-ctx.Done()
}

func TestCacheJanitorService_Interface(t *testing.T) {
	t.Parallel()
	var _ suture.Service = (*CacheJanitorService)(nil)
}

func TestCacheJanitorService_Serve(t *testing.T) {
	t.Parallel()

	sweeper := newMockSweeper()
	svc := NewCacheJanitorService(sweeper, time.Minute)

	if svc.String() != "cache-janitor" {
		t.Errorf("String() = %q, want %q", svc.String(), "cache-janitor")
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- svc.Serve(ctx)
	}()

	select {
	case <-sweeper.started:
	case <-time.After(time.Second):
		t.Fatal("janitor did not start")
	}

	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve() did not return after cancel")
	}

	if sweeper.gotInterval != time.Minute {
		t.Errorf("janitor interval = %v, want 1m", sweeper.gotInterval)
	}
}

func TestNewCacheJanitorService_DefaultInterval(t *testing.T) {
	t.Parallel()

	svc := NewCacheJanitorService(newMockSweeper(), 0)
	if svc.interval != 5*time.Minute {
		t.Errorf("interval = %v, want default 5m", svc.interval)
	}
}
