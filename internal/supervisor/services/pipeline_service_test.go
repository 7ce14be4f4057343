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

// mockPipelineRunner implements PipelineRunner.
type mockPipelineRunner struct {
	runErr  error
	started chan struct{}
}

func newMockPipelineRunner() *mockPipelineRunner {
	return &mockPipelineRunner{started: make(chan struct{}, 1)}
}

func (m *mockPipelineRunner) Run(ctx context.Context) error {
	select {
	case m.started <- struct{}{}:
	default:
	}
	if m.runErr != nil {
		return m.runErr
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestPipelineService_Interface(t *testing.T) {
	t.Parallel()
	var _ suture.Service = (*PipelineService)(nil)
}

func TestPipelineService_Serve(t *testing.T) {
	t.Parallel()

	t.Run("runs until cancel", func(t *testing.T) {
		t.Parallel()

		pipeline := newMockPipelineRunner()
		svc := NewPipelineService(pipeline)

		if svc.String() != "event-pipeline" {
			t.Errorf("String() = %q, want %q", svc.String(), "event-pipeline")
		}

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			errCh <- svc.Serve(ctx)
		}()

		select {
		case <-pipeline.started:
		case <-time.After(time.Second):
			t.Fatal("pipeline did not start")
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
	})

	t.Run("propagates pipeline error", func(t *testing.T) {
		t.Parallel()

		pipeline := newMockPipelineRunner()
		pipeline.runErr = errors.New("nats connection lost")
		svc := NewPipelineService(pipeline)

		if err := svc.Serve(context.Background()); !errors.Is(err, pipeline.runErr) {
			t.Errorf("Serve() error = %v, want %v", err, pipeline.runErr)
		}
	})
}
