// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockHTTPServer implements HTTPServer. ListenAndServe blocks until
// Shutdown is called, mirroring the real server's lifecycle.
type mockHTTPServer struct {
	listenErr     error
	shutdownErr   error
	listenStarted chan struct{}
	release       chan struct{}
	shutdowns     atomic.Int32
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{
		listenStarted: make(chan struct{}, 1),
		release:       make(chan struct{}),
	}
}

func (m *mockHTTPServer) ListenAndServe() error {
	select {
	case m.listenStarted <- struct{}{}:
	default:
	}
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.release
	return http.ErrServerClosed
}

func (m *mockHTTPServer) Shutdown(_ context.Context) error {
	m.shutdowns.Add(1)
	select {
	case <-m.release:
	default:
		close(m.release)
	}
	return m.shutdownErr
}

func TestHTTPServerService_Interface(t *testing.T) {
	t.Parallel()
	var _ suture.Service = (*HTTPServerService)(nil)
}

func TestNewHTTPServerService(t *testing.T) {
	t.Parallel()

	srv := newMockHTTPServer()

	svc := NewHTTPServerService(srv, 5*time.Second)
	if svc.shutdownTimeout != 5*time.Second {
		t.Errorf("shutdownTimeout = %v, want 5s", svc.shutdownTimeout)
	}
	if svc.String() != "http-server" {
		t.Errorf("String() = %q, want %q", svc.String(), "http-server")
	}

	svc = NewHTTPServerService(srv, 0)
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("zero timeout: shutdownTimeout = %v, want default 10s", svc.shutdownTimeout)
	}
}

func TestHTTPServerService_Serve(t *testing.T) {
	t.Parallel()

	t.Run("graceful shutdown on context cancel", func(t *testing.T) {
		t.Parallel()

		srv := newMockHTTPServer()
		svc := NewHTTPServerService(srv, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			errCh <- svc.Serve(ctx)
		}()

		select {
		case <-srv.listenStarted:
		case <-time.After(time.Second):
			t.Fatal("server did not start listening")
		}

		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() error = %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve() did not return after cancel")
		}

		if srv.shutdowns.Load() != 1 {
			t.Errorf("Shutdown called %d times, want 1", srv.shutdowns.Load())
		}
	})

	t.Run("propagates listen failure", func(t *testing.T) {
		t.Parallel()

		srv := newMockHTTPServer()
		srv.listenErr = errors.New("address already in use")
		svc := NewHTTPServerService(srv, time.Second)

		err := svc.Serve(context.Background())
		if err == nil || !errors.Is(err, srv.listenErr) {
			t.Errorf("Serve() error = %v, want wrapped listen error", err)
		}
	})

	t.Run("ErrServerClosed is not an error", func(t *testing.T) {
		t.Parallel()

		srv := newMockHTTPServer()
		srv.listenErr = http.ErrServerClosed
		svc := NewHTTPServerService(srv, time.Second)

		if err := svc.Serve(context.Background()); err != nil {
			t.Errorf("Serve() error = %v, want nil for ErrServerClosed", err)
		}
	})

	t.Run("reports shutdown failure", func(t *testing.T) {
		t.Parallel()

		srv := newMockHTTPServer()
		srv.shutdownErr = errors.New("connections stuck")
		svc := NewHTTPServerService(srv, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			errCh <- svc.Serve(ctx)
		}()

		<-srv.listenStarted
		cancel()

		select {
		case err := <-errCh:
			if err == nil || !errors.Is(err, srv.shutdownErr) {
				t.Errorf("Serve() error = %v, want wrapped shutdown error", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve() did not return")
		}
	})
}
