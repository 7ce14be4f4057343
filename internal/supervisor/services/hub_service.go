// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package services

import (
	"context"
)

// HubRunner matches *websocket.Hub's RunWithContext method.
type HubRunner interface {
	RunWithContext(ctx context.Context) error
}

// HubService runs the WebSocket hub under supervision. The hub's run
// loop is already context-shaped, so the wrapper only adds the name.
type HubService struct {
	hub  HubRunner
	name string
}

// NewHubService creates a WebSocket hub service wrapper.
func NewHubService(hub HubRunner) *HubService {
	return &HubService{
		hub:  hub,
		name: "websocket-hub",
	}
}

// Serve implements suture.Service. The hub processes registrations and
// broadcasts until the context is canceled, then closes its clients.
func (w *HubService) Serve(ctx context.Context) error {
	return w.hub.RunWithContext(ctx)
}

// String implements fmt.Stringer for supervision logs.
func (w *HubService) String() string {
	return w.name
}
