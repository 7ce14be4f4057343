// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package supervisor provides suture-based process supervision.
//
// The process is organized as a three-layer tree under a single root:
//
//	moodvie (root)
//	├── data-layer        session janitor, cache janitor, audit janitor
//	├── messaging-layer   websocket hub, event pipeline
//	└── api-layer         http server
//
// Each long-running component is wrapped as a suture.Service (see the
// services subpackage) and added to its layer. Suture restarts a crashed
// service with exponential backoff; a layer that keeps failing backs off
// on its own without disturbing the other layers, so a flapping NATS
// connection cannot take the HTTP server down with it.
//
// Supervisor lifecycle events are logged through sutureslog, which is
// bridged into the global zerolog logger by logging.NewSlogLogger.
//
// Typical assembly:
//
//	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
//	if err != nil {
//	    return err
//	}
//	tree.AddMessagingService(services.NewHubService(hub))
//	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
//	errCh := tree.ServeBackground(ctx)
package supervisor
