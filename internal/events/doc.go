// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package events carries conversation milestones over NATS JetStream.
//
// The pipeline is optional and config-gated: an embedded JetStream server
// (or an external one), a circuit-breaker-protected watermill publisher,
// and a watermill router feeding two consumers, a stats aggregator and a
// WebSocket forwarder. The Bridge adapts the publisher to the chat gate's
// fire-and-forget notification interface; nothing in the recommendation
// path ever waits on the bus.
//
// Topics are versioned subjects: mood.analyzed.v1 and
// recommendation.served.v1.
package events
