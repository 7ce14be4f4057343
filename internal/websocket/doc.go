// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

/*
Package websocket pushes live updates to connected browser clients.

The package implements a hub-and-spoke pattern over gorilla/websocket.
The Hub owns the client set and fans broadcasts out to every connection;
each Client runs a read pump (typed pings, connection health) and a
write pump (broadcasts, protocol pings) on its own goroutines.

Broadcasts never block the caller: the hub's buffered channel absorbs
bursts, and a client whose send buffer is full is dropped rather than
allowed to stall the rest.

Message types:

  - mood_analyzed: a mood inference finished for some session
  - recommendations: a recommendation batch went out
  - ping / pong: client keepalive on top of protocol-level pings

The hub runs under the supervision tree via RunWithContext and closes
every client on shutdown.
*/
package websocket
