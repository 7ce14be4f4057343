// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package websocket

import (
	"context"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startHub runs a hub under a test-scoped context.
func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = hub.RunWithContext(ctx) }()
	return hub
}

// testClient builds a client without a connection; registration and
// broadcasting never touch the conn.
func testClient(hub *Hub) *Client {
	return &Client{
		id:   clientIDCounter.Add(1),
		hub:  hub,
		send: make(chan Message, 256),
	}
}

func register(t *testing.T, hub *Hub, client *Client) {
	t.Helper()
	before := hub.GetClientCount()
	hub.Register <- client
	require.Eventually(t, func() bool {
		return hub.GetClientCount() == before+1
	}, time.Second, 5*time.Millisecond)
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	assert.NotNil(t, hub.Register)
	assert.NotNil(t, hub.Unregister)
	assert.Equal(t, 256, cap(hub.broadcast))
	assert.Equal(t, 0, hub.GetClientCount())
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := startHub(t)
	client := testClient(hub)

	register(t, hub, client)

	hub.Unregister <- client
	require.Eventually(t, func() bool {
		return hub.GetClientCount() == 0
	}, time.Second, 5*time.Millisecond)

	// The hub closed the send channel on unregister.
	_, open := <-client.send
	assert.False(t, open)
}

func TestHub_UnregisterUnknownClient(t *testing.T) {
	hub := startHub(t)
	client := testClient(hub)

	// Never registered; must be a no-op, not a panic.
	hub.Unregister <- client
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, hub.GetClientCount())
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := startHub(t)

	clients := make([]*Client, 3)
	for i := range clients {
		clients[i] = testClient(hub)
		register(t, hub, clients[i])
	}

	hub.BroadcastJSON(MessageTypeMoodAnalyzed, map[string]string{"session_id": "sess-1"})

	for i, client := range clients {
		select {
		case msg := <-client.send:
			assert.Equal(t, MessageTypeMoodAnalyzed, msg.Type, "client %d", i)
			data, ok := msg.Data.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, "sess-1", data["session_id"])
		case <-time.After(time.Second):
			t.Fatalf("client %d did not receive broadcast", i)
		}
	}
}

func TestHub_DropsClientWithFullBuffer(t *testing.T) {
	hub := startHub(t)

	// Unbuffered send channel with no reader: the first broadcast
	// cannot be delivered and the client must be dropped.
	stuck := &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message)}
	register(t, hub, stuck)

	healthy := testClient(hub)
	register(t, hub, healthy)

	hub.BroadcastJSON(MessageTypeRecommendations, nil)

	require.Eventually(t, func() bool {
		return hub.GetClientCount() == 1
	}, time.Second, 5*time.Millisecond, "stuck client should be dropped")

	select {
	case msg := <-healthy.send:
		assert.Equal(t, MessageTypeRecommendations, msg.Type)
	case <-time.After(time.Second):
		t.Fatal("healthy client did not receive broadcast")
	}
}

func TestHub_BroadcastJSON_DropsWhenChannelFull(t *testing.T) {
	hub := NewHub() // not running, nothing drains the channel

	for i := 0; i < 256; i++ {
		hub.BroadcastJSON(MessageTypePing, i)
	}

	done := make(chan struct{})
	go func() {
		hub.BroadcastJSON(MessageTypePing, 256)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("BroadcastJSON blocked on a full channel")
	}
	assert.Equal(t, 256, len(hub.broadcast))
}

func TestHub_RunWithContext_Cancel(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- hub.RunWithContext(ctx) }()

	client := testClient(hub)
	hub.Register <- client
	require.Eventually(t, func() bool {
		return hub.GetClientCount() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("RunWithContext did not return after cancel")
	}

	assert.Equal(t, 0, hub.GetClientCount())
	_, open := <-client.send
	assert.False(t, open, "shutdown should close client channels")
}

func TestHub_RunWithContext_Deadline(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- hub.RunWithContext(ctx) }()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("RunWithContext did not return after deadline")
	}
}

func TestHub_ConcurrentBroadcastsAndChurn(t *testing.T) {
	hub := startHub(t)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				hub.BroadcastJSON(MessageTypePing, j)
			}
		}()
	}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client := testClient(hub)
			hub.Register <- client
			go func() {
				for range client.send {
				}
			}()
			hub.Unregister <- client
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return hub.GetClientCount() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestMarshalMessage(t *testing.T) {
	data, err := MarshalMessage(Message{
		Type: MessageTypeRecommendations,
		Data: map[string]int{"count": 5},
	})
	require.NoError(t, err)

	var decoded struct {
		Type string         `json:"type"`
		Data map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, MessageTypeRecommendations, decoded.Type)
	assert.Equal(t, 5, decoded.Data["count"])
}

func TestMessageTypeValues(t *testing.T) {
	// The event forwarder and frontend depend on these exact strings.
	assert.Equal(t, "mood_analyzed", MessageTypeMoodAnalyzed)
	assert.Equal(t, "recommendations", MessageTypeRecommendations)
	assert.Equal(t, "ping", MessageTypePing)
	assert.Equal(t, "pong", MessageTypePong)
}
