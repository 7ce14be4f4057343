// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wsTestServer upgrades inbound connections and hands them to handler.
func wsTestServer(t *testing.T, handler func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		handler(conn)
	}))
	t.Cleanup(server.Close)
	return server
}

func dialWS(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestNewClient(t *testing.T) {
	hub := NewHub()

	first := NewClient(hub, nil)
	second := NewClient(hub, nil)

	assert.Same(t, hub, first.hub)
	assert.Equal(t, 256, cap(first.send))
	assert.Greater(t, second.ID(), first.ID(), "IDs must increase monotonically")
}

func TestClientTimingConstants(t *testing.T) {
	assert.Equal(t, 10*time.Second, writeWait)
	assert.Equal(t, 60*time.Second, pongWait)
	assert.Equal(t, 54*time.Second, pingPeriod)
	assert.Equal(t, int64(4*1024), int64(maxMessageSize))
}

func TestClient_WritePumpDeliversMessages(t *testing.T) {
	received := make(chan Message, 1)
	server := wsTestServer(t, func(conn *websocket.Conn) {
		var msg Message
		if err := conn.ReadJSON(&msg); err == nil {
			received <- msg
		}
	})

	conn := dialWS(t, server)
	client := NewClient(NewHub(), conn)
	go client.writePump()
	defer close(client.send)

	client.send <- Message{Type: MessageTypeMoodAnalyzed, Data: map[string]string{"session_id": "sess-1"}}

	select {
	case msg := <-received:
		assert.Equal(t, MessageTypeMoodAnalyzed, msg.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not receive the message")
	}
}

func TestClient_WritePumpSendsCloseFrameOnChannelClose(t *testing.T) {
	closed := make(chan struct{})
	server := wsTestServer(t, func(conn *websocket.Conn) {
		// Reading returns a close error once the pump sends its frame.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsCloseError(err, websocket.CloseNoStatusReceived, websocket.CloseNormalClosure) {
					close(closed)
				}
				return
			}
		}
	})

	conn := dialWS(t, server)
	client := NewClient(NewHub(), conn)
	go client.writePump()

	close(client.send)

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("server never saw a close frame")
	}
}

func TestClient_ReadPumpAnswersTypedPing(t *testing.T) {
	server := wsTestServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteJSON(Message{Type: MessageTypePing})
		time.Sleep(200 * time.Millisecond)
	})

	hub := startHub(t)
	conn := dialWS(t, server)
	client := NewClient(hub, conn)
	register(t, hub, client)
	go client.readPump()

	select {
	case msg := <-client.send:
		assert.Equal(t, MessageTypePong, msg.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("no pong queued for typed ping")
	}
}

func TestClient_ReadPumpUnregistersOnClose(t *testing.T) {
	disconnect := make(chan struct{})
	server := wsTestServer(t, func(conn *websocket.Conn) {
		<-disconnect
	})

	hub := startHub(t)
	conn := dialWS(t, server)
	client := NewClient(hub, conn)
	register(t, hub, client)
	go client.readPump()

	require.Equal(t, 1, hub.GetClientCount())
	close(disconnect) // server handler returns, closing its side

	require.Eventually(t, func() bool {
		return hub.GetClientCount() == 0
	}, 2*time.Second, 10*time.Millisecond, "client should unregister after disconnect")
}

func TestClient_StartRoundTrip(t *testing.T) {
	pong := make(chan Message, 1)
	server := wsTestServer(t, func(conn *websocket.Conn) {
		if err := conn.WriteJSON(Message{Type: MessageTypePing}); err != nil {
			return
		}
		var msg Message
		if err := conn.ReadJSON(&msg); err == nil {
			pong <- msg
		}
	})

	hub := startHub(t)
	conn := dialWS(t, server)
	client := NewClient(hub, conn)
	register(t, hub, client)
	client.Start()

	select {
	case msg := <-pong:
		assert.Equal(t, MessageTypePong, msg.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("typed ping did not round-trip through both pumps")
	}
}
