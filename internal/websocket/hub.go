// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package websocket

import (
	"context"
	"sort"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/moodvie/moodvie/internal/logging"
	"github.com/moodvie/moodvie/internal/metrics"
)

// WebSocket message types.
const (
	MessageTypeMoodAnalyzed    = "mood_analyzed"
	MessageTypeRecommendations = "recommendations"
	MessageTypePing            = "ping"
	MessageTypePong            = "pong"
)

// Message is the wire envelope for every frame the hub sends.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// MarshalMessage encodes a message for the wire.
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// Hub maintains the set of active clients and fans broadcasts out to
// them. Lifecycle events and broadcasts arrive on channels so the hub
// goroutine is the only writer of the client set's membership.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// RunWithContext runs the hub until the context is canceled, then
// closes every client and returns ctx.Err(). Designed to run under the
// supervision tree.
//
// Selection is priority ordered. Go's select picks randomly among ready
// channels, so each priority gets its own non-blocking check: shutdown
// first, then client lifecycle, then broadcasts. Client state is always
// settled before a message fans out.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		// Priority 1: shutdown.
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		// Priority 2: client lifecycle.
		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.dropClient(client)
			continue
		default:
		}

		// Priority 3: broadcasts, or block until anything arrives.
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.dropClient(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Inc()
	logging.Info().
		Str("component", "websocket-hub").
		Int("total_clients", total).
		Msg("Client connected")
}

func (h *Hub) dropClient(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		h.removeClientLocked(client)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		logging.Info().
			Str("component", "websocket-hub").
			Int("total_clients", total).
			Msg("Client disconnected")
	}
}

// removeClientLocked closes the client's send channel and updates the
// connection gauge. Callers hold h.mu and must have checked membership;
// the map guard is what prevents a double close.
func (h *Hub) removeClientLocked(client *Client) {
	close(client.send)
	delete(h.clients, client)
	metrics.WSConnections.Dec()
}

// broadcastToClients fans one message out to every client in ID order.
// Sorted iteration keeps delivery order reproducible across runs; map
// order would reshuffle it every time. A client that cannot take the
// message immediately is dropped, a stalled reader must not hold up
// the rest.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	var toRemove []*Client
	for _, client := range clients {
		select {
		case client.send <- message:
			metrics.WSMessagesSent.Inc()
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		h.removeClientLocked(client)
		metrics.WSErrors.WithLabelValues("send_buffer_full").Inc()
		logging.Warn().
			Str("component", "websocket-hub").
			Str("message_type", message.Type).
			Msg("Dropping slow client")
	}
}

// shutdown closes all clients and logs the reason. Cancellation is the
// expected path, so nothing here logs at error level.
func (h *Hub) shutdown(ctx context.Context) {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	for _, client := range clients {
		h.removeClientLocked(client)
	}
	h.mu.Unlock()

	reason := "context_canceled"
	if ctx.Err() == context.DeadlineExceeded {
		reason = "context_deadline"
	}
	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", reason).
		Int("clients_closed", len(clients)).
		Msg("Hub stopped")
}

// BroadcastJSON queues a typed message for every connected client.
// Non-blocking: when the broadcast buffer is full the message is
// dropped, live updates are best-effort.
func (h *Hub) BroadcastJSON(messageType string, data interface{}) {
	message := Message{
		Type: messageType,
		Data: data,
	}

	select {
	case h.broadcast <- message:
	default:
		metrics.WSErrors.WithLabelValues("broadcast_buffer_full").Inc()
		logging.Warn().
			Str("component", "websocket-hub").
			Str("message_type", messageType).
			Msg("Broadcast channel full, dropping message")
	}
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
