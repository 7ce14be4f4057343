// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/moodvie/moodvie/internal/logging"
	ws "github.com/moodvie/moodvie/internal/websocket"
)

// getUpgrader builds the WebSocket upgrader with origin checking tied
// to the configured CORS origins.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates the Origin header against the
// configured CORS origins. Browsers always send Origin on WebSocket
// handshakes; a missing header means a non-browser client, which is
// rejected unless every origin is allowed.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	if h.cfg == nil {
		return true
	}

	allowed := h.cfg.Security.CORSOrigins
	for _, origin := range allowed {
		if origin == "*" {
			return true
		}
	}

	requestOrigin := r.Header.Get("Origin")
	if requestOrigin == "" {
		logging.Warn().Msg("WebSocket handshake without Origin header rejected")
		return false
	}

	for _, origin := range allowed {
		if origin == requestOrigin {
			return true
		}
	}

	logging.Warn().
		Str("origin", requestOrigin).
		Msg("WebSocket handshake from unallowed origin rejected")
	return false
}

// WebSocket upgrades the connection for live mood and recommendation events
//
// @Summary Establish WebSocket connection
// @Description Upgrades to a WebSocket carrying live mood_analyzed and recommendations_served event frames.
// @Tags Realtime
// @Success 101 {string} string "Switching Protocols"
// @Failure 403 {string} string "Origin not allowed"
// @Failure 503 {object} APIResponse "WebSocket hub not running"
// @Router /ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		logging.Warn().Msg("WebSocket connection rejected, hub not initialized")
		NewResponseWriter(w, r).ServiceUnavailable("WebSocket service unavailable")
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		logging.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register <- client
	client.Start()
}
