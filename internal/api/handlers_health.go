// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package api

import (
	"net/http"
	"time"
)

// serviceVersion is reported by the health endpoint.
const serviceVersion = "1.0.0"

// HealthStatus summarizes service health for the full health endpoint.
type HealthStatus struct {
	Status           string  `json:"status"`
	Mode             string  `json:"mode"`
	Version          string  `json:"version"`
	CatalogConnected bool    `json:"catalog_connected"`
	EventsConnected  *bool   `json:"events_connected,omitempty"`
	WebsocketClients int     `json:"websocket_clients"`
	Uptime           float64 `json:"uptime"`
}

// Health reports overall service health
//
// @Summary Health check
// @Description Returns service health including catalog connectivity, event pipeline state, connected WebSocket clients, and uptime.
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	// nil catalog means the store never came up
	catalogConnected := h.catalog != nil && h.catalog.Ping(r.Context()) == nil

	// The event pipeline is optional; mode distinguishes deployments
	// with the embedded NATS broker from plain HTTP-only ones.
	mode := "standalone"
	var eventsConnected *bool
	if h.pipeline != nil {
		mode = "events"
		healthy := h.pipeline.IsHealthy()
		eventsConnected = &healthy
	}

	status := "healthy"
	if !catalogConnected {
		status = "degraded"
	} else if eventsConnected != nil && !*eventsConnected {
		status = "degraded"
	}

	clients := 0
	if h.hub != nil {
		clients = h.hub.GetClientCount()
	}

	rw.Success(HealthStatus{
		Status:           status,
		Mode:             mode,
		Version:          serviceVersion,
		CatalogConnected: catalogConnected,
		EventsConnected:  eventsConnected,
		WebsocketClients: clients,
		Uptime:           time.Since(h.startTime).Seconds(),
	})
}

// HealthLive answers liveness probes
//
// @Summary Kubernetes liveness probe
// @Description Returns 200 OK if the process is alive, regardless of external dependencies.
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady answers readiness probes
//
// @Summary Kubernetes readiness probe
// @Description Returns 200 OK only when the catalog is reachable and, if enabled, the event pipeline is connected. Returns 503 otherwise.
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse "Service is ready"
// @Failure 503 {object} APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.catalog == nil || h.catalog.Ping(r.Context()) != nil {
		rw.ServiceUnavailable("Catalog is not reachable")
		return
	}
	if h.pipeline != nil && !h.pipeline.IsHealthy() {
		rw.ServiceUnavailable("Event pipeline is not connected")
		return
	}

	rw.Success(map[string]interface{}{
		"ready":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}
