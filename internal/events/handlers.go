// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package events

import (
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	json "github.com/goccy/go-json"

	"github.com/moodvie/moodvie/internal/logging"
	"github.com/moodvie/moodvie/internal/metrics"
)

// Broadcaster pushes event payloads to connected WebSocket clients.
// Satisfied by the websocket hub.
type Broadcaster interface {
	BroadcastJSON(messageType string, data interface{})
}

// StatsSnapshot is a point-in-time view of the aggregated event
// counters, exposed through the admin diagnostics endpoint.
type StatsSnapshot struct {
	MoodEvents           int64            `json:"mood_events"`
	RecommendationEvents int64            `json:"recommendation_events"`
	MoviesServed         int64            `json:"movies_served"`
	MoodCounts           map[string]int64 `json:"mood_counts,omitempty"`
	GenreCounts          map[string]int64 `json:"genre_counts,omitempty"`
	LastEventAt          time.Time        `json:"last_event_at,omitzero"`
}

// StatsHandler aggregates event traffic into in-memory counters.
// Malformed payloads are counted and acked; redelivering them cannot
// make them parse.
type StatsHandler struct {
	mu sync.RWMutex

	moodEvents           int64
	recommendationEvents int64
	moviesServed         int64
	moodCounts           map[string]int64
	genreCounts          map[string]int64
	lastEventAt          time.Time
}

// NewStatsHandler creates an empty aggregator.
func NewStatsHandler() *StatsHandler {
	return &StatsHandler{
		moodCounts:  make(map[string]int64),
		genreCounts: make(map[string]int64),
	}
}

// HandleMoodAnalyzed consumes a mood.analyzed.v1 message.
func (h *StatsHandler) HandleMoodAnalyzed(msg *message.Message) error {
	var event MoodAnalyzed
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		logging.Warn().
			Err(err).
			Str("component", "events").
			Str("handler", "stats").
			Str("message_id", msg.UUID).
			Msg("Discarding malformed mood event")
		metrics.EventsProcessed.WithLabelValues("stats", "malformed").Inc()
		return nil
	}
	if err := event.Validate(); err != nil {
		logging.Warn().
			Err(err).
			Str("component", "events").
			Str("handler", "stats").
			Str("event_id", event.EventID).
			Msg("Discarding invalid mood event")
		metrics.EventsProcessed.WithLabelValues("stats", "invalid").Inc()
		return nil
	}

	h.mu.Lock()
	h.moodEvents++
	for _, mood := range event.Moods {
		h.moodCounts[mood]++
	}
	if event.Timestamp.After(h.lastEventAt) {
		h.lastEventAt = event.Timestamp
	}
	h.mu.Unlock()

	metrics.EventsProcessed.WithLabelValues("stats", "success").Inc()
	return nil
}

// HandleRecommendationServed consumes a recommendation.served.v1 message.
func (h *StatsHandler) HandleRecommendationServed(msg *message.Message) error {
	var event RecommendationServed
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		logging.Warn().
			Err(err).
			Str("component", "events").
			Str("handler", "stats").
			Str("message_id", msg.UUID).
			Msg("Discarding malformed recommendation event")
		metrics.EventsProcessed.WithLabelValues("stats", "malformed").Inc()
		return nil
	}
	if err := event.Validate(); err != nil {
		logging.Warn().
			Err(err).
			Str("component", "events").
			Str("handler", "stats").
			Str("event_id", event.EventID).
			Msg("Discarding invalid recommendation event")
		metrics.EventsProcessed.WithLabelValues("stats", "invalid").Inc()
		return nil
	}

	h.mu.Lock()
	h.recommendationEvents++
	h.moviesServed += int64(event.Count)
	for _, genre := range event.Genres {
		h.genreCounts[genre]++
	}
	if event.Timestamp.After(h.lastEventAt) {
		h.lastEventAt = event.Timestamp
	}
	h.mu.Unlock()

	metrics.EventsProcessed.WithLabelValues("stats", "success").Inc()
	return nil
}

// Snapshot returns a copy of the current counters.
func (h *StatsHandler) Snapshot() StatsSnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	snap := StatsSnapshot{
		MoodEvents:           h.moodEvents,
		RecommendationEvents: h.recommendationEvents,
		MoviesServed:         h.moviesServed,
		LastEventAt:          h.lastEventAt,
	}
	if len(h.moodCounts) > 0 {
		snap.MoodCounts = make(map[string]int64, len(h.moodCounts))
		for k, v := range h.moodCounts {
			snap.MoodCounts[k] = v
		}
	}
	if len(h.genreCounts) > 0 {
		snap.GenreCounts = make(map[string]int64, len(h.genreCounts))
		for k, v := range h.genreCounts {
			snap.GenreCounts[k] = v
		}
	}
	return snap
}

// Forwarder relays events to WebSocket clients so dashboards update
// live. Delivery is best-effort; the handler never errors because a
// dropped broadcast is not worth a redelivery.
type Forwarder struct {
	hub Broadcaster
}

// NewForwarder creates a forwarder backed by the given hub.
func NewForwarder(hub Broadcaster) *Forwarder {
	return &Forwarder{hub: hub}
}

// HandleMoodAnalyzed forwards a mood.analyzed.v1 message.
func (f *Forwarder) HandleMoodAnalyzed(msg *message.Message) error {
	var event MoodAnalyzed
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		metrics.EventsProcessed.WithLabelValues("websocket", "malformed").Inc()
		return nil
	}

	f.hub.BroadcastJSON("mood_analyzed", event)
	metrics.EventsProcessed.WithLabelValues("websocket", "success").Inc()
	return nil
}

// HandleRecommendationServed forwards a recommendation.served.v1 message.
func (f *Forwarder) HandleRecommendationServed(msg *message.Message) error {
	var event RecommendationServed
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		metrics.EventsProcessed.WithLabelValues("websocket", "malformed").Inc()
		return nil
	}

	f.hub.BroadcastJSON("recommendations", event)
	metrics.EventsProcessed.WithLabelValues("websocket", "success").Inc()
	return nil
}
