// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	json "github.com/goccy/go-json"

	"github.com/moodvie/moodvie/internal/logging"
	"github.com/moodvie/moodvie/internal/models"
)

// messagePublisher is the slice of Publisher the bridge needs.
type messagePublisher interface {
	Publish(ctx context.Context, topic string, msg *message.Message) error
}

// event is anything the bridge can put on the bus.
type event interface {
	Topic() string
}

// Bridge adapts the publisher to the chat engine's fire-and-forget
// notification interface. Events are built synchronously so they see
// the session state at call time, then published from a goroutine so
// the conversation never waits on the bus.
type Bridge struct {
	publisher messagePublisher
}

// NewBridge creates a bridge over the given publisher.
func NewBridge(publisher messagePublisher) *Bridge {
	return &Bridge{publisher: publisher}
}

// MoodAnalyzed publishes a mood.analyzed.v1 event.
func (b *Bridge) MoodAnalyzed(sessionID string, judgment models.MoodJudgment) {
	b.dispatch(NewMoodAnalyzed(sessionID, judgment))
}

// RecommendationsServed publishes a recommendation.served.v1 event.
func (b *Bridge) RecommendationsServed(sessionID string, movies []models.RankedMovie) {
	b.dispatch(NewRecommendationServed(sessionID, movies))
}

func (b *Bridge) dispatch(e event) {
	go func() {
		msg, err := encode(e)
		if err != nil {
			logging.Error().
				Err(err).
				Str("component", "events").
				Str("topic", e.Topic()).
				Msg("Failed to encode event")
			return
		}

		if err := b.publisher.Publish(context.Background(), e.Topic(), msg); err != nil {
			logging.Warn().
				Err(err).
				Str("component", "events").
				Str("topic", e.Topic()).
				Msg("Failed to publish event")
		}
	}()
}

// encode serializes an event into a watermill message.
func encode(e event) (*message.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return message.NewMessage(watermill.NewUUID(), payload), nil
}
