// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/moodvie/moodvie/internal/genre"
	"github.com/moodvie/moodvie/internal/models"
)

// SchemaVersion is the current event schema version. Increment on
// breaking changes to the event payloads.
const SchemaVersion = 1

// NATS subjects. The version suffix lets consumers pin a schema.
const (
	// TopicMoodAnalyzed carries one event per mood inference.
	TopicMoodAnalyzed = "mood.analyzed.v1"

	// TopicRecommendationServed carries one event per served batch of
	// recommendations.
	TopicRecommendationServed = "recommendation.served.v1"
)

// Stream wildcard subjects covering all event topics.
var streamSubjects = []string{"mood.>", "recommendation.>"}

// ValidationError reports a missing or malformed event field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// MoodAnalyzed is published after each mood inference. It carries the
// judgment, not the raw user text.
type MoodAnalyzed struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	SessionID     string    `json:"session_id"`
	Timestamp     time.Time `json:"timestamp"`

	Moods     []string `json:"moods"`
	Intensity int      `json:"intensity"`
	Polarity  string   `json:"polarity"`
	Summary   string   `json:"summary,omitempty"`
	Genres    []string `json:"genres"`
}

// NewMoodAnalyzed builds the event for one judgment.
func NewMoodAnalyzed(sessionID string, judgment models.MoodJudgment) *MoodAnalyzed {
	return &MoodAnalyzed{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.NewString(),
		SessionID:     sessionID,
		Timestamp:     time.Now().UTC(),
		Moods:         append([]string(nil), judgment.DetectedMoods...),
		Intensity:     judgment.Intensity,
		Polarity:      judgment.Polarity,
		Summary:       judgment.Summary,
		Genres:        append([]string(nil), judgment.RecommendedGenres...),
	}
}

// Topic returns the NATS subject for this event.
func (e *MoodAnalyzed) Topic() string {
	return TopicMoodAnalyzed
}

// Validate checks required fields.
func (e *MoodAnalyzed) Validate() error {
	if e.EventID == "" {
		return &ValidationError{Field: "event_id", Message: "required"}
	}
	if e.SessionID == "" {
		return &ValidationError{Field: "session_id", Message: "required"}
	}
	if len(e.Moods) == 0 {
		return &ValidationError{Field: "moods", Message: "required"}
	}
	if !models.IsPolarity(e.Polarity) {
		return &ValidationError{Field: "polarity", Message: "unknown value"}
	}
	return nil
}

// MovieSummary is the slimmed-down movie form carried on the bus.
type MovieSummary struct {
	Title  string  `json:"title"`
	Year   int     `json:"year,omitempty"`
	Rating float64 `json:"rating"`
	Score  float64 `json:"score"`
}

// RecommendationServed is published after a batch of recommendations
// goes out to a session.
type RecommendationServed struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	SessionID     string    `json:"session_id"`
	Timestamp     time.Time `json:"timestamp"`

	Count  int            `json:"count"`
	Movies []MovieSummary `json:"movies"`
	Genres []string       `json:"genres,omitempty"`
}

// NewRecommendationServed builds the event for one served batch. Genres
// is the distinct set across the batch, in first-seen order.
func NewRecommendationServed(sessionID string, movies []models.RankedMovie) *RecommendationServed {
	summaries := make([]MovieSummary, 0, len(movies))
	var genres []string
	seen := make(map[string]struct{})
	for _, m := range movies {
		summaries = append(summaries, MovieSummary{
			Title:  m.Title,
			Year:   m.ReleaseYear,
			Rating: m.Rating,
			Score:  m.Score,
		})
		for _, name := range genre.IDsToNames(m.GenreIDs) {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			genres = append(genres, name)
		}
	}
	return &RecommendationServed{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.NewString(),
		SessionID:     sessionID,
		Timestamp:     time.Now().UTC(),
		Count:         len(summaries),
		Movies:        summaries,
		Genres:        genres,
	}
}

// Topic returns the NATS subject for this event.
func (e *RecommendationServed) Topic() string {
	return TopicRecommendationServed
}

// Validate checks required fields.
func (e *RecommendationServed) Validate() error {
	if e.EventID == "" {
		return &ValidationError{Field: "event_id", Message: "required"}
	}
	if e.SessionID == "" {
		return &ValidationError{Field: "session_id", Message: "required"}
	}
	if e.Count != len(e.Movies) {
		return &ValidationError{Field: "count", Message: "does not match movies"}
	}
	return nil
}
