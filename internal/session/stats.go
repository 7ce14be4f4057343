// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package session

import (
	"time"

	"github.com/moodvie/moodvie/internal/models"
)

// Stats summarizes a session's usage for the stats endpoint.
type Stats struct {
	Turns                int            `json:"conversation_count"`
	TotalMessages        int            `json:"total_messages"`
	TotalRecommendations int            `json:"total_recommendations"`
	PreferredGenres      int            `json:"preferred_genres_count"`
	DislikedGenres       int            `json:"disliked_genres_count"`
	MoodCounts           map[string]int `json:"mood_counts,omitempty"`
	LastMood             string         `json:"last_mood,omitempty"`
	DurationMinutes      int            `json:"session_duration_minutes"`
	LastActivity         time.Time      `json:"last_activity"`
}

// Export is the downloadable form of a session: the full conversation
// state plus derived statistics.
type Export struct {
	ExportedAt time.Time       `json:"exported_at"`
	Session    *models.Session `json:"session"`
	Statistics Stats           `json:"statistics"`
}

// StatsFor derives statistics from a session.
func StatsFor(sess *models.Session) Stats {
	return Stats{
		Turns:                sess.Stats.Turns,
		TotalMessages:        len(sess.Messages),
		TotalRecommendations: sess.Stats.RecommendationsServed,
		PreferredGenres:      len(sess.PreferredGenres),
		DislikedGenres:       len(sess.DislikedGenres),
		MoodCounts:           sess.Stats.MoodCounts,
		LastMood:             sess.Stats.LastMood,
		DurationMinutes:      int(time.Since(sess.CreatedAt).Minutes()),
		LastActivity:         sess.Stats.LastActivity,
	}
}
