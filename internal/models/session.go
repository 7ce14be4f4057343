// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package models

import "time"

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// RecommendationMarker opens the rendered movie-list section of an
// assistant message. History fed back into mood analysis is cut at this
// marker so past movie lists do not pollute the next judgment.
const RecommendationMarker = "**Rekomendasi:**"

// Conversation states derived from session content.
const (
	StateIdle                = "idle"
	StatePendingConfirmation = "pending_confirmation"
)

// MaxSessionMessages caps the transcript length kept per session; older
// messages are discarded oldest-first.
const MaxSessionMessages = 50

// MaxRecommendationHistory caps the accumulated dedup history per session.
const MaxRecommendationHistory = 200

// ChatMessage is one transcript entry.
type ChatMessage struct {
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// PendingOffer holds the genre proposal awaiting the user's
// confirm/deny/change reply.
type PendingOffer struct {
	Genres []string     `json:"genres"`
	Mood   MoodJudgment `json:"mood_judgment"`
}

// SessionStats aggregates per-session activity counters.
type SessionStats struct {
	Turns                 int            `json:"turns"`
	MoodCounts            map[string]int `json:"mood_counts,omitempty"`
	RecommendationsServed int            `json:"recommendations_served"`
	LastMood              string         `json:"last_mood,omitempty"`
	LastActivity          time.Time      `json:"last_activity"`
}

// Session is the per-conversation state object. It is owned by exactly
// one turn at a time; the session store serializes access.
type Session struct {
	ID                    string        `json:"id"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
	Messages              []ChatMessage `json:"messages"`
	PendingOffer          *PendingOffer `json:"pending_offer,omitempty"`
	PreferredGenres       []string      `json:"preferred_genres,omitempty"`
	DislikedGenres        []string      `json:"disliked_genres,omitempty"`
	RecommendationHistory []RankedMovie `json:"recommendation_history,omitempty"`
	Stats                 SessionStats  `json:"stats"`
}

// State reports the conversation state. A pending offer means the gate is
// waiting for a confirmation reply; otherwise idle and awaiting-mood-input
// are equivalent.
func (s *Session) State() string {
	if s.PendingOffer != nil {
		return StatePendingConfirmation
	}
	return StateIdle
}

// AppendMessage adds a transcript entry and trims to the cap.
func (s *Session) AppendMessage(msg ChatMessage) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	s.Messages = append(s.Messages, msg)
	if len(s.Messages) > MaxSessionMessages {
		s.Messages = s.Messages[len(s.Messages)-MaxSessionMessages:]
	}
	s.UpdatedAt = msg.Timestamp
}

// HistoryTitles returns the titles already recommended this session.
func (s *Session) HistoryTitles() []string {
	titles := make([]string, 0, len(s.RecommendationHistory))
	for i := range s.RecommendationHistory {
		titles = append(titles, s.RecommendationHistory[i].Title)
	}
	return titles
}

// AddRecommendations appends an accepted search's results to the
// accumulated history the retriever dedups against.
func (s *Session) AddRecommendations(movies []RankedMovie) {
	s.RecommendationHistory = append(s.RecommendationHistory, movies...)
	if len(s.RecommendationHistory) > MaxRecommendationHistory {
		s.RecommendationHistory = s.RecommendationHistory[len(s.RecommendationHistory)-MaxRecommendationHistory:]
	}
	s.Stats.RecommendationsServed += len(movies)
	s.UpdatedAt = time.Now().UTC()
}

// RecordMood updates mood statistics for one analyzed turn.
func (s *Session) RecordMood(m MoodJudgment) {
	if s.Stats.MoodCounts == nil {
		s.Stats.MoodCounts = make(map[string]int)
	}
	for _, tag := range m.DetectedMoods {
		s.Stats.MoodCounts[tag]++
	}
	if len(m.DetectedMoods) > 0 {
		s.Stats.LastMood = m.DetectedMoods[0]
	}
}
