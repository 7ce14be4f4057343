// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStateFollowsPendingOffer(t *testing.T) {
	s := &Session{ID: "s1"}
	assert.Equal(t, StateIdle, s.State())

	s.PendingOffer = &PendingOffer{Genres: []string{"Comedy"}}
	assert.Equal(t, StatePendingConfirmation, s.State())

	s.PendingOffer = nil
	assert.Equal(t, StateIdle, s.State())
}

func TestAppendMessageTrimsToCap(t *testing.T) {
	s := &Session{ID: "s1"}
	for i := 0; i < MaxSessionMessages+10; i++ {
		s.AppendMessage(ChatMessage{Role: RoleUser, Content: fmt.Sprintf("turn %d", i)})
	}

	require.Len(t, s.Messages, MaxSessionMessages)
	// Oldest messages are gone, newest kept.
	assert.Equal(t, "turn 10", s.Messages[0].Content)
	assert.Equal(t, fmt.Sprintf("turn %d", MaxSessionMessages+9), s.Messages[len(s.Messages)-1].Content)
}

func TestAppendMessageSetsTimestamp(t *testing.T) {
	s := &Session{ID: "s1"}
	s.AppendMessage(ChatMessage{Role: RoleUser, Content: "hi"})

	require.Len(t, s.Messages, 1)
	assert.False(t, s.Messages[0].Timestamp.IsZero())
	assert.Equal(t, s.Messages[0].Timestamp, s.UpdatedAt)
}

func TestHistoryTitles(t *testing.T) {
	s := &Session{
		RecommendationHistory: []RankedMovie{
			{MovieCandidate: MovieCandidate{Title: "A"}},
			{MovieCandidate: MovieCandidate{Title: "B"}},
		},
	}

	assert.Equal(t, []string{"A", "B"}, s.HistoryTitles())
}

func TestAddRecommendations_Accumulates(t *testing.T) {
	s := &Session{
		RecommendationHistory: []RankedMovie{
			{MovieCandidate: MovieCandidate{Title: "First Batch"}},
		},
	}

	s.AddRecommendations([]RankedMovie{
		{MovieCandidate: MovieCandidate{Title: "Second 1"}},
		{MovieCandidate: MovieCandidate{Title: "Second 2"}},
	})

	assert.Equal(t, []string{"First Batch", "Second 1", "Second 2"}, s.HistoryTitles())
	assert.Equal(t, 2, s.Stats.RecommendationsServed)
}

func TestAddRecommendations_CapsHistory(t *testing.T) {
	s := &Session{}
	batch := make([]RankedMovie, MaxRecommendationHistory+10)
	for i := range batch {
		batch[i] = RankedMovie{MovieCandidate: MovieCandidate{Title: "M"}}
	}

	s.AddRecommendations(batch)

	assert.Len(t, s.RecommendationHistory, MaxRecommendationHistory)
}

func TestRecordMood(t *testing.T) {
	s := &Session{}
	s.RecordMood(MoodJudgment{DetectedMoods: []string{"sedih", "sakit"}})
	s.RecordMood(MoodJudgment{DetectedMoods: []string{"sedih"}})

	assert.Equal(t, 2, s.Stats.MoodCounts["sedih"])
	assert.Equal(t, 1, s.Stats.MoodCounts["sakit"])
	assert.Equal(t, "sedih", s.Stats.LastMood)
}
