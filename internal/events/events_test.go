// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodvie/moodvie/internal/models"
)

func sampleJudgment() models.MoodJudgment {
	return models.MoodJudgment{
		DetectedMoods:     []string{"melancholy", "nostalgic"},
		Intensity:         72,
		Polarity:          "negative",
		Summary:           "Sounds like a heavy day.",
		RecommendedGenres: []string{"Drama", "Music"},
		UserInput:         "i miss how things used to be",
	}
}

func sampleMovies() []models.RankedMovie {
	return []models.RankedMovie{
		{
			MovieCandidate: models.MovieCandidate{
				Title:       "Interstellar",
				ExternalID:  157336,
				ReleaseYear: 2014,
				Rating:      8.4,
				GenreIDs:    []int{878, 18},
			},
			Score: 0.91,
		},
		{
			MovieCandidate: models.MovieCandidate{
				Title:       "Arrival",
				ExternalID:  329865,
				ReleaseYear: 2016,
				Rating:      7.9,
				GenreIDs:    []int{878, 9648},
			},
			Score: 0.84,
		},
	}
}

func TestNewMoodAnalyzed(t *testing.T) {
	before := time.Now().UTC()
	event := NewMoodAnalyzed("sess-1", sampleJudgment())

	assert.Equal(t, SchemaVersion, event.SchemaVersion)
	assert.Equal(t, "sess-1", event.SessionID)
	_, err := uuid.Parse(event.EventID)
	assert.NoError(t, err, "event id should be a uuid")
	assert.False(t, event.Timestamp.Before(before))

	assert.Equal(t, []string{"melancholy", "nostalgic"}, event.Moods)
	assert.Equal(t, 72, event.Intensity)
	assert.Equal(t, "negative", event.Polarity)
	assert.Equal(t, "Sounds like a heavy day.", event.Summary)
	assert.Equal(t, []string{"Drama", "Music"}, event.Genres)

	assert.Equal(t, TopicMoodAnalyzed, event.Topic())
	assert.NoError(t, event.Validate())
}

func TestNewMoodAnalyzed_DoesNotAliasJudgment(t *testing.T) {
	judgment := sampleJudgment()
	event := NewMoodAnalyzed("sess-1", judgment)

	judgment.DetectedMoods[0] = "changed"
	judgment.RecommendedGenres[0] = "changed"

	assert.Equal(t, "melancholy", event.Moods[0])
	assert.Equal(t, "Drama", event.Genres[0])
}

func TestNewMoodAnalyzed_OmitsRawUserText(t *testing.T) {
	judgment := sampleJudgment()
	event := NewMoodAnalyzed("sess-1", judgment)

	// The raw user message never reaches the bus. Only the judgment
	// derived from it does.
	assert.NotContains(t, event.Summary, judgment.UserInput)
	for _, mood := range event.Moods {
		assert.NotEqual(t, judgment.UserInput, mood)
	}
}

func TestMoodAnalyzed_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MoodAnalyzed)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*MoodAnalyzed) {},
		},
		{
			name:    "missing event id",
			mutate:  func(e *MoodAnalyzed) { e.EventID = "" },
			wantErr: "event_id",
		},
		{
			name:    "missing session id",
			mutate:  func(e *MoodAnalyzed) { e.SessionID = "" },
			wantErr: "session_id",
		},
		{
			name:    "no moods",
			mutate:  func(e *MoodAnalyzed) { e.Moods = nil },
			wantErr: "moods",
		},
		{
			name:    "bogus polarity",
			mutate:  func(e *MoodAnalyzed) { e.Polarity = "euphoric" },
			wantErr: "polarity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := NewMoodAnalyzed("sess-1", sampleJudgment())
			tt.mutate(event)

			err := event.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewRecommendationServed(t *testing.T) {
	event := NewRecommendationServed("sess-2", sampleMovies())

	assert.Equal(t, SchemaVersion, event.SchemaVersion)
	assert.Equal(t, "sess-2", event.SessionID)
	assert.Equal(t, 2, event.Count)

	require.Len(t, event.Movies, 2)
	assert.Equal(t, "Interstellar", event.Movies[0].Title)
	assert.Equal(t, 2014, event.Movies[0].Year)
	assert.Equal(t, 8.4, event.Movies[0].Rating)
	assert.Equal(t, 0.91, event.Movies[0].Score)

	assert.Equal(t, TopicRecommendationServed, event.Topic())
	assert.NoError(t, event.Validate())
}

func TestNewRecommendationServed_DistinctGenres(t *testing.T) {
	event := NewRecommendationServed("sess-2", sampleMovies())

	// Science Fiction appears on both movies but only once here.
	assert.Equal(t, []string{"Science Fiction", "Drama", "Mystery"}, event.Genres)
}

func TestNewRecommendationServed_Empty(t *testing.T) {
	event := NewRecommendationServed("sess-2", nil)

	assert.Equal(t, 0, event.Count)
	assert.Empty(t, event.Movies)
	assert.Empty(t, event.Genres)
	assert.NoError(t, event.Validate())
}

func TestRecommendationServed_Validate(t *testing.T) {
	event := NewRecommendationServed("sess-2", sampleMovies())

	event.Count = 5
	err := event.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count")

	event.Count = 2
	event.SessionID = ""
	err = event.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session_id")
}
