// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampIntensity(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  int
	}{
		{name: "above range", input: 150, want: 100},
		{name: "below range", input: -20, want: 0},
		{name: "upper bound", input: 100, want: 100},
		{name: "lower bound", input: 0, want: 0},
		{name: "in range", input: 65, want: 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampIntensity(tt.input))
		})
	}
}

func TestContextHashDeterministic(t *testing.T) {
	j := MoodJudgment{
		DetectedMoods:     []string{"lelah"},
		Intensity:         65,
		RecommendedGenres: []string{"Comedy", "Family", "Animation"},
	}

	first := j.ContextHash()
	second := j.ContextHash()

	assert.Equal(t, first, second)
	assert.Len(t, first, 12)
}

func TestContextHashVariesWithContent(t *testing.T) {
	base := MoodJudgment{
		DetectedMoods:     []string{"senang"},
		Intensity:         80,
		RecommendedGenres: []string{"Adventure", "Comedy"},
	}

	changedMood := base
	changedMood.DetectedMoods = []string{"sedih"}

	changedIntensity := base
	changedIntensity.Intensity = 30

	assert.NotEqual(t, base.ContextHash(), changedMood.ContextHash())
	assert.NotEqual(t, base.ContextHash(), changedIntensity.ContextHash())
}

func TestIsPolarity(t *testing.T) {
	assert.True(t, IsPolarity(PolarityPositive))
	assert.True(t, IsPolarity(PolarityNeutral))
	assert.True(t, IsPolarity(PolarityNegative))
	assert.False(t, IsPolarity("positif"))
	assert.False(t, IsPolarity(""))
}

func TestMoodJudgmentClone(t *testing.T) {
	original := MoodJudgment{
		DetectedMoods:     []string{"sedih", "lelah"},
		Intensity:         60,
		Polarity:          PolarityNegative,
		Summary:           "Ada yang mengganjal ya?",
		RecommendedGenres: []string{"Comedy", "Animation"},
	}

	clone := original.Clone()
	clone.DetectedMoods[0] = "senang"
	clone.RecommendedGenres[0] = "Horror"

	assert.Equal(t, "sedih", original.DetectedMoods[0])
	assert.Equal(t, "Comedy", original.RecommendedGenres[0])
	assert.Equal(t, original.Intensity, clone.Intensity)
	assert.Equal(t, original.Summary, clone.Summary)
}
