// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanSummary_StripsWrapping(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "wrapping quotes",
			raw:  `"Katanya seru banget, wajib nonton!"`,
			want: "Katanya seru banget, wajib nonton!",
		},
		{
			name: "trailing comma and quote",
			raw:  `'Filmnya bagus banget kata netizen',`,
			want: "Filmnya bagus banget kata netizen",
		},
		{
			name: "code fences",
			raw:  "```\nNetizen bilang keren abis!\n```",
			want: "Netizen bilang keren abis!",
		},
		{
			name: "reasoning tags",
			raw:  "<think>summarize positively</think>Katanya masterpiece, bikin nangis!",
			want: "Katanya masterpiece, bikin nangis!",
		},
		{
			name: "clean input untouched",
			raw:  "Ceritanya mind-blowing, wajib nonton!",
			want: "Ceritanya mind-blowing, wajib nonton!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanSummary(tt.raw))
		})
	}
}

func TestCleanSummary_ShortensAtSentence(t *testing.T) {
	long := "Filmnya bagus banget kata semua orang di internet! " + strings.Repeat("Tambahan panjang sekali. ", 20)

	got := cleanSummary(long)

	assert.Equal(t, "Filmnya bagus banget kata semua orang di internet!", got)
}

func TestCleanSummary_ShortensAtLine(t *testing.T) {
	firstLine := strings.Repeat("kata tanpa tanda baca ", 8)
	long := firstLine + "\n" + strings.Repeat("baris berikutnya ", 5)

	got := cleanSummary(long)

	assert.Equal(t, strings.TrimSpace(firstLine), got)
}

func TestCleanSummary_HardCutWithoutBoundaries(t *testing.T) {
	long := strings.Repeat("x", 400)

	got := cleanSummary(long)

	assert.Equal(t, strings.Repeat("x", 150), got)
}

func TestCleanSummary_SkipsLeakedNarration(t *testing.T) {
	raw := "Okay let me think about these reviews. Filmnya seru banget kata netizen semuanya!"

	got := cleanSummary(raw)

	assert.Equal(t, "Filmnya seru banget kata netizen semuanya", got)
}

func TestCleanSummary_LeakageCheckIsExactWordMatch(t *testing.T) {
	// "lets" is not "let"; the narration check must not fire.
	raw := "Lets-go vibes banget, netizen pada suka!"

	got := cleanSummary(raw)

	assert.Equal(t, "Lets-go vibes banget, netizen pada suka!", got)
}

func TestAcceptable(t *testing.T) {
	assert.False(t, acceptable(""))
	assert.False(t, acceptable("singkat"))
	assert.False(t, acceptable(strings.Repeat("x", 10)), "length ten is still too short")
	assert.True(t, acceptable(strings.Repeat("x", 11)))
	assert.True(t, acceptable(strings.Repeat("x", 200)))
	assert.False(t, acceptable(strings.Repeat("x", 201)))
}

func TestHeuristicSummary(t *testing.T) {
	tests := []struct {
		name    string
		reviews []string
		want    string
	}{
		{
			name:    "positive majority",
			reviews: []string{"Bagus banget", "Keren dan seru", "boring dikit"},
			want:    positiveSummary,
		},
		{
			name:    "negative majority",
			reviews: []string{"Jelek", "membosankan dan mengecewakan"},
			want:    negativeSummary,
		},
		{
			name:    "tie is mixed",
			reviews: []string{"bagus tapi boring"},
			want:    mixedSummary,
		},
		{
			name:    "no sentiment words",
			reviews: []string{"film tentang perjalanan"},
			want:    mixedSummary,
		},
		{
			name:    "english lexicon",
			reviews: []string{"best movie ever, amazing acting"},
			want:    positiveSummary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, heuristicSummary(tt.reviews))
		})
	}
}
