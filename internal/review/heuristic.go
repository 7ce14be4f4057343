// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package review

import "strings"

// Bilingual sentiment lexicons for the no-LLM fallback. Presence counts,
// not frequency.
var (
	positiveWords = []string{
		"good", "great", "amazing", "excellent", "love", "best",
		"bagus", "keren", "mantap", "seru", "recommended",
	}
	negativeWords = []string{
		"bad", "poor", "boring", "waste", "disappointing",
		"jelek", "buruk", "mengecewakan", "membosankan",
	}
)

const (
	positiveSummary = "Netizen bilang filmnya bagus banget!"
	negativeSummary = "Netizen ada yang kurang suka sih..."
	mixedSummary    = "Netizen pendapatnya beragam tentang film ini."
)

// heuristicSummary picks a canned sentence by comparing how many
// sentiment words appear across all reviews.
func heuristicSummary(reviews []string) string {
	combined := strings.ToLower(strings.Join(reviews, " "))

	positive, negative := 0, 0
	for _, w := range positiveWords {
		if strings.Contains(combined, w) {
			positive++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(combined, w) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return positiveSummary
	case negative > positive:
		return negativeSummary
	default:
		return mixedSummary
	}
}
