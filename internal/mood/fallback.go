// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package mood

import (
	"strings"

	"github.com/moodvie/moodvie/internal/models"
)

// fallbackRule maps keyword hits to a canned judgment. Rules are evaluated
// in order and the first match wins, so more specific situations (grief,
// sickness) must come before the broad emotional buckets.
type fallbackRule struct {
	name     string
	keywords []string
	judgment models.MoodJudgment
}

// fallbackRules is the keyword table used when the completion backend is
// unreachable or returns something unparseable. The last rule has no
// keywords and always matches.
var fallbackRules = []fallbackRule{
	{
		name:     "grief",
		keywords: []string{"meninggal", "kematian", "berduka", "duka", "wafat", "kehilangan", "died", "death", "grief"},
		judgment: models.MoodJudgment{
			DetectedMoods:     []string{"sedih", "sakit"},
			Intensity:         95,
			Polarity:          models.PolarityNegative,
			Summary:           "Turut berduka cita yang sedalam-dalamnya. Semoga diberi ketabahan dan kekuatan.",
			RecommendedGenres: []string{"Drama", "Family", "Fantasy"},
		},
	},
	{
		name:     "sickness",
		keywords: []string{"sakit", "pusing", "demam", "flu"},
		judgment: models.MoodJudgment{
			DetectedMoods:     []string{"sakit", "lelah"},
			Intensity:         70,
			Polarity:          models.PolarityNegative,
			Summary:           "Semoga lekas sembuh ya! Istirahat yang cukup dan jaga kesehatan.",
			RecommendedGenres: []string{"Comedy", "Animation", "Family"},
		},
	},
	{
		name:     "tiredness",
		keywords: []string{"capek", "lelah", "tired"},
		judgment: models.MoodJudgment{
			DetectedMoods:     []string{"lelah"},
			Intensity:         65,
			Polarity:          models.PolarityNegative,
			Summary:           "Sepertinya butuh istirahat nih. Yuk santai dengan film ringan!",
			RecommendedGenres: []string{"Comedy", "Family", "Animation"},
		},
	},
	{
		name:     "sadness",
		keywords: []string{"sedih", "sad", "galau"},
		judgment: models.MoodJudgment{
			DetectedMoods:     []string{"sedih"},
			Intensity:         60,
			Polarity:          models.PolarityNegative,
			Summary:           "Ada yang mengganjal ya? Film yang tepat bisa bantu memperbaiki mood.",
			RecommendedGenres: []string{"Comedy", "Animation", "Drama"},
		},
	},
	{
		name:     "happiness",
		keywords: []string{"senang", "happy", "gembira"},
		judgment: models.MoodJudgment{
			DetectedMoods:     []string{"senang"},
			Intensity:         80,
			Polarity:          models.PolarityPositive,
			Summary:           "Senang banget! Mood bagus nih, cocok nonton film seru!",
			RecommendedGenres: []string{"Adventure", "Comedy", "Action"},
		},
	},
	{
		name:     "anger",
		keywords: []string{"marah", "kesal", "kesel", "emosi", "angry", "benci", "sebel"},
		judgment: models.MoodJudgment{
			DetectedMoods:     []string{"marah"},
			Intensity:         75,
			Polarity:          models.PolarityNegative,
			Summary:           "Tarik napas dulu ya. Film yang seru bisa bantu melepas emosi.",
			RecommendedGenres: []string{"Action", "Thriller", "Comedy"},
		},
	},
	{
		name:     "anxiety",
		keywords: []string{"cemas", "khawatir", "gelisah", "takut", "anxious", "panik", "deg-degan"},
		judgment: models.MoodJudgment{
			DetectedMoods:     []string{"cemas"},
			Intensity:         70,
			Polarity:          models.PolarityNegative,
			Summary:           "Tenang dulu ya, semuanya akan baik-baik saja. Film yang menenangkan bisa membantu.",
			RecommendedGenres: []string{"Family", "Animation", "Comedy"},
		},
	},
	{
		name:     "boredom",
		keywords: []string{"bosan", "bosen", "gabut", "bored", "jenuh"},
		judgment: models.MoodJudgment{
			DetectedMoods:     []string{"bosan"},
			Intensity:         55,
			Polarity:          models.PolarityNegative,
			Summary:           "Lagi gabut ya? Yuk cari film seru biar nggak bosan!",
			RecommendedGenres: []string{"Adventure", "Action", "Thriller"},
		},
	},
	{
		name:     "neutral",
		keywords: nil,
		judgment: models.MoodJudgment{
			DetectedMoods:     []string{"netral"},
			Intensity:         50,
			Polarity:          models.PolarityNeutral,
			Summary:           "Baik, saya siap membantu menemukan film yang cocok untukmu!",
			RecommendedGenres: []string{"Comedy", "Drama", "Adventure"},
		},
	},
}

// fallbackJudgment classifies text with the keyword table. It always
// returns a usable judgment; the returned value never aliases table state.
func fallbackJudgment(text string) models.MoodJudgment {
	lowered := strings.ToLower(text)

	for _, rule := range fallbackRules {
		if len(rule.keywords) == 0 {
			return finishFallback(rule.judgment, text)
		}
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return finishFallback(rule.judgment, text)
			}
		}
	}

	// Unreachable while the table ends with the catch-all rule.
	return finishFallback(fallbackRules[len(fallbackRules)-1].judgment, text)
}

func finishFallback(j models.MoodJudgment, text string) models.MoodJudgment {
	out := j.Clone()
	out.UserInput = text
	return out
}
