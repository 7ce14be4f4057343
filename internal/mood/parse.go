// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package mood

import (
	"errors"
	"fmt"
	"math"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/moodvie/moodvie/internal/llm"
	"github.com/moodvie/moodvie/internal/models"
)

var (
	errNoObject      = errors.New("no JSON object in completion")
	errMissingFields = errors.New("judgment missing required fields")
)

// parseJudgment turns a raw completion into a validated judgment. Local
// models wrap their JSON in fences, chatter, and reasoning tags, so the
// object is cut out of the cleaned text before decoding.
func parseJudgment(raw string) (models.MoodJudgment, error) {
	cleaned := llm.CleanResponse(raw)

	span, ok := extractObject(cleaned)
	if !ok {
		return models.MoodJudgment{}, errNoObject
	}

	judgment, err := decodeJudgment(span)
	if err == nil {
		return judgment, nil
	}

	// The first balanced span can be a fragment of leaked reasoning.
	// Retry from the last opening brace, where the actual answer tends
	// to sit.
	if idx := strings.LastIndex(cleaned, "{"); idx > 0 {
		if retry, ok := extractObject(cleaned[idx:]); ok && retry != span {
			if judgment, rerr := decodeJudgment(retry); rerr == nil {
				return judgment, nil
			}
		}
	}

	return models.MoodJudgment{}, err
}

// extractObject returns the first balanced {...} span, tracking string
// literals so braces inside values do not break the count.
func extractObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// wireJudgment mirrors the completion contract with pointer fields so a
// missing key is distinguishable from a zero value.
type wireJudgment struct {
	DetectedMoods     []string `json:"detected_moods"`
	Intensity         *float64 `json:"intensity_score"`
	Polarity          *string  `json:"emotion_type"`
	Summary           *string  `json:"summary"`
	RecommendedGenres []string `json:"recommended_genres"`
}

func decodeJudgment(span string) (models.MoodJudgment, error) {
	var wire wireJudgment
	if err := json.Unmarshal([]byte(span), &wire); err != nil {
		return models.MoodJudgment{}, fmt.Errorf("decode judgment: %w", err)
	}

	moods := trimNonEmpty(wire.DetectedMoods)
	if len(moods) == 0 {
		return models.MoodJudgment{}, fmt.Errorf("%w: detected_moods", errMissingFields)
	}
	if wire.Intensity == nil {
		return models.MoodJudgment{}, fmt.Errorf("%w: intensity_score", errMissingFields)
	}
	if wire.Polarity == nil {
		return models.MoodJudgment{}, fmt.Errorf("%w: emotion_type", errMissingFields)
	}
	polarity := strings.ToLower(strings.TrimSpace(*wire.Polarity))
	if !models.IsPolarity(polarity) {
		return models.MoodJudgment{}, fmt.Errorf("invalid emotion_type %q", *wire.Polarity)
	}
	if wire.Summary == nil || strings.TrimSpace(*wire.Summary) == "" {
		return models.MoodJudgment{}, fmt.Errorf("%w: summary", errMissingFields)
	}
	genres := trimNonEmpty(wire.RecommendedGenres)
	if len(genres) == 0 {
		return models.MoodJudgment{}, fmt.Errorf("%w: recommended_genres", errMissingFields)
	}

	return models.MoodJudgment{
		DetectedMoods:     moods,
		Intensity:         models.ClampIntensity(int(math.Round(*wire.Intensity))),
		Polarity:          polarity,
		Summary:           strings.TrimSpace(*wire.Summary),
		RecommendedGenres: genres,
	}, nil
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
