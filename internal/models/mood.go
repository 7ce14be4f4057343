// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package models

import (
	"crypto/md5" //nolint:gosec // non-cryptographic use: short context digest
	"encoding/hex"
	"strconv"
	"strings"
)

// Polarity values for a mood judgment.
const (
	PolarityPositive = "positive"
	PolarityNeutral  = "neutral"
	PolarityNegative = "negative"
)

// Mood tags the inference engine may emit. Localized labels; the LLM
// prompt enumerates exactly this set.
var MoodTags = []string{
	"senang",
	"sedih",
	"marah",
	"cemas",
	"lelah",
	"sakit",
	"excited",
	"bosan",
	"netral",
	"frustrasi",
	"hopeful",
	"nostalgic",
	"romantic",
	"adventurous",
}

// MoodJudgment is the structured result of analyzing one user turn.
// The json tags are the wire contract with the completion model.
type MoodJudgment struct {
	DetectedMoods     []string `json:"detected_moods"`     // 1-3 tags, strongest first
	Intensity         int      `json:"intensity_score"`    // clamped to [0,100]
	Polarity          string   `json:"emotion_type"`       // positive | neutral | negative
	Summary           string   `json:"summary"`            // empathetic sentence shown to the user
	RecommendedGenres []string `json:"recommended_genres"` // 2-4 names from the genre vocabulary
	UserInput         string   `json:"user_input,omitempty"`
}

// Clone returns a deep copy. Judgments handed out from caches or shared
// tables must not alias the stored slices.
func (m MoodJudgment) Clone() MoodJudgment {
	m.DetectedMoods = append([]string(nil), m.DetectedMoods...)
	m.RecommendedGenres = append([]string(nil), m.RecommendedGenres...)
	return m
}

// ClampIntensity forces an intensity value into [0,100].
func ClampIntensity(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ContextHash digests the judgment's moods, intensity, and genres into a
// short stable token. It keys the search cache and seeds ranking jitter,
// so identical contexts reproduce identical result orderings.
func (m MoodJudgment) ContextHash() string {
	var b strings.Builder
	b.WriteString(strings.Join(m.DetectedMoods, ","))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(m.Intensity))
	b.WriteByte('-')
	b.WriteString(strings.Join(m.RecommendedGenres, ","))

	sum := md5.Sum([]byte(b.String())) //nolint:gosec // cache key, not security
	return hex.EncodeToString(sum[:])[:12]
}

// IsPolarity reports whether s is one of the legal polarity values.
func IsPolarity(s string) bool {
	switch s {
	case PolarityPositive, PolarityNeutral, PolarityNegative:
		return true
	default:
		return false
	}
}
