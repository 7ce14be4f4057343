// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package review

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

const (
	// maxReviews bounds how many reviews feed one summary.
	maxReviews = 6
	// singleReviewMinLen is the shortest undelimited string treated as a
	// review rather than noise.
	singleReviewMinLen = 10
)

var delimiterSplit = regexp.MustCompile(`[;\n|]`)

// normalizeReviews coerces whatever shape the source payload carries into
// a bounded list of review strings. Producers ship reviews as JSON
// arrays, delimited blobs, or single strings; unrecognized shapes
// normalize to nothing.
func normalizeReviews(raw any) []string {
	var reviews []string

	switch v := raw.(type) {
	case nil:
	case []string:
		for _, item := range v {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				reviews = append(reviews, trimmed)
			}
		}
	case []interface{}:
		for _, item := range v {
			if item == nil {
				continue
			}
			if trimmed := strings.TrimSpace(stringify(item)); trimmed != "" {
				reviews = append(reviews, trimmed)
			}
		}
	case string:
		reviews = reviewsFromString(v)
	}

	if len(reviews) > maxReviews {
		reviews = reviews[:maxReviews]
	}
	return reviews
}

// reviewsFromString tries progressively looser interpretations: JSON
// array, "|||" delimited, [;\n|] delimited, then a single review when
// long enough to carry an opinion.
func reviewsFromString(raw string) []string {
	text := strings.TrimSpace(raw)
	if text == "" || strings.EqualFold(text, "null") {
		return nil
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		if list, ok := parsed.([]interface{}); ok {
			out := make([]string, 0, len(list))
			for _, item := range list {
				if item == nil {
					continue
				}
				if trimmed := strings.TrimSpace(stringify(item)); trimmed != "" {
					out = append(out, trimmed)
				}
			}
			return out
		}
		return []string{text}
	}

	if strings.Contains(text, "|||") {
		return nonBlank(strings.Split(text, "|||"))
	}
	if strings.ContainsAny(text, ";\n|") {
		return nonBlank(delimiterSplit.Split(text, -1))
	}
	if utf8.RuneCountInString(text) > singleReviewMinLen {
		return []string{text}
	}
	return nil
}

func stringify(item interface{}) string {
	if s, ok := item.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", item)
}

func nonBlank(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
