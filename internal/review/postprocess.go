// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package review

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/moodvie/moodvie/internal/llm"
)

const (
	// minSummaryLen / maxSummaryLen bound an acceptable one-liner, in
	// runes, exclusive below and inclusive above.
	minSummaryLen = 10
	maxSummaryLen = 200
	// truncatedSummaryLen is the hard cut when no sentence or line
	// boundary helps.
	truncatedSummaryLen = 150
)

var (
	leadingQuotes  = regexp.MustCompile(`^["']+`)
	trailingQuotes = regexp.MustCompile(`[,"']+$`)
	firstSentence  = regexp.MustCompile(`^[^.!?]+[.!?]`)
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
)

// leakageWords flag a completion that starts with chain-of-thought
// narration instead of the summary. Matched exactly against the first
// three whitespace-split words.
var leakageWords = []string{"okay", "let", "tackle", "user", "wants", "reviews", "combine"}

// cleanSummary scrubs a raw completion down to the one-liner: reasoning
// tags and fences out, wrapping quotes off, overlong text cut at a
// sentence, line, or rune boundary, leaked narration skipped.
func cleanSummary(raw string) string {
	summary := llm.StripReasoningTags(strings.TrimSpace(raw))
	summary = strings.TrimSpace(llm.StripCodeFences(summary))
	summary = trimWrappingQuotes(summary)

	if utf8.RuneCountInString(summary) > maxSummaryLen {
		summary = shorten(summary)
	}

	return skipLeakedNarration(summary)
}

// acceptable reports whether a cleaned summary is worth showing.
func acceptable(summary string) bool {
	n := utf8.RuneCountInString(summary)
	return n > minSummaryLen && n <= maxSummaryLen
}

func trimWrappingQuotes(s string) string {
	s = leadingQuotes.ReplaceAllString(s, "")
	return trailingQuotes.ReplaceAllString(s, "")
}

// shorten cuts an overlong summary at the first sentence end, else the
// first line when it fits, else a hard rune cut.
func shorten(summary string) string {
	if m := firstSentence.FindString(summary); m != "" {
		return strings.TrimSpace(m)
	}

	firstLine := strings.TrimSpace(strings.SplitN(summary, "\n", 2)[0])
	if n := utf8.RuneCountInString(firstLine); n > 0 && n <= maxSummaryLen {
		return firstLine
	}

	runes := []rune(summary)
	return strings.TrimSpace(string(runes[:truncatedSummaryLen]))
}

// skipLeakedNarration rescans for the first substantial sentence that
// does not open with narration words when the summary itself does.
func skipLeakedNarration(summary string) string {
	if !startsWithLeakage(summary) {
		return summary
	}

	for _, sentence := range sentenceSplit.Split(summary, -1) {
		sentence = strings.TrimSpace(sentence)
		if utf8.RuneCountInString(sentence) > 20 && !startsWithLeakage(sentence) {
			return sentence
		}
	}
	return summary
}

func startsWithLeakage(s string) bool {
	words := strings.Fields(strings.ToLower(s))
	if len(words) > 3 {
		words = words[:3]
	}
	for _, w := range words {
		for _, kw := range leakageWords {
			if w == kw {
				return true
			}
		}
	}
	return false
}
