// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package llm

import (
	"regexp"
	"strings"
)

// Local reasoning models (qwen3, deepseek-r1) leak chain-of-thought into
// completions under several tag spellings. Spans are removed first, then
// any dangling unpaired tags.
var (
	reasoningSpans = regexp.MustCompile(`(?is)<think>.*?</think>|<thinking>.*?</thinking>|<reasoning>.*?</reasoning>|<thought>.*?</thought>`)
	reasoningTags  = regexp.MustCompile(`(?i)</?(?:think|thinking|reasoning|thought)>`)
	codeFences     = regexp.MustCompile("(?i)```(?:json)?")
)

// StripReasoningTags removes reasoning-tag spans and stray tags from a
// completion.
func StripReasoningTags(s string) string {
	s = reasoningSpans.ReplaceAllString(s, "")
	s = reasoningTags.ReplaceAllString(s, "")
	return s
}

// StripCodeFences removes markdown code-fence markers from a completion.
func StripCodeFences(s string) string {
	return codeFences.ReplaceAllString(s, "")
}

// CleanResponse applies the standard response hygiene: reasoning spans
// out, fences out, whitespace trimmed.
func CleanResponse(s string) string {
	return strings.TrimSpace(StripCodeFences(StripReasoningTags(s)))
}
