// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package chat

import (
	"strings"
	"unicode"
)

// verdict is the outcome of classifying a reply to a pending offer.
type verdict int

const (
	verdictUnrecognized verdict = iota
	verdictYes
	verdictNo
	verdictChange
)

// newSearchPhrases mean "find something else" and bypass confirmation
// parsing entirely. Tested once, before the confirmation rules; the
// rules below never re-test them, so overlapping words like "lain"
// cannot double-fire.
var newSearchPhrases = []string{
	"cari film lain",
	"cari lagi",
	"film lain",
	"rekomendasi lain",
	"yang lain",
	"cari yang lain",
	"cari film lainnya",
	"film lainnya",
	"rekomendasi lainnya",
	"cari lagi film",
	"cari film baru",
	"film baru",
	"rekomendasi baru",
	"cari film yang lain",
	"tolong cari",
	"bisa cari",
	"bisa cari film",
	"cari film",
	"cari film lain dong",
	"cari film lain lagi",
}

var (
	positiveKeywords = []string{"ya", "yup", "yes", "ok", "oke", "baik", "silahkan", "tampilkan", "mau", "ingin"}
	negativeKeywords = []string{"tidak", "no", "nope", "skip", "lewati", "tidak mau", "enggak"}
	changeKeywords   = []string{"ubah", "ganti", "change", "lain", "beda", "bisa", "boleh"}
	genreKeywords    = []string{"action", "comedy", "drama", "horror", "romance", "thriller", "sci-fi", "fantasy"}

	// cariConfirmWords make a short reply containing "cari" read as a
	// confirmation instead of a search request.
	cariConfirmWords = []string{"ya", "ok", "oke", "baik", "saja", "sih"}
)

// confirmRules is the ordered classification table, evaluated
// top-to-bottom, first match wins. Refusals go first so "tidak mau"
// resolves as a no despite containing the positive token "mau".
var confirmRules = []struct {
	name    string
	verdict verdict
	matches func(r reply) bool
}{
	{name: "negative", verdict: verdictNo, matches: anyKeyword(negativeKeywords)},
	{name: "positive", verdict: verdictYes, matches: anyKeyword(positiveKeywords)},
	{name: "search-as-confirmation", verdict: verdictYes, matches: cariConfirmation},
	{name: "change", verdict: verdictChange, matches: anyKeyword(changeKeywords)},
	{name: "genre", verdict: verdictChange, matches: anyKeyword(genreKeywords)},
}

// reply is a user message prepared for keyword matching.
type reply struct {
	text   string // lowered, trimmed
	tokens []string
}

func parseReply(text string) reply {
	lowered := strings.ToLower(strings.TrimSpace(text))
	return reply{text: lowered, tokens: tokenize(lowered)}
}

// tokenize splits on anything that is not a letter, digit, or hyphen,
// so "ya!" and "sci-fi?" still yield clean tokens.
func tokenize(lowered string) []string {
	return strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-'
	})
}

// hasKeyword matches single words against whole tokens and multi-word
// phrases against the raw text.
func (r reply) hasKeyword(kw string) bool {
	if strings.ContainsRune(kw, ' ') {
		return strings.Contains(r.text, kw)
	}
	for _, tok := range r.tokens {
		if tok == kw {
			return true
		}
	}
	return false
}

func anyKeyword(keywords []string) func(reply) bool {
	return func(r reply) bool {
		for _, kw := range keywords {
			if r.hasKeyword(kw) {
				return true
			}
		}
		return false
	}
}

// cariConfirmation accepts "cari" as a yes only in a short reply that
// also carries a confirmatory word, e.g. "cari saja". Longer texts with
// "cari" are search requests, which the override list already caught.
func cariConfirmation(r reply) bool {
	if !r.hasKeyword("cari") || len(r.tokens) > 3 {
		return false
	}
	for _, w := range cariConfirmWords {
		if r.hasKeyword(w) {
			return true
		}
	}
	return false
}

// isNewSearchRequest reports whether the text asks for a fresh search.
func isNewSearchRequest(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	for _, phrase := range newSearchPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// classifyConfirmation resolves a reply to a pending offer. Callers
// must rule out new-search requests first.
func classifyConfirmation(text string) verdict {
	r := parseReply(text)
	for _, rule := range confirmRules {
		if rule.matches(r) {
			return rule.verdict
		}
	}
	return verdictUnrecognized
}
