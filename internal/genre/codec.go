// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package genre

import "strings"

// Unknown is the placeholder name returned for IDs outside the vocabulary.
const Unknown = "Unknown"

// nameToID maps lower-cased genre names to their TMDB numeric codes.
// "sci-fi" is an accepted alias for "science fiction"; both resolve to
// the same code, and the reverse mapping always yields the canonical name.
var nameToID = map[string]int{
	"action":          28,
	"adventure":       12,
	"animation":       16,
	"comedy":          35,
	"crime":           80,
	"documentary":     99,
	"drama":           18,
	"family":          10751,
	"fantasy":         14,
	"history":         36,
	"horror":          27,
	"music":           10402,
	"mystery":         9648,
	"romance":         10749,
	"science fiction": 878,
	"sci-fi":          878,
	"thriller":        53,
	"war":             10752,
	"western":         37,
}

// idToName maps numeric codes back to canonical title-cased names.
var idToName = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// recommendable is the vocabulary the mood engine may steer toward.
// Kept in the order the prompt enumerates it.
var recommendable = []string{
	"Comedy",
	"Animation",
	"Family",
	"Romance",
	"Adventure",
	"Drama",
	"Action",
	"Thriller",
	"Fantasy",
	"Science Fiction",
	"Horror",
	"Mystery",
}

// NamesToIDs resolves genre names to numeric codes, preserving input order.
// Unknown names are dropped silently; absence is omission, not an error.
func NamesToIDs(names []string) []int {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		if id, ok := nameToID[strings.ToLower(strings.TrimSpace(name))]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// IDsToNames resolves numeric codes to canonical title-cased names,
// preserving input order. Codes outside the vocabulary map to "Unknown".
func IDsToNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := idToName[id]; ok {
			names = append(names, name)
		} else {
			names = append(names, Unknown)
		}
	}
	return names
}

// IsValid reports whether the name is part of the vocabulary, ignoring
// case and surrounding whitespace.
func IsValid(name string) bool {
	_, ok := nameToID[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Canonical returns the canonical title-cased form of a genre name, or
// the empty string when the name is not part of the vocabulary.
func Canonical(name string) string {
	id, ok := nameToID[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ""
	}
	return idToName[id]
}

// Recommendable returns the genre names the mood engine may recommend,
// in prompt order. The returned slice is a copy.
func Recommendable() []string {
	out := make([]string, len(recommendable))
	copy(out, recommendable)
	return out
}

// All returns every name the codec accepts, including aliases, in no
// particular order.
func All() []string {
	out := make([]string, 0, len(nameToID))
	for name := range nameToID {
		out = append(out, name)
	}
	return out
}
