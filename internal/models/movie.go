// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package models

import (
	"strconv"
	"strings"
)

// MovieCandidate is a catalog record under consideration for
// recommendation. RawPayload carries the untouched store record; a
// candidate without it is never recommendable (the provenance check).
type MovieCandidate struct {
	Title           string                 `json:"title"`
	OriginalTitle   string                 `json:"original_title,omitempty"`
	ExternalID      int64                  `json:"external_id"` // primary dedup key
	ReleaseYear     int                    `json:"release_year,omitempty"`
	Rating          float64                `json:"rating"` // vote average, 0-10
	Popularity      float64                `json:"popularity"`
	VoteCount       int                    `json:"vote_count"`
	GenreIDs        []int                  `json:"genre_ids"`
	Overview        string                 `json:"overview,omitempty"`
	PosterURL       string                 `json:"poster_url,omitempty"`
	TrailerURL      string                 `json:"trailer_url,omitempty"`
	SimilarityScore *float64               `json:"similarity_score,omitempty"` // cosine-like, [0,1]
	RawPayload      map[string]interface{} `json:"raw_payload"`
}

// RankedMovie is a scored candidate ready for presentation.
type RankedMovie struct {
	MovieCandidate
	Score         float64 `json:"score"`
	ReviewSummary string  `json:"review_summary,omitempty"`
}

// HasRawPayload reports whether the candidate carries its source record.
func (c *MovieCandidate) HasRawPayload() bool {
	return c.RawPayload != nil
}

// CandidateFromRecord decodes an opaque store record into a typed
// candidate. Records come from heterogeneous producers (JSON seeds,
// DuckDB rows), so every field read tolerates missing keys and numeric
// type drift. The record itself is retained as the raw payload.
func CandidateFromRecord(record map[string]interface{}, similarity *float64) MovieCandidate {
	c := MovieCandidate{
		Title:           asString(record["title"]),
		OriginalTitle:   asString(record["original_title"]),
		Rating:          asFloat(record["vote_average"]),
		Popularity:      asFloat(record["popularity"]),
		VoteCount:       asInt(record["vote_count"]),
		GenreIDs:        asIntSlice(record["genre_ids"]),
		Overview:        asString(record["overview"]),
		PosterURL:       asString(record["poster_url"]),
		TrailerURL:      asString(record["trailer_url"]),
		SimilarityScore: similarity,
		RawPayload:      record,
	}
	c.ExternalID = deriveExternalID(record)
	c.ReleaseYear = yearFromDate(asString(record["release_date"]))
	return c
}

// deriveExternalID finds the external movie ID under any of the keys the
// upstream data sets have used.
func deriveExternalID(record map[string]interface{}) int64 {
	for _, key := range []string{"tmdb_id", "external_id", "id"} {
		if v, ok := record[key]; ok {
			if id := asInt64(v); id != 0 {
				return id
			}
		}
	}
	return 0
}

// yearFromDate extracts the year from a YYYY-MM-DD release date.
// Returns 0 when the date is absent or unparseable.
func yearFromDate(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func asInt(v interface{}) int {
	return int(asInt64(v))
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	case float32:
		return int64(n)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

func asIntSlice(v interface{}) []int {
	switch s := v.(type) {
	case []int:
		return s
	case []int32:
		out := make([]int, len(s))
		for i, n := range s {
			out[i] = int(n)
		}
		return out
	case []int64:
		out := make([]int, len(s))
		for i, n := range s {
			out[i] = int(n)
		}
		return out
	case []interface{}:
		out := make([]int, 0, len(s))
		for _, n := range s {
			out = append(out, asInt(n))
		}
		return out
	default:
		return nil
	}
}
