// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package recommend

import (
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/moodvie/moodvie/internal/genre"
	"github.com/moodvie/moodvie/internal/logging"
	"github.com/moodvie/moodvie/internal/metrics"
	"github.com/moodvie/moodvie/internal/models"
)

// Scoring weights. Rating quality dominates, popularity and vote volume
// nudge, similarity (when present) outweighs both.
const (
	ratingWeight     = 0.7
	popularityWeight = 0.003
	voteCountCap     = 1000.0
	voteCountWeight  = 0.5

	semanticScale     = 10.0
	semanticWeight    = 0.6
	ratingBlendWeight = 0.4

	jitterSpan = 0.1

	likedBoost      = 0.5
	dislikedPenalty = 0.8
)

// Preferences are the session's genre likes and dislikes, applied only on
// personalized searches.
type Preferences struct {
	Liked    []string
	Disliked []string
}

// ScoreAndRank scores candidates and returns the top limit movies in
// descending score order. Candidates without a title or raw payload are
// dropped up front; payload presence is re-checked after ranking. The
// same candidates, flags, and contextHash always produce the same
// ordering.
func ScoreAndRank(candidates []models.MovieCandidate, limit int, personalize bool, contextHash string, useSemantic bool, prefs Preferences) []models.RankedMovie {
	valid := validCandidates(candidates)
	rng := jitterSource(contextHash)

	ranked := make([]models.RankedMovie, 0, len(valid))
	for i := range valid {
		c := valid[i]

		score := baseScore(&c, useSemantic)
		if rng != nil {
			score += (rng.Float64()*2 - 1) * jitterSpan
		}
		if personalize {
			score += preferenceAdjustment(&c, prefs)
		}

		ranked = append(ranked, models.RankedMovie{
			MovieCandidate: c,
			Score:          round2(score),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return revalidate(ranked)
}

// validCandidates drops candidates failing the integrity checks: a
// recommendable movie needs a title and its source record.
func validCandidates(candidates []models.MovieCandidate) []models.MovieCandidate {
	valid := make([]models.MovieCandidate, 0, len(candidates))
	missingTitle, missingPayload := 0, 0

	for i := range candidates {
		c := candidates[i]
		if strings.TrimSpace(c.Title) == "" {
			missingTitle++
			continue
		}
		if !c.HasRawPayload() {
			missingPayload++
			continue
		}
		valid = append(valid, c)
	}

	if missingTitle > 0 {
		metrics.CandidatesDropped.WithLabelValues("missing_title").Add(float64(missingTitle))
	}
	if missingPayload > 0 {
		metrics.CandidatesDropped.WithLabelValues("missing_payload").Add(float64(missingPayload))
	}
	if missingTitle+missingPayload > 0 {
		logging.Warn().
			Int("missing_title", missingTitle).
			Int("missing_payload", missingPayload).
			Msg("Dropped candidates failing integrity checks")
	}

	return valid
}

func baseScore(c *models.MovieCandidate, useSemantic bool) float64 {
	rating := ratingScore(c)
	if useSemantic && c.SimilarityScore != nil {
		return (*c.SimilarityScore*semanticScale)*semanticWeight + rating*ratingBlendWeight
	}
	return rating
}

func ratingScore(c *models.MovieCandidate) float64 {
	votes := math.Min(float64(c.VoteCount)/voteCountCap, 1)
	return c.Rating*ratingWeight + c.Popularity*popularityWeight + votes*voteCountWeight
}

// jitterSource seeds a deterministic random stream from the context hash
// so near-tied movies order differently per mood context but identically
// on replays. No hash, no jitter.
func jitterSource(contextHash string) *rand.Rand {
	if contextHash == "" {
		return nil
	}

	seedStr := contextHash
	if len(seedStr) > 8 {
		seedStr = seedStr[:8]
	}

	seed, err := strconv.ParseUint(seedStr, 16, 64)
	if err != nil {
		h := fnv.New64a()
		_, _ = h.Write([]byte(contextHash))
		seed = h.Sum64()
	}

	return rand.New(rand.NewSource(int64(seed))) //nolint:gosec // tie-breaking, not crypto
}

// preferenceAdjustment boosts liked-genre overlap and penalizes disliked.
func preferenceAdjustment(c *models.MovieCandidate, prefs Preferences) float64 {
	if len(prefs.Liked) == 0 && len(prefs.Disliked) == 0 {
		return 0
	}

	names := make(map[string]struct{}, len(c.GenreIDs))
	for _, name := range genre.IDsToNames(c.GenreIDs) {
		names[strings.ToLower(name)] = struct{}{}
	}

	adj := 0.0
	for _, liked := range prefs.Liked {
		if _, ok := names[strings.ToLower(liked)]; ok {
			adj += likedBoost
		}
	}
	for _, disliked := range prefs.Disliked {
		if _, ok := names[strings.ToLower(disliked)]; ok {
			adj -= dislikedPenalty
		}
	}
	return adj
}

// revalidate re-checks payload presence after ranking. Nothing between
// the first pass and here should lose it, but a recommendation without
// provenance must never reach a user.
func revalidate(ranked []models.RankedMovie) []models.RankedMovie {
	out := make([]models.RankedMovie, 0, len(ranked))
	for i := range ranked {
		if !ranked[i].HasRawPayload() {
			metrics.CandidatesDropped.WithLabelValues("missing_payload").Inc()
			logging.Warn().Str("title", ranked[i].Title).Msg("Ranked movie lost its payload, dropping")
			continue
		}
		out = append(out, ranked[i])
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
