// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/moodvie/moodvie/internal/cache"
	"github.com/moodvie/moodvie/internal/catalog"
	"github.com/moodvie/moodvie/internal/config"
	"github.com/moodvie/moodvie/internal/embedding"
	"github.com/moodvie/moodvie/internal/genre"
	"github.com/moodvie/moodvie/internal/logging"
	"github.com/moodvie/moodvie/internal/metrics"
	"github.com/moodvie/moodvie/internal/models"
)

const (
	defaultCandidateLimit = 100
	defaultResultCount    = 5
)

// Retriever fetches, dedups, and ranks movie candidates for a mood
// context. It is safe for concurrent use.
type Retriever struct {
	store          catalog.Store
	encoder        embedding.Encoder
	cache          *cache.Cache
	candidateLimit int
	resultCount    int
}

// NewRetriever wires a retriever against the catalog. encoder may be nil
// to disable semantic retrieval; results may be nil to disable the search
// cache.
func NewRetriever(store catalog.Store, encoder embedding.Encoder, results *cache.Cache, cfg config.SearchConfig) *Retriever {
	candidateLimit := cfg.CandidateLimit
	if candidateLimit <= 0 {
		candidateLimit = defaultCandidateLimit
	}
	resultCount := cfg.ResultCount
	if resultCount <= 0 {
		resultCount = defaultResultCount
	}

	return &Retriever{
		store:          store,
		encoder:        encoder,
		cache:          results,
		candidateLimit: candidateLimit,
		resultCount:    resultCount,
	}
}

// searchKey is the cache identity of one search. Genres are sorted and
// lowercased by the caller so equivalent searches share an entry.
type searchKey struct {
	Genres      []string `json:"genres"`
	Limit       int      `json:"limit"`
	ContextHash string   `json:"context_hash"`
	Semantic    bool     `json:"semantic"`
}

// SearchByGenres retrieves and ranks up to limit movies for the given
// genre names. Retrieval never fails upward: any error degrades to the
// next-simpler path and ultimately to an empty list.
//
// Personalized searches bypass the cache in both directions since their
// scores depend on session preferences.
func (r *Retriever) SearchByGenres(ctx context.Context, sess *models.Session, genres []string, limit int, personalize bool, contextHash, queryText string) []models.RankedMovie {
	if limit <= 0 {
		limit = r.resultCount
	}

	genreIDs := genre.NamesToIDs(genres)
	if len(genreIDs) == 0 {
		logging.Warn().Strs("genres", genres).Msg("No searchable genres resolved")
		return []models.RankedMovie{}
	}

	useSemantic := r.encoder != nil && strings.TrimSpace(queryText) != ""
	key := searchCacheKey(genres, limit, contextHash, useSemantic)

	if !personalize && r.cache != nil {
		if v, ok := r.cache.Get(cache.NamespaceSearch, key); ok {
			if ranked, ok := v.([]models.RankedMovie); ok {
				return append([]models.RankedMovie(nil), ranked...)
			}
		}
	}

	candidates := r.fetchCandidates(ctx, genreIDs, queryText, useSemantic)
	if len(candidates) == 0 {
		return []models.RankedMovie{}
	}

	candidates = dedupAgainstHistory(candidates, sess, limit)

	ranked := ScoreAndRank(candidates, limit, personalize, contextHash, useSemantic, preferencesFor(sess))

	if !personalize && r.cache != nil && len(ranked) > 0 {
		r.cache.Set(cache.NamespaceSearch, key, append([]models.RankedMovie(nil), ranked...))
	}

	return ranked
}

// fetchCandidates tries semantic retrieval first when a query text and
// encoder are available, falling back to the plain genre filter.
func (r *Retriever) fetchCandidates(ctx context.Context, genreIDs []int, queryText string, useSemantic bool) []models.MovieCandidate {
	if useSemantic {
		candidates, err := r.semanticCandidates(ctx, genreIDs, queryText)
		if err == nil {
			return candidates
		}
		logging.Warn().Err(err).Msg("Semantic retrieval failed, falling back to genre filter")
	}

	candidates, err := r.store.FilterSearch(ctx, genreIDs, r.candidateLimit)
	if err != nil {
		logging.Warn().Err(err).Msg("Genre filter retrieval failed")
		return []models.MovieCandidate{}
	}
	return candidates
}

func (r *Retriever) semanticCandidates(ctx context.Context, genreIDs []int, queryText string) ([]models.MovieCandidate, error) {
	vector, err := r.encoder.EncodeOne(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	candidates, err := r.store.SimilaritySearch(ctx, vector, genreIDs, r.candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	return candidates, nil
}

// dedupAgainstHistory drops candidates already recommended this session.
// The guard: when the pool had at least limit candidates and dedup would
// leave fewer, repeats are kept rather than returning a short list. A pool
// that was already under limit dedups unconditionally.
func dedupAgainstHistory(candidates []models.MovieCandidate, sess *models.Session, limit int) []models.MovieCandidate {
	if sess == nil || len(sess.RecommendationHistory) == 0 {
		return candidates
	}

	seen := make(map[string]struct{}, len(sess.RecommendationHistory))
	for _, title := range sess.HistoryTitles() {
		seen[strings.ToLower(title)] = struct{}{}
	}

	fresh := make([]models.MovieCandidate, 0, len(candidates))
	for i := range candidates {
		if _, dup := seen[strings.ToLower(candidates[i].Title)]; dup {
			continue
		}
		fresh = append(fresh, candidates[i])
	}

	if len(candidates) >= limit && len(fresh) < limit {
		logging.Debug().
			Int("fresh", len(fresh)).
			Int("limit", limit).
			Msg("History dedup would starve the pool, keeping repeats")
		return candidates
	}

	if dropped := len(candidates) - len(fresh); dropped > 0 {
		metrics.CandidatesDropped.WithLabelValues("history_dedup").Add(float64(dropped))
	}
	return fresh
}

func preferencesFor(sess *models.Session) Preferences {
	if sess == nil {
		return Preferences{}
	}
	return Preferences{Liked: sess.PreferredGenres, Disliked: sess.DislikedGenres}
}

func searchCacheKey(genres []string, limit int, contextHash string, semantic bool) string {
	sorted := make([]string, len(genres))
	for i, g := range genres {
		sorted[i] = strings.ToLower(strings.TrimSpace(g))
	}
	sort.Strings(sorted)

	return cache.GenerateKey("search", searchKey{
		Genres:      sorted,
		Limit:       limit,
		ContextHash: contextHash,
		Semantic:    semantic,
	})
}
