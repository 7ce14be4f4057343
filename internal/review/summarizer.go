// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/moodvie/moodvie/internal/cache"
	"github.com/moodvie/moodvie/internal/llm"
	"github.com/moodvie/moodvie/internal/logging"
	"github.com/moodvie/moodvie/internal/metrics"
)

const operationReview = "review"

const (
	// reviewSnippetLen bounds each review quoted into the prompt, in
	// runes.
	reviewSnippetLen = 150
	// cacheKeyLen bounds the raw-input representation used as the cache
	// identity.
	cacheKeyLen = 100
)

const noReviewsMessage = "Belum ada ulasan."

// Summarizer boils a movie's reviews down to one colloquial Indonesian
// sentence. Summarize never fails: a broken backend or an unusable
// completion degrades to a keyword-count heuristic.
type Summarizer struct {
	completer llm.Completer
	cache     *cache.Cache
}

// NewSummarizer wires a summarizer against a completion backend and a
// result cache. The cache may be nil to disable summary caching.
func NewSummarizer(completer llm.Completer, store *cache.Cache) *Summarizer {
	return &Summarizer{completer: completer, cache: store}
}

// Summarize produces a one-sentence take on the reviews, whatever shape
// they arrive in. The completion is called once with no retry; the
// heuristic covers every failure mode.
func (s *Summarizer) Summarize(ctx context.Context, raw any) string {
	key := reviewCacheKey(raw)
	if s.cache != nil {
		if v, ok := s.cache.Get(cache.NamespaceReview, key); ok {
			if cached, ok := v.(string); ok {
				metrics.ReviewSummaries.WithLabelValues("cache").Inc()
				return cached
			}
		}
	}

	reviews := normalizeReviews(raw)
	if len(reviews) == 0 {
		metrics.ReviewSummaries.WithLabelValues("empty").Inc()
		return noReviewsMessage
	}

	summary, source := s.generate(ctx, reviews)

	if s.cache != nil {
		s.cache.Set(cache.NamespaceReview, key, summary)
	}
	metrics.ReviewSummaries.WithLabelValues(source).Inc()
	return summary
}

func (s *Summarizer) generate(ctx context.Context, reviews []string) (summary, source string) {
	raw, err := s.completer.Complete(ctx, llm.Request{
		Operation: operationReview,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: buildPrompt(reviews)}},
	})
	if err != nil {
		logging.Warn().Err(err).Msg("Review summarization call failed, using keyword heuristic")
		return heuristicSummary(reviews), "heuristic"
	}

	cleaned := cleanSummary(raw)
	if !acceptable(cleaned) {
		logging.Debug().
			Int("length", len(cleaned)).
			Msg("Summary outside length bounds, using keyword heuristic")
		return heuristicSummary(reviews), "heuristic"
	}
	return cleaned, "llm"
}

func buildPrompt(reviews []string) string {
	var b strings.Builder
	b.WriteString("Jadikan semua ulasan ini jadi SATU KALIMAT gaul ala netizen Indonesia (maksimal 25 kata):\n\n")
	for _, r := range reviews {
		b.WriteString("- ")
		b.WriteString(snippet(r))
		b.WriteByte('\n')
	}
	b.WriteString("\nContoh style yang diinginkan:\n")
	b.WriteString("- \"Katanya masterpiece banget, bikin nangis bombay!\"\n")
	b.WriteString("- \"Netizen bilang best movie ever, acting on point!\"\n")
	b.WriteString("- \"Ceritanya mind-blowing, wajib nonton berkali-kali!\"\n\n")
	b.WriteString("PENTING: Tulis HANYA satu kalimat tanpa kutip atau markdown!")
	return b.String()
}

func snippet(r string) string {
	runes := []rune(r)
	if len(runes) <= reviewSnippetLen {
		return r
	}
	return string(runes[:reviewSnippetLen]) + "..."
}

// reviewCacheKey derives the cache identity from a truncated
// representation of the raw input, so equal payloads share a summary
// without hashing arbitrarily large review blobs.
func reviewCacheKey(raw any) string {
	repr := fmt.Sprintf("%v", raw)
	runes := []rune(repr)
	if len(runes) > cacheKeyLen {
		runes = runes[:cacheKeyLen]
	}
	return cache.GenerateKey("review_summary", string(runes))
}
