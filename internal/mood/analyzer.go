// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package mood

import (
	"context"
	"strings"
	"time"

	"github.com/moodvie/moodvie/internal/cache"
	"github.com/moodvie/moodvie/internal/config"
	"github.com/moodvie/moodvie/internal/llm"
	"github.com/moodvie/moodvie/internal/logging"
	"github.com/moodvie/moodvie/internal/metrics"
	"github.com/moodvie/moodvie/internal/models"
)

const operationMood = "mood"

const (
	defaultAttempts = 3
	defaultBackoff  = time.Second
)

// Analyzer turns free-form user text into mood judgments. LLM inference is
// the primary path; the keyword fallback guarantees Analyze always
// produces something rankable.
type Analyzer struct {
	completer llm.Completer
	cache     *cache.Cache
	attempts  int
	backoff   time.Duration
}

// NewAnalyzer wires an analyzer against a completion backend and a result
// cache. The cache may be nil to disable judgment caching.
func NewAnalyzer(completer llm.Completer, store *cache.Cache, cfg config.LLMConfig) *Analyzer {
	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &Analyzer{
		completer: completer,
		cache:     store,
		attempts:  attempts,
		backoff:   backoff,
	}
}

// Analyze classifies one user turn. It never fails: transport errors,
// breaker trips, and malformed completions all degrade to the keyword
// fallback. Judgments for history-free turns are cached; turns with
// conversation context are always inferred fresh because the same text can
// mean something different mid-conversation.
func (a *Analyzer) Analyze(ctx context.Context, text string, history []models.ChatMessage) models.MoodJudgment {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		metrics.MoodInferences.WithLabelValues("fallback").Inc()
		return fallbackJudgment(trimmed)
	}

	cacheable := a.cache != nil && len(history) == 0
	var key string
	if cacheable {
		key = cache.GenerateKey(operationMood, trimmed)
		if v, ok := a.cache.Get(cache.NamespaceMood, key); ok {
			if cached, ok := v.(models.MoodJudgment); ok {
				metrics.MoodInferences.WithLabelValues("cache").Inc()
				return cached.Clone()
			}
		}
	}

	raw, err := a.complete(ctx, buildMessages(trimmed, history))
	if err != nil {
		logging.Warn().Err(err).Msg("Mood inference failed, using keyword fallback")
		metrics.MoodInferences.WithLabelValues("fallback").Inc()
		return fallbackJudgment(trimmed)
	}

	judgment, err := parseJudgment(raw)
	if err != nil {
		logging.Warn().
			Err(err).
			Str("completion", truncateRunes(raw, 120)).
			Msg("Unparseable mood completion, using keyword fallback")
		metrics.MoodInferences.WithLabelValues("fallback").Inc()
		return fallbackJudgment(trimmed)
	}

	judgment.UserInput = trimmed
	if cacheable {
		a.cache.Set(cache.NamespaceMood, key, judgment.Clone())
	}
	metrics.MoodInferences.WithLabelValues("llm").Inc()
	return judgment
}

// complete calls the backend with bounded retries and doubling backoff.
// Only the transport call retries; parse failures are the caller's
// problem. An open circuit breaker stops the loop at once since waiting
// out the backoff cannot help.
func (a *Analyzer) complete(ctx context.Context, messages []llm.Message) (string, error) {
	req := llm.Request{Operation: operationMood, Messages: messages}

	var lastErr error
	delay := a.backoff
	for attempt := 1; attempt <= a.attempts; attempt++ {
		raw, err := a.completer.Complete(ctx, req)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if llm.IsUnavailable(err) || attempt == a.attempts {
			break
		}

		metrics.LLMRetries.WithLabelValues(operationMood).Inc()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return "", lastErr
}
