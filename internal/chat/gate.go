// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package chat

import (
	"context"
	"crypto/md5" //nolint:gosec // cache identity and jitter seed, not crypto
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/moodvie/moodvie/internal/logging"
	"github.com/moodvie/moodvie/internal/metrics"
	"github.com/moodvie/moodvie/internal/models"
)

// Analyzer produces a mood judgment for one user text.
type Analyzer interface {
	Analyze(ctx context.Context, text string, history []models.ChatMessage) models.MoodJudgment
}

// Searcher retrieves and ranks movie candidates for a genre offer.
type Searcher interface {
	SearchByGenres(ctx context.Context, sess *models.Session, genres []string, limit int, personalize bool, contextHash, queryText string) []models.RankedMovie
}

// Summarizer condenses a movie's raw reviews into one sentence.
type Summarizer interface {
	Summarize(ctx context.Context, raw any) string
}

// Publisher receives fire-and-forget notifications about resolved
// turns. Implementations must not block.
type Publisher interface {
	MoodAnalyzed(sessionID string, judgment models.MoodJudgment)
	RecommendationsServed(sessionID string, movies []models.RankedMovie)
}

// Result is what one handled turn sends back to the transport layer.
type Result struct {
	Reply           string               `json:"reply"`
	State           string               `json:"state"`
	Mood            *models.MoodJudgment `json:"mood,omitempty"`
	Recommendations []models.RankedMovie `json:"recommendations,omitempty"`
}

// Gate routes each user turn: either the text states a mood, or it
// answers a pending recommendation offer.
type Gate struct {
	analyzer   Analyzer
	searcher   Searcher
	summarizer Summarizer
	publisher  Publisher
}

// NewGate wires the conversation gate. The publisher may be nil when
// eventing is disabled.
func NewGate(analyzer Analyzer, searcher Searcher, summarizer Summarizer, publisher Publisher) *Gate {
	return &Gate{
		analyzer:   analyzer,
		searcher:   searcher,
		summarizer: summarizer,
		publisher:  publisher,
	}
}

// HandleTurn processes one user message against the session and returns
// the assistant's reply. The caller holds the session lock for the
// whole turn; nothing here is safe for concurrent use of one session.
func (g *Gate) HandleTurn(ctx context.Context, sess *models.Session, text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		metrics.ChatTurnsTotal.WithLabelValues("empty").Inc()
		return Result{Reply: welcomeMessage, State: sess.State()}
	}

	if sess.PendingOffer != nil {
		return g.resolveConfirmation(ctx, sess, trimmed)
	}
	return g.moodTurn(ctx, sess, trimmed, "offer")
}

// resolveConfirmation handles a reply while an offer is pending. The
// new-search override is tested exactly once, here; classifyConfirmation
// never re-tests those phrases.
func (g *Gate) resolveConfirmation(ctx context.Context, sess *models.Session, text string) Result {
	if isNewSearchRequest(text) {
		logging.Debug().Str("session_id", sess.ID).Msg("New-search override, clearing pending offer")
		sess.PendingOffer = nil
		return g.moodTurn(ctx, sess, text, "new_search")
	}

	switch classifyConfirmation(text) {
	case verdictYes:
		return g.acceptOffer(ctx, sess, text)
	case verdictNo:
		sess.PendingOffer = nil
		return g.respond(sess, text, declineMessage, "decline")
	case verdictChange:
		sess.PendingOffer = nil
		return g.respond(sess, text, changeMessage, "change")
	default:
		// An unclassifiable reply is a fresh mood statement, so the
		// user is never stuck at the confirmation question.
		sess.PendingOffer = nil
		return g.moodTurn(ctx, sess, text, "offer")
	}
}

// moodTurn runs mood inference on the text and parks a genre offer on
// the session.
func (g *Gate) moodTurn(ctx context.Context, sess *models.Session, text, resolution string) Result {
	history := sess.Messages
	sess.AppendMessage(models.ChatMessage{Role: models.RoleUser, Content: text})
	sess.Stats.Turns++

	judgment := g.analyzer.Analyze(ctx, text, history)
	sess.RecordMood(judgment)

	genres := append([]string(nil), judgment.RecommendedGenres...)
	if len(genres) == 0 {
		genres = []string{"Comedy"}
	}
	sess.PendingOffer = &models.PendingOffer{Genres: genres, Mood: judgment}

	reply := confirmationMessage(judgment, genres)
	sess.AppendMessage(models.ChatMessage{
		Role:     models.RoleAssistant,
		Content:  reply,
		Metadata: map[string]interface{}{"type": "confirmation", "genres": genres},
	})

	logging.Info().
		Str("session_id", sess.ID).
		Strs("moods", judgment.DetectedMoods).
		Strs("genres", genres).
		Msg("Offering recommendations")

	if g.publisher != nil {
		g.publisher.MoodAnalyzed(sess.ID, judgment)
	}
	metrics.ChatTurnsTotal.WithLabelValues(resolution).Inc()

	mood := judgment
	return Result{Reply: reply, State: sess.State(), Mood: &mood}
}

// acceptOffer runs the retrieval pipeline with the pending offer's
// genres and mood, then clears the offer.
func (g *Gate) acceptOffer(ctx context.Context, sess *models.Session, text string) Result {
	offer := *sess.PendingOffer
	sess.AppendMessage(models.ChatMessage{Role: models.RoleUser, Content: text})
	sess.Stats.Turns++
	sess.PendingOffer = nil

	hash := contextHash(offer.Mood, offer.Genres)
	movies := g.searcher.SearchByGenres(ctx, sess, offer.Genres, 0, true, hash, offer.Mood.UserInput)

	if len(movies) == 0 {
		logging.Info().Str("session_id", sess.ID).Strs("genres", offer.Genres).Msg("No movies matched the offer")
		sess.AppendMessage(models.ChatMessage{Role: models.RoleAssistant, Content: noMoviesMessage})
		metrics.ChatTurnsTotal.WithLabelValues("results").Inc()
		return Result{Reply: noMoviesMessage, State: sess.State()}
	}

	for i := range movies {
		movies[i].ReviewSummary = g.summarizeReviews(ctx, movies[i].RawPayload)
	}

	sess.AddRecommendations(movies)
	metrics.RecommendationsServed.Add(float64(len(movies)))

	reply := resultsMessage(movies)
	sess.AppendMessage(models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: reply,
		Metadata: map[string]interface{}{
			"type":   "recommendation",
			"count":  len(movies),
			"genres": offer.Genres,
		},
	})

	logging.Info().
		Str("session_id", sess.ID).
		Int("count", len(movies)).
		Str("context_hash", hash).
		Msg("Served recommendations")

	if g.publisher != nil {
		g.publisher.RecommendationsServed(sess.ID, movies)
	}
	metrics.ChatTurnsTotal.WithLabelValues("results").Inc()

	mood := offer.Mood
	return Result{Reply: reply, State: sess.State(), Mood: &mood, Recommendations: movies}
}

// respond emits a canned assistant reply for a decline or change turn.
func (g *Gate) respond(sess *models.Session, userText, reply, resolution string) Result {
	sess.AppendMessage(models.ChatMessage{Role: models.RoleUser, Content: userText})
	sess.Stats.Turns++
	sess.AppendMessage(models.ChatMessage{Role: models.RoleAssistant, Content: reply})
	metrics.ChatTurnsTotal.WithLabelValues(resolution).Inc()
	return Result{Reply: reply, State: sess.State()}
}

// summarizeReviews looks up the raw reviews in the candidate's source
// record. A record without reviews gets a fixed placeholder without
// touching the summarizer.
func (g *Gate) summarizeReviews(ctx context.Context, payload map[string]interface{}) string {
	raw, ok := payload["raw_reviews"]
	if !ok || !hasReviews(raw) {
		return noReviewsMessage
	}
	return g.summarizer.Summarize(ctx, raw)
}

func hasReviews(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case []string:
		return len(v) > 0
	case []interface{}:
		return len(v) > 0
	}
	return true
}

// contextHash digests the mood and genre context into a short hex
// string used as the search cache key component and the ranking jitter
// seed.
func contextHash(judgment models.MoodJudgment, genres []string) string {
	seed := fmt.Sprintf("%v-%d-%v", judgment.DetectedMoods, judgment.Intensity, genres)
	sum := md5.Sum([]byte(seed)) //nolint:gosec
	return hex.EncodeToString(sum[:])[:12]
}
