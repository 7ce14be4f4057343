// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/moodvie/moodvie/internal/config"
	"github.com/moodvie/moodvie/internal/genre"
	"github.com/moodvie/moodvie/internal/metrics"
	"github.com/moodvie/moodvie/internal/models"
)

var (
	// ErrNoInput is returned when Encode is called with no texts.
	ErrNoInput = errors.New("embedding: no input texts")

	// ErrBlankText is returned when an input text is empty or whitespace.
	// Blank inputs would embed to meaningless vectors, so they are rejected
	// before reaching the backend.
	ErrBlankText = errors.New("embedding: blank input text")

	// ErrDimensionMismatch is returned when the backend produces vectors of
	// an unexpected dimensionality.
	ErrDimensionMismatch = errors.New("embedding: dimension mismatch")
)

// Encoder converts texts into dense vectors. Implementations must be safe
// for concurrent use.
type Encoder interface {
	// Encode embeds a batch of texts. The result has one vector per input,
	// in input order.
	Encode(ctx context.Context, texts []string) ([][]float32, error)

	// EncodeOne embeds a single text.
	EncodeOne(ctx context.Context, text string) ([]float32, error)
}

// Client calls an OpenAI-compatible embeddings backend. Any server exposing
// the /v1/embeddings contract works (Infinity, LocalAI, Ollama, the OpenAI
// API itself).
type Client struct {
	api        *openai.Client
	model      openai.EmbeddingModel
	dimensions int
	timeout    time.Duration
}

// compile-time interface check
var _ Encoder = (*Client)(nil)

// New builds a Client from configuration.
func New(cfg config.EmbeddingConfig) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	api := openai.NewClient(opts...)

	return &Client{
		api:        &api,
		model:      openai.EmbeddingModel(cfg.Model),
		dimensions: cfg.Dimensions,
		timeout:    cfg.Timeout,
	}
}

// Encode embeds a batch of texts in a single backend call. Vectors are
// returned in input order regardless of the order the backend reports them.
func (c *Client) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrNoInput
	}
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("%w (index %d)", ErrBlankText, i)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.api.Embeddings.New(callCtx, openai.EmbeddingNewParams{
		Model: c.model,
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
	})
	metrics.RecordEmbedding(time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("embedding call: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	out := make([][]float32, len(texts))
	for _, item := range resp.Data {
		idx := int(item.Index)
		if idx < 0 || idx >= len(out) {
			return nil, fmt.Errorf("embedding: backend returned out-of-range index %d", idx)
		}
		vec := make([]float32, len(item.Embedding))
		for i, v := range item.Embedding {
			vec[i] = float32(v)
		}
		if c.dimensions > 0 && len(vec) != c.dimensions {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), c.dimensions)
		}
		out[idx] = vec
	}
	return out, nil
}

// EncodeOne embeds a single text.
func (c *Client) EncodeOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.Encode(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// Dimensions returns the configured vector dimensionality.
func (c *Client) Dimensions() int {
	return c.dimensions
}

// MovieText builds the canonical document text embedded for a catalog movie.
// Title and overview carry most of the signal; genres and year anchor it.
func MovieText(m models.MovieCandidate) string {
	parts := []string{m.Title}
	if m.Overview != "" {
		parts = append(parts, m.Overview)
	}
	if len(m.GenreIDs) > 0 {
		parts = append(parts, "Genres: "+strings.Join(genre.IDsToNames(m.GenreIDs), ", "))
	}
	if m.ReleaseYear > 0 {
		parts = append(parts, fmt.Sprintf("Year: %d", m.ReleaseYear))
	}
	return strings.Join(parts, ". ")
}

// QueryText builds the semantic query text for a mood judgment. The raw user
// input dominates; detected moods and recommended genres add context so
// similar movies surface even for terse inputs.
func QueryText(judgment models.MoodJudgment) string {
	parts := make([]string, 0, 3)
	if input := strings.TrimSpace(judgment.UserInput); input != "" {
		parts = append(parts, input)
	}
	if len(judgment.DetectedMoods) > 0 {
		parts = append(parts, strings.Join(judgment.DetectedMoods, " "))
	}
	if len(judgment.RecommendedGenres) > 0 {
		parts = append(parts, strings.Join(judgment.RecommendedGenres, " "))
	}
	return strings.Join(parts, " ")
}
