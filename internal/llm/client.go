// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/moodvie/moodvie/internal/config"
	"github.com/moodvie/moodvie/internal/logging"
	"github.com/moodvie/moodvie/internal/metrics"
)

// Role identifies the author of a prompt message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a prompt.
type Message struct {
	Role    Role
	Content string
}

// Request describes a single completion call. Temperature and token limits
// come from configuration so every caller shares the same sampling settings.
type Request struct {
	// Operation labels the call for metrics ("mood", "review").
	Operation string
	Messages  []Message
}

// Completer produces a chat completion for a prompt. Implementations must be
// safe for concurrent use.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Client calls an OpenAI-compatible chat completion backend with client-side
// rate limiting and a circuit breaker. The backend can be the OpenAI API or
// any compatible local server (Ollama, LM Studio, vLLM).
type Client struct {
	api         *openai.Client
	model       openai.ChatModel
	temperature float64
	maxTokens   int64
	timeout     time.Duration
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[string]
}

// compile-time interface check
var _ Completer = (*Client)(nil)

// New builds a Client from configuration. SDK-internal retries are disabled;
// retry policy belongs to callers so attempts stay observable and bounded.
func New(cfg config.LLMConfig) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	api := openai.NewClient(opts...)

	settings := gobreaker.Settings{
		Name:        "llm",
		MaxRequests: 1, // single probe while half-open
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.BreakerThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("component", "llm").
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	}

	return &Client{
		api:         &api,
		model:       openai.ChatModel(cfg.Model),
		temperature: cfg.Temperature,
		maxTokens:   int64(cfg.MaxTokens),
		timeout:     cfg.Timeout,
		limiter:     rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		breaker:     gobreaker.NewCircuitBreaker[string](settings),
	}
}

// Complete performs one chat completion call. It blocks on the rate limiter,
// runs the call under the circuit breaker, and records metrics. Returns the
// trimmed completion text.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", ErrNoMessages
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	content, err := c.breaker.Execute(func() (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		return c.call(callCtx, req.Messages)
	})
	metrics.RecordLLMRequest(req.Operation, time.Since(start), err)
	if err != nil {
		logging.Debug().
			Str("component", "llm").
			Str("operation", req.Operation).
			Err(err).
			Msg("Completion call failed")
		return "", err
	}
	return content, nil
}

func (c *Client) call(ctx context.Context, messages []Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    toUnionMessages(messages),
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(c.maxTokens),
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("completion call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}

// toUnionMessages converts prompt messages to the SDK's union type.
// Unknown roles degrade to user messages.
func toUnionMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// BreakerState reports the circuit breaker state for health checks.
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}
