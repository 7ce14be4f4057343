// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package events

import (
	"context"
	"fmt"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/moodvie/moodvie/internal/config"
	"github.com/moodvie/moodvie/internal/logging"
)

// Pipeline owns the full event stack: optional embedded NATS server,
// stream, breaker-protected publisher, and the consumer router with the
// stats and WebSocket handlers. Construction brings everything up except
// the router, which runs under Run.
type Pipeline struct {
	embedded    *EmbeddedServer
	conn        *natsgo.Conn
	streams     *StreamInitializer
	publisher   *Publisher
	router      *Router
	subscribers []*Subscriber

	bridge *Bridge
	stats  *StatsHandler
}

// NewPipeline assembles the event pipeline from configuration. Returns
// (nil, nil) when events are disabled; callers must nil-check before
// using the bridge. hub may be nil to skip WebSocket forwarding.
func NewPipeline(ctx context.Context, cfg config.EventsConfig, hub Broadcaster) (*Pipeline, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	p := &Pipeline{}
	logger := NewWatermillLogger()

	url := cfg.URL
	if cfg.EmbeddedServer {
		embedded, err := NewEmbeddedServer(ServerConfig{
			Host:      "127.0.0.1",
			Port:      4222,
			StoreDir:  cfg.StoreDir,
			MaxMemory: cfg.MaxMemory,
			MaxStore:  cfg.MaxStore,
		})
		if err != nil {
			return nil, fmt.Errorf("start embedded NATS server: %w", err)
		}
		p.embedded = embedded
		url = embedded.ClientURL()
	}

	conn, err := natsgo.Connect(url,
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2*time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			logging.Warn().
				Err(err).
				Str("component", "events").
				Msg("NATS connection lost")
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logging.Info().
				Str("component", "events").
				Str("url", nc.ConnectedUrl()).
				Msg("NATS connection restored")
		}),
	)
	if err != nil {
		p.teardown(ctx)
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	p.conn = conn

	js, err := jetstream.New(conn)
	if err != nil {
		p.teardown(ctx)
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	streamCfg := DefaultStreamConfig()
	if cfg.StreamRetentionDays > 0 {
		streamCfg.MaxAge = time.Duration(cfg.StreamRetentionDays) * 24 * time.Hour
	}
	if cfg.MaxStore > 0 {
		streamCfg.MaxBytes = cfg.MaxStore
	}
	p.streams, err = NewStreamInitializer(js, streamCfg)
	if err != nil {
		p.teardown(ctx)
		return nil, fmt.Errorf("create stream initializer: %w", err)
	}
	if _, err := p.streams.EnsureStream(ctx); err != nil {
		p.teardown(ctx)
		return nil, fmt.Errorf("ensure event stream: %w", err)
	}

	p.publisher, err = NewPublisher(DefaultPublisherConfig(url), logger)
	if err != nil {
		p.teardown(ctx)
		return nil, fmt.Errorf("create publisher: %w", err)
	}
	p.bridge = NewBridge(p.publisher)

	routerCfg := DefaultRouterConfig()
	if cfg.RouterCloseTimeout > 0 {
		routerCfg.CloseTimeout = cfg.RouterCloseTimeout
	}
	p.router, err = NewRouter(routerCfg, logger)
	if err != nil {
		p.teardown(ctx)
		return nil, fmt.Errorf("create router: %w", err)
	}

	p.stats = NewStatsHandler()
	if err := p.registerHandlers(cfg, hub); err != nil {
		p.teardown(ctx)
		return nil, err
	}

	logging.Info().
		Str("component", "events").
		Str("url", url).
		Bool("embedded", p.embedded != nil).
		Str("stream", streamCfg.Name).
		Msg("Event pipeline ready")

	return p, nil
}

// registerHandlers wires one durable consumer per handler. A handler's
// subscriber covers both topics, so each handler keeps its own delivery
// cursor independent of the others.
func (p *Pipeline) registerHandlers(cfg config.EventsConfig, hub Broadcaster) error {
	url := cfg.URL
	if p.embedded != nil {
		url = p.embedded.ClientURL()
	}

	newSub := func(suffix string) (*Subscriber, error) {
		subCfg := DefaultSubscriberConfig(url)
		subCfg.DurableName = cfg.DurableName + "-" + suffix
		subCfg.QueueGroup = cfg.QueueGroup + "-" + suffix
		subCfg.StreamName = p.streams.Config().Name
		if cfg.SubscribersCount > 0 {
			subCfg.SubscribersCount = cfg.SubscribersCount
		}
		return NewSubscriber(subCfg, NewWatermillLogger())
	}

	statsSub, err := newSub("stats")
	if err != nil {
		return fmt.Errorf("create stats subscriber: %w", err)
	}
	p.subscribers = append(p.subscribers, statsSub)
	p.router.AddConsumerHandler(
		"stats-mood", TopicMoodAnalyzed,
		statsSub.watermillSubscriber(), p.stats.HandleMoodAnalyzed)
	p.router.AddConsumerHandler(
		"stats-recommendations", TopicRecommendationServed,
		statsSub.watermillSubscriber(), p.stats.HandleRecommendationServed)

	if hub != nil {
		wsSub, err := newSub("websocket")
		if err != nil {
			return fmt.Errorf("create websocket subscriber: %w", err)
		}
		p.subscribers = append(p.subscribers, wsSub)
		forwarder := NewForwarder(hub)
		p.router.AddConsumerHandler(
			"websocket-mood", TopicMoodAnalyzed,
			wsSub.watermillSubscriber(), forwarder.HandleMoodAnalyzed)
		p.router.AddConsumerHandler(
			"websocket-recommendations", TopicRecommendationServed,
			wsSub.watermillSubscriber(), forwarder.HandleRecommendationServed)
	}

	return nil
}

// Bridge returns the fire-and-forget publisher for the chat engine.
func (p *Pipeline) Bridge() *Bridge {
	return p.bridge
}

// Stats returns the event aggregator for the diagnostics endpoint.
func (p *Pipeline) Stats() *StatsHandler {
	return p.stats
}

// Run starts the consumer router and blocks until the context is
// canceled. Meant to run as a supervised service.
func (p *Pipeline) Run(ctx context.Context) error {
	return p.router.Run(ctx)
}

// IsHealthy reports whether the NATS connection is up and the router
// is processing.
func (p *Pipeline) IsHealthy() bool {
	if p.conn == nil || p.conn.Status() != natsgo.CONNECTED {
		return false
	}
	return p.router.IsRunning()
}

// Shutdown stops the pipeline in reverse dependency order: router
// first so in-flight handlers drain, then consumers, publisher,
// connection, and finally the embedded server.
func (p *Pipeline) Shutdown(ctx context.Context) error {
	var firstErr error

	if p.router != nil {
		if err := p.router.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close router: %w", err)
		}
	}
	for _, sub := range p.subscribers {
		if err := sub.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close subscriber: %w", err)
		}
	}
	if p.publisher != nil {
		if err := p.publisher.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close publisher: %w", err)
		}
	}
	if p.conn != nil {
		p.conn.Close()
	}
	if p.embedded != nil {
		if err := p.embedded.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("shutdown embedded server: %w", err)
		}
	}

	if firstErr != nil {
		return firstErr
	}
	logging.Info().Str("component", "events").Msg("Event pipeline stopped")
	return nil
}

// teardown releases whatever construction managed to bring up.
func (p *Pipeline) teardown(ctx context.Context) {
	if err := p.Shutdown(ctx); err != nil {
		logging.Warn().
			Err(err).
			Str("component", "events").
			Msg("Partial pipeline teardown failed")
	}
}
