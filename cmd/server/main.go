// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package main is the entry point for the MoodVie server.
//
// MoodVie is a conversational movie recommendation service: the user says
// how they feel, an LLM judges the mood, the mood maps to genres, and a
// hybrid retriever ranks matching movies from an embedded DuckDB catalog.
//
// # Application Architecture
//
// Components run under a suture v4 supervision tree:
//
//	moodvie (root)
//	├── data-layer        session janitor, cache janitor, audit janitor
//	├── messaging-layer   websocket hub, event pipeline (if EVENTS_ENABLED)
//	└── api-layer         http server
//
// Initialization order:
//
//  1. Configuration: Koanf v2 with environment variables and config file
//  2. Embedding encoder: OpenAI-compatible embeddings (dimensionality feeds the catalog schema)
//  3. Catalog: DuckDB with vector similarity search, optional startup seed import
//  4. Audit trail (optional): async event writer sharing the catalog database
//  5. LLM components: mood analyzer and review summarizer behind one circuit-broken client
//  6. Sessions: memory or BadgerDB-backed conversation store
//  7. Events (optional): embedded NATS JetStream with a Watermill consumer router
//  8. Auth and authorization: JWT/Basic/none plus a Casbin RBAC enforcer
//  9. HTTP server: chi REST API with Swagger documentation
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority
// wins): environment variables, config file (config.yaml), built-in defaults.
//
// For JWT authentication:
//   - JWT_SECRET: 32+ character secret for token signing
//   - ADMIN_USERNAME / ADMIN_PASSWORD: login credentials
//
// For a fully offline development run:
//
//	export AUTH_MODE=none
//	export LLM_BASE_URL=http://localhost:11434/v1   # Ollama
//	export DB_SEED_PATH=./seed/movies.json
//	export DB_SEED_ON_STARTUP=true
//	./moodvie
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server drains
// in-flight requests (10s timeout), the supervision tree stops its services,
// and the event pipeline, session store, audit trail, and catalog close
// in order.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/moodvie/moodvie/docs" // generated swagger docs
	"github.com/moodvie/moodvie/internal/api"
	"github.com/moodvie/moodvie/internal/audit"
	"github.com/moodvie/moodvie/internal/auth"
	"github.com/moodvie/moodvie/internal/authz"
	"github.com/moodvie/moodvie/internal/cache"
	"github.com/moodvie/moodvie/internal/catalog"
	"github.com/moodvie/moodvie/internal/chat"
	"github.com/moodvie/moodvie/internal/config"
	"github.com/moodvie/moodvie/internal/embedding"
	"github.com/moodvie/moodvie/internal/events"
	"github.com/moodvie/moodvie/internal/llm"
	"github.com/moodvie/moodvie/internal/logging"
	"github.com/moodvie/moodvie/internal/mood"
	"github.com/moodvie/moodvie/internal/recommend"
	"github.com/moodvie/moodvie/internal/review"
	"github.com/moodvie/moodvie/internal/session"
	"github.com/moodvie/moodvie/internal/supervisor"
	"github.com/moodvie/moodvie/internal/supervisor/services"
	ws "github.com/moodvie/moodvie/internal/websocket"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting MoodVie with supervisor tree")
	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("session_store", cfg.Session.Store).
		Bool("events_enabled", cfg.Events.Enabled).
		Bool("audit_enabled", cfg.Audit.Enabled).
		Msg("Configuration loaded")

	// The encoder comes first: the catalog's vector column is sized to
	// its dimensionality.
	encoder := embedding.New(cfg.Embedding)

	db, err := catalog.New(&cfg.Database, encoder.Dimensions())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open movie catalog")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog")
		}
	}()
	logging.Info().Str("path", cfg.Database.Path).Msg("Catalog initialized")

	// The audit trail shares the catalog database. Reseeding only
	// touches the movies table, so the trail survives reimports.
	var auditLogger *audit.Logger
	var auditStore *audit.DuckDBStore
	if cfg.Audit.Enabled {
		auditStore = audit.NewDuckDBStore(db.Conn())
		if err := auditStore.CreateTable(context.Background()); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing catalog")
			}
			logging.Fatal().Err(err).Msg("Failed to initialize audit trail")
		}
		auditLogger = audit.NewLogger(auditStore, cfg.Audit.BufferSize)
		defer func() {
			if err := auditLogger.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing audit logger")
			}
		}()
		logging.Info().Int("retention_days", cfg.Audit.RetentionDays).Msg("Audit trail enabled")
	}

	// Startup seed import is idempotent: records upsert by external ID.
	if cfg.Database.SeedOnStartup && cfg.Database.SeedPath != "" {
		imported, err := db.SeedFromFile(context.Background(), cfg.Database.SeedPath, encoder)
		if err != nil {
			// Close explicitly since Fatal exits before defers run.
			if closeErr := db.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing catalog")
			}
			logging.Fatal().Err(err).Str("path", cfg.Database.SeedPath).Msg("Failed to seed catalog")
		}
		logging.Info().Int("imported", imported).Str("path", cfg.Database.SeedPath).Msg("Catalog seeded")
		auditLogger.LogCatalogSeeded(context.Background(), audit.SystemActor(), audit.Source{}, imported, cfg.Database.SeedPath)
	}

	// One shared cache backs mood judgments, review summaries, and
	// search results under separate namespaces.
	store := cache.NewWithCapacity(cfg.Cache.Capacity)

	llmClient := llm.New(cfg.LLM)
	analyzer := mood.NewAnalyzer(llmClient, store, cfg.LLM)
	summarizer := review.NewSummarizer(llmClient, store)
	retriever := recommend.NewRetriever(db, encoder, store, cfg.Search)

	sessionStore, err := session.NewStore(cfg.Session)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open session store")
	}
	defer func() {
		if err := sessionStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()
	sessions := session.NewManager(sessionStore)

	if session.StoreType(cfg.Session.Store) == session.StoreMemory && cfg.Server.IsProduction() {
		logging.Warn().Msg("Session store is 'memory': conversations are lost on restart. Set SESSION_STORE=badger for persistence.")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wsHub := ws.NewHub()

	// NewPipeline returns (nil, nil) when eventing is disabled.
	pipeline, err := events.NewPipeline(ctx, cfg.Events, wsHub)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize event pipeline")
	}
	var publisher chat.Publisher
	if pipeline != nil {
		publisher = pipeline.Bridge()
		logging.Info().Msg("Event pipeline initialized")
	} else {
		logging.Info().Msg("Eventing disabled (EVENTS_ENABLED=false)")
	}

	gate := chat.NewGate(analyzer, retriever, summarizer, publisher)

	switch auth.AuthMode(cfg.Security.AuthMode) {
	case auth.AuthModeJWT:
		logging.Info().Msg("JWT authentication enabled")
	case auth.AuthModeBasic:
		logging.Info().Msg("Basic authentication enabled")
		logging.Warn().Msg("Basic Auth transmits credentials with each request. Use HTTPS in production!")
	case auth.AuthModeNone:
		logging.Warn().Msg("============================================================")
		logging.Warn().Msg("  SECURITY WARNING: Authentication is DISABLED (AUTH_MODE=none)")
		logging.Warn().Msg("  All endpoints are publicly accessible.")
		logging.Warn().Msg("  Use this mode only for local development or isolated networks.")
		logging.Warn().Msg("============================================================")
	}

	authMw, err := auth.NewMiddleware(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authentication")
	}
	defer authMw.Close()

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	enforcer, err := authz.NewEnforcer(&authz.EnforcerConfig{
		ModelPath:      cfg.Security.Casbin.ModelPath,
		PolicyPath:     cfg.Security.Casbin.PolicyPath,
		AutoReload:     true,
		ReloadInterval: 30 * time.Second,
		DefaultRole:    cfg.Security.Casbin.DefaultRole,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authorization")
	}
	defer enforcer.Close()
	authzMw := authz.NewMiddleware(enforcer)

	handler := api.NewHandler(cfg, gate, sessions, db, retriever, authMw, wsHub)
	handler.SetEncoder(encoder)
	handler.SetPipeline(pipeline)
	handler.SetCache(store)
	handler.SetAudit(auditLogger)

	router := api.NewRouter(handler, authMw, authzMw)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Bridge zerolog to slog for sutureslog.
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewSessionJanitorService(sessionStore, cfg.Session.GCInterval))
	tree.AddDataService(services.NewCacheJanitorService(store, cfg.Cache.JanitorInterval))
	if auditStore != nil {
		tree.AddDataService(services.NewAuditJanitorService(auditStore, cfg.Audit.CleanupInterval, cfg.Audit.Retention()))
	}

	tree.AddMessagingService(services.NewHubService(wsHub))
	if pipeline != nil {
		tree.AddMessagingService(services.NewPipelineService(pipeline))
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor is fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	// The pipeline closes after its router stopped consuming.
	if pipeline != nil {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		if err := pipeline.Shutdown(shutdownCtx); err != nil {
			logging.Warn().Err(err).Msg("Event pipeline shutdown failed")
		}
		cancelShutdown()
	}

	logging.Info().Msg("MoodVie stopped gracefully")
}
