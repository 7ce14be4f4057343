// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/moodvie/moodvie/internal/auth"
	"github.com/moodvie/moodvie/internal/authz"
	"github.com/moodvie/moodvie/internal/middleware"
)

// Router wires handlers, authentication, and authorization into the
// Chi route tree.
type Router struct {
	handler *Handler
	auth    *auth.Middleware
	authz   *authz.Middleware
	chiMw   *ChiMiddleware
}

// NewRouter creates a router over the given handler and auth stack.
func NewRouter(handler *Handler, authMw *auth.Middleware, authzMw *authz.Middleware) *Router {
	return &Router{
		handler: handler,
		auth:    authMw,
		authz:   authzMw,
		chiMw:   NewChiMiddleware(&handler.cfg.Security),
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMw.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.SecurityHeaders)

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting so monitors can poll frequently.
	r.Route("/health", func(r chi.Router) {
		r.Use(router.chiMw.RateLimitHealth())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// ========================
	// Realtime
	// ========================
	// The WebSocket feed carries only broadcast events, no
	// per-session data, so it sits outside the auth stack and is
	// guarded by origin checking in the upgrader.
	r.Get("/ws", router.handler.WebSocket)

	// ========================
	// Authentication Endpoints
	// ========================
	// Login carries the strictest rate limiting, keyed per client IP
	// with lockout on repeated failures.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(
			router.chiMw.RateLimitLogin(),
			router.auth.LimitLogin,
		).Post("/login", router.handler.Login)
	})

	// ========================
	// Core API Endpoints
	// ========================
	// Everything here requires authentication and passes the policy
	// check; admin routes are restricted by role in the policy.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMw.RateLimit())
		r.Use(router.handler.perfMon.Middleware)
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)
		r.Use(router.auth.Authenticate)
		r.Use(router.authz.Authorize)

		// Conversation turns run LLM calls; keep their limit tighter
		// than the general API limit.
		r.With(router.chiMw.RateLimitChat()).Post("/chat", router.handler.Chat)

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", router.handler.GetSession)
			r.Delete("/", router.handler.DeleteSession)
			r.Get("/history", router.handler.SessionHistory)
			r.Get("/stats", router.handler.SessionStats)
			r.Get("/export", router.handler.SessionExport)
			r.Put("/preferences", router.handler.UpdatePreferences)
		})

		r.Get("/movies/search", router.handler.MovieSearch)
		r.Get("/movies/{id}", router.handler.MovieByID)
		r.Post("/recommendations", router.handler.Recommendations)
		r.Get("/genres", router.handler.Genres)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/seed", router.handler.Seed)
			r.Get("/diagnostics", router.handler.Diagnostics)
			r.Get("/audit", router.handler.AuditLog)
		})
	})

	return r
}
