// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/moodvie/moodvie/internal/audit"
	"github.com/moodvie/moodvie/internal/auth"
	"github.com/moodvie/moodvie/internal/cache"
	"github.com/moodvie/moodvie/internal/catalog"
	"github.com/moodvie/moodvie/internal/chat"
	"github.com/moodvie/moodvie/internal/config"
	"github.com/moodvie/moodvie/internal/events"
	"github.com/moodvie/moodvie/internal/middleware"
	"github.com/moodvie/moodvie/internal/session"
	"github.com/moodvie/moodvie/internal/validation"
	ws "github.com/moodvie/moodvie/internal/websocket"
)

// Catalog is the slice of the movie catalog the API consumes. *catalog.DB
// implements it; router tests substitute fakes.
type Catalog interface {
	catalog.Store

	// Ping verifies the catalog connection for health checks.
	Ping(ctx context.Context) error

	// ImportSeed upserts seed records, embedding them when enc is non-nil.
	ImportSeed(ctx context.Context, records []map[string]interface{}, enc catalog.Encoder) (int, error)
}

// Handler holds the dependencies of all API endpoints.
//
// Handler methods are split across files by surface:
//   - handlers_chat.go: the conversation turn endpoint
//   - handlers_sessions.go: session lifecycle, stats, export, preferences
//   - handlers_movies.go: catalog lookups, direct recommendations, genres
//   - handlers_auth.go: login
//   - handlers_admin.go: seed import, diagnostics, and the audit trail
//   - handlers_health.go: health and readiness probes
//   - handlers_ws.go: the WebSocket upgrade
type Handler struct {
	cfg      *config.Config
	gate     *chat.Gate
	sessions *session.Manager
	catalog  Catalog
	searcher chat.Searcher
	auth     *auth.Middleware
	hub      *ws.Hub

	encoder  catalog.Encoder
	pipeline *events.Pipeline
	cache    *cache.Cache
	audit    *audit.Logger

	perfMon   *middleware.PerformanceMonitor
	startTime time.Time
}

// NewHandler creates the API handler. The gate drives chat turns, the
// searcher answers direct recommendation requests, and the auth
// middleware backs the login endpoint. hub may be nil when the WebSocket
// surface is disabled.
func NewHandler(
	cfg *config.Config,
	gate *chat.Gate,
	sessions *session.Manager,
	cat Catalog,
	searcher chat.Searcher,
	authMw *auth.Middleware,
	hub *ws.Hub,
) *Handler {
	return &Handler{
		cfg:       cfg,
		gate:      gate,
		sessions:  sessions,
		catalog:   cat,
		searcher:  searcher,
		auth:      authMw,
		hub:       hub,
		perfMon:   middleware.NewPerformanceMonitor(1000),
		startTime: time.Now(),
	}
}

// SetEncoder provides the embedding encoder used by seed imports. Without
// it seeded movies are stored without vectors and semantic retrieval
// skips them.
func (h *Handler) SetEncoder(enc catalog.Encoder) {
	h.encoder = enc
}

// SetPipeline attaches the event pipeline so diagnostics can report
// event traffic. p may be nil when eventing is disabled.
func (h *Handler) SetPipeline(p *events.Pipeline) {
	h.pipeline = p
}

// SetCache attaches the shared result cache so diagnostics can report
// hit rates.
func (h *Handler) SetCache(c *cache.Cache) {
	h.cache = c
}

// SetAudit attaches the audit logger. l may be nil when auditing is
// disabled; every audit call site tolerates that.
func (h *Handler) SetAudit(l *audit.Logger) {
	h.audit = l
}

// auditActor describes the authenticated caller for audit records. In
// none mode there are no claims and the anonymous actor is recorded.
func (h *Handler) auditActor(r *http.Request) audit.Actor {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		return audit.AnonymousActor()
	}
	return audit.Actor{
		ID:   claims.Username,
		Type: "user",
		Name: claims.Username,
		Role: claims.Role,
	}
}

// auditSource captures where the request came from.
func (h *Handler) auditSource(r *http.Request) audit.Source {
	ip := r.RemoteAddr
	if h.auth != nil {
		ip = h.auth.ClientIP(r)
	}
	return audit.Source{
		IPAddress: ip,
		UserAgent: r.UserAgent(),
	}
}

// PerformanceStats exposes the request latency window for diagnostics.
func (h *Handler) PerformanceStats() []middleware.EndpointStats {
	if h.perfMon == nil {
		return nil
	}
	return h.perfMon.Stats()
}

// decodeJSON decodes the request body into dst and validates it. On
// failure the error response has been written and false is returned.
func decodeJSON(rw *ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		rw.BadRequest("Invalid JSON request body")
		return false
	}
	return validate(rw, dst)
}

// validate runs struct validation and writes the error response on
// failure.
func validate(rw *ResponseWriter, v interface{}) bool {
	if err := validation.ValidateStruct(v); err != nil {
		apiErr := err.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}
