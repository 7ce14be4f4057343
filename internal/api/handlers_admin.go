// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/moodvie/moodvie/internal/audit"
	"github.com/moodvie/moodvie/internal/catalog"
	"github.com/moodvie/moodvie/internal/logging"
)

// seedTimeout bounds a catalog import, which embeds every movie
// description through the embedding provider.
const seedTimeout = 2 * time.Minute

// maxAuditQueryLimit caps a single audit trail page.
const maxAuditQueryLimit = 1000

// Seed imports movies into the catalog
//
// @Summary Import catalog movies
// @Description Imports movie records into the catalog, embedding their descriptions for semantic search. Records come from the request body, or from the configured seed file when the body lists none.
// @Tags Admin
// @Accept json
// @Produce json
// @Param seed body SeedRequest true "Movie records to import"
// @Success 200 {object} APIResponse "Import summary"
// @Failure 400 {object} APIResponse "No records and no seed file configured"
// @Failure 500 {object} APIResponse "Import failed"
// @Router /admin/seed [post]
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req SeedRequest
	if !decodeJSON(rw, r, &req) {
		return
	}

	records := req.Movies
	source := "request"
	if len(records) == 0 {
		path := h.cfg.Database.SeedPath
		if path == "" {
			rw.BadRequest("No movie records in request and no seed file configured")
			return
		}
		loaded, err := catalog.LoadSeedFile(path)
		if err != nil {
			logging.CtxErr(r.Context(), err).Str("path", path).Msg("Seed file load failed")
			rw.InternalError("Failed to load seed file")
			return
		}
		records = loaded
		source = path
	}

	ctx, cancel := context.WithTimeout(r.Context(), seedTimeout)
	defer cancel()

	imported, err := h.catalog.ImportSeed(ctx, records, h.encoder)
	if err != nil {
		logging.CtxErr(ctx, err).Int("records", len(records)).Msg("Catalog import failed")
		rw.InternalError("Catalog import failed")
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("imported", imported).
		Str("source", source).
		Msg("Catalog seeded")

	h.audit.LogCatalogSeeded(r.Context(), h.auditActor(r), h.auditSource(r), imported, source)

	rw.Success(map[string]interface{}{
		"imported": imported,
		"source":   source,
	})
}

// AuditLog queries the audit trail
//
// @Summary Query the audit trail
// @Description Returns audit events, most recent first. Filters narrow by event type, outcome, actor, and time window; total counts every match regardless of limit.
// @Tags Admin
// @Produce json
// @Param limit query int false "Maximum events to return (default 100, max 1000)"
// @Param type query string false "Event type, e.g. auth.failure"
// @Param outcome query string false "Outcome: success or failure"
// @Param actor query string false "Actor ID"
// @Param since query string false "Only events at or after this RFC 3339 time"
// @Success 200 {object} APIResponse "Matching events"
// @Failure 400 {object} APIResponse "Invalid since timestamp"
// @Failure 503 {object} APIResponse "Audit trail disabled"
// @Router /admin/audit [get]
func (h *Handler) AuditLog(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.audit == nil {
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Audit trail is not enabled")
		return
	}

	filter := audit.DefaultQueryFilter()
	filter.Limit = intQueryParam(r, "limit", filter.Limit)
	if filter.Limit < 1 || filter.Limit > maxAuditQueryLimit {
		filter.Limit = maxAuditQueryLimit
	}

	q := r.URL.Query()
	if v := q.Get("type"); v != "" {
		filter.Types = []audit.EventType{audit.EventType(v)}
	}
	if v := q.Get("outcome"); v != "" {
		filter.Outcomes = []audit.Outcome{audit.Outcome(v)}
	}
	filter.ActorID = q.Get("actor")
	if v := q.Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			rw.BadRequest("Invalid since timestamp, want RFC 3339")
			return
		}
		filter.Since = &since
	}

	events, err := h.audit.Query(r.Context(), filter)
	if err != nil {
		logging.CtxErr(r.Context(), err).Msg("Audit query failed")
		rw.InternalError("Failed to query audit trail")
		return
	}
	total, err := h.audit.Count(r.Context(), filter)
	if err != nil {
		logging.CtxErr(r.Context(), err).Msg("Audit count failed")
		rw.InternalError("Failed to query audit trail")
		return
	}

	rw.Success(map[string]interface{}{
		"events": events,
		"total":  total,
	})
}

// Diagnostics reports runtime internals
//
// @Summary Runtime diagnostics
// @Description Returns catalog size, cache hit rates, per-endpoint latency percentiles, event pipeline counters, WebSocket client count, and audit trail totals.
// @Tags Admin
// @Produce json
// @Success 200 {object} APIResponse "Diagnostics snapshot"
// @Router /admin/diagnostics [get]
func (h *Handler) Diagnostics(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	diag := map[string]interface{}{
		"uptime_seconds": time.Since(h.startTime).Seconds(),
		"endpoints":      h.PerformanceStats(),
	}

	if h.catalog != nil {
		if count, err := h.catalog.Count(r.Context()); err == nil {
			diag["catalog_movies"] = count
		}
	}
	if h.cache != nil {
		diag["cache"] = h.cache.Stats()
	}
	if h.pipeline != nil {
		diag["events"] = h.pipeline.Stats().Snapshot()
	}
	if h.hub != nil {
		diag["websocket_clients"] = h.hub.GetClientCount()
	}
	if h.audit != nil {
		if stats, err := h.audit.Stats(r.Context()); err == nil {
			diag["audit"] = stats
		}
	}

	rw.Success(diag)
}
