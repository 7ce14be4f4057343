// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/moodvie/moodvie/internal/logging"
	"github.com/moodvie/moodvie/internal/session"
)

// GetSession returns a conversation's full state
//
// @Summary Get a session
// @Description Returns the conversation state: transcript, pending proposal, preferences, and served recommendations.
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} APIResponse "Session state"
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id} [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")
	sess, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			rw.NotFound("Session not found")
			return
		}
		logging.CtxErr(r.Context(), err).Str("session_id", id).Msg("Session load failed")
		rw.InternalError("Failed to load session")
		return
	}
	rw.Success(sess)
}

// DeleteSession resets a conversation
//
// @Summary Delete a session
// @Description Deletes the conversation. The next message with this ID starts fresh under a new ID.
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204 "Session deleted"
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id} [delete]
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	// Deleting an unknown session is a 404 so clients notice stale IDs.
	id := chi.URLParam(r, "id")
	if _, err := h.sessions.Get(r.Context(), id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			rw.NotFound("Session not found")
			return
		}
		logging.CtxErr(r.Context(), err).Str("session_id", id).Msg("Session load failed")
		rw.InternalError("Failed to load session")
		return
	}

	if err := h.sessions.Delete(r.Context(), id); err != nil {
		logging.CtxErr(r.Context(), err).Str("session_id", id).Msg("Session delete failed")
		rw.InternalError("Failed to delete session")
		return
	}

	h.audit.LogSessionDeleted(r.Context(), h.auditActor(r), h.auditSource(r), id)
	rw.NoContent()
}

// SessionHistory returns a conversation's transcript
//
// @Summary Get session history
// @Description Returns the conversation transcript, oldest first.
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} APIResponse "Transcript"
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id}/history [get]
func (h *Handler) SessionHistory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")
	sess, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			rw.NotFound("Session not found")
			return
		}
		logging.CtxErr(r.Context(), err).Str("session_id", id).Msg("Session load failed")
		rw.InternalError("Failed to load session")
		return
	}

	rw.Success(map[string]interface{}{
		"session_id": sess.ID,
		"messages":   sess.Messages,
	})
}

// SessionStats returns usage statistics for a conversation
//
// @Summary Get session statistics
// @Description Returns turn counts, moods seen, recommendations served, and session duration.
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} APIResponse{data=session.Stats} "Statistics"
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id}/stats [get]
func (h *Handler) SessionStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")
	stats, err := h.sessions.Stats(r.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			rw.NotFound("Session not found")
			return
		}
		logging.CtxErr(r.Context(), err).Str("session_id", id).Msg("Session stats failed")
		rw.InternalError("Failed to compute session statistics")
		return
	}
	rw.Success(stats)
}

// SessionExport downloads a conversation as a JSON document
//
// @Summary Export a session
// @Description Downloads the full conversation state with derived statistics as a JSON attachment.
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Export "Session export"
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id}/export [get]
func (h *Handler) SessionExport(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")
	export, err := h.sessions.Export(r.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			rw.NotFound("Session not found")
			return
		}
		logging.CtxErr(r.Context(), err).Str("session_id", id).Msg("Session export failed")
		rw.InternalError("Failed to export session")
		return
	}

	h.audit.LogSessionExported(r.Context(), h.auditActor(r), h.auditSource(r), id, len(export.Session.Messages))

	// Raw document download, not the envelope.
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "session-"+id+".json"))
	if err := json.NewEncoder(w).Encode(export); err != nil {
		logging.CtxErr(r.Context(), err).Msg("Failed to write session export")
	}
}

// UpdatePreferences replaces a session's genre preferences
//
// @Summary Update session preferences
// @Description Replaces the liked and disliked genre lists used to personalize ranking. Genre names must come from the known vocabulary.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param preferences body PreferencesRequest true "Genre preferences"
// @Success 200 {object} APIResponse "Updated preferences"
// @Failure 400 {object} APIResponse "Invalid genre names"
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id}/preferences [put]
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req PreferencesRequest
	if !decodeJSON(rw, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	sess, err := h.sessions.UpdatePreferences(r.Context(), id, req.PreferredGenres, req.DislikedGenres)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			rw.NotFound("Session not found")
			return
		}
		logging.CtxErr(r.Context(), err).Str("session_id", id).Msg("Preference update failed")
		rw.InternalError("Failed to update preferences")
		return
	}

	h.audit.LogPreferencesUpdated(r.Context(), h.auditActor(r), h.auditSource(r), id,
		len(sess.PreferredGenres), len(sess.DislikedGenres))

	rw.Success(map[string]interface{}{
		"session_id":       sess.ID,
		"preferred_genres": sess.PreferredGenres,
		"disliked_genres":  sess.DislikedGenres,
	})
}
