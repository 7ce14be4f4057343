// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package api

import (
	"net/http"

	"github.com/moodvie/moodvie/internal/chat"
	"github.com/moodvie/moodvie/internal/logging"
	"github.com/moodvie/moodvie/internal/models"
)

// ChatResponse is the payload answered by the chat endpoint.
type ChatResponse struct {
	SessionID       string               `json:"session_id"`
	Reply           string               `json:"reply"`
	State           string               `json:"state"`
	Mood            *models.MoodJudgment `json:"mood,omitempty"`
	Recommendations []models.RankedMovie `json:"recommendations,omitempty"`
}

// Chat handles one conversation turn
//
// @Summary Send a chat message
// @Description Processes one conversation turn: a mood statement is answered with a genre proposal, a reply to a pending proposal resolves it. Omit session_id to start a new conversation; the response carries the ID to continue with.
// @Tags Chat
// @Accept json
// @Produce json
// @Param turn body ChatRequest true "User message with optional session ID"
// @Success 200 {object} APIResponse{data=ChatResponse} "Assistant reply"
// @Failure 400 {object} APIResponse "Invalid request body"
// @Failure 500 {object} APIResponse "Turn processing failed"
// @Router /chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ChatRequest
	if !decodeJSON(rw, r, &req) {
		return
	}

	var result chat.Result
	sess, err := h.sessions.Turn(r.Context(), req.SessionID, func(sess *models.Session) error {
		ctx := logging.ContextWithSessionID(r.Context(), sess.ID)
		result = h.gate.HandleTurn(ctx, sess, req.Message)
		return nil
	})
	if err != nil {
		logging.CtxErr(r.Context(), err).Msg("Chat turn failed")
		rw.InternalError("Failed to process the message")
		return
	}

	rw.Success(ChatResponse{
		SessionID:       sess.ID,
		Reply:           result.Reply,
		State:           result.State,
		Mood:            result.Mood,
		Recommendations: result.Recommendations,
	})
}
