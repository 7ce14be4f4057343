// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package api

import (
	"net/http"
	"time"

	"github.com/moodvie/moodvie/internal/audit"
	"github.com/moodvie/moodvie/internal/auth"
	"github.com/moodvie/moodvie/internal/logging"
)

// LoginResponse carries an issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

// Login exchanges admin credentials for a JWT
//
// @Summary Log in
// @Description Issues a JWT for the configured admin credentials. Only available when AUTH_MODE=jwt; basic and none modes have no token endpoint.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Username and password"
// @Success 200 {object} APIResponse "Issued token"
// @Failure 401 {object} APIResponse "Invalid credentials"
// @Failure 403 {object} APIResponse "Token auth not enabled"
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.auth == nil || h.auth.Mode() != auth.AuthModeJWT {
		rw.Error(http.StatusForbidden, ErrCodeAuthDisabled, "Token authentication is not enabled")
		return
	}

	var req LoginRequest
	if !decodeJSON(rw, r, &req) {
		return
	}

	if !h.auth.VerifyLogin(req.Username, req.Password) {
		logging.Ctx(r.Context()).Warn().
			Str("username", req.Username).
			Msg("Login rejected")
		h.audit.LogAuthFailure(r.Context(), req.Username, h.auditSource(r), "invalid credentials")
		rw.Error(http.StatusUnauthorized, ErrCodeInvalidCredentials, "Invalid username or password")
		return
	}

	token, ttl, err := h.auth.IssueToken(req.Username, auth.RoleAdmin)
	if err != nil {
		logging.CtxErr(r.Context(), err).Msg("Token issuance failed")
		rw.InternalError("Failed to issue token")
		return
	}

	expiresAt := time.Now().Add(ttl)
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	logging.Ctx(r.Context()).Info().
		Str("username", req.Username).
		Time("expires_at", expiresAt).
		Msg("Login succeeded")

	h.audit.LogAuthSuccess(r.Context(), audit.Actor{
		ID:   req.Username,
		Type: "user",
		Name: req.Username,
		Role: auth.RoleAdmin,
	}, h.auditSource(r))

	rw.Success(LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  req.Username,
		Role:      auth.RoleAdmin,
	})
}
