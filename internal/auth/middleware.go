// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/moodvie/moodvie/internal/config"
	"github.com/moodvie/moodvie/internal/logging"
)

type contextKey string

// ClaimsContextKey is where Authenticate stores the caller's *Claims.
const ClaimsContextKey contextKey = "claims"

// Role names carried in Claims.Role. What each role may do is decided
// by the policy in internal/authz.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Middleware enforces the configured authentication mode on incoming
// requests and rate-limits the login endpoint per client IP.
type Middleware struct {
	mode            AuthMode
	jwtManager      *JWTManager
	basicManager    *BasicAuthManager
	loginLimiter    *LoginLimiter
	limiterDisabled bool
	trustedProxies  map[string]bool
}

// NewMiddleware builds the managers the configured mode needs. Basic
// and jwt modes both require the admin credentials; jwt additionally
// requires the signing secret.
func NewMiddleware(cfg *config.SecurityConfig) (*Middleware, error) {
	mode, err := ParseMode(cfg.AuthMode)
	if err != nil {
		return nil, err
	}

	m := &Middleware{
		mode:            mode,
		loginLimiter:    NewLoginLimiter(loginBurst, loginRefillInterval),
		limiterDisabled: cfg.RateLimitDisabled,
		trustedProxies:  make(map[string]bool, len(cfg.TrustedProxies)),
	}
	for _, proxy := range cfg.TrustedProxies {
		m.trustedProxies[proxy] = true
	}

	switch mode {
	case AuthModeNone:
		logging.Warn().Msg("Authentication is DISABLED (AUTH_MODE=none); every request is accepted as-is. Do not expose this instance to untrusted networks")
	case AuthModeBasic:
		m.basicManager, err = NewBasicAuthManager(cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			return nil, err
		}
	case AuthModeJWT:
		m.jwtManager, err = NewJWTManager(cfg)
		if err != nil {
			return nil, err
		}
		// Login still checks a username and password before a token
		// is issued, so jwt mode carries the credential manager too.
		m.basicManager, err = NewBasicAuthManager(cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			return nil, err
		}
	}

	if !m.limiterDisabled {
		go m.loginLimiter.startCleanup(loginCleanupInterval)
	}

	return m, nil
}

// Mode returns the active authentication mode.
func (m *Middleware) Mode() AuthMode {
	return m.mode
}

// Close stops the login limiter's cleanup goroutine.
func (m *Middleware) Close() {
	m.loginLimiter.Stop()
}

// Authenticate verifies the request according to the configured mode
// and stores the resulting *Claims in the request context. In none
// mode requests pass through without claims.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch m.mode {
		case AuthModeBasic:
			m.serveBasic(w, r, next)
		case AuthModeJWT:
			m.serveJWT(w, r, next)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (m *Middleware) serveBasic(w http.ResponseWriter, r *http.Request, next http.Handler) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		m.challengeBasic(w, "Unauthorized: authentication required")
		return
	}

	username, err := m.basicManager.ValidateCredentials(authHeader)
	if err != nil {
		logging.Warn().Err(err).Str("remote_ip", m.ClientIP(r)).Msg("Basic auth validation failed")
		m.challengeBasic(w, "Unauthorized: invalid credentials")
		return
	}

	// Basic mode has a single configured credential pair, and it
	// belongs to the instance operator.
	claims := &Claims{Username: username, Role: RoleAdmin}
	next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
}

func (m *Middleware) challengeBasic(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", m.basicManager.GetWWWAuthenticateHeader())
	http.Error(w, message, http.StatusUnauthorized)
}

func (m *Middleware) serveJWT(w http.ResponseWriter, r *http.Request, next http.Handler) {
	token, err := extractToken(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	claims, err := m.jwtManager.ValidateToken(token)
	if err != nil {
		logging.Warn().Err(err).Str("remote_ip", m.ClientIP(r)).Msg("Token validation failed")
		http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
		return
	}

	next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
}

// extractToken pulls the JWT from the Authorization header, falling
// back to the "token" cookie for browser clients.
func extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		cookie, err := r.Cookie("token")
		if err != nil {
			return "", fmt.Errorf("unauthorized: missing token")
		}
		return cookie.Value, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("unauthorized: invalid authorization header")
	}
	return parts[1], nil
}

// LimitLogin applies the per-IP login rate limit. It wraps only the
// login route; general API limits are handled at the router.
func (m *Middleware) LimitLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.limiterDisabled {
			next.ServeHTTP(w, r)
			return
		}

		ip := m.ClientIP(r)
		if !m.loginLimiter.Allow(ip) {
			logging.Warn().Str("remote_ip", ip).Msg("Login attempt rate limited")
			http.Error(w, "Too many login attempts", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// VerifyLogin checks a username and password against the configured
// admin credentials. Always false in none mode, which has no
// credentials to check against.
func (m *Middleware) VerifyLogin(username, password string) bool {
	if m.basicManager == nil {
		return false
	}
	return m.basicManager.validateUsernamePassword(username, password)
}

// IssueToken generates a signed JWT for a verified user and returns it
// together with its lifetime. Errors when jwt mode is not active.
func (m *Middleware) IssueToken(username, role string) (string, time.Duration, error) {
	if m.jwtManager == nil {
		return "", 0, fmt.Errorf("token issuance requires AUTH_MODE=jwt")
	}

	token, err := m.jwtManager.GenerateToken(username, role)
	if err != nil {
		return "", 0, err
	}
	return token, m.jwtManager.Timeout(), nil
}

// ClientIP extracts the caller's address. Forwarded headers are
// client-controlled, so they are honored only when the direct peer is
// a configured trusted proxy.
func (m *Middleware) ClientIP(r *http.Request) string {
	remoteIP := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remoteIP); err == nil {
		remoteIP = host
	}

	if len(m.trustedProxies) == 0 || !m.trustedProxies[remoteIP] {
		return remoteIP
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" && net.ParseIP(xri) != nil {
		return xri
	}

	return remoteIP
}

// WithClaims returns a context carrying the given claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext retrieves the authenticated caller's claims, or
// nil when the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}
