// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

/*
Package auth provides request authentication for the HTTP API.

Three modes are supported, selected by AUTH_MODE:

  - none: every request passes through unauthenticated. Intended for
    single-user deployments behind a trusted reverse proxy; the server
    logs a prominent warning at startup.
  - basic: HTTP Basic Authentication against the configured admin
    credentials, verified with bcrypt.
  - jwt: bearer tokens signed with HMAC-SHA256. Tokens are issued by
    POST /api/v1/auth/login and accepted from the Authorization header
    or a "token" cookie.

Components:

  - JWTManager: token generation and validation (HS256)
  - BasicAuthManager: credential verification with bcrypt hashing
  - Middleware: chi-compatible Authenticate middleware that places
    *Claims in the request context
  - LoginLimiter: per-IP token bucket guarding the login endpoint
    against brute force

Authentication establishes who the caller is; what they may do is
decided by internal/authz, which reads the role from the Claims this
package attaches to the context.

Thread safety: JWTManager and BasicAuthManager are read-only after
construction. LoginLimiter guards its per-IP state with a mutex and
prunes idle entries on a background ticker.
*/
package auth
