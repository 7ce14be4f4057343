// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package authz decides what an authenticated caller may do, using
// Casbin RBAC. Authentication (who the caller is) lives in
// internal/auth; this package maps the role it established to
// permissions on API paths.
//
//	Request -> auth.Authenticate -> authz.Authorize -> handler
//
// # Model
//
// The embedded model is Casbin's RBAC form with role inheritance:
//
//	[request_definition]
//	r = sub, obj, act
//
//	[policy_definition]
//	p = sub, obj, act
//
//	[role_definition]
//	g = _, _
//
//	[policy_effect]
//	e = some(where (p.eft == allow))
//
//	[matchers]
//	m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && r.act == p.act
//
// Subjects are role names. The embedded policy grants the user role
// the conversational surface (chat, sessions, movies, recommendations,
// genres) and reserves /api/v1/admin/* for admin, which inherits user
// through a grouping rule. HTTP methods map to actions: GET/HEAD/
// OPTIONS are "read", POST/PUT/PATCH are "write", DELETE is "delete".
//
// Operators can replace the embedded files with CASBIN_MODEL_PATH and
// CASBIN_POLICY_PATH; an external policy file is re-read on an
// interval so edits apply without a restart. Unauthenticated requests
// (auth mode none) are enforced as CASBIN_DEFAULT_ROLE, user unless
// overridden, so admin surfaces stay closed even with authentication
// disabled.
package authz
