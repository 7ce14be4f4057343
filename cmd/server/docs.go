// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package main provides the MoodVie HTTP server
//
// MoodVie recommends movies from conversation: the user describes a
// feeling, the service infers a mood and proposes matching genres, and a
// confirmation serves ranked recommendations.
//
// @title MoodVie API
// @version 1.0
// @description Mood-driven movie recommendation service. Tell the assistant how you feel; it infers your mood with an LLM, proposes matching genres, and serves ranked movie recommendations from an embedded DuckDB catalog with semantic search.
// @description
// @description ## Conversation Flow
// @description
// @description 1. POST `/api/v1/chat` with a feeling ("aku capek banget hari ini")
// @description 2. The assistant replies with an empathetic genre proposal
// @description 3. Confirm ("iya boleh") to receive ranked recommendations with review summaries
// @description 4. Decline, or describe a new mood to start over
// @description
// @description ## Authentication
// @description
// @description AUTH_MODE selects none (default), basic, or jwt. In jwt mode obtain a token via `/api/v1/auth/login`; it is stored in an HTTP-only cookie and sent automatically.
// @description
// @description ## Error Responses
// @description
// @description All errors share one envelope:
// @description ```json
// @description {
// @description   "success": false,
// @description   "data": null,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message"
// @description   },
// @description   "meta": {
// @description     "timestamp": "2026-08-25T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/moodvie/moodvie/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
//
// @securityDefinitions.apikey BearerAuth
// @in cookie
// @name token
// @description JWT token stored in HTTP-only cookie. Obtain via /api/v1/auth/login endpoint.
//
// @tag.name Core
// @tag.description Health checks and service status
//
// @tag.name Chat
// @tag.description The mood-driven conversation endpoint
//
// @tag.name Sessions
// @tag.description Conversation session lifecycle, history, statistics, and preferences
//
// @tag.name Movies
// @tag.description Catalog lookups, direct genre recommendations, and the genre vocabulary
//
// @tag.name Auth
// @tag.description Authentication endpoints
//
// @tag.name Admin
// @tag.description Administrative operations restricted to the admin role
//
// @tag.name Realtime
// @tag.description Real-time WebSocket event feed
package main
