// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// HTTP request bodies and query parameters with go-playground/validator
// tags. Custom tags (genre_name) are registered by the validation
// package. Every struct here passes through validate before a handler
// acts on it.

package api

// ChatRequest is the body of POST /api/v1/chat. SessionID is optional;
// an empty, unknown, or expired ID starts a fresh conversation and the
// response carries the ID to continue with.
type ChatRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,uuid4"`
	Message   string `json:"message" validate:"required,max=2000"`
}

// PreferencesRequest is the body of PUT /api/v1/sessions/{id}/preferences.
// Genre names must come from the known vocabulary.
type PreferencesRequest struct {
	PreferredGenres []string `json:"preferred_genres" validate:"omitempty,max=20,dive,genre_name"`
	DislikedGenres  []string `json:"disliked_genres" validate:"omitempty,max=20,dive,genre_name"`
}

// RecommendationsRequest is the body of POST /api/v1/recommendations:
// a direct genre search that bypasses the conversation.
type RecommendationsRequest struct {
	Genres []string `json:"genres" validate:"required,min=1,max=10,dive,genre_name"`
	Limit  int      `json:"limit" validate:"omitempty,min=1,max=20"`
	Query  string   `json:"query" validate:"omitempty,max=500"`
}

// MovieSearchRequest holds the validated query parameters of
// GET /api/v1/movies/search.
type MovieSearchRequest struct {
	Title string `validate:"required,min=1,max=200"`
	Limit int    `validate:"min=1,max=50"`
}

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=1,max=200"`
}

// SeedRequest is the body of POST /api/v1/admin/seed. Movies carries
// inline records; when empty the configured seed file is imported
// instead.
type SeedRequest struct {
	Movies []map[string]interface{} `json:"movies" validate:"omitempty,max=10000"`
}
