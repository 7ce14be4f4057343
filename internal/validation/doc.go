// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with custom validators and user-friendly error
// messages. It integrates with the application's API error format for consistent
// error responses.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Comprehensive error translation to human-readable messages
//   - APIError conversion matching the application's error format
//   - Built-in validator support (email, url, uuid4, oneof, etc.)
//   - Custom domain validators: mood_tag, genre_name, polarity
//
// # Quick Start
//
//	type ChatRequest struct {
//	    SessionID string `validate:"omitempty,uuid4"`
//	    Message   string `validate:"required,min=1,max=2000"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    var req ChatRequest
//	    if err := json.Decode(r.Body, &req); err != nil {
//	        // handle decode error
//	    }
//
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	        return
//	    }
//
//	    // proceed with valid request
//	}
//
// # Custom Domain Validators
//
// Beyond the built-in tags, three validators cover recommendation inputs:
//
//   - mood_tag: value is one of the known mood tags (senang, sedih, ...)
//   - genre_name: value maps to a known genre (case-insensitive, sci-fi alias ok)
//   - polarity: value is one of positive, neutral, negative
//
// Example:
//
//	type PreferencesRequest struct {
//	    PreferredGenres []string `validate:"omitempty,max=10,dive,genre_name"`
//	    DislikedGenres  []string `validate:"omitempty,max=10,dive,genre_name"`
//	}
//
// # Error Types
//
// ValidationError represents a single field validation failure:
//
//	type ValidationError struct {
//	    Field()   string      // Struct field name
//	    Tag()     string      // Validation tag that failed
//	    Param()   string      // Tag parameter (e.g., "100" for max=100)
//	    Value()   interface{} // Actual value that failed
//	    Error()   string      // Human-readable message
//	}
//
// RequestValidationError aggregates multiple field errors:
//
//	type RequestValidationError struct {
//	    Errors() []ValidationError
//	    Error()  string           // Combined message
//	    ToAPIError() *APIError    // Convert to API error format
//	}
//
// # API Error Integration
//
// The ToAPIError method produces errors matching the application format:
//
//	// Single field error
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "Message is required",
//	    "details": {"field": "Message", "tag": "required", "value": ""}
//	}
//
//	// Multiple field errors
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "Message: is required; SessionID: must be a valid UUID",
//	    "details": {
//	        "fields": [
//	            {"field": "Message", "tag": "required", "message": "..."},
//	            {"field": "SessionID", "tag": "uuid4", "message": "..."}
//	        ]
//	    }
//	}
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use:
//
//	validate := validation.GetValidator()  // Thread-safe
//	err := validation.ValidateStruct(&req) // Thread-safe
//
// # See Also
//
//   - internal/api: Request handlers using validation
//   - github.com/go-playground/validator/v10: Underlying library
package validation
