// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package audit

import (
	"context"
	"time"

	"github.com/goccy/go-json"
)

// EventType categorizes audit events.
type EventType string

const (
	// Authentication events
	EventTypeAuthSuccess EventType = "auth.success"
	EventTypeAuthFailure EventType = "auth.failure"

	// Session lifecycle events
	EventTypeSessionDeleted     EventType = "session.deleted"
	EventTypeSessionExported    EventType = "session.exported"
	EventTypePreferencesUpdated EventType = "session.preferences_updated"

	// Administrative events
	EventTypeCatalogSeeded EventType = "catalog.seeded"
	EventTypeAdminAction   EventType = "admin.action"
)

// Severity indicates the severity level of an audit event.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Outcome indicates whether an action succeeded or failed.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Event is one recorded action.
type Event struct {
	// ID is a unique identifier for this event.
	ID string `json:"id"`

	// Timestamp when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type EventType `json:"type"`

	// Severity of the event.
	Severity Severity `json:"severity"`

	// Outcome indicates success or failure.
	Outcome Outcome `json:"outcome"`

	// Actor who performed the action.
	Actor Actor `json:"actor"`

	// Target of the action, when one exists.
	Target *Target `json:"target,omitempty"`

	// Source of the request.
	Source Source `json:"source"`

	// Action is the verb, e.g. "authenticate" or "delete".
	Action string `json:"action"`

	// Description provides human-readable details.
	Description string `json:"description"`

	// Metadata contains event-specific details.
	Metadata json.RawMessage `json:"metadata,omitempty"`

	// RequestID from the originating HTTP request.
	RequestID string `json:"request_id,omitempty"`
}

// Actor is who performed an action.
type Actor struct {
	// ID is the unique identifier of the actor.
	ID string `json:"id"`

	// Type of actor: "user", "anonymous", or "system".
	Type string `json:"type"`

	// Name is the username, when known.
	Name string `json:"name,omitempty"`

	// Role assigned to the actor.
	Role string `json:"role,omitempty"`
}

// Target is the object of an action.
type Target struct {
	// ID of the target resource.
	ID string `json:"id"`

	// Type of target: "session" or "catalog".
	Type string `json:"type"`
}

// Source is where a request originated.
type Source struct {
	// IPAddress of the client.
	IPAddress string `json:"ip_address"`

	// UserAgent of the client.
	UserAgent string `json:"user_agent,omitempty"`
}

// SystemActor returns the Actor for actions the service performs on its
// own behalf, such as the startup seed import.
func SystemActor() Actor {
	return Actor{
		ID:   "system",
		Type: "system",
		Name: "MoodVie",
	}
}

// AnonymousActor returns the Actor for unauthenticated callers.
func AnonymousActor() Actor {
	return Actor{
		ID:   "anonymous",
		Type: "anonymous",
	}
}

// Store defines the interface for audit event persistence.
type Store interface {
	// Save persists an audit event.
	Save(ctx context.Context, event *Event) error

	// Get retrieves an event by ID.
	Get(ctx context.Context, id string) (*Event, error)

	// Query retrieves events matching the filter, most recent first.
	Query(ctx context.Context, filter QueryFilter) ([]Event, error)

	// Count returns the number of events matching the filter.
	Count(ctx context.Context, filter QueryFilter) (int64, error)

	// Prune removes events older than the given time and reports how
	// many were removed.
	Prune(ctx context.Context, olderThan time.Time) (int64, error)

	// Stats summarizes the stored trail.
	Stats(ctx context.Context) (*Stats, error)
}

// QueryFilter defines filtering options for audit queries. Zero fields
// match everything. Results are always ordered most recent first.
type QueryFilter struct {
	// Types filters by event types.
	Types []EventType `json:"types,omitempty"`

	// Severities filters by severity levels.
	Severities []Severity `json:"severities,omitempty"`

	// Outcomes filters by outcome.
	Outcomes []Outcome `json:"outcomes,omitempty"`

	// ActorID filters by actor ID.
	ActorID string `json:"actor_id,omitempty"`

	// TargetID filters by target ID.
	TargetID string `json:"target_id,omitempty"`

	// SourceIP filters by source IP.
	SourceIP string `json:"source_ip,omitempty"`

	// RequestID filters by originating request ID.
	RequestID string `json:"request_id,omitempty"`

	// Since is the beginning of the time range, inclusive.
	Since *time.Time `json:"since,omitempty"`

	// Until is the end of the time range, inclusive.
	Until *time.Time `json:"until,omitempty"`

	// SearchText matches against description and action,
	// case-insensitively.
	SearchText string `json:"search_text,omitempty"`

	// Limit is the maximum number of results.
	Limit int `json:"limit,omitempty"`

	// Offset for pagination.
	Offset int `json:"offset,omitempty"`
}

// DefaultQueryFilter returns the filter the admin endpoint starts from.
func DefaultQueryFilter() QueryFilter {
	return QueryFilter{Limit: 100}
}

// Stats summarizes the stored trail.
type Stats struct {
	TotalEvents     int64            `json:"total_events"`
	EventsByType    map[string]int64 `json:"events_by_type"`
	EventsByOutcome map[string]int64 `json:"events_by_outcome"`
	OldestEvent     *time.Time       `json:"oldest_event,omitempty"`
	NewestEvent     *time.Time       `json:"newest_event,omitempty"`
}
