// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/moodvie/moodvie/internal/logging"
)

// DuckDBStore implements Store on a DuckDB connection. It shares the
// catalog database file, so the trail survives restarts and catalog
// reseeding without a second database to operate.
type DuckDBStore struct {
	db *sql.DB
}

// NewDuckDBStore creates a DuckDB-backed audit store. Call CreateTable
// before the first Save.
func NewDuckDBStore(db *sql.DB) *DuckDBStore {
	return &DuckDBStore{db: db}
}

// CreateTable creates the audit_events table and its indexes if they do
// not exist.
func (s *DuckDBStore) CreateTable(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS audit_events (
			id TEXT PRIMARY KEY,
			timestamp TIMESTAMPTZ NOT NULL,
			type TEXT NOT NULL,
			severity TEXT NOT NULL,
			outcome TEXT NOT NULL,

			actor_id TEXT NOT NULL,
			actor_type TEXT NOT NULL,
			actor_name TEXT,
			actor_role TEXT,

			target_id TEXT,
			target_type TEXT,

			source_ip TEXT,
			source_user_agent TEXT,

			action TEXT NOT NULL,
			description TEXT NOT NULL,
			metadata JSON,
			request_id TEXT,

			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_events(timestamp DESC);
		CREATE INDEX IF NOT EXISTS idx_audit_type ON audit_events(type);
		CREATE INDEX IF NOT EXISTS idx_audit_outcome ON audit_events(outcome);
		CREATE INDEX IF NOT EXISTS idx_audit_actor_id ON audit_events(actor_id);
		CREATE INDEX IF NOT EXISTS idx_audit_target_id ON audit_events(target_id);
		CREATE INDEX IF NOT EXISTS idx_audit_source_ip ON audit_events(source_ip);
		CREATE INDEX IF NOT EXISTS idx_audit_request_id ON audit_events(request_id);
	`

	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute audit schema statement: %w", err)
		}
	}

	return nil
}

// Save persists an audit event.
func (s *DuckDBStore) Save(ctx context.Context, event *Event) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	query := `
		INSERT INTO audit_events (
			id, timestamp, type, severity, outcome,
			actor_id, actor_type, actor_name, actor_role,
			target_id, target_type,
			source_ip, source_user_agent,
			action, description, metadata, request_id,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	targetID, targetType := targetFields(event.Target)

	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.Timestamp,
		string(event.Type),
		string(event.Severity),
		string(event.Outcome),
		event.Actor.ID,
		event.Actor.Type,
		event.Actor.Name,
		event.Actor.Role,
		targetID,
		targetType,
		event.Source.IPAddress,
		event.Source.UserAgent,
		event.Action,
		event.Description,
		metadataField(event.Metadata),
		event.RequestID,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save audit event: %w", err)
	}
	return nil
}

// targetFields splits an optional Target into nullable columns.
func targetFields(target *Target) (*string, *string) {
	if target == nil {
		return nil, nil
	}
	return &target.ID, &target.Type
}

// metadataField converts metadata to a nullable string for the JSON
// column.
func metadataField(metadata json.RawMessage) *string {
	if len(metadata) == 0 {
		return nil
	}
	v := string(metadata)
	return &v
}

// Get retrieves an event by ID.
func (s *DuckDBStore) Get(ctx context.Context, id string) (*Event, error) {
	query := selectColumns + " FROM audit_events WHERE id = ?"

	row := s.db.QueryRowContext(ctx, query, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("audit event not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get audit event: %w", err)
	}
	return event, nil
}

// Query retrieves events matching the filter, most recent first.
func (s *DuckDBStore) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	query, args := buildQuery(filter, false)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			logging.Warn().Err(err).Msg("Failed to scan audit event row")
			continue
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit events: %w", err)
	}

	return events, nil
}

// Count returns the number of events matching the filter.
func (s *DuckDBStore) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	query, args := buildQuery(filter, true)

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count audit events: %w", err)
	}
	return count, nil
}

// Prune removes events older than the given time.
func (s *DuckDBStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM audit_events WHERE timestamp < ?`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to prune audit events: %w", err)
	}

	pruned, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get pruned count: %w", err)
	}
	return pruned, nil
}

// Stats summarizes the stored trail.
func (s *DuckDBStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		EventsByType:    make(map[string]int64),
		EventsByOutcome: make(map[string]int64),
	}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_events").Scan(&stats.TotalEvents); err != nil {
		return nil, fmt.Errorf("failed to get total audit count: %w", err)
	}

	typeCounts, err := s.countByColumn(ctx, "type")
	if err != nil {
		return nil, err
	}
	stats.EventsByType = typeCounts

	outcomeCounts, err := s.countByColumn(ctx, "outcome")
	if err != nil {
		return nil, err
	}
	stats.EventsByOutcome = outcomeCounts

	var oldest, newest sql.NullTime
	err = s.db.QueryRowContext(ctx, "SELECT MIN(timestamp), MAX(timestamp) FROM audit_events").Scan(&oldest, &newest)
	if err == nil {
		if oldest.Valid {
			stats.OldestEvent = &oldest.Time
		}
		if newest.Valid {
			stats.NewestEvent = &newest.Time
		}
	}

	return stats, nil
}

// countByColumn executes a GROUP BY over one column and returns counts
// per value. column comes from a fixed caller-side set, never input.
func (s *DuckDBStore) countByColumn(ctx context.Context, column string) (map[string]int64, error) {
	result := make(map[string]int64)
	query := fmt.Sprintf("SELECT %s, COUNT(*) FROM audit_events GROUP BY %s", column, column)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s counts: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err == nil {
			result[key] = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s counts: %w", column, err)
	}
	return result, nil
}

// selectColumns lists the event columns in scan order. JSON columns are
// cast to VARCHAR so database/sql scans them as strings.
const selectColumns = `
	SELECT
		id, timestamp, type, severity, outcome,
		actor_id, actor_type, actor_name, actor_role,
		target_id, target_type,
		source_ip, source_user_agent,
		action, description,
		CAST(metadata AS VARCHAR) AS metadata,
		request_id
`

// buildQuery constructs the SQL for Query or Count from the filter.
func buildQuery(filter QueryFilter, countOnly bool) (string, []interface{}) {
	conditions, args := buildConditions(filter)

	query := selectColumns + " FROM audit_events"
	if countOnly {
		query = "SELECT COUNT(*) FROM audit_events"
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	if !countOnly {
		query += " ORDER BY timestamp DESC"
		if filter.Limit > 0 {
			query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		}
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	return query, args
}

// buildConditions translates the filter into WHERE clauses.
func buildConditions(filter QueryFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	if cond := inCondition("type", filter.Types, &args); cond != "" {
		conditions = append(conditions, cond)
	}
	if cond := inCondition("severity", filter.Severities, &args); cond != "" {
		conditions = append(conditions, cond)
	}
	if cond := inCondition("outcome", filter.Outcomes, &args); cond != "" {
		conditions = append(conditions, cond)
	}

	conditions, args = eqCondition(conditions, args, "actor_id", filter.ActorID)
	conditions, args = eqCondition(conditions, args, "target_id", filter.TargetID)
	conditions, args = eqCondition(conditions, args, "source_ip", filter.SourceIP)
	conditions, args = eqCondition(conditions, args, "request_id", filter.RequestID)

	if filter.Since != nil {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, *filter.Since)
	}
	if filter.Until != nil {
		conditions = append(conditions, "timestamp <= ?")
		args = append(args, *filter.Until)
	}

	if filter.SearchText != "" {
		conditions = append(conditions, "(LOWER(description) LIKE ? OR LOWER(action) LIKE ?)")
		pattern := "%" + strings.ToLower(filter.SearchText) + "%"
		args = append(args, pattern, pattern)
	}

	return conditions, args
}

// inCondition creates a SQL IN clause for a slice of string-kinded
// values, appending the values to args.
func inCondition[T ~string](column string, values []T, args *[]interface{}) string {
	if len(values) == 0 {
		return ""
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		*args = append(*args, string(v))
	}
	return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ","))
}

// eqCondition adds an equality clause when value is non-empty.
func eqCondition(conditions []string, args []interface{}, column, value string) ([]string, []interface{}) {
	if value != "" {
		conditions = append(conditions, column+" = ?")
		args = append(args, value)
	}
	return conditions, args
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanEvent reads one event row in selectColumns order.
func scanEvent(row rowScanner) (*Event, error) {
	var event Event
	var eventType, severity, outcome string
	var targetID, targetType, metadata sql.NullString

	err := row.Scan(
		&event.ID,
		&event.Timestamp,
		&eventType,
		&severity,
		&outcome,
		&event.Actor.ID,
		&event.Actor.Type,
		&event.Actor.Name,
		&event.Actor.Role,
		&targetID,
		&targetType,
		&event.Source.IPAddress,
		&event.Source.UserAgent,
		&event.Action,
		&event.Description,
		&metadata,
		&event.RequestID,
	)
	if err != nil {
		return nil, err
	}

	event.Type = EventType(eventType)
	event.Severity = Severity(severity)
	event.Outcome = Outcome(outcome)

	if targetID.Valid {
		event.Target = &Target{ID: targetID.String, Type: targetType.String}
	}
	if metadata.Valid && metadata.String != "" {
		event.Metadata = json.RawMessage(metadata.String)
	}

	return &event, nil
}
