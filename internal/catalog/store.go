// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/moodvie/moodvie/internal/logging"
	"github.com/moodvie/moodvie/internal/metrics"
	"github.com/moodvie/moodvie/internal/models"
)

// ErrNotFound is returned when a lookup matches no catalog row.
var ErrNotFound = errors.New("catalog: movie not found")

// Store is the catalog surface the recommendation pipeline consumes.
// *DB implements it; tests substitute fakes.
type Store interface {
	// FilterSearch returns candidates whose genres overlap genreIDs,
	// most popular first. An empty genre list yields no candidates.
	FilterSearch(ctx context.Context, genreIDs []int, limit int) ([]models.MovieCandidate, error)

	// SimilaritySearch returns candidates ordered by cosine similarity to
	// vector, optionally restricted to genres overlapping genreIDs. Rows
	// without an embedding are skipped.
	SimilaritySearch(ctx context.Context, vector []float32, genreIDs []int, limit int) ([]models.MovieCandidate, error)

	// GetByID fetches a movie by its external ID.
	GetByID(ctx context.Context, externalID int64) (models.MovieCandidate, error)

	// GetByTitle fetches a movie by exact title, case-insensitive.
	GetByTitle(ctx context.Context, title string) (models.MovieCandidate, error)

	// SearchByTitle returns movies whose title contains the query,
	// case-insensitive, most popular first.
	SearchByTitle(ctx context.Context, title string, limit int) ([]models.MovieCandidate, error)

	// Count returns the number of movies in the catalog.
	Count(ctx context.Context) (int64, error)

	// Insert upserts a movie keyed by external ID. vector may be nil for
	// rows without an embedding.
	Insert(ctx context.Context, candidate models.MovieCandidate, vector []float32) error
}

var _ Store = (*DB)(nil)

// FilterSearch returns candidates matching any of the genre IDs.
//
// Mirrors the retrieval contract: an empty genre list is answered with an
// empty slice rather than the whole catalog, and results come back most
// popular first so truncation keeps the strongest candidates.
func (db *DB) FilterSearch(ctx context.Context, genreIDs []int, limit int) ([]models.MovieCandidate, error) {
	if len(genreIDs) == 0 {
		logging.Warn().Msg("Filter search called with no genre IDs")
		return []models.MovieCandidate{}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
	SELECT raw_payload
	FROM movies
	WHERE genre_ids IS NOT NULL
	  AND list_has_any(genre_ids, CAST(? AS INTEGER[]))
	ORDER BY popularity DESC
	LIMIT ?`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, intListLiteral(genreIDs), limit)
	metrics.RecordCatalogQuery("filter_search", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies by genre: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanCandidates(rows, false)
}

// SimilaritySearch returns candidates ordered by cosine similarity to the
// query vector. Each result carries its similarity score so downstream
// scoring can blend it with rating signals.
func (db *DB) SimilaritySearch(ctx context.Context, vector []float32, genreIDs []int, limit int) ([]models.MovieCandidate, error) {
	if len(vector) != db.dimensions {
		return nil, fmt.Errorf("query vector has %d dimensions, schema expects %d", len(vector), db.dimensions)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`
	SELECT raw_payload,
	       list_cosine_similarity(embedding, CAST(? AS FLOAT[%d])) AS similarity
	FROM movies
	WHERE embedding IS NOT NULL`, db.dimensions)

	args := []interface{}{floatListLiteral(vector)}
	if len(genreIDs) > 0 {
		query += `
	  AND genre_ids IS NOT NULL
	  AND list_has_any(genre_ids, CAST(? AS INTEGER[]))`
		args = append(args, intListLiteral(genreIDs))
	}
	query += `
	ORDER BY similarity DESC
	LIMIT ?`
	args = append(args, limit)

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordCatalogQuery("similarity_search", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies by similarity: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanCandidates(rows, true)
}

// GetByID fetches a movie by its external ID.
func (db *DB) GetByID(ctx context.Context, externalID int64) (models.MovieCandidate, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var raw string
	err := db.conn.QueryRowContext(ctx,
		`SELECT raw_payload FROM movies WHERE external_id = ?`, externalID).Scan(&raw)
	metrics.RecordCatalogQuery("get_by_id", time.Since(start), err)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MovieCandidate{}, ErrNotFound
	}
	if err != nil {
		return models.MovieCandidate{}, fmt.Errorf("failed to query movie %d: %w", externalID, err)
	}

	return candidateFromRaw(raw, nil)
}

// GetByTitle fetches a movie by exact title, case-insensitive.
func (db *DB) GetByTitle(ctx context.Context, title string) (models.MovieCandidate, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var raw string
	err := db.conn.QueryRowContext(ctx,
		`SELECT raw_payload FROM movies WHERE lower(title) = lower(?) LIMIT 1`, title).Scan(&raw)
	metrics.RecordCatalogQuery("get_by_title", time.Since(start), err)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MovieCandidate{}, ErrNotFound
	}
	if err != nil {
		return models.MovieCandidate{}, fmt.Errorf("failed to query movie %q: %w", title, err)
	}

	return candidateFromRaw(raw, nil)
}

// SearchByTitle returns movies whose title contains the query.
func (db *DB) SearchByTitle(ctx context.Context, title string, limit int) ([]models.MovieCandidate, error) {
	if strings.TrimSpace(title) == "" {
		return []models.MovieCandidate{}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
	SELECT raw_payload
	FROM movies
	WHERE title ILIKE '%' || ? || '%'
	ORDER BY popularity DESC
	LIMIT ?`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, title, limit)
	metrics.RecordCatalogQuery("search_by_title", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to search movies by title: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanCandidates(rows, false)
}

// Count returns the number of movies in the catalog and refreshes the
// catalog size gauge.
func (db *DB) Count(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var count int64
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count)
	metrics.RecordCatalogQuery("count", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}

	metrics.CatalogMovies.Set(float64(count))
	return count, nil
}

// Insert upserts a movie keyed by external ID. A candidate without a raw
// payload gets one synthesized from its typed fields so every stored row
// round-trips through the same payload path.
func (db *DB) Insert(ctx context.Context, candidate models.MovieCandidate, vector []float32) error {
	if strings.TrimSpace(candidate.Title) == "" {
		return fmt.Errorf("movie has no title")
	}
	if candidate.ExternalID == 0 {
		return fmt.Errorf("movie %q has no external ID", candidate.Title)
	}
	if vector != nil && len(vector) != db.dimensions {
		return fmt.Errorf("movie %q embedding has %d dimensions, schema expects %d",
			candidate.Title, len(vector), db.dimensions)
	}

	payload := candidate.RawPayload
	if payload == nil {
		payload = payloadFromCandidate(candidate)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload for %q: %w", candidate.Title, err)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	// NULLIF turns the empty embedding literal into a NULL column value.
	query := fmt.Sprintf(`
	INSERT OR REPLACE INTO movies (
		external_id, title, original_title, release_year,
		rating, popularity, vote_count, genre_ids,
		overview, poster_url, trailer_url, embedding, raw_payload
	) VALUES (?, ?, ?, ?, ?, ?, ?, CAST(? AS INTEGER[]), ?, ?, ?, CAST(NULLIF(?, '') AS FLOAT[%d]), ?)`,
		db.dimensions)

	embeddingLiteral := ""
	if vector != nil {
		embeddingLiteral = floatListLiteral(vector)
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx, query,
		candidate.ExternalID,
		candidate.Title,
		nullableString(candidate.OriginalTitle),
		nullableInt(candidate.ReleaseYear),
		candidate.Rating,
		candidate.Popularity,
		candidate.VoteCount,
		intListLiteral(candidate.GenreIDs),
		nullableString(candidate.Overview),
		nullableString(candidate.PosterURL),
		nullableString(candidate.TrailerURL),
		embeddingLiteral,
		string(raw),
	)
	metrics.RecordCatalogQuery("insert", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to insert movie %q: %w", candidate.Title, err)
	}

	return nil
}

// scanCandidates decodes raw payload rows into candidates. withSimilarity
// selects the two-column similarity query shape.
func scanCandidates(rows *sql.Rows, withSimilarity bool) ([]models.MovieCandidate, error) {
	// Empty slice instead of nil for consistent JSON serialization
	candidates := []models.MovieCandidate{}
	for rows.Next() {
		var (
			raw        string
			similarity sql.NullFloat64
		)
		if withSimilarity {
			if err := rows.Scan(&raw, &similarity); err != nil {
				return nil, fmt.Errorf("failed to scan movie row: %w", err)
			}
		} else {
			if err := rows.Scan(&raw); err != nil {
				return nil, fmt.Errorf("failed to scan movie row: %w", err)
			}
		}

		var simPtr *float64
		if similarity.Valid {
			s := similarity.Float64
			simPtr = &s
		}

		candidate, err := candidateFromRaw(raw, simPtr)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movie rows: %w", err)
	}
	return candidates, nil
}

// candidateFromRaw reconstructs a candidate from its stored payload.
func candidateFromRaw(raw string, similarity *float64) (models.MovieCandidate, error) {
	var record map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return models.MovieCandidate{}, fmt.Errorf("failed to decode stored payload: %w", err)
	}
	return models.CandidateFromRecord(record, similarity), nil
}

// payloadFromCandidate synthesizes a source payload for candidates created
// from typed fields, e.g. movies added through the API rather than a seed.
func payloadFromCandidate(c models.MovieCandidate) map[string]interface{} {
	payload := map[string]interface{}{
		"id":           c.ExternalID,
		"title":        c.Title,
		"vote_average": c.Rating,
		"popularity":   c.Popularity,
		"vote_count":   c.VoteCount,
		"genre_ids":    c.GenreIDs,
	}
	if c.OriginalTitle != "" {
		payload["original_title"] = c.OriginalTitle
	}
	if c.ReleaseYear > 0 {
		payload["release_date"] = fmt.Sprintf("%04d-01-01", c.ReleaseYear)
	}
	if c.Overview != "" {
		payload["overview"] = c.Overview
	}
	if c.PosterURL != "" {
		payload["poster_url"] = c.PosterURL
	}
	if c.TrailerURL != "" {
		payload["trailer_url"] = c.TrailerURL
	}
	return payload
}

// floatListLiteral renders a vector as a DuckDB list literal. Binding the
// literal as VARCHAR and casting in SQL keeps parameter handling on the
// driver's scalar path.
func floatListLiteral(vec []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vec {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

// intListLiteral renders genre IDs as a DuckDB list literal.
func intListLiteral(ids []int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	b.WriteByte(']')
	return b.String()
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(n int) interface{} {
	if n == 0 {
		return nil
	}
	return n
}

const defaultSearchLimit = 100
