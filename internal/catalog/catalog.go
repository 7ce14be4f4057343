// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/moodvie/moodvie/internal/config"
	"github.com/moodvie/moodvie/internal/logging"
)

// DB wraps the DuckDB connection holding the movie catalog.
type DB struct {
	conn       *sql.DB
	cfg        *config.DatabaseConfig
	dimensions int
}

// New opens the catalog database and initializes the schema. dimensions is
// the width of the embedding column; rows inserted without an embedding
// leave it NULL and are skipped by similarity search.
func New(cfg *config.DatabaseConfig, dimensions int) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}
	if dimensions <= 0 {
		return nil, fmt.Errorf("invalid embedding dimensions: %d", dimensions)
	}

	// Ensure parent directory exists for the database file.
	// 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301.
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	// Disable auto-install/auto-load to prevent hangs in restricted network
	// environments. The catalog only uses core DuckDB functionality.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:       conn,
		cfg:        cfg,
		dimensions: dimensions,
	}

	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return db, nil
}

// configureConnectionPool sets connection pool parameters
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// initialize creates tables and indexes
func (db *DB) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.createTables(ctx); err != nil {
		return err
	}
	if err := db.createIndexes(ctx); err != nil {
		return err
	}

	// Flush the WAL after schema initialization so a crash before the first
	// write does not leave schema statements pending replay.
	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint after schema initialization")
	}

	return nil
}

// createTables creates the movies table. The embedding column width comes
// from the configured model dimensionality, FLOAT[384] by default.
func (db *DB) createTables(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS movies (
		external_id BIGINT PRIMARY KEY,
		title VARCHAR NOT NULL,
		original_title VARCHAR,
		release_year INTEGER,
		rating DOUBLE NOT NULL DEFAULT 0,
		popularity DOUBLE NOT NULL DEFAULT 0,
		vote_count BIGINT NOT NULL DEFAULT 0,
		genre_ids INTEGER[],
		overview VARCHAR,
		poster_url VARCHAR,
		trailer_url VARCHAR,
		embedding FLOAT[%d],
		raw_payload VARCHAR NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`, db.dimensions)

	if _, err := db.conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create movies table: %w", err)
	}
	return nil
}

// createIndexes creates indexes for the common query patterns
func (db *DB) createIndexes(ctx context.Context) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_movies_title ON movies(title)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_popularity ON movies(popularity)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_rating ON movies(rating)`,
	}
	for _, query := range indexes {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}

// Close flushes the WAL and closes the database connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
	}

	return db.conn.Close()
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Checkpoint forces a WAL checkpoint
func (db *DB) Checkpoint(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// Conn returns the underlying SQL database connection for packages that
// need direct access, such as health checks.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Dimensions returns the embedding column width.
func (db *DB) Dimensions() int {
	return db.dimensions
}

// ensureContext creates a context with a 30-second timeout if none provided
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}
	return ctx, func() {}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use for cleanup in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
