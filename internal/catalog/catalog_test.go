// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/moodvie/moodvie/internal/config"
	"github.com/moodvie/moodvie/internal/models"
)

// testDims keeps test vectors small and readable.
const testDims = 4

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "500MB",
	}
	db, err := New(cfg, testDims)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})
	return db
}

func movieRecord(id int64, title string, genres []int, rating, popularity float64, votes int) map[string]interface{} {
	return map[string]interface{}{
		"id":           id,
		"title":        title,
		"genre_ids":    genres,
		"vote_average": rating,
		"popularity":   popularity,
		"vote_count":   votes,
		"overview":     "A test overview for " + title,
		"release_date": "2012-07-03",
	}
}

func mustInsert(t *testing.T, db *DB, record map[string]interface{}, vector []float32) {
	t.Helper()
	candidate := models.CandidateFromRecord(record, nil)
	if err := db.Insert(context.Background(), candidate, vector); err != nil {
		t.Fatalf("Failed to insert %v: %v", record["title"], err)
	}
}

func TestInsertAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	record := movieRecord(603, "The Matrix", []int{28, 878}, 8.2, 85.3, 25000)
	record["poster_url"] = "https://image.example/matrix.jpg"
	mustInsert(t, db, record, nil)

	got, err := db.GetByID(ctx, 603)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if got.Title != "The Matrix" {
		t.Errorf("Title = %q, want %q", got.Title, "The Matrix")
	}
	if got.ExternalID != 603 {
		t.Errorf("ExternalID = %d, want 603", got.ExternalID)
	}
	if got.Rating != 8.2 {
		t.Errorf("Rating = %v, want 8.2", got.Rating)
	}
	if got.ReleaseYear != 2012 {
		t.Errorf("ReleaseYear = %d, want 2012", got.ReleaseYear)
	}
	if got.VoteCount != 25000 {
		t.Errorf("VoteCount = %d, want 25000", got.VoteCount)
	}
	if len(got.GenreIDs) != 2 || got.GenreIDs[0] != 28 || got.GenreIDs[1] != 878 {
		t.Errorf("GenreIDs = %v, want [28 878]", got.GenreIDs)
	}
	if got.PosterURL != "https://image.example/matrix.jpg" {
		t.Errorf("PosterURL = %q", got.PosterURL)
	}
	if got.RawPayload == nil {
		t.Fatal("RawPayload should be reconstructed")
	}
	if got.RawPayload["title"] != "The Matrix" {
		t.Errorf("RawPayload title = %v", got.RawPayload["title"])
	}
	if got.SimilarityScore != nil {
		t.Errorf("SimilarityScore should be nil for ID lookups, got %v", *got.SimilarityScore)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetByID(context.Background(), 99999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInsert_UpsertReplacesExisting(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	mustInsert(t, db, movieRecord(100, "Arrival", []int{878, 18}, 7.5, 40, 12000), nil)
	mustInsert(t, db, movieRecord(100, "Arrival", []int{878, 18}, 7.9, 55, 18000), nil)

	got, err := db.GetByID(ctx, 100)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Rating != 7.9 {
		t.Errorf("Rating = %v, want the replaced value 7.9", got.Rating)
	}

	count, err := db.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d, want 1 after upsert", count)
	}
}

func TestInsert_Validation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	noTitle := models.CandidateFromRecord(map[string]interface{}{"id": int64(1)}, nil)
	if err := db.Insert(ctx, noTitle, nil); err == nil {
		t.Error("expected error for movie without title")
	}

	noID := models.CandidateFromRecord(map[string]interface{}{"title": "Ghost Record"}, nil)
	if err := db.Insert(ctx, noID, nil); err == nil {
		t.Error("expected error for movie without external ID")
	}

	wrongDims := models.CandidateFromRecord(movieRecord(5, "Wrong Dims", []int{18}, 7, 10, 100), nil)
	if err := db.Insert(ctx, wrongDims, []float32{1, 2}); err == nil {
		t.Error("expected error for embedding with wrong dimensions")
	}
}

func TestGetByTitle_CaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	mustInsert(t, db, movieRecord(680, "Pulp Fiction", []int{80, 53}, 8.5, 70, 27000), nil)

	got, err := db.GetByTitle(ctx, "pulp fiction")
	if err != nil {
		t.Fatalf("GetByTitle failed: %v", err)
	}
	if got.ExternalID != 680 {
		t.Errorf("ExternalID = %d, want 680", got.ExternalID)
	}

	if _, err := db.GetByTitle(ctx, "No Such Movie"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchByTitle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	mustInsert(t, db, movieRecord(155, "The Dark Knight", []int{28, 80}, 8.5, 90, 31000), nil)
	mustInsert(t, db, movieRecord(49026, "The Dark Knight Rises", []int{28, 80}, 7.8, 60, 22000), nil)
	mustInsert(t, db, movieRecord(27205, "Inception", []int{28, 878}, 8.3, 80, 36000), nil)

	results, err := db.SearchByTitle(ctx, "dark knight", 10)
	if err != nil {
		t.Fatalf("SearchByTitle failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// Most popular first
	if results[0].ExternalID != 155 {
		t.Errorf("first result = %q, want The Dark Knight", results[0].Title)
	}

	limited, err := db.SearchByTitle(ctx, "dark knight", 1)
	if err != nil {
		t.Fatalf("SearchByTitle with limit failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("got %d results with limit 1", len(limited))
	}

	blank, err := db.SearchByTitle(ctx, "   ", 10)
	if err != nil {
		t.Fatalf("SearchByTitle with blank query failed: %v", err)
	}
	if blank == nil || len(blank) != 0 {
		t.Errorf("blank query should return an empty slice, got %v", blank)
	}
}

func TestFilterSearch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	mustInsert(t, db, movieRecord(1, "Comedy High", []int{35}, 7.0, 80, 5000), nil)
	mustInsert(t, db, movieRecord(2, "Comedy Low", []int{35, 10751}, 6.5, 20, 3000), nil)
	mustInsert(t, db, movieRecord(3, "Drama Only", []int{18}, 8.0, 50, 9000), nil)
	mustInsert(t, db, movieRecord(4, "Horror Only", []int{27}, 6.0, 30, 2000), nil)

	comedies, err := db.FilterSearch(ctx, []int{35}, 10)
	if err != nil {
		t.Fatalf("FilterSearch failed: %v", err)
	}
	if len(comedies) != 2 {
		t.Fatalf("got %d comedies, want 2", len(comedies))
	}
	if comedies[0].ExternalID != 1 || comedies[1].ExternalID != 2 {
		t.Errorf("comedies not ordered by popularity: %q then %q", comedies[0].Title, comedies[1].Title)
	}

	// Any-overlap semantics: either genre matches
	mixed, err := db.FilterSearch(ctx, []int{35, 18}, 10)
	if err != nil {
		t.Fatalf("FilterSearch failed: %v", err)
	}
	if len(mixed) != 3 {
		t.Errorf("got %d movies for comedy-or-drama, want 3", len(mixed))
	}

	limited, err := db.FilterSearch(ctx, []int{35, 18}, 2)
	if err != nil {
		t.Fatalf("FilterSearch failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("got %d movies with limit 2", len(limited))
	}

	empty, err := db.FilterSearch(ctx, nil, 10)
	if err != nil {
		t.Fatalf("FilterSearch with no genres failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("no genres should return an empty slice, got %v", empty)
	}
}

func TestSimilaritySearch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	mustInsert(t, db, movieRecord(1, "Exact Match", []int{35}, 7.0, 50, 5000), []float32{1, 0, 0, 0})
	mustInsert(t, db, movieRecord(2, "Near Match", []int{35}, 7.0, 50, 5000), []float32{0.9, 0.1, 0, 0})
	mustInsert(t, db, movieRecord(3, "Orthogonal", []int{18}, 7.0, 50, 5000), []float32{0, 1, 0, 0})
	mustInsert(t, db, movieRecord(4, "No Embedding", []int{35}, 7.0, 50, 5000), nil)

	results, err := db.SimilaritySearch(ctx, []float32{1, 0, 0, 0}, nil, 10)
	if err != nil {
		t.Fatalf("SimilaritySearch failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3 (rows without embeddings skipped)", len(results))
	}

	if results[0].ExternalID != 1 {
		t.Errorf("closest movie = %q, want Exact Match", results[0].Title)
	}
	if results[1].ExternalID != 2 {
		t.Errorf("second movie = %q, want Near Match", results[1].Title)
	}

	for i, r := range results {
		if r.SimilarityScore == nil {
			t.Fatalf("result %d has no similarity score", i)
		}
	}
	if *results[0].SimilarityScore < 0.99 {
		t.Errorf("exact match similarity = %v, want ~1.0", *results[0].SimilarityScore)
	}
	if *results[0].SimilarityScore < *results[1].SimilarityScore {
		t.Error("results not ordered by similarity")
	}

	// Genre restriction drops the orthogonal drama
	comediesOnly, err := db.SimilaritySearch(ctx, []float32{1, 0, 0, 0}, []int{35}, 10)
	if err != nil {
		t.Fatalf("SimilaritySearch with genres failed: %v", err)
	}
	if len(comediesOnly) != 2 {
		t.Errorf("got %d genre-restricted results, want 2", len(comediesOnly))
	}
}

func TestSimilaritySearch_WrongDimensions(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.SimilaritySearch(context.Background(), []float32{1, 0}, nil, 10)
	if err == nil {
		t.Error("expected error for query vector with wrong dimensions")
	}
}

func TestCount(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	count, err := db.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("empty catalog Count = %d, want 0", count)
	}

	mustInsert(t, db, movieRecord(1, "One", []int{35}, 7, 10, 100), nil)
	mustInsert(t, db, movieRecord(2, "Two", []int{18}, 7, 10, 100), nil)

	count, err = db.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}
}

func TestPing(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
