// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const seedArrayJSON = `[
	{"id": 603, "title": "The Matrix", "genre_ids": [28, 878], "vote_average": 8.2, "popularity": 85.3, "vote_count": 25000, "release_date": "1999-03-31", "raw_reviews": ["Mind-blowing!", "A classic."]},
	{"id": 680, "title": "Pulp Fiction", "genre_ids": [80, 53], "vote_average": 8.5, "popularity": 70.1, "vote_count": 27000, "release_date": "1994-10-14"},
	{"id": 0, "title": "Broken Record"},
	{"vote_average": 5.0}
]`

const seedWrapperJSON = `{
	"movies": [
		{"id": 27205, "title": "Inception", "genre_ids": [28, 878], "vote_average": 8.3, "popularity": 80.0, "vote_count": 36000}
	]
}`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write seed file: %v", err)
	}
	return path
}

// fakeEncoder returns unit vectors cycling through the axes, so each
// embedded movie lands on a predictable direction.
type fakeEncoder struct {
	calls int
	fail  bool
}

func (f *fakeEncoder) Encode(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("embedding backend down")
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		vec := make([]float32, testDims)
		vec[i%testDims] = 1
		out[i] = vec
	}
	return out, nil
}

func TestLoadSeedFile_ArrayForm(t *testing.T) {
	path := writeSeedFile(t, seedArrayJSON)

	records, err := LoadSeedFile(path)
	if err != nil {
		t.Fatalf("LoadSeedFile failed: %v", err)
	}
	if len(records) != 4 {
		t.Errorf("got %d records, want 4", len(records))
	}
	if records[0]["title"] != "The Matrix" {
		t.Errorf("first record title = %v", records[0]["title"])
	}
}

func TestLoadSeedFile_WrapperForm(t *testing.T) {
	path := writeSeedFile(t, seedWrapperJSON)

	records, err := LoadSeedFile(path)
	if err != nil {
		t.Fatalf("LoadSeedFile failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0]["title"] != "Inception" {
		t.Errorf("record title = %v", records[0]["title"])
	}
}

func TestLoadSeedFile_Invalid(t *testing.T) {
	if _, err := LoadSeedFile(writeSeedFile(t, `{"not": "a seed"}`)); err == nil {
		t.Error("expected error for wrapper without movies")
	}
	if _, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSeedFromFile_SkipsInvalidRecords(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	inserted, err := db.SeedFromFile(ctx, writeSeedFile(t, seedArrayJSON), nil)
	if err != nil {
		t.Fatalf("SeedFromFile failed: %v", err)
	}
	// Two valid records; the ID-less and title-less ones are skipped
	if inserted != 2 {
		t.Errorf("inserted = %d, want 2", inserted)
	}

	count, err := db.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}

	// The source payload survives the round trip, extra fields included
	matrix, err := db.GetByID(ctx, 603)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	reviews, ok := matrix.RawPayload["raw_reviews"].([]interface{})
	if !ok || len(reviews) != 2 {
		t.Errorf("raw_reviews not preserved in payload: %v", matrix.RawPayload["raw_reviews"])
	}
}

func TestImportSeed_WithEncoder(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	records := []map[string]interface{}{
		movieRecord(1, "First", []int{35}, 7, 10, 100),
		movieRecord(2, "Second", []int{35}, 7, 10, 100),
		movieRecord(3, "Third", []int{18}, 7, 10, 100),
	}

	enc := &fakeEncoder{}
	inserted, err := db.ImportSeed(ctx, records, enc)
	if err != nil {
		t.Fatalf("ImportSeed failed: %v", err)
	}
	if inserted != 3 {
		t.Errorf("inserted = %d, want 3", inserted)
	}
	if enc.calls != 1 {
		t.Errorf("encoder called %d times, want 1 batch", enc.calls)
	}

	// First movie embedded on axis 0; querying that axis finds it first
	results, err := db.SimilaritySearch(ctx, []float32{1, 0, 0, 0}, nil, 10)
	if err != nil {
		t.Fatalf("SimilaritySearch failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d embedded movies, want 3", len(results))
	}
	if results[0].ExternalID != 1 {
		t.Errorf("closest movie = %q, want First", results[0].Title)
	}
}

func TestImportSeed_EncoderFailureDegrades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	records := []map[string]interface{}{
		movieRecord(1, "First", []int{35}, 7, 10, 100),
		movieRecord(2, "Second", []int{35}, 7, 10, 100),
	}

	inserted, err := db.ImportSeed(ctx, records, &fakeEncoder{fail: true})
	if err != nil {
		t.Fatalf("ImportSeed should degrade on embedding failure, got: %v", err)
	}
	if inserted != 2 {
		t.Errorf("inserted = %d, want 2", inserted)
	}

	// Movies landed without vectors, so similarity search finds nothing
	results, err := db.SimilaritySearch(ctx, []float32{1, 0, 0, 0}, nil, 10)
	if err != nil {
		t.Fatalf("SimilaritySearch failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0 for vector-less rows", len(results))
	}

	// Genre retrieval still works
	comedies, err := db.FilterSearch(ctx, []int{35}, 10)
	if err != nil {
		t.Fatalf("FilterSearch failed: %v", err)
	}
	if len(comedies) != 2 {
		t.Errorf("got %d comedies, want 2", len(comedies))
	}
}
