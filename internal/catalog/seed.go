// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package catalog

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/moodvie/moodvie/internal/embedding"
	"github.com/moodvie/moodvie/internal/logging"
	"github.com/moodvie/moodvie/internal/models"
)

// seedEmbedBatch is how many movie documents go into one embedding call.
const seedEmbedBatch = 5

// Encoder is the slice of the embedding client the seed import uses.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// LoadSeedFile reads a JSON seed file. Both a bare array of movie records
// and a {"movies": [...]} wrapper are accepted.
func LoadSeedFile(path string) ([]map[string]interface{}, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var wrapper struct {
		Movies []map[string]interface{} `json:"movies"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("seed file %s is neither a movie array nor a movies wrapper: %w", path, err)
	}
	return wrapper.Movies, nil
}

// SeedFromFile imports a JSON seed file into the catalog. Returns the
// number of movies inserted.
func (db *DB) SeedFromFile(ctx context.Context, path string, enc Encoder) (int, error) {
	records, err := LoadSeedFile(path)
	if err != nil {
		return 0, err
	}
	return db.ImportSeed(ctx, records, enc)
}

// ImportSeed upserts seed records into the catalog. Records missing a title
// or external ID are skipped. When enc is non-nil, movie documents are
// embedded in batches; an embedding failure degrades that batch to rows
// without vectors instead of failing the import.
func (db *DB) ImportSeed(ctx context.Context, records []map[string]interface{}, enc Encoder) (int, error) {
	logging.Info().Int("records", len(records)).Msg("Importing catalog seed")

	candidates := make([]models.MovieCandidate, 0, len(records))
	skipped := 0
	for i, record := range records {
		candidate := models.CandidateFromRecord(record, nil)
		if candidate.Title == "" || candidate.ExternalID == 0 {
			logging.Warn().Int("record", i).Str("title", candidate.Title).
				Msg("Skipping seed record without title or external ID")
			skipped++
			continue
		}
		candidates = append(candidates, candidate)
	}

	inserted := 0
	embedded := 0
	for batchStart := 0; batchStart < len(candidates); batchStart += seedEmbedBatch {
		batchEnd := batchStart + seedEmbedBatch
		if batchEnd > len(candidates) {
			batchEnd = len(candidates)
		}
		batch := candidates[batchStart:batchEnd]

		var vectors [][]float32
		if enc != nil {
			texts := make([]string, len(batch))
			for i, candidate := range batch {
				texts[i] = embedding.MovieText(candidate)
			}
			var err error
			vectors, err = enc.Encode(ctx, texts)
			if err != nil {
				logging.Warn().Err(err).Int("batch_start", batchStart).Int("batch_size", len(batch)).
					Msg("Embedding batch failed, inserting movies without vectors")
				vectors = nil
			}
		}

		for i, candidate := range batch {
			var vector []float32
			if vectors != nil {
				vector = vectors[i]
			}
			if err := db.Insert(ctx, candidate, vector); err != nil {
				return inserted, fmt.Errorf("seed import stopped at %q: %w", candidate.Title, err)
			}
			inserted++
			if vector != nil {
				embedded++
			}
		}
	}

	// Refresh the catalog size gauge
	if _, err := db.Count(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to refresh catalog count after seed import")
	}

	logging.Info().
		Int("inserted", inserted).
		Int("embedded", embedded).
		Int("skipped", skipped).
		Msg("Catalog seed imported")

	return inserted, nil
}
