// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

/*
Package catalog stores the movie corpus in DuckDB and serves the retrieval
queries behind every recommendation.

The movies table keeps typed columns for the fields queries filter and sort
on (genres, popularity, rating, title) next to two payload columns: the
original source record as JSON and an optional FLOAT[N] embedding. Reads
always return the reconstructed source record, so a movie that came in with
extra fields (reviews, provider metadata) carries them through the pipeline
untouched.

Retrieval comes in two flavors. FilterSearch matches any of a set of genre
IDs and orders by popularity, which is the fallback when embeddings are
disabled. SimilaritySearch orders by list_cosine_similarity between the
stored embedding and a query vector, optionally genre-restricted, and
annotates each hit with its similarity score.

Seeding is an upsert keyed on the external movie ID: the startup path and
the admin endpoint both funnel into ImportSeed, which batches documents
through the embedding encoder when one is configured and degrades to
vector-less rows when embedding fails.
*/
package catalog
