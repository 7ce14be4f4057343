// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package cache implements the typed result cache for the recommendation
// pipeline.
//
// Values are addressed by (namespace, key). Each namespace is an
// independent bounded LRU with its own TTL: mood judgments for 30
// minutes, retrieval results for an hour, review summaries for two
// hours. Expired entries are dropped on read; RunJanitor sweeps the rest
// periodically under the supervision tree.
//
// GenerateKey hashes composite parameters into stable compact keys so
// call sites keep key composition explicit:
//
//	key := cache.GenerateKey("search_by_genres", searchKey{Genres: sorted, Limit: 5})
//	if v, ok := c.Get(cache.NamespaceSearch, key); ok { ... }
package cache
