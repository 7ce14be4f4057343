// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/moodvie/moodvie/internal/metrics"
)

// Namespace identifies one logical result cache. Namespaces carry their
// own TTL so call sites never pass ad hoc durations.
type Namespace string

// Result cache namespaces and their TTLs.
const (
	// NamespaceMood caches LLM mood judgments for history-free turns.
	NamespaceMood Namespace = "mood"
	// NamespaceSearch caches non-personalized retrieval results.
	NamespaceSearch Namespace = "search"
	// NamespaceReview caches review summaries.
	NamespaceReview Namespace = "review"
)

// TTLs per namespace.
const (
	MoodTTL   = 30 * time.Minute
	SearchTTL = time.Hour
	ReviewTTL = 2 * time.Hour
)

// DefaultCapacity bounds entries held per namespace.
const DefaultCapacity = 100

// namespaceTTL returns the default TTL for a namespace.
func namespaceTTL(ns Namespace) time.Duration {
	switch ns {
	case NamespaceMood:
		return MoodTTL
	case NamespaceSearch:
		return SearchTTL
	case NamespaceReview:
		return ReviewTTL
	default:
		return 5 * time.Minute
	}
}

// Cache is the typed namespace+key result cache. Each namespace is an
// independent LRU with its own TTL; expiry is checked on read and by the
// periodic janitor sweep.
type Cache struct {
	mu         sync.RWMutex
	namespaces map[Namespace]*LRUCache
	capacity   int
}

// New creates a result cache with the default per-namespace capacity.
func New() *Cache {
	return NewWithCapacity(DefaultCapacity)
}

// NewWithCapacity creates a result cache bounding each namespace to n entries.
func NewWithCapacity(n int) *Cache {
	if n <= 0 {
		n = DefaultCapacity
	}
	return &Cache{
		namespaces: make(map[Namespace]*LRUCache),
		capacity:   n,
	}
}

// bucket returns the LRU backing a namespace, creating it on first use.
func (c *Cache) bucket(ns Namespace) *LRUCache {
	c.mu.RLock()
	b, ok := c.namespaces[ns]
	c.mu.RUnlock()
	if ok {
		return b
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok = c.namespaces[ns]; ok {
		return b
	}
	b = NewLRUCache(c.capacity, namespaceTTL(ns))
	c.namespaces[ns] = b
	return b
}

// Get retrieves a cached value.
func (c *Cache) Get(ns Namespace, key string) (interface{}, bool) {
	value, ok := c.bucket(ns).Get(key)
	if ok {
		metrics.CacheHits.WithLabelValues(string(ns)).Inc()
	} else {
		metrics.CacheMisses.WithLabelValues(string(ns)).Inc()
	}
	return value, ok
}

// Set stores a value with the namespace's default TTL.
func (c *Cache) Set(ns Namespace, key string, value interface{}) {
	c.SetWithTTL(ns, key, value, namespaceTTL(ns))
}

// SetWithTTL stores a value with an explicit TTL.
func (c *Cache) SetWithTTL(ns Namespace, key string, value interface{}, ttl time.Duration) {
	c.bucket(ns).AddWithTTL(key, value, ttl)
}

// Delete removes one entry.
func (c *Cache) Delete(ns Namespace, key string) {
	if c.bucket(ns).Remove(key) {
		metrics.CacheEvictions.WithLabelValues(string(ns)).Inc()
	}
}

// Clear empties every namespace.
func (c *Cache) Clear() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, b := range c.namespaces {
		b.Clear()
	}
}

// Sweep removes expired entries from every namespace and refreshes size
// gauges. Returns the total number of entries removed.
func (c *Cache) Sweep() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	removed := 0
	for ns, b := range c.namespaces {
		n := b.CleanupExpired()
		removed += n
		if n > 0 {
			metrics.CacheEvictions.WithLabelValues(string(ns)).Add(float64(n))
		}
		metrics.CacheSize.WithLabelValues(string(ns)).Set(float64(b.Len()))
	}
	return removed
}

// RunJanitor sweeps at the given interval until the context is canceled.
// Intended to run under the supervision tree.
func (c *Cache) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// NamespaceStats is a snapshot of one namespace's counters.
type NamespaceStats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Keys      int   `json:"keys"`
}

// Stats returns a per-namespace snapshot.
func (c *Cache) Stats() map[Namespace]NamespaceStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[Namespace]NamespaceStats, len(c.namespaces))
	for ns, b := range c.namespaces {
		hits, misses, evictions, size := b.Stats()
		out[ns] = NamespaceStats{Hits: hits, Misses: misses, Evictions: evictions, Keys: size}
	}
	return out
}

// GenerateKey builds a stable cache key from a method name and its
// parameters. Parameters are JSON-encoded and hashed so composite inputs
// stay compact and order-sensitive fields stay explicit at the call site.
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
