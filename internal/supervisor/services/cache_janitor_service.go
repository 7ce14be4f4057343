// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package services

import (
	"context"
	"time"
)

// Sweeper matches *cache.Cache's RunJanitor method.
type Sweeper interface {
	RunJanitor(ctx context.Context, interval time.Duration)
}

// CacheJanitorService periodically sweeps expired cache entries.
type CacheJanitorService struct {
	cache    Sweeper
	interval time.Duration
	name     string
}

// NewCacheJanitorService creates a cache janitor service wrapper.
func NewCacheJanitorService(cache Sweeper, interval time.Duration) *CacheJanitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CacheJanitorService{
		cache:    cache,
		interval: interval,
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service. RunJanitor blocks until the context
// is canceled.
func (c *CacheJanitorService) Serve(ctx context.Context) error {
	c.cache.RunJanitor(ctx, c.interval)
	return ctx.Err()
}

// String implements fmt.Stringer for supervision logs.
func (c *CacheJanitorService) String() string {
	return c.name
}
