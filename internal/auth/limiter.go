// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// loginBurst attempts are allowed immediately per IP; after the
	// burst is spent, one attempt refills per loginRefillInterval.
	loginBurst          = 5
	loginRefillInterval = 15 * time.Minute

	loginCleanupInterval = 5 * time.Minute
	loginStaleAfter      = time.Hour
)

// LoginLimiter applies a per-IP token bucket to login attempts. Idle
// entries are pruned in the background so the map does not accumulate
// one entry for every address ever seen.
type LoginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*loginLimiterEntry
	rate     rate.Limit
	burst    int
	stopOnce sync.Once
	stop     chan struct{}
}

type loginLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLoginLimiter creates a limiter allowing burst immediate attempts
// per IP with one attempt refilling per refillInterval.
func NewLoginLimiter(burst int, refillInterval time.Duration) *LoginLimiter {
	return &LoginLimiter{
		limiters: make(map[string]*loginLimiterEntry),
		rate:     rate.Every(refillInterval),
		burst:    burst,
		stop:     make(chan struct{}),
	}
}

// Allow reports whether a login attempt from the given IP may proceed.
func (l *LoginLimiter) Allow(ip string) bool {
	l.mu.Lock()
	entry, exists := l.limiters[ip]
	if !exists {
		entry = &loginLimiterEntry{
			limiter:    rate.NewLimiter(l.rate, l.burst),
			lastAccess: time.Now(),
		}
		l.limiters[ip] = entry
	} else {
		entry.lastAccess = time.Now()
	}
	limiter := entry.limiter
	l.mu.Unlock()

	return limiter.Allow()
}

// startCleanup prunes stale entries until Stop is called.
func (l *LoginLimiter) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

// cleanup removes entries idle longer than loginStaleAfter. A pruned
// IP starts over with a fresh burst, which is acceptable at this
// horizon.
func (l *LoginLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	threshold := time.Now().Add(-loginStaleAfter)
	for ip, entry := range l.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(l.limiters, ip)
		}
	}
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (l *LoginLimiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}

// trackedIPs reports how many addresses currently hold an entry.
func (l *LoginLimiter) trackedIPs() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
