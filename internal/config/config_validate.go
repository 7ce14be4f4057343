// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package config

import (
	"fmt"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateLLM(); err != nil {
		return err
	}

	if err := c.validateEmbedding(); err != nil {
		return err
	}

	if err := c.validateSearch(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateSession(); err != nil {
		return err
	}

	if err := c.validateEvents(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateAudit(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates HTTP server settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.Environment != "development" && c.Server.Environment != "production" {
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
	return nil
}

// validateDatabase validates DuckDB catalog settings
func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0 (0 = all cores), got %d", c.Database.Threads)
	}
	if c.Database.SeedOnStartup && c.Database.SeedPath == "" {
		return fmt.Errorf("MOVIE_SEED_PATH is required when SEED_ON_STARTUP=true")
	}
	return nil
}

// validateLLM validates the chat completion backend settings
func (c *Config) validateLLM() error {
	if c.LLM.Model == "" {
		return fmt.Errorf("LLM_MODEL is required")
	}
	if c.LLM.BaseURL == "" && c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required when LLM_BASE_URL is not set")
	}
	if c.LLM.BaseURL != "" {
		if err := validateBaseURL(c.LLM.BaseURL, "LLM_BASE_URL"); err != nil {
			return err
		}
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %g", c.LLM.Temperature)
	}
	if c.LLM.MaxTokens < 1 || c.LLM.MaxTokens > 32768 {
		return fmt.Errorf("LLM_MAX_TOKENS must be between 1 and 32768, got %d", c.LLM.MaxTokens)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %s", c.LLM.Timeout)
	}
	if c.LLM.RetryAttempts < 1 || c.LLM.RetryAttempts > 10 {
		return fmt.Errorf("LLM_RETRY_ATTEMPTS must be between 1 and 10, got %d", c.LLM.RetryAttempts)
	}
	if c.LLM.RetryBackoff <= 0 {
		return fmt.Errorf("LLM_RETRY_BACKOFF must be positive, got %s", c.LLM.RetryBackoff)
	}
	if c.LLM.RateLimit <= 0 {
		return fmt.Errorf("LLM_RATE_LIMIT must be positive, got %g", c.LLM.RateLimit)
	}
	if c.LLM.RateBurst < 1 {
		return fmt.Errorf("LLM_RATE_BURST must be >= 1, got %d", c.LLM.RateBurst)
	}
	if c.LLM.BreakerThreshold < 1 {
		return fmt.Errorf("LLM_BREAKER_THRESHOLD must be >= 1, got %d", c.LLM.BreakerThreshold)
	}
	return nil
}

// validateEmbedding validates embedding backend settings (only if enabled)
func (c *Config) validateEmbedding() error {
	if !c.Embedding.Enabled {
		return nil // semantic search is optional
	}

	if c.Embedding.BaseURL == "" {
		return fmt.Errorf("EMBEDDING_BASE_URL is required when EMBEDDING_ENABLED=true")
	}
	if err := validateBaseURL(c.Embedding.BaseURL, "EMBEDDING_BASE_URL"); err != nil {
		return err
	}
	if c.Embedding.Model == "" {
		return fmt.Errorf("EMBEDDING_MODEL is required when EMBEDDING_ENABLED=true")
	}
	if c.Embedding.Dimensions < 1 || c.Embedding.Dimensions > 4096 {
		return fmt.Errorf("EMBEDDING_DIMENSIONS must be between 1 and 4096, got %d", c.Embedding.Dimensions)
	}
	if c.Embedding.Timeout <= 0 {
		return fmt.Errorf("EMBEDDING_TIMEOUT must be positive, got %s", c.Embedding.Timeout)
	}
	return nil
}

// validateSearch validates retrieval and ranking limits
func (c *Config) validateSearch() error {
	if c.Search.CandidateLimit < 1 || c.Search.CandidateLimit > 1000 {
		return fmt.Errorf("SEARCH_CANDIDATE_LIMIT must be between 1 and 1000, got %d", c.Search.CandidateLimit)
	}
	if c.Search.ResultCount < 1 || c.Search.ResultCount > 20 {
		return fmt.Errorf("SEARCH_RESULT_COUNT must be between 1 and 20, got %d", c.Search.ResultCount)
	}
	if c.Search.ResultCount > c.Search.CandidateLimit {
		return fmt.Errorf("SEARCH_RESULT_COUNT (%d) cannot exceed SEARCH_CANDIDATE_LIMIT (%d)",
			c.Search.ResultCount, c.Search.CandidateLimit)
	}
	return nil
}

// validateCache validates result cache settings
func (c *Config) validateCache() error {
	if c.Cache.Capacity < 1 {
		return fmt.Errorf("CACHE_CAPACITY must be >= 1, got %d", c.Cache.Capacity)
	}
	if c.Cache.JanitorInterval < time.Second {
		return fmt.Errorf("CACHE_JANITOR_INTERVAL must be at least 1s, got %s", c.Cache.JanitorInterval)
	}
	return nil
}

// validateSession validates session store settings
func (c *Config) validateSession() error {
	switch c.Session.Store {
	case "memory":
		// no further requirements
	case "badger":
		if c.Session.StorePath == "" {
			return fmt.Errorf("SESSION_STORE_PATH is required when SESSION_STORE=badger")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be one of: memory, badger (got %q)", c.Session.Store)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.Session.TTL)
	}
	if c.Session.GCInterval < time.Minute {
		return fmt.Errorf("SESSION_GC_INTERVAL must be at least 1m, got %s", c.Session.GCInterval)
	}
	return nil
}

// Event stream limit constants
const (
	natsMinMemory      = 64 * 1024 * 1024  // 64MB
	natsMinStore       = 100 * 1024 * 1024 // 100MB
	natsMaxRetention   = 365
	natsMinRetention   = 1
	natsMaxSubscribers = 32
)

// validateEvents validates NATS event publishing settings (only if enabled)
func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}

	if err := validateNATSURL(c.Events.URL); err != nil {
		return fmt.Errorf("NATS_URL is invalid: %w", err)
	}
	if c.Events.EmbeddedServer && c.Events.StoreDir == "" {
		return fmt.Errorf("NATS_STORE_DIR is required when NATS_EMBEDDED=true")
	}
	if c.Events.MaxMemory < natsMinMemory {
		return fmt.Errorf("NATS_MAX_MEMORY must be at least %d bytes (64MB)", natsMinMemory)
	}
	if c.Events.MaxStore < natsMinStore {
		return fmt.Errorf("NATS_MAX_STORE must be at least %d bytes (100MB)", natsMinStore)
	}
	if c.Events.StreamRetentionDays < natsMinRetention || c.Events.StreamRetentionDays > natsMaxRetention {
		return fmt.Errorf("NATS_RETENTION_DAYS must be between %d and %d, got %d",
			natsMinRetention, natsMaxRetention, c.Events.StreamRetentionDays)
	}
	if c.Events.SubscribersCount < 1 || c.Events.SubscribersCount > natsMaxSubscribers {
		return fmt.Errorf("NATS_SUBSCRIBERS must be between 1 and %d, got %d",
			natsMaxSubscribers, c.Events.SubscribersCount)
	}
	if c.Events.RouterCloseTimeout <= 0 {
		return fmt.Errorf("NATS_ROUTER_CLOSE_TIMEOUT must be positive, got %s", c.Events.RouterCloseTimeout)
	}
	return nil
}

// validateSecurity validates authentication and rate limiting settings
func (c *Config) validateSecurity() error {
	switch c.Security.AuthMode {
	case "none":
		// open access, nothing to check
	case "basic":
		if err := c.validateAdminCredentials(); err != nil {
			return err
		}
	case "jwt":
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters when AUTH_MODE=jwt")
		}
		if err := c.validateAdminCredentials(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("AUTH_MODE must be one of: none, basic, jwt (got %q)", c.Security.AuthMode)
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be >= 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Security.RateLimitWindow)
		}
	}

	if c.Security.Casbin.DefaultRole == "" {
		return fmt.Errorf("CASBIN_DEFAULT_ROLE cannot be empty")
	}

	return nil
}

// validateAdminCredentials checks admin username and password when auth is enabled.
// Production mode enforces the full password policy; development only requires
// a minimum length so local setups stay low-friction.
func (c *Config) validateAdminCredentials() error {
	if c.Security.AdminUsername == "" {
		return fmt.Errorf("ADMIN_USERNAME is required when AUTH_MODE=%s", c.Security.AuthMode)
	}
	if c.Security.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required when AUTH_MODE=%s", c.Security.AuthMode)
	}

	if c.Server.IsProduction() {
		policy := DefaultPasswordPolicy()
		if err := policy.ValidateWithError(c.Security.AdminPassword, c.Security.AdminUsername); err != nil {
			return fmt.Errorf("ADMIN_PASSWORD does not meet the production password policy: %w", err)
		}
		return nil
	}

	if len(c.Security.AdminPassword) < 8 {
		return fmt.Errorf("ADMIN_PASSWORD must be at least 8 characters")
	}
	return nil
}

// validateAudit validates audit trail settings (only if enabled)
func (c *Config) validateAudit() error {
	if !c.Audit.Enabled {
		return nil
	}

	if c.Audit.BufferSize < 1 {
		return fmt.Errorf("AUDIT_BUFFER_SIZE must be >= 1, got %d", c.Audit.BufferSize)
	}
	if c.Audit.RetentionDays < 1 || c.Audit.RetentionDays > 3650 {
		return fmt.Errorf("AUDIT_RETENTION_DAYS must be between 1 and 3650, got %d", c.Audit.RetentionDays)
	}
	if c.Audit.CleanupInterval < time.Minute {
		return fmt.Errorf("AUDIT_CLEANUP_INTERVAL must be at least 1m, got %s", c.Audit.CleanupInterval)
	}
	return nil
}

// validateLogging validates logging settings
func (c *Config) validateLogging() error {
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal (got %q)", c.Logging.Level)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console (got %q)", c.Logging.Format)
	}
	return nil
}
