// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moodvie/config.yaml",
	"/etc/moodvie/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:          "/data/moodvie.duckdb",
			MaxMemory:     "2GB",
			Threads:       0, // 0 = use runtime.NumCPU()
			SeedPath:      "",
			SeedOnStartup: false,
		},
		LLM: LLMConfig{
			BaseURL:          "http://127.0.0.1:11434/v1", // local Ollama by default
			APIKey:           "ollama",
			Model:            "qwen3:8b",
			Temperature:      0.3,
			MaxTokens:        2000,
			Timeout:          60 * time.Second,
			RetryAttempts:    3,
			RetryBackoff:     time.Second,
			RateLimit:        5,
			RateBurst:        10,
			BreakerThreshold: 5,
			BreakerCooldown:  30 * time.Second,
		},
		Embedding: EmbeddingConfig{
			Enabled:    false, // rating-only ranking without it
			BaseURL:    "",
			APIKey:     "",
			Model:      "paraphrase-multilingual-MiniLM-L12-v2",
			Dimensions: 384,
			Timeout:    30 * time.Second,
		},
		Search: SearchConfig{
			CandidateLimit: 100,
			ResultCount:    5,
		},
		Cache: CacheConfig{
			Capacity:        100,
			JanitorInterval: 5 * time.Minute,
		},
		Session: SessionConfig{
			Store:      "badger",
			StorePath:  "/data/sessions",
			TTL:        24 * time.Hour,
			GCInterval: 10 * time.Minute,
		},
		Events: EventsConfig{
			Enabled:             true,
			URL:                 "nats://127.0.0.1:4222",
			EmbeddedServer:      true,
			StoreDir:            "/data/nats/jetstream",
			MaxMemory:           1 << 30,  // 1GB
			MaxStore:            10 << 30, // 10GB
			StreamRetentionDays: 7,
			SubscribersCount:    2,
			DurableName:         "moodvie-events",
			QueueGroup:          "moodvie",
			RouterCloseTimeout:  30 * time.Second,
		},
		Security: SecurityConfig{
			AuthMode:          "none",
			JWTSecret:         "",
			SessionTimeout:    24 * time.Hour,
			AdminUsername:     "",
			AdminPassword:     "",
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			TrustedProxies:    []string{},
			Casbin: CasbinConfig{
				ModelPath:   "",
				PolicyPath:  "",
				DefaultRole: "user",
			},
		},
		Audit: AuditConfig{
			Enabled:         true,
			BufferSize:      1000,
			RetentionDays:   90,
			CleanupInterval: 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
//   - Flat environment variable names mapped to nested config paths
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// LLM_MODEL -> llm.model
	// DUCKDB_PATH -> database.path
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.trusted_proxies",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Only explicitly mapped variables are loaded so that unrelated environment
// variables do not pollute the configuration.
//
// Examples:
//   - LLM_MODEL -> llm.model
//   - DUCKDB_PATH -> database.path
//   - HTTP_PORT -> server.port
//   - NATS_URL -> events.url
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_port":    "server.port",
		"http_host":    "server.host",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// Database mappings
		"duckdb_path":       "database.path",
		"duckdb_max_memory": "database.max_memory",
		"duckdb_threads":    "database.threads",
		"movie_seed_path":   "database.seed_path",
		"seed_on_startup":   "database.seed_on_startup",

		// LLM mappings
		"llm_base_url":          "llm.base_url",
		"llm_api_key":           "llm.api_key",
		"llm_model":             "llm.model",
		"llm_temperature":       "llm.temperature",
		"llm_max_tokens":        "llm.max_tokens",
		"llm_timeout":           "llm.timeout",
		"llm_retry_attempts":    "llm.retry_attempts",
		"llm_retry_backoff":     "llm.retry_backoff",
		"llm_rate_limit":        "llm.rate_limit",
		"llm_rate_burst":        "llm.rate_burst",
		"llm_breaker_threshold": "llm.breaker_threshold",
		"llm_breaker_cooldown":  "llm.breaker_cooldown",

		// Embedding mappings
		"embedding_enabled":    "embedding.enabled",
		"embedding_base_url":   "embedding.base_url",
		"embedding_api_key":    "embedding.api_key",
		"embedding_model":      "embedding.model",
		"embedding_dimensions": "embedding.dimensions",
		"embedding_timeout":    "embedding.timeout",

		// Search mappings
		"search_candidate_limit": "search.candidate_limit",
		"search_result_count":    "search.result_count",

		// Cache mappings
		"cache_capacity":         "cache.capacity",
		"cache_janitor_interval": "cache.janitor_interval",

		// Session store mappings
		"session_store":       "session.store",
		"session_store_path":  "session.store_path",
		"session_ttl":         "session.ttl",
		"session_gc_interval": "session.gc_interval",

		// Events (NATS) mappings
		"nats_enabled":              "events.enabled",
		"nats_url":                  "events.url",
		"nats_embedded":             "events.embedded_server",
		"nats_store_dir":            "events.store_dir",
		"nats_max_memory":           "events.max_memory",
		"nats_max_store":            "events.max_store",
		"nats_retention_days":       "events.stream_retention_days",
		"nats_subscribers":          "events.subscribers_count",
		"nats_durable_name":         "events.durable_name",
		"nats_queue_group":          "events.queue_group",
		"nats_router_close_timeout": "events.router_close_timeout",

		// Security mappings
		"auth_mode":           "security.auth_mode",
		"jwt_secret":          "security.jwt_secret",
		"session_timeout":     "security.session_timeout",
		"admin_username":      "security.admin_username",
		"admin_password":      "security.admin_password",
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",
		"cors_origins":        "security.cors_origins",
		"trusted_proxies":     "security.trusted_proxies",

		// Casbin mappings
		"casbin_model_path":   "security.casbin.model_path",
		"casbin_policy_path":  "security.casbin.policy_path",
		"casbin_default_role": "security.casbin.default_role",

		// Audit trail mappings
		"audit_enabled":          "audit.enabled",
		"audit_buffer_size":      "audit.buffer_size",
		"audit_retention_days":   "audit.retention_days",
		"audit_cleanup_interval": "audit.cleanup_interval",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
