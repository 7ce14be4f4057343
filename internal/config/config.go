// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package config

import (
	"time"
)

// Config holds all application configuration loaded from environment variables and config files.
// Provides centralized configuration management for all application components including
// the LLM backend, embedding service, movie catalog, sessions, events, server, and security.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Recommendation Pipeline:
//     - LLM: OpenAI-compatible chat completion backend for mood analysis
//     - Embedding: Optional OpenAI-compatible embedding backend for semantic search
//     - Search: Candidate retrieval and ranking limits
//
//  2. Infrastructure:
//     - Database: DuckDB movie catalog (path, memory, seed data)
//     - Session: Conversation session store (memory or Badger)
//     - Cache: In-process result cache sizing and janitor cadence
//     - Events: Event publishing with Watermill/NATS JetStream (optional)
//     - Server: HTTP server configuration (port, host, timeout)
//
//  3. Security & Observability:
//     - Security: Authentication, rate limiting, RBAC
//     - Logging: Log levels and output formats
//
// Example - Load configuration from environment:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	// cfg.LLM.Model, cfg.Database.Path, etc. are now populated
//
// Validation:
// The Load() function validates all fields and returns an error naming the offending
// environment variable if:
//   - Required settings are missing for an enabled feature (e.g. EMBEDDING_BASE_URL)
//   - Values are malformed (invalid URL format, out-of-range numbers)
//   - Authentication is enabled but credentials are incomplete
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	LLM       LLMConfig       `koanf:"llm"`
	Embedding EmbeddingConfig `koanf:"embedding"`
	Search    SearchConfig    `koanf:"search"`
	Cache     CacheConfig     `koanf:"cache"`
	Session   SessionConfig   `koanf:"session"`
	Events    EventsConfig    `koanf:"events"`
	Security  SecurityConfig  `koanf:"security"`
	Audit     AuditConfig     `koanf:"audit"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: Listen port (default: 8080)
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: Read/write timeout (default: 30s)
//   - ENVIRONMENT: "development" or "production" (default: development)
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// IsProduction reports whether the server runs in production mode.
// Production mode enforces stricter security validation (password policy,
// secret length requirements).
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// DatabaseConfig holds DuckDB movie catalog settings.
//
// Environment Variables:
//   - DUCKDB_PATH: Database file path (default: /data/moodvie.duckdb)
//   - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 2GB)
//   - DUCKDB_THREADS: DuckDB thread count, 0 = runtime.NumCPU() (default: 0)
//   - MOVIE_SEED_PATH: Optional JSON seed file loaded on startup when the catalog is empty
//   - SEED_ON_STARTUP: Load the seed file at boot when set (default: false)
type DatabaseConfig struct {
	Path          string `koanf:"path"`
	MaxMemory     string `koanf:"max_memory"`
	Threads       int    `koanf:"threads"`
	SeedPath      string `koanf:"seed_path"`
	SeedOnStartup bool   `koanf:"seed_on_startup"`
}

// LLMConfig holds settings for the OpenAI-compatible chat completion backend
// used for mood analysis and review summarization. The default base URL points
// at a local Ollama instance; any OpenAI-compatible server works (LM Studio,
// vLLM, the OpenAI API itself with an empty base URL).
//
// Environment Variables:
//   - LLM_BASE_URL: OpenAI-compatible endpoint (default: http://127.0.0.1:11434/v1)
//   - LLM_API_KEY: API key; required when LLM_BASE_URL is unset (OpenAI cloud)
//   - LLM_MODEL: Model name (default: qwen3:8b)
//   - LLM_TEMPERATURE: Sampling temperature (default: 0.3)
//   - LLM_MAX_TOKENS: Completion token cap (default: 2000)
//   - LLM_TIMEOUT: Per-request timeout (default: 60s)
//   - LLM_RETRY_ATTEMPTS: Mood analysis attempts before fallback (default: 3)
//   - LLM_RETRY_BACKOFF: Base backoff between attempts (default: 1s)
//   - LLM_RATE_LIMIT: Requests per second to the backend (default: 5)
//   - LLM_RATE_BURST: Rate limiter burst size (default: 10)
//   - LLM_BREAKER_THRESHOLD: Consecutive failures before the circuit opens (default: 5)
//   - LLM_BREAKER_COOLDOWN: Open-state duration before a probe (default: 30s)
type LLMConfig struct {
	BaseURL          string        `koanf:"base_url"`
	APIKey           string        `koanf:"api_key"`
	Model            string        `koanf:"model"`
	Temperature      float64       `koanf:"temperature"`
	MaxTokens        int           `koanf:"max_tokens"`
	Timeout          time.Duration `koanf:"timeout"`
	RetryAttempts    int           `koanf:"retry_attempts"`
	RetryBackoff     time.Duration `koanf:"retry_backoff"`
	RateLimit        float64       `koanf:"rate_limit"`
	RateBurst        int           `koanf:"rate_burst"`
	BreakerThreshold int           `koanf:"breaker_threshold"`
	BreakerCooldown  time.Duration `koanf:"breaker_cooldown"`
}

// EmbeddingConfig holds settings for the optional OpenAI-compatible embedding
// backend. When disabled (the default) the recommendation pipeline degrades to
// rating-based ranking without semantic similarity.
//
// Environment Variables:
//   - EMBEDDING_ENABLED: Enable semantic search (default: false)
//   - EMBEDDING_BASE_URL: OpenAI-compatible embeddings endpoint (required when enabled)
//   - EMBEDDING_API_KEY: API key for the embedding backend
//   - EMBEDDING_MODEL: Embedding model name (default: paraphrase-multilingual-MiniLM-L12-v2)
//   - EMBEDDING_DIMENSIONS: Vector dimensionality (default: 384)
//   - EMBEDDING_TIMEOUT: Per-request timeout (default: 30s)
type EmbeddingConfig struct {
	Enabled    bool          `koanf:"enabled"`
	BaseURL    string        `koanf:"base_url"`
	APIKey     string        `koanf:"api_key"`
	Model      string        `koanf:"model"`
	Dimensions int           `koanf:"dimensions"`
	Timeout    time.Duration `koanf:"timeout"`
}

// SearchConfig holds candidate retrieval and ranking limits.
//
// Environment Variables:
//   - SEARCH_CANDIDATE_LIMIT: Max candidates fetched per search (default: 100)
//   - SEARCH_RESULT_COUNT: Movies returned per recommendation (default: 5)
type SearchConfig struct {
	CandidateLimit int `koanf:"candidate_limit"`
	ResultCount    int `koanf:"result_count"`
}

// CacheConfig holds in-process result cache settings.
//
// Environment Variables:
//   - CACHE_CAPACITY: Max entries per namespace (default: 100)
//   - CACHE_JANITOR_INTERVAL: Expired-entry sweep cadence (default: 5m)
type CacheConfig struct {
	Capacity        int           `koanf:"capacity"`
	JanitorInterval time.Duration `koanf:"janitor_interval"`
}

// SessionConfig holds conversation session store settings.
//
// Environment Variables:
//   - SESSION_STORE: "memory" or "badger" (default: badger)
//   - SESSION_STORE_PATH: Badger data directory (default: /data/sessions)
//   - SESSION_TTL: Idle session expiry (default: 24h)
//   - SESSION_GC_INTERVAL: Badger value-log GC cadence (default: 10m)
type SessionConfig struct {
	Store      string        `koanf:"store"`
	StorePath  string        `koanf:"store_path"`
	TTL        time.Duration `koanf:"ttl"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// EventsConfig holds Watermill/NATS JetStream event publishing settings.
// The embedded server runs NATS in-process so no external broker is needed.
//
// Environment Variables:
//   - NATS_ENABLED: Enable event publishing (default: true)
//   - NATS_URL: NATS server URL (default: nats://127.0.0.1:4222)
//   - NATS_EMBEDDED: Run an embedded NATS server (default: true)
//   - NATS_STORE_DIR: JetStream storage directory (default: /data/nats/jetstream)
//   - NATS_MAX_MEMORY: JetStream memory limit in bytes (default: 1GB)
//   - NATS_MAX_STORE: JetStream disk limit in bytes (default: 10GB)
//   - NATS_RETENTION_DAYS: Stream retention in days (default: 7)
//   - NATS_SUBSCRIBERS: Subscriber goroutines per handler (default: 2)
//   - NATS_DURABLE_NAME: JetStream durable consumer name (default: moodvie-events)
//   - NATS_QUEUE_GROUP: Queue group for load balancing (default: moodvie)
//   - NATS_ROUTER_CLOSE_TIMEOUT: Router shutdown grace period (default: 30s)
type EventsConfig struct {
	Enabled             bool          `koanf:"enabled"`
	URL                 string        `koanf:"url"`
	EmbeddedServer      bool          `koanf:"embedded_server"`
	StoreDir            string        `koanf:"store_dir"`
	MaxMemory           int64         `koanf:"max_memory"`
	MaxStore            int64         `koanf:"max_store"`
	StreamRetentionDays int           `koanf:"stream_retention_days"`
	SubscribersCount    int           `koanf:"subscribers_count"`
	DurableName         string        `koanf:"durable_name"`
	QueueGroup          string        `koanf:"queue_group"`
	RouterCloseTimeout  time.Duration `koanf:"router_close_timeout"`
}

// SecurityConfig holds authentication, rate limiting, and RBAC settings.
//
// Environment Variables:
//   - AUTH_MODE: "none", "basic", or "jwt" (default: none)
//   - JWT_SECRET: HMAC signing secret, min 32 chars (required for jwt mode)
//   - SESSION_TIMEOUT: JWT token lifetime (default: 24h)
//   - ADMIN_USERNAME / ADMIN_PASSWORD: Admin credentials (required for basic/jwt)
//   - RATE_LIMIT_REQUESTS: Requests per window per IP (default: 100)
//   - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
//   - DISABLE_RATE_LIMIT: Turn off rate limiting (default: false)
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
//   - TRUSTED_PROXIES: Comma-separated proxy CIDRs for client IP extraction
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"`
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	AdminUsername     string        `koanf:"admin_username"`
	AdminPassword     string        `koanf:"admin_password"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`

	Casbin CasbinConfig `koanf:"casbin"`
}

// CasbinConfig holds RBAC enforcement settings. When the model and policy
// paths are empty the embedded defaults are used.
//
// Environment Variables:
//   - CASBIN_MODEL_PATH: External model.conf path (default: embedded)
//   - CASBIN_POLICY_PATH: External policy.csv path (default: embedded)
//   - CASBIN_DEFAULT_ROLE: Role assigned to unauthenticated requests (default: user)
type CasbinConfig struct {
	ModelPath   string `koanf:"model_path"`
	PolicyPath  string `koanf:"policy_path"`
	DefaultRole string `koanf:"default_role"`
}

// AuditConfig holds audit trail settings. The trail records logins and
// state mutations (session deletion, exports, preference changes,
// catalog seeding) into the catalog database.
//
// Environment Variables:
//   - AUDIT_ENABLED: Record the audit trail (default: true)
//   - AUDIT_BUFFER_SIZE: Async write buffer depth (default: 1000)
//   - AUDIT_RETENTION_DAYS: Days events are kept before pruning (default: 90)
//   - AUDIT_CLEANUP_INTERVAL: Prune cadence (default: 24h)
type AuditConfig struct {
	Enabled         bool          `koanf:"enabled"`
	BufferSize      int           `koanf:"buffer_size"`
	RetentionDays   int           `koanf:"retention_days"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// Retention returns the configured retention as a duration.
func (a AuditConfig) Retention() time.Duration {
	return time.Duration(a.RetentionDays) * 24 * time.Hour
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error, fatal (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: Include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
