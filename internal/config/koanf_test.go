// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	// Server defaults
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %q, want development", cfg.Server.Environment)
	}

	// Database defaults
	if cfg.Database.Path != "/data/moodvie.duckdb" {
		t.Errorf("Database.Path = %q, want /data/moodvie.duckdb", cfg.Database.Path)
	}
	if cfg.Database.MaxMemory != "2GB" {
		t.Errorf("Database.MaxMemory = %q, want 2GB", cfg.Database.MaxMemory)
	}

	// LLM defaults
	if cfg.LLM.BaseURL != "http://127.0.0.1:11434/v1" {
		t.Errorf("LLM.BaseURL = %q, want local Ollama endpoint", cfg.LLM.BaseURL)
	}
	if cfg.LLM.Model != "qwen3:8b" {
		t.Errorf("LLM.Model = %q, want qwen3:8b", cfg.LLM.Model)
	}
	if cfg.LLM.Temperature != 0.3 {
		t.Errorf("LLM.Temperature = %g, want 0.3", cfg.LLM.Temperature)
	}
	if cfg.LLM.MaxTokens != 2000 {
		t.Errorf("LLM.MaxTokens = %d, want 2000", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.RetryAttempts != 3 {
		t.Errorf("LLM.RetryAttempts = %d, want 3", cfg.LLM.RetryAttempts)
	}
	if cfg.LLM.RetryBackoff != time.Second {
		t.Errorf("LLM.RetryBackoff = %v, want 1s", cfg.LLM.RetryBackoff)
	}

	// Embedding defaults (disabled)
	if cfg.Embedding.Enabled {
		t.Error("Embedding.Enabled should be false by default")
	}
	if cfg.Embedding.Model != "paraphrase-multilingual-MiniLM-L12-v2" {
		t.Errorf("Embedding.Model = %q, want paraphrase-multilingual-MiniLM-L12-v2", cfg.Embedding.Model)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("Embedding.Dimensions = %d, want 384", cfg.Embedding.Dimensions)
	}

	// Search defaults
	if cfg.Search.CandidateLimit != 100 {
		t.Errorf("Search.CandidateLimit = %d, want 100", cfg.Search.CandidateLimit)
	}
	if cfg.Search.ResultCount != 5 {
		t.Errorf("Search.ResultCount = %d, want 5", cfg.Search.ResultCount)
	}

	// Cache defaults
	if cfg.Cache.Capacity != 100 {
		t.Errorf("Cache.Capacity = %d, want 100", cfg.Cache.Capacity)
	}

	// Session defaults
	if cfg.Session.Store != "badger" {
		t.Errorf("Session.Store = %q, want badger", cfg.Session.Store)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("Session.TTL = %v, want 24h", cfg.Session.TTL)
	}

	// Events defaults (enabled)
	if !cfg.Events.Enabled {
		t.Error("Events.Enabled should be true by default")
	}
	if cfg.Events.URL != "nats://127.0.0.1:4222" {
		t.Errorf("Events.URL = %q, want nats://127.0.0.1:4222", cfg.Events.URL)
	}
	if cfg.Events.MaxMemory != 1<<30 {
		t.Errorf("Events.MaxMemory = %d, want 1GB", cfg.Events.MaxMemory)
	}

	// Security defaults (open access)
	if cfg.Security.AuthMode != "none" {
		t.Errorf("Security.AuthMode = %q, want none", cfg.Security.AuthMode)
	}
	if cfg.Security.RateLimitReqs != 100 {
		t.Errorf("Security.RateLimitReqs = %d, want 100", cfg.Security.RateLimitReqs)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Security.Casbin.DefaultRole != "user" {
		t.Errorf("Security.Casbin.DefaultRole = %q, want user", cfg.Security.Casbin.DefaultRole)
	}

	// Audit defaults (enabled)
	if !cfg.Audit.Enabled {
		t.Error("Audit.Enabled should be true by default")
	}
	if cfg.Audit.RetentionDays != 90 {
		t.Errorf("Audit.RetentionDays = %d, want 90", cfg.Audit.RetentionDays)
	}
	if cfg.Audit.Retention() != 90*24*time.Hour {
		t.Errorf("Audit.Retention() = %v, want 2160h", cfg.Audit.Retention())
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

// TestLoad_Defaults verifies that Load() without overrides validates cleanly
func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
}

// TestLoad_EnvOverrides verifies that environment variables override defaults
func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("HTTP_PORT", "9191")
	t.Setenv("LLM_MODEL", "llama3.1:8b")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("NATS_ENABLED", "false")
	t.Setenv("CACHE_CAPACITY", "250")
	t.Setenv("SEARCH_RESULT_COUNT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want 9191", cfg.Server.Port)
	}
	if cfg.LLM.Model != "llama3.1:8b" {
		t.Errorf("LLM.Model = %q, want llama3.1:8b", cfg.LLM.Model)
	}
	if cfg.LLM.Temperature != 0.7 {
		t.Errorf("LLM.Temperature = %g, want 0.7", cfg.LLM.Temperature)
	}
	if cfg.Session.Store != "memory" {
		t.Errorf("Session.Store = %q, want memory", cfg.Session.Store)
	}
	if cfg.Events.Enabled {
		t.Error("Events.Enabled should be false after NATS_ENABLED=false")
	}
	if cfg.Cache.Capacity != 250 {
		t.Errorf("Cache.Capacity = %d, want 250", cfg.Cache.Capacity)
	}
	if cfg.Search.ResultCount != 3 {
		t.Errorf("Search.ResultCount = %d, want 3", cfg.Search.ResultCount)
	}
}

// TestLoad_ConfigFile verifies YAML file loading and ENV > file precedence
func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 7070
llm:
  model: mistral:7b
  max_tokens: 1500
session:
  store: memory
logging:
  level: debug
`)
	if err := os.WriteFile(configPath, content, 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	// ENV should win over the file for this one key.
	t.Setenv("LLM_MODEL", "qwen3:14b")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070 from file", cfg.Server.Port)
	}
	if cfg.LLM.MaxTokens != 1500 {
		t.Errorf("LLM.MaxTokens = %d, want 1500 from file", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.Model != "qwen3:14b" {
		t.Errorf("LLM.Model = %q, want qwen3:14b (env overrides file)", cfg.LLM.Model)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug from file", cfg.Logging.Level)
	}
}

// TestLoad_SliceFromEnv verifies comma-separated env vars become slices
func TestLoad_SliceFromEnv(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := []string{"https://app.example.com", "https://staging.example.com"}
	if len(cfg.Security.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	for i, origin := range want {
		if cfg.Security.CORSOrigins[i] != origin {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Security.CORSOrigins[i], origin)
		}
	}
}

// TestLoad_ValidationFailure verifies invalid env values surface named errors
func TestLoad_ValidationFailure(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("SEARCH_RESULT_COUNT", "50")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail when SEARCH_RESULT_COUNT is out of range")
	}
}

// TestEnvTransformFunc verifies env var name to config path mapping
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"DUCKDB_PATH", "database.path"},
		{"LLM_MODEL", "llm.model"},
		{"LLM_BASE_URL", "llm.base_url"},
		{"EMBEDDING_ENABLED", "embedding.enabled"},
		{"SEARCH_CANDIDATE_LIMIT", "search.candidate_limit"},
		{"SESSION_STORE", "session.store"},
		{"NATS_URL", "events.url"},
		{"AUTH_MODE", "security.auth_mode"},
		{"CASBIN_DEFAULT_ROLE", "security.casbin.default_role"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},            // unmapped system vars are skipped
		{"RANDOM_THING", ""},    // unknown vars are skipped
		{"LLM_UNKNOWN_KEY", ""}, // near-miss names are skipped too
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

// TestFindConfigFile_EnvOverride verifies CONFIG_PATH takes priority
func TestFindConfigFile_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  port: 7070\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	if got := findConfigFile(); got != configPath {
		t.Errorf("findConfigFile() = %q, want %q", got, configPath)
	}
}
