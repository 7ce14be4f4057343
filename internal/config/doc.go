// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package config provides centralized configuration management for MoodVie.
//
// Configuration is loaded with Koanf v2 from three layered sources, each
// overriding the previous one:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. Environment variables (flat names mapped to nested paths)
//
// # Quick Start
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.LLM.Model, cfg.Database.Path)
//
// # Environment Variables
//
// Every setting can be overridden through a flat environment variable, for
// example:
//
//	HTTP_PORT=9090
//	DUCKDB_PATH=/var/lib/moodvie/catalog.duckdb
//	LLM_BASE_URL=http://127.0.0.1:11434/v1
//	LLM_MODEL=qwen3:8b
//	EMBEDDING_ENABLED=true
//	EMBEDDING_BASE_URL=http://127.0.0.1:7997/v1
//	SESSION_STORE=memory
//	AUTH_MODE=jwt
//	JWT_SECRET=<32+ characters>
//
// Only explicitly mapped variables are read; unrelated environment variables
// are ignored. See envTransformFunc for the full mapping table.
//
// # Config File
//
// A YAML file mirrors the nested structure:
//
//	server:
//	  port: 9090
//	llm:
//	  model: qwen3:8b
//	  temperature: 0.3
//	security:
//	  auth_mode: jwt
//	  cors_origins:
//	    - https://app.example.com
//
// The file is searched at ./config.yaml, ./config.yml, /etc/moodvie/config.yaml,
// and /etc/moodvie/config.yml, or at the path in CONFIG_PATH.
//
// # Validation
//
// Load validates the assembled configuration and returns errors that name the
// offending environment variable, e.g. "EMBEDDING_BASE_URL is required when
// EMBEDDING_ENABLED=true". In production mode (ENVIRONMENT=production) admin
// credentials must additionally satisfy the password policy in
// password_policy.go.
package config
