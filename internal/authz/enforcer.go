// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package authz

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"

	"github.com/moodvie/moodvie/internal/auth"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// EnforcerConfig holds Casbin enforcer settings.
type EnforcerConfig struct {
	// ModelPath points at an external model file. Empty uses the
	// embedded model.
	ModelPath string

	// PolicyPath points at an external policy file. Empty uses the
	// embedded policy.
	PolicyPath string

	// AutoReload re-reads an external policy file periodically so
	// edits apply without a restart. Ignored for the embedded policy.
	AutoReload bool

	// ReloadInterval is how often the policy file is re-read.
	ReloadInterval time.Duration

	// DefaultRole is enforced for requests without claims, which is
	// every request when authentication is disabled.
	DefaultRole string
}

// DefaultEnforcerConfig returns the zero-configuration defaults.
func DefaultEnforcerConfig() *EnforcerConfig {
	return &EnforcerConfig{
		AutoReload:     true,
		ReloadInterval: 30 * time.Second,
		DefaultRole:    auth.RoleUser,
	}
}

// Enforcer wraps a Casbin SyncedEnforcer loaded with either the
// embedded MoodVie policy or operator-supplied files.
type Enforcer struct {
	config   *EnforcerConfig
	enforcer *casbin.SyncedEnforcer
}

// NewEnforcer loads the model and policy and returns a ready enforcer.
func NewEnforcer(config *EnforcerConfig) (*Enforcer, error) {
	if config == nil {
		config = DefaultEnforcerConfig()
	}

	var m model.Model
	var err error
	if config.ModelPath != "" && fileExists(config.ModelPath) {
		m, err = model.NewModelFromFile(config.ModelPath)
	} else {
		m, err = model.NewModelFromString(embeddedModel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	var enforcer *casbin.SyncedEnforcer
	if config.PolicyPath != "" && fileExists(config.PolicyPath) {
		adapter := fileadapter.NewAdapter(config.PolicyPath)
		enforcer, err = casbin.NewSyncedEnforcer(m, adapter)
	} else {
		enforcer, err = casbin.NewSyncedEnforcer(m)
		if err == nil {
			err = loadEmbeddedPolicy(enforcer, embeddedPolicy)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if config.AutoReload && config.PolicyPath != "" && fileExists(config.PolicyPath) {
		enforcer.StartAutoLoadPolicy(config.ReloadInterval)
	}

	return &Enforcer{
		config:   config,
		enforcer: enforcer,
	}, nil
}

// loadEmbeddedPolicy parses the embedded policy CSV into the enforcer.
func loadEmbeddedPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		ptype := parts[0]
		rule := parts[1:]

		switch ptype {
		case "p":
			if len(rule) >= 3 {
				if _, err := enforcer.AddPolicy(rule[0], rule[1], rule[2]); err != nil {
					return fmt.Errorf("failed to add policy %v: %w", rule, err)
				}
			}
		case "g":
			if len(rule) >= 2 {
				if _, err := enforcer.AddGroupingPolicy(rule[0], rule[1]); err != nil {
					return fmt.Errorf("failed to add grouping policy %v: %w", rule, err)
				}
			}
		}
	}
	return nil
}

// Enforce reports whether the subject may perform the action on the
// object. Subjects are role names here.
func (e *Enforcer) Enforce(subject, object, action string) (bool, error) {
	allowed, err := e.enforcer.Enforce(subject, object, action)
	if err != nil {
		return false, fmt.Errorf("enforcement failed: %w", err)
	}
	return allowed, nil
}

// DefaultRole returns the role enforced for claimless requests.
func (e *Enforcer) DefaultRole() string {
	return e.config.DefaultRole
}

// Policies returns all loaded policy rules, for diagnostics.
func (e *Enforcer) Policies() [][]string {
	policies, _ := e.enforcer.GetPolicy()
	return policies
}

// Close stops the policy auto-reloader.
func (e *Enforcer) Close() {
	e.enforcer.StopAutoLoadPolicy()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
