// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package auth

import "fmt"

// AuthMode selects how incoming requests are authenticated.
type AuthMode string

const (
	// AuthModeNone disables authentication entirely.
	AuthModeNone AuthMode = "none"

	// AuthModeBasic uses HTTP Basic Authentication.
	AuthModeBasic AuthMode = "basic"

	// AuthModeJWT uses bearer tokens signed with HMAC-SHA256.
	AuthModeJWT AuthMode = "jwt"
)

// ParseMode converts a configuration string into an AuthMode.
// An empty string maps to AuthModeNone, matching the config default.
func ParseMode(s string) (AuthMode, error) {
	switch AuthMode(s) {
	case AuthModeNone, "":
		return AuthModeNone, nil
	case AuthModeBasic:
		return AuthModeBasic, nil
	case AuthModeJWT:
		return AuthModeJWT, nil
	default:
		return "", fmt.Errorf("unsupported auth mode %q", s)
	}
}

// String returns the mode's configuration spelling.
func (m AuthMode) String() string {
	return string(m)
}
