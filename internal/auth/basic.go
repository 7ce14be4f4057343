// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost trades ~200ms of hashing per login attempt for resistance
// to offline cracking should the hash ever leak.
const bcryptCost = 12

// BasicAuthManager verifies HTTP Basic Authentication credentials
// against the configured admin username and password.
//
// The password is bcrypt-hashed once at construction so the plaintext
// is not retained and per-request validation pays only the compare.
type BasicAuthManager struct {
	username     string
	passwordHash []byte
}

// NewBasicAuthManager hashes the configured password and returns a
// manager ready for per-request validation.
func NewBasicAuthManager(username, password string) (*BasicAuthManager, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &BasicAuthManager{
		username:     username,
		passwordHash: hash,
	}, nil
}

// ValidateCredentials checks an Authorization header value of the form
// "Basic base64(user:pass)" and returns the username when the
// credentials match.
func (m *BasicAuthManager) ValidateCredentials(authHeader string) (string, error) {
	if !strings.HasPrefix(authHeader, "Basic ") {
		return "", fmt.Errorf("invalid authorization header format")
	}

	encoded := strings.TrimPrefix(authHeader, "Basic ")
	credentials, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode credentials")
	}

	// A password may legally contain colons, so only the first one splits.
	parts := strings.SplitN(string(credentials), ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid credentials format")
	}

	if !m.validateUsernamePassword(parts[0], parts[1]) {
		return "", fmt.Errorf("invalid username or password")
	}

	return parts[0], nil
}

// validateUsernamePassword compares both fields in constant time. Both
// comparisons always run so a wrong username costs the same as a wrong
// password.
func (m *BasicAuthManager) validateUsernamePassword(username, password string) bool {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(m.username)) == 1
	passwordMatch := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)) == nil
	return usernameMatch && passwordMatch
}

// GetWWWAuthenticateHeader returns the challenge header sent with 401
// responses in basic mode.
func (m *BasicAuthManager) GetWWWAuthenticateHeader() string {
	return `Basic realm="MoodVie", charset="UTF-8"`
}
