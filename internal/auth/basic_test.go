// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func TestNewBasicAuthManager(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  string
	}{
		{"valid", "admin", "supersecret", ""},
		{"empty username", "", "supersecret", "username is required"},
		{"empty password", "admin", "", "password is required"},
		{"short password", "admin", "short", "at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, err := NewBasicAuthManager(tt.username, tt.password)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, manager)
		})
	}
}

func TestBasicAuthManager_ValidateCredentials(t *testing.T) {
	manager, err := NewBasicAuthManager("admin", "supersecret")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		username, err := manager.ValidateCredentials(basicHeader("admin", "supersecret"))
		require.NoError(t, err)
		assert.Equal(t, "admin", username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := manager.ValidateCredentials(basicHeader("admin", "wrongpassword"))
		assert.Error(t, err)
	})

	t.Run("wrong username", func(t *testing.T) {
		_, err := manager.ValidateCredentials(basicHeader("intruder", "supersecret"))
		assert.Error(t, err)
	})

	t.Run("missing prefix", func(t *testing.T) {
		_, err := manager.ValidateCredentials("Bearer abc123")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "authorization header")
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := manager.ValidateCredentials("Basic %%%not-base64%%%")
		assert.Error(t, err)
	})

	t.Run("no colon separator", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte("adminsupersecret"))
		_, err := manager.ValidateCredentials("Basic " + encoded)
		assert.Error(t, err)
	})
}

func TestBasicAuthManager_PasswordWithColons(t *testing.T) {
	// Only the first colon separates username from password.
	manager, err := NewBasicAuthManager("admin", "pa:ss:word")
	require.NoError(t, err)

	username, err := manager.ValidateCredentials(basicHeader("admin", "pa:ss:word"))
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestBasicAuthManager_WWWAuthenticateHeader(t *testing.T) {
	manager, err := NewBasicAuthManager("admin", "supersecret")
	require.NoError(t, err)

	header := manager.GetWWWAuthenticateHeader()
	assert.Contains(t, header, "Basic")
	assert.Contains(t, header, `realm="MoodVie"`)
}
