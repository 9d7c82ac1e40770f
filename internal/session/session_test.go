// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocmai/camellia/internal/platform/constants"
	"github.com/ngocmai/camellia/internal/session"
)

/*
TestNew verifies fresh sessions get a unique ID, a CSRF secret, and the
default lifetime when no TTL is configured.
*/
func TestNew(t *testing.T) {
	first, err := session.New(0)
	require.NoError(t, err)
	second, err := session.New(0)
	require.NoError(t, err)

	// 1. Identity and secret must be present and unique per session.
	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.CSRFSecret)
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.CSRFSecret, second.CSRFSecret)

	// 2. Zero TTL selects the default server-side lifetime.
	wantExpiry := first.CreatedAt.Add(constants.DefaultSessionTTL)
	assert.WithinDuration(t, wantExpiry, first.ExpiresAt, time.Second)

	// 3. A fresh session is anonymous and clean.
	assert.False(t, first.IsLoggedIn())
	assert.False(t, first.Dirty())
}

/*
TestSession_LoginLogout verifies the login state transitions mark the
session for persistence.
*/
func TestSession_LoginLogout(t *testing.T) {
	current, err := session.New(time.Hour)
	require.NoError(t, err)

	current.Login("user-123")
	assert.True(t, current.IsLoggedIn())
	assert.Equal(t, "user-123", current.UserID)
	assert.True(t, current.Dirty())

	current.MarkClean()
	current.Logout()
	assert.False(t, current.IsLoggedIn())
	assert.True(t, current.Dirty())
}

/*
TestSession_PopFlashes verifies the read-and-clear contract: a flash is
shown exactly once.
*/
func TestSession_PopFlashes(t *testing.T) {
	current, err := session.New(time.Hour)
	require.NoError(t, err)

	current.AddFlash(session.FlashError, "Invalid email or password")
	current.AddFlash(session.FlashSuccess, "Account created")

	// 1. First pop drains everything in insertion order.
	flashes := current.PopFlashes()
	require.Len(t, flashes, 2)
	assert.Equal(t, session.FlashError, flashes[0].Kind)
	assert.Equal(t, "Invalid email or password", flashes[0].Message)
	assert.Equal(t, session.FlashSuccess, flashes[1].Kind)

	// 2. Second pop finds nothing.
	assert.Nil(t, current.PopFlashes())

	// 3. Draining is a mutation that must be persisted.
	assert.True(t, current.Dirty())
}

/*
TestSession_IsExpired verifies expiry is evaluated against the given clock.
*/
func TestSession_IsExpired(t *testing.T) {
	current, err := session.New(time.Hour)
	require.NoError(t, err)

	assert.False(t, current.IsExpired(time.Now()))
	assert.True(t, current.IsExpired(time.Now().Add(2*time.Hour)))
}
