package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_LockoutAndRecovery(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(3, 15*time.Minute)
	limiter.now = func() time.Time { return now }

	const key = "session-1"

	// Attempts below the maximum are allowed.
	assert.True(t, limiter.Allow(key))
	limiter.RecordFailure(key)
	assert.True(t, limiter.Allow(key))
	limiter.RecordFailure(key)
	assert.True(t, limiter.Allow(key))
	limiter.RecordFailure(key)

	// Third consecutive failure locks the session out.
	assert.False(t, limiter.Allow(key))

	// Still locked just before the window elapses.
	now = now.Add(15*time.Minute - time.Second)
	assert.False(t, limiter.Allow(key))

	// Allowed again once the window has elapsed.
	now = now.Add(time.Second)
	assert.True(t, limiter.Allow(key))
}

func TestRateLimiter_ResetOnSuccess(t *testing.T) {
	limiter := NewRateLimiter(3, 15*time.Minute)

	const key = "session-1"
	limiter.RecordFailure(key)
	limiter.RecordFailure(key)
	limiter.RecordFailure(key)
	assert.False(t, limiter.Allow(key))

	limiter.Reset(key)
	assert.True(t, limiter.Allow(key))
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewRateLimiter(1, 15*time.Minute)

	limiter.RecordFailure("session-1")
	assert.False(t, limiter.Allow("session-1"))
	assert.True(t, limiter.Allow("session-2"))
}
