package auth

import (
	"sync"
	"time"
)

// RateLimiter tracks consecutive failed login attempts per session key and
// denies further attempts once the configured maximum is reached, until the
// lockout window has elapsed since the last recorded failure.
type RateLimiter struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	attempts    map[string]*attemptState
	now         func() time.Time
}

type attemptState struct {
	failures    int
	lastFailure time.Time
}

// NewRateLimiter creates a limiter with the given maximum consecutive failures
// and lockout window.
func NewRateLimiter(maxAttempts int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		maxAttempts: maxAttempts,
		window:      window,
		attempts:    make(map[string]*attemptState),
		now:         time.Now,
	}
}

// Allow reports whether a login attempt for key may proceed.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.attempts[key]
	if !ok || state.failures < l.maxAttempts {
		return true
	}
	return l.now().Sub(state.lastFailure) >= l.window
}

// RecordFailure increments the failure counter for key.
func (l *RateLimiter) RecordFailure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.attempts[key]
	if !ok {
		state = &attemptState{}
		l.attempts[key] = state
	}
	state.failures++
	state.lastFailure = l.now()
}

// Reset clears the failure counter for key after a successful login.
func (l *RateLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}
