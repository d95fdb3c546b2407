package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		statusCode int
		code       string
	}{
		{"user not found", ErrUserNotFound, http.StatusUnauthorized, "USER_NOT_FOUND"},
		{"wrong password", ErrWrongPassword, http.StatusUnauthorized, "WRONG_PASSWORD"},
		{"too many attempts", ErrTooManyAttempts, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS"},
		{"record not found", ErrRecordNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"invalid session", ErrInvalidSession, http.StatusUnauthorized, "INVALID_SESSION"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.statusCode, httpErr.StatusCode)
			assert.Equal(t, tt.code, httpErr.Code)
		})
	}
}

// The lockout window is configurable, so the sentinel must not promise a
// specific retry interval.
func TestTooManyAttemptsMessageNamesNoDuration(t *testing.T) {
	assert.Equal(t, "too many login attempts, try again later", ErrTooManyAttempts.Error())
	assert.NotContains(t, ErrTooManyAttempts.Error(), "minute")
}
