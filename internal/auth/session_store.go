package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"unidash/internal/cache"
)

const sessionKeyPrefix = "session:"

// Session is the identity established by a successful login. It lives in the
// session store for the token lifetime and is destroyed on logout.
type Session struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Tenant    string    `json:"tenant"`
	LoginTime time.Time `json:"login_time"`
}

// SessionStoreInterface defines the interface for session storage operations.
type SessionStoreInterface interface {
	StoreSession(ctx context.Context, tokenID string, session *Session, ttl time.Duration) error
	GetSession(ctx context.Context, tokenID string) (*Session, error)
	DeleteSession(ctx context.Context, tokenID string) error
}

// SessionStore persists session identities in the shared cache store.
type SessionStore struct {
	cache cache.Store
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache cache.Store) *SessionStore {
	return &SessionStore{cache: cache}
}

// StoreSession stores a session identity with TTL.
func (s *SessionStore) StoreSession(ctx context.Context, tokenID string, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.cache.Set(ctx, sessionKeyPrefix+tokenID, payload, ttl)
}

// GetSession retrieves a session identity by token ID.
func (s *SessionStore) GetSession(ctx context.Context, tokenID string) (*Session, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+tokenID)
	if err != nil || data == nil {
		return nil, fmt.Errorf("session not found")
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a session identity on logout.
func (s *SessionStore) DeleteSession(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+tokenID)
}
