package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"unidash/internal/auth"
	apperrors "unidash/internal/errors"
	"unidash/internal/model"
	"unidash/internal/repository"
)

// TenantUsers pairs a tenant tag with its user store. Login scans tenants in
// slice order and stops at the first username match.
type TenantUsers struct {
	Tag   string
	Users repository.UserRepository
}

// AuthService handles authentication operations across the tenant stores.
type AuthService interface {
	Login(ctx context.Context, sessionKey, username, password string) (token string, session *auth.Session, err error)
	Logout(ctx context.Context, token string) error
	GetSession(ctx context.Context, token string) (*auth.Session, error)
	CheckPermissions(role, required string) bool
}

type authService struct {
	tenants      []TenantUsers
	jwtService   *auth.JWTService
	sessionStore auth.SessionStoreInterface
	limiter      *auth.RateLimiter
}

// NewAuthService creates a new authentication service.
func NewAuthService(tenants []TenantUsers, jwtService *auth.JWTService, sessionStore auth.SessionStoreInterface, limiter *auth.RateLimiter) AuthService {
	return &authService{
		tenants:      tenants,
		jwtService:   jwtService,
		sessionStore: sessionStore,
		limiter:      limiter,
	}
}

// Login authenticates a (username, password) pair against the tenant stores in
// fixed order and establishes a session identity on success.
func (s *authService) Login(ctx context.Context, sessionKey, username, password string) (string, *auth.Session, error) {
	if !s.limiter.Allow(sessionKey) {
		return "", nil, apperrors.ErrTooManyAttempts
	}

	var user *model.User
	var tenant string
	var store repository.UserRepository
	for _, t := range s.tenants {
		found, err := t.Users.FindByUsername(ctx, username)
		if err != nil {
			// A plain miss is the normal cross-tenant case and stays quiet.
			// Anything else (connectivity, bad schema) still counts as "no
			// match in that store" but is worth a log line.
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("auth: user lookup failed in tenant %s: %v", t.Tag, err)
			}
			continue
		}
		user = found
		tenant = t.Tag
		store = t.Users
		break
	}

	if user == nil {
		s.limiter.RecordFailure(sessionKey)
		return "", nil, apperrors.ErrUserNotFound
	}

	if !auth.VerifyPassword(password, user.PasswordHash, user.PasswordAlgo) {
		s.limiter.RecordFailure(sessionKey)
		return "", nil, apperrors.ErrWrongPassword
	}

	s.limiter.Reset(sessionKey)

	now := time.Now()
	if err := store.TouchLastLogin(ctx, user.ID, now); err != nil {
		// Login-timestamp bookkeeping must not fail the login itself.
		log.Printf("auth: touch last login for %s: %v", username, err)
	}

	session := &auth.Session{
		UserID:    user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
		Tenant:    tenant,
		LoginTime: now,
	}

	tokenID, token, err := s.jwtService.GenerateSessionToken(user.ID, user.Username, tenant)
	if err != nil {
		return "", nil, err
	}
	if err := s.sessionStore.StoreSession(ctx, tokenID, session, auth.SessionTokenExpiry); err != nil {
		return "", nil, err
	}

	log.Printf("auth: login succeeded for %s in tenant %s", username, tenant)
	return token, session, nil
}

// Logout destroys the session identity for the given token.
func (s *authService) Logout(ctx context.Context, token string) error {
	tokenID, err := s.jwtService.ExtractTokenID(token)
	if err != nil {
		return apperrors.ErrInvalidSession
	}
	return s.sessionStore.DeleteSession(ctx, tokenID)
}

// GetSession resolves the session identity behind a token.
func (s *authService) GetSession(ctx context.Context, token string) (*auth.Session, error) {
	tokenID, err := s.jwtService.ExtractTokenID(token)
	if err != nil {
		return nil, apperrors.ErrInvalidSession
	}
	session, err := s.sessionStore.GetSession(ctx, tokenID)
	if err != nil {
		return nil, apperrors.ErrInvalidSession
	}
	return session, nil
}

// rolePermissions is the fixed role to permission-set table. Unknown roles
// default to read-only.
var rolePermissions = map[string][]string{
	"admin":   {"all"},
	"manager": {"read", "write", "delete", "manage_team"},
	"user":    {"read", "write"},
	"viewer":  {"read"},
}

// CheckPermissions reports whether role satisfies the required permission.
func (s *authService) CheckPermissions(role, required string) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		perms = []string{"read"}
	}
	for _, p := range perms {
		if p == "all" || p == required {
			return true
		}
	}
	return false
}
