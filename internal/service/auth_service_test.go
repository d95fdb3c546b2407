package service

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"unidash/internal/auth"
	"unidash/internal/cache"
	apperrors "unidash/internal/errors"
	"unidash/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockSessionStore is a mock implementation of auth.SessionStoreInterface.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) StoreSession(ctx context.Context, tokenID string, session *auth.Session, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, session, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) GetSession(ctx context.Context, tokenID string) (*auth.Session, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func newTestService(leadRepo, cpaRepo, propRepo *MockUserRepository, store *MockSessionStore) AuthService {
	tenants := []TenantUsers{
		{Tag: "lead", Users: leadRepo},
		{Tag: "cpa", Users: cpaRepo},
		{Tag: "prop", Users: propRepo},
	}
	jwtService := auth.NewJWTService("test-secret")
	limiter := auth.NewRateLimiter(3, 15*time.Minute)
	return NewAuthService(tenants, jwtService, store, limiter)
}

func TestAuthService_Login_FindsUserInSecondTenant(t *testing.T) {
	leadRepo := new(MockUserRepository)
	cpaRepo := new(MockUserRepository)
	propRepo := new(MockUserRepository)
	store := new(MockSessionStore)

	hash, algo, err := auth.HashPassword("password123")
	assert.NoError(t, err)

	user := &model.User{
		ID:           7,
		Username:     "ezio",
		PasswordHash: hash,
		PasswordAlgo: algo,
		FirstName:    "Ezio",
		Role:         "admin",
	}

	leadRepo.On("FindByUsername", mock.Anything, "ezio").Return(nil, gorm.ErrRecordNotFound)
	cpaRepo.On("FindByUsername", mock.Anything, "ezio").Return(user, nil)
	cpaRepo.On("TouchLastLogin", mock.Anything, uint(7), mock.Anything).Return(nil)
	store.On("StoreSession", mock.Anything, mock.Anything, mock.AnythingOfType("*auth.Session"), auth.SessionTokenExpiry).Return(nil)

	service := newTestService(leadRepo, cpaRepo, propRepo, store)
	token, session, err := service.Login(context.Background(), "session-1", "ezio", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotNil(t, session)
	assert.Equal(t, "cpa", session.Tenant)
	assert.Equal(t, "ezio", session.Username)
	assert.Equal(t, "admin", session.Role)

	// The search stopped at the first match: prop was never queried.
	leadRepo.AssertExpectations(t)
	cpaRepo.AssertExpectations(t)
	propRepo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestAuthService_Login_UserNotFoundAnywhere(t *testing.T) {
	leadRepo := new(MockUserRepository)
	cpaRepo := new(MockUserRepository)
	propRepo := new(MockUserRepository)
	store := new(MockSessionStore)

	for _, repo := range []*MockUserRepository{leadRepo, cpaRepo, propRepo} {
		repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
	}

	service := newTestService(leadRepo, cpaRepo, propRepo, store)
	token, session, err := service.Login(context.Background(), "session-1", "ghost", "whatever")

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Empty(t, token)
	assert.Nil(t, session)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	leadRepo := new(MockUserRepository)
	cpaRepo := new(MockUserRepository)
	propRepo := new(MockUserRepository)
	store := new(MockSessionStore)

	hash, algo, err := auth.HashPassword("password123")
	assert.NoError(t, err)

	leadRepo.On("FindByUsername", mock.Anything, "ezio").Return(&model.User{
		ID:           1,
		Username:     "ezio",
		PasswordHash: hash,
		PasswordAlgo: algo,
	}, nil)

	service := newTestService(leadRepo, cpaRepo, propRepo, store)
	_, _, loginErr := service.Login(context.Background(), "session-1", "ezio", "nope")

	assert.ErrorIs(t, loginErr, apperrors.ErrWrongPassword)
}

func TestAuthService_Login_StoreErrorsAreSwallowed(t *testing.T) {
	leadRepo := new(MockUserRepository)
	cpaRepo := new(MockUserRepository)
	propRepo := new(MockUserRepository)
	store := new(MockSessionStore)

	hash, algo, err := auth.HashPassword("password123")
	assert.NoError(t, err)

	user := &model.User{ID: 3, Username: "ezio", PasswordHash: hash, PasswordAlgo: algo, Role: "manager"}

	// A connectivity failure in the first store must not abort the search.
	leadRepo.On("FindByUsername", mock.Anything, "ezio").Return(nil, gorm.ErrInvalidDB)
	cpaRepo.On("FindByUsername", mock.Anything, "ezio").Return(user, nil)
	cpaRepo.On("TouchLastLogin", mock.Anything, uint(3), mock.Anything).Return(nil)
	store.On("StoreSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	service := newTestService(leadRepo, cpaRepo, propRepo, store)
	_, session, loginErr := service.Login(context.Background(), "session-1", "ezio", "password123")

	assert.NoError(t, loginErr)
	assert.Equal(t, "cpa", session.Tenant)
}

func TestAuthService_Login_RateLimiterSharedAcrossCalls(t *testing.T) {
	leadRepo := new(MockUserRepository)
	cpaRepo := new(MockUserRepository)
	propRepo := new(MockUserRepository)
	store := new(MockSessionStore)

	for _, repo := range []*MockUserRepository{leadRepo, cpaRepo, propRepo} {
		repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
	}

	service := newTestService(leadRepo, cpaRepo, propRepo, store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := service.Login(ctx, "session-1", "ghost", "whatever")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	}

	// Fourth attempt is locked out and no store is queried.
	_, _, err := service.Login(ctx, "session-1", "ghost", "whatever")
	assert.ErrorIs(t, err, apperrors.ErrTooManyAttempts)
	leadRepo.AssertNumberOfCalls(t, "FindByUsername", 3)
	cpaRepo.AssertNumberOfCalls(t, "FindByUsername", 3)
	propRepo.AssertNumberOfCalls(t, "FindByUsername", 3)

	// A different session key is unaffected.
	_, _, err = service.Login(ctx, "session-2", "ghost", "whatever")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestAuthService_Login_SessionRoundTripsThroughStore(t *testing.T) {
	leadRepo := new(MockUserRepository)
	cpaRepo := new(MockUserRepository)
	propRepo := new(MockUserRepository)

	hash, algo, err := auth.HashPassword("password123")
	assert.NoError(t, err)

	leadRepo.On("FindByUsername", mock.Anything, "ezio").Return(&model.User{
		ID:           5,
		Username:     "ezio",
		PasswordHash: hash,
		PasswordAlgo: algo,
		Role:         "admin",
	}, nil)
	leadRepo.On("TouchLastLogin", mock.Anything, uint(5), mock.Anything).Return(nil)

	// A real store backed by the in-memory cache: the token handed out by
	// Login must resolve to a live session, and logout must kill it.
	sessionStore := auth.NewSessionStore(cache.NewMemory(8))
	jwtService := auth.NewJWTService("test-secret")
	limiter := auth.NewRateLimiter(3, 15*time.Minute)
	service := NewAuthService([]TenantUsers{
		{Tag: "lead", Users: leadRepo},
		{Tag: "cpa", Users: cpaRepo},
		{Tag: "prop", Users: propRepo},
	}, jwtService, sessionStore, limiter)

	ctx := context.Background()
	token, _, err := service.Login(ctx, "session-1", "ezio", "password123")
	assert.NoError(t, err)

	session, err := service.GetSession(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, "ezio", session.Username)
	assert.Equal(t, "lead", session.Tenant)

	assert.NoError(t, service.Logout(ctx, token))
	_, err = service.GetSession(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSession)
}

func TestAuthService_Login_MissesAreQuietFailuresAreLogged(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	leadRepo := new(MockUserRepository)
	cpaRepo := new(MockUserRepository)
	propRepo := new(MockUserRepository)
	store := new(MockSessionStore)

	leadRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
	cpaRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrInvalidDB)
	propRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(leadRepo, cpaRepo, propRepo, store)
	_, _, err := service.Login(context.Background(), "session-1", "ghost", "whatever")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	// Only the real store failure produces a log line; plain misses in the
	// lead and prop stores stay quiet.
	assert.Contains(t, buf.String(), "tenant cpa")
	assert.NotContains(t, buf.String(), "tenant lead")
	assert.NotContains(t, buf.String(), "tenant prop")
}

func TestAuthService_CheckPermissions(t *testing.T) {
	service := newTestService(new(MockUserRepository), new(MockUserRepository), new(MockUserRepository), new(MockSessionStore))

	tests := []struct {
		role     string
		required string
		want     bool
	}{
		{"admin", "read", true},
		{"admin", "manage_team", true},
		{"manager", "delete", true},
		{"manager", "admin_only", false},
		{"user", "write", true},
		{"user", "delete", false},
		{"viewer", "read", true},
		{"viewer", "write", false},
		{"unknown-role", "read", true},
		{"unknown-role", "write", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, service.CheckPermissions(tt.role, tt.required), "role=%s required=%s", tt.role, tt.required)
	}
}
