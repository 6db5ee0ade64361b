package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mealplan/backend/internal/domain/identity"
	"github.com/mealplan/backend/internal/domain/shared"
	"github.com/mealplan/backend/internal/infrastructure/auth"
	"github.com/mealplan/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestAuthService(repo identity.UserRepository) (*AuthService, auth.TokenBlacklist) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-which-is-quite-long",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "mealplan-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	return NewAuthService(repo, jwtService, blacklist, zap.NewNop()), blacklist
}

func testUser(t *testing.T) *identity.User {
	user, err := identity.NewUser("alice", "alice@example.com", "sup3rsecret")
	require.NoError(t, err)
	return user
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account and returns tokens", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)

		repo.On("FindByUsername", ctx, "bob").Return(nil, shared.ErrNotFound)
		repo.On("FindByEmail", ctx, "bob@example.com").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		result, err := svc.Register(ctx, RegisterInput{
			Username: "bob",
			Email:    "bob@example.com",
			Password: "sup3rsecret",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "bob", result.User.Username)
		repo.AssertExpectations(t)
	})

	t.Run("rejects taken username", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)

		repo.On("FindByUsername", ctx, "alice").Return(testUser(t), nil)

		_, err := svc.Register(ctx, RegisterInput{
			Username: "alice",
			Email:    "new@example.com",
			Password: "sup3rsecret",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects registered email", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)

		repo.On("FindByUsername", ctx, "carol").Return(nil, shared.ErrNotFound)
		repo.On("FindByEmail", ctx, "alice@example.com").Return(testUser(t), nil)

		_, err := svc.Register(ctx, RegisterInput{
			Username: "carol",
			Email:    "alice@example.com",
			Password: "sup3rsecret",
		})
		require.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)
		user := testUser(t)

		repo.On("FindByUsername", ctx, "alice").Return(user, nil)

		result, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "sup3rsecret"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, "Bearer", result.TokenType)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)

		repo.On("FindByUsername", ctx, "alice").Return(testUser(t), nil)

		_, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "wrong"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("unknown user yields same error as wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)

		repo.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, LoginInput{Username: "ghost", Password: "whatever"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("deactivated account", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)
		user := testUser(t)
		user.IsActive = false

		repo.On("FindByUsername", ctx, "alice").Return(user, nil)

		_, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "sup3rsecret"})
		require.Error(t, err)
	})
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("refresh rotates the token pair", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)
		user := testUser(t)

		repo.On("FindByUsername", ctx, "alice").Return(user, nil)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		login, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "sup3rsecret"})
		require.NoError(t, err)

		refreshed, err := svc.Refresh(ctx, RefreshInput{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)

		// rotated refresh token is now blacklisted
		_, err = svc.Refresh(ctx, RefreshInput{RefreshToken: login.RefreshToken})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("refresh rejects garbage token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)

		_, err := svc.Refresh(ctx, RefreshInput{RefreshToken: "not-a-token"})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("logout blacklists the access token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, blacklist := newTestAuthService(repo)
		user := testUser(t)

		repo.On("FindByUsername", ctx, "alice").Return(user, nil)

		login, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "sup3rsecret"})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, login.AccessToken, login.RefreshToken))

		jwtService := auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-which-is-quite-long",
			AccessTokenExpiration:  time.Hour,
			RefreshTokenExpiration: 24 * time.Hour,
			Issuer:                 "mealplan-test",
		})
		claims, err := jwtService.ValidateAccessToken(login.AccessToken)
		require.NoError(t, err)

		blacklisted, err := blacklist.Contains(ctx, claims.ID)
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc, _ := newTestAuthService(repo)
	user := testUser(t)

	repo.On("FindByID", ctx, user.ID).Return(user, nil)

	info, err := svc.CurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)

	unknown := uuid.New()
	repo.On("FindByID", ctx, unknown).Return(nil, shared.ErrNotFound)
	_, err = svc.CurrentUser(ctx, unknown)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
