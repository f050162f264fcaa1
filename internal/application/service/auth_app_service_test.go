package service

import (
	"context"
	goerrors "errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/service/mocks"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

type authFixture struct {
	users      *mocks.MockUserRepository
	hasher     *mocks.MockPasswordHasher
	tokens     *mocks.MockTokenManager
	revocation *mocks.MockTokenRevocationList
	limiter    *mocks.MockLoginAttemptLimiter
	now        time.Time
	svc        *authAppServiceImpl
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:      new(mocks.MockUserRepository),
		hasher:     new(mocks.MockPasswordHasher),
		tokens:     new(mocks.MockTokenManager),
		revocation: new(mocks.MockTokenRevocationList),
		limiter:    new(mocks.MockLoginAttemptLimiter),
		now:        time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
	}
	f.svc = NewAuthAppService(f.users, f.hasher, f.tokens, f.revocation, f.limiter, logger.NewNoopLogger()).(*authAppServiceImpl)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func TestAuthAppService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates student", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("FindByEmail", ctx, models.Email("ana@uni.edu")).Return(nil, errors.ErrNotFound("user", "ana@uni.edu"))
		f.hasher.On("Hash", "correct-horse").Return("hashed", nil)
		f.users.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.PasswordHash == "hashed" && u.HasRole(models.RoleStudent) && u.IsActive
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 12
		}).Return(nil)

		resp, err := f.svc.Register(ctx, &dto.RegisterRequest{Email: "Ana@Uni.edu", Password: "correct-horse", FullName: " Ana Lopez "})
		require.NoError(t, err)
		assert.Equal(t, uint(12), resp.ID)
		assert.Equal(t, "ana@uni.edu", resp.Email)
		assert.Equal(t, "Ana Lopez", resp.FullName)
		assert.Equal(t, []string{"student"}, resp.Roles)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("FindByEmail", ctx, models.Email("ana@uni.edu")).Return(&models.User{ID: 1}, nil)

		_, err := f.svc.Register(ctx, &dto.RegisterRequest{Email: "ana@uni.edu", Password: "correct-horse", FullName: "Ana"})
		assert.True(t, errors.IsConflict(err))
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthAppService_Login(t *testing.T) {
	ctx := context.Background()
	email := models.Email("ana@uni.edu")
	user := &models.User{ID: 5, Email: email, PasswordHash: "hashed", IsActive: true, Roles: []models.RoleName{models.RoleStudent}}

	t.Run("success resets attempts", func(t *testing.T) {
		f := newAuthFixture()
		claims := &models.Claims{UserID: 5, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(f.now.Add(time.Hour))}}
		f.limiter.On("Allow", ctx, "ana@uni.edu").Return(true, nil)
		f.users.On("FindByEmail", ctx, email).Return(user, nil)
		f.hasher.On("Compare", "hashed", "pw").Return(nil)
		f.limiter.On("Reset", ctx, "ana@uni.edu").Return(nil)
		f.tokens.On("Issue", ctx, user).Return("signed.jwt", claims, nil)

		resp, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@uni.edu", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, "signed.jwt", resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, int64(3600), resp.ExpiresIn)
		f.limiter.AssertExpectations(t)
	})

	t.Run("wrong password records failure", func(t *testing.T) {
		f := newAuthFixture()
		f.limiter.On("Allow", ctx, "ana@uni.edu").Return(true, nil)
		f.users.On("FindByEmail", ctx, email).Return(user, nil)
		f.hasher.On("Compare", "hashed", "bad").Return(goerrors.New("mismatch"))
		f.limiter.On("RecordFailure", ctx, "ana@uni.edu").Return(nil)

		_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@uni.edu", Password: "bad"})
		assert.True(t, errors.HasCode(err, errors.CodeUnauthorized))
		f.limiter.AssertCalled(t, "RecordFailure", ctx, "ana@uni.edu")
		f.tokens.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})

	t.Run("unknown email records failure", func(t *testing.T) {
		f := newAuthFixture()
		f.limiter.On("Allow", ctx, "ghost@uni.edu").Return(true, nil)
		f.users.On("FindByEmail", ctx, models.Email("ghost@uni.edu")).Return(nil, errors.ErrNotFound("user", "ghost@uni.edu"))
		f.limiter.On("RecordFailure", ctx, "ghost@uni.edu").Return(nil)

		_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ghost@uni.edu", Password: "x"})
		assert.True(t, errors.HasCode(err, errors.CodeUnauthorized))
	})

	t.Run("throttled", func(t *testing.T) {
		f := newAuthFixture()
		f.limiter.On("Allow", ctx, "ana@uni.edu").Return(false, nil)

		_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@uni.edu", Password: "pw"})
		assert.True(t, errors.HasCode(err, errors.CodeRateLimitExceeded))
		f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("deactivated account", func(t *testing.T) {
		f := newAuthFixture()
		inactive := *user
		inactive.IsActive = false
		f.limiter.On("Allow", ctx, "ana@uni.edu").Return(true, nil)
		f.users.On("FindByEmail", ctx, email).Return(&inactive, nil)
		f.hasher.On("Compare", "hashed", "pw").Return(nil)

		_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@uni.edu", Password: "pw"})
		assert.True(t, errors.HasCode(err, errors.CodeForbidden))
	})
}

func TestAuthAppService_LogoutAndAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("logout revokes for remaining lifetime", func(t *testing.T) {
		f := newAuthFixture()
		claims := &models.Claims{UserID: 5, RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(f.now.Add(30 * time.Minute)),
		}}
		f.revocation.On("Revoke", ctx, "jti-1", 30*time.Minute).Return(nil)

		require.NoError(t, f.svc.Logout(ctx, claims))
		f.revocation.AssertExpectations(t)
	})

	t.Run("logout of expired token is a no-op", func(t *testing.T) {
		f := newAuthFixture()
		claims := &models.Claims{RegisteredClaims: jwt.RegisteredClaims{ID: "jti-2", ExpiresAt: jwt.NewNumericDate(f.now.Add(-time.Minute))}}
		require.NoError(t, f.svc.Logout(ctx, claims))
		f.revocation.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		f := newAuthFixture()
		claims := &models.Claims{RegisteredClaims: jwt.RegisteredClaims{ID: "jti-3"}}
		f.tokens.On("Verify", ctx, "tok").Return(claims, nil)
		f.revocation.On("IsRevoked", ctx, "jti-3").Return(true, nil)

		_, err := f.svc.Authenticate(ctx, "tok")
		assert.True(t, errors.HasCode(err, errors.CodeUnauthorized))
	})

	t.Run("valid token", func(t *testing.T) {
		f := newAuthFixture()
		claims := &models.Claims{UserID: 9, RegisteredClaims: jwt.RegisteredClaims{ID: "jti-4"}}
		f.tokens.On("Verify", ctx, "tok").Return(claims, nil)
		f.revocation.On("IsRevoked", ctx, "jti-4").Return(false, nil)

		got, err := f.svc.Authenticate(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, uint(9), got.UserID)
	})
}
