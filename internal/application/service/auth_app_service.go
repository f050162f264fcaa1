package service

import (
	"context"
	"strings"
	"time"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/repository"
	"github.com/turtacn/acadmin/internal/domain/service"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

const invalidCredentialsMessage = "invalid email or password"

// AuthAppService defines the authentication use cases.
type AuthAppService interface {
	// Register creates an account with the student role.
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)

	// CreateUser creates an account with the given roles. Used by administrative tooling.
	CreateUser(ctx context.Context, req *dto.RegisterRequest, roles ...models.RoleName) (*dto.UserResponse, error)

	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)

	// Logout revokes the token described by claims until it expires.
	Logout(ctx context.Context, claims *models.Claims) error

	// Authenticate verifies a bearer token and rejects revoked ones.
	Authenticate(ctx context.Context, token string) (*models.Claims, error)
}

type authAppServiceImpl struct {
	users      repository.UserRepository
	hasher     service.PasswordHasher
	tokens     service.TokenManager
	revocation service.TokenRevocationList
	limiter    service.LoginAttemptLimiter
	now        func() time.Time
	logger     logger.Logger
}

// NewAuthAppService creates a new instance of AuthAppService.
func NewAuthAppService(
	users repository.UserRepository,
	hasher service.PasswordHasher,
	tokens service.TokenManager,
	revocation service.TokenRevocationList,
	limiter service.LoginAttemptLimiter,
	log logger.Logger,
) AuthAppService {
	return &authAppServiceImpl{
		users:      users,
		hasher:     hasher,
		tokens:     tokens,
		revocation: revocation,
		limiter:    limiter,
		now:        time.Now,
		logger:     log.WithComponent("auth_app_service"),
	}
}

func (s *authAppServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	return s.CreateUser(ctx, req, models.RoleStudent)
}

func (s *authAppServiceImpl) CreateUser(ctx context.Context, req *dto.RegisterRequest, roles ...models.RoleName) (*dto.UserResponse, error) {
	email, err := models.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, "failed to look up user")
	}
	if existing != nil {
		return nil, errors.ErrConflict("email is already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := models.NewUser(email, hash, strings.TrimSpace(req.FullName))
	user.Roles = append(user.Roles, roles...)
	if err := s.users.Create(ctx, user); err != nil {
		if !errors.IsConflict(err) {
			s.logger.Error(ctx, "Failed to create user", err, logger.String("email", email.String()))
		}
		return nil, errors.Wrap(err, "failed to create user")
	}

	s.logger.Info(ctx, "User registered", logger.Uint("user_id", user.ID), logger.Any("roles", user.Roles))
	return dto.NewUserResponse(user), nil
}

func (s *authAppServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email, err := models.NewEmail(req.Email)
	if err != nil {
		return nil, errors.ErrUnauthorized(invalidCredentialsMessage)
	}
	key := email.String()

	allowed, err := s.limiter.Allow(ctx, key)
	if err != nil {
		// Fail open when the limiter backend is down.
		s.logger.Warn(ctx, "Login limiter unavailable", logger.String("error", err.Error()))
		allowed = true
	}
	if !allowed {
		s.logger.Warn(ctx, "Login throttled", logger.String("email", key))
		return nil, errors.ErrRateLimitExceeded("login")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			s.recordFailure(ctx, key)
			return nil, errors.ErrUnauthorized(invalidCredentialsMessage)
		}
		return nil, errors.Wrap(err, "failed to look up user")
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		s.recordFailure(ctx, key)
		return nil, errors.ErrUnauthorized(invalidCredentialsMessage)
	}
	if !user.IsActive {
		return nil, errors.ErrForbidden("account is deactivated")
	}

	if err := s.limiter.Reset(ctx, key); err != nil {
		s.logger.Warn(ctx, "Failed to reset login attempts", logger.String("error", err.Error()))
	}

	token, claims, err := s.tokens.Issue(ctx, user)
	if err != nil {
		s.logger.Error(ctx, "Failed to issue token", err, logger.Uint("user_id", user.ID))
		return nil, errors.Wrap(err, "failed to issue token")
	}

	s.logger.Info(ctx, "User logged in", logger.Uint("user_id", user.ID))
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(claims.ExpiresIn(s.now()).Seconds()),
		User:        dto.NewUserResponse(user),
	}, nil
}

func (s *authAppServiceImpl) recordFailure(ctx context.Context, key string) {
	if err := s.limiter.RecordFailure(ctx, key); err != nil {
		s.logger.Warn(ctx, "Failed to record login failure", logger.String("error", err.Error()))
	}
}

func (s *authAppServiceImpl) Logout(ctx context.Context, claims *models.Claims) error {
	if claims == nil || claims.ID == "" {
		return errors.ErrUnauthorized("token has no identifier")
	}
	ttl := claims.ExpiresIn(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revocation.Revoke(ctx, claims.ID, ttl); err != nil {
		s.logger.Error(ctx, "Failed to revoke token", err, logger.Uint("user_id", claims.UserID))
		return errors.Wrap(err, "failed to revoke token")
	}
	s.logger.Info(ctx, "User logged out", logger.Uint("user_id", claims.UserID))
	return nil
}

func (s *authAppServiceImpl) Authenticate(ctx context.Context, token string) (*models.Claims, error) {
	claims, err := s.tokens.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.revocation.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, errors.ErrServiceUnavailable("token revocation list unavailable").WithCause(err)
	}
	if revoked {
		return nil, errors.ErrUnauthorized("token has been revoked")
	}
	return claims, nil
}
