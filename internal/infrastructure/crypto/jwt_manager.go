// Package crypto implements token signing, password hashing and secret loading.
package crypto

import (
	"context"
	goerrors "errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/service"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

var _ service.TokenManager = (*JWTManager)(nil)

// JWTManager issues HS256 access tokens carrying the user's ID, email and roles.
type JWTManager struct {
	secrets SecretProvider
	issuer  string
	ttl     time.Duration
	now     func() time.Time
	log     logger.Logger
}

// NewJWTManager creates a new JWTManager.
func NewJWTManager(secrets SecretProvider, issuer string, ttl time.Duration, log logger.Logger) *JWTManager {
	return &JWTManager{
		secrets: secrets,
		issuer:  issuer,
		ttl:     ttl,
		now:     func() time.Time { return time.Now().UTC() },
		log:     log.WithComponent("jwt_manager"),
	}
}

// Issue signs a token for the user. Each token gets a fresh JTI so it can be
// revoked individually.
func (j *JWTManager) Issue(ctx context.Context, user *models.User) (string, *models.Claims, error) {
	key, err := j.secrets.SigningKey(ctx)
	if err != nil {
		return "", nil, err
	}

	now := j.now()
	claims := &models.Claims{
		UserID: user.ID,
		Email:  string(user.Email),
		Roles:  append([]models.RoleName(nil), user.Roles...),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		j.log.Error(ctx, "Failed to sign JWT", err, logger.Uint("user_id", user.ID))
		return "", nil, errors.ErrInternal("failed to sign token").WithCause(err)
	}
	return signed, claims, nil
}

// Verify checks signature, issuer and lifetime and returns the claims.
func (j *JWTManager) Verify(ctx context.Context, tokenString string) (*models.Claims, error) {
	key, err := j.secrets.SigningKey(ctx)
	if err != nil {
		return nil, err
	}

	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.ErrUnauthorized("token has expired")
		}
		j.log.Debug(ctx, "Rejected token", logger.String("reason", err.Error()))
		return nil, errors.ErrUnauthorized("invalid token").WithCause(err)
	}
	if !token.Valid || claims.ID == "" {
		return nil, errors.ErrUnauthorized("invalid token")
	}
	return claims, nil
}
