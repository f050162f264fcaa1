package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/pkg/constants"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

// Authenticator verifies a bearer token. AuthAppService satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Claims, error)
}

// extractBearer extracts the token from the Authorization header.
func extractBearer(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// RequireJWT protects routes that need a valid, unrevoked access token and
// stores the verified claims on the gin context.
func RequireJWT(auth Authenticator, log logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("jwt_auth")
	return func(c *gin.Context) {
		tokenStr := extractBearer(c.GetHeader(constants.HeaderAuthorization))
		if tokenStr == "" {
			AbortWithError(c, errors.ErrUnauthorized("missing bearer token"))
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			log.Warn(c.Request.Context(), "JWT verification failed", logger.String("reason", err.Error()))
			AbortWithError(c, err)
			return
		}

		c.Set(string(constants.ContextKeyClaims), claims)
		c.Set(string(constants.ContextKeyUserID), claims.UserID)
		c.Next()
	}
}

// RequireRoles lets the request through when the token grants any of roles.
// It must run after RequireJWT.
func RequireRoles(roles ...models.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			AbortWithError(c, errors.ErrUnauthorized("authentication required"))
			return
		}
		if !claims.HasAnyRole(roles...) {
			AbortWithError(c, errors.ErrForbidden("insufficient role"))
			return
		}
		c.Next()
	}
}

// GetClaims returns the claims stored by RequireJWT.
func GetClaims(c *gin.Context) (*models.Claims, bool) {
	v, ok := c.Get(string(constants.ContextKeyClaims))
	if !ok {
		return nil, false
	}
	claims, ok := v.(*models.Claims)
	return claims, ok && claims != nil
}
