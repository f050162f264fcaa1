package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims carried by access tokens.
type Claims struct {
	UserID uint       `json:"uid"`
	Email  string     `json:"email"`
	Roles  []RoleName `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the token grants the role.
func (c *Claims) HasRole(role RoleName) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the token grants at least one of the roles.
func (c *Claims) HasAnyRole(roles ...RoleName) bool {
	for _, r := range roles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}

// ExpiresIn returns how long the token stays valid after now. Zero when expired.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if d := c.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
