package models

import (
	"fmt"
	"time"

	"github.com/turtacn/acadmin/pkg/errors"
)

// RoleName is one of the fixed roles a user can hold.
type RoleName string

const (
	RoleAdmin       RoleName = "admin"
	RoleCoordinator RoleName = "coordinator"
	RoleTeacher     RoleName = "teacher"
	RoleStudent     RoleName = "student"
)

// AllRoles lists every role seeded into the database.
var AllRoles = []RoleName{RoleAdmin, RoleCoordinator, RoleTeacher, RoleStudent}

// ParseRoleName validates a role name.
func ParseRoleName(s string) (RoleName, error) {
	for _, r := range AllRoles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", errors.ErrInvalidRequest(fmt.Sprintf("unknown role: %q", s))
}

// Role is a named permission set.
type Role struct {
	ID   uint     `json:"id"`
	Name RoleName `json:"name"`
}

// User is an account in the system. Students, teachers, coordinators and
// administrators are all users distinguished by their roles.
type User struct {
	ID           uint       `json:"id"`
	Email        Email      `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name"`
	Roles        []RoleName `json:"roles"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewUser creates an active user without roles.
func NewUser(email Email, passwordHash, fullName string) *User {
	now := time.Now().UTC()
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasRole reports whether the user holds the role.
func (u *User) HasRole(role RoleName) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user holds at least one of the roles.
func (u *User) HasAnyRole(roles ...RoleName) bool {
	for _, r := range roles {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}

// AssignRole adds a role. Assigning a role the user already has is a conflict.
func (u *User) AssignRole(role RoleName) error {
	if u.HasRole(role) {
		return errors.ErrConflict(fmt.Sprintf("user %d already has role %s", u.ID, role))
	}
	u.Roles = append(u.Roles, role)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveRole drops a role the user holds.
func (u *User) RemoveRole(role RoleName) error {
	for i, r := range u.Roles {
		if r == role {
			u.Roles = append(u.Roles[:i], u.Roles[i+1:]...)
			u.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return errors.ErrNotFound("role", role)
}

// Activate re-enables a deactivated account.
func (u *User) Activate() {
	u.IsActive = true
	u.UpdatedAt = time.Now().UTC()
}

// Deactivate disables login for the account.
func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = time.Now().UTC()
}
