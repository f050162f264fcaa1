package repository

import (
	"context"

	"github.com/turtacn/acadmin/internal/domain/models"
)

// UserRepository persists users together with their roles.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email models.Email) (*models.User, error)
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	// ReplaceRoles overwrites the user's role set.
	ReplaceRoles(ctx context.Context, userID uint, roles []models.RoleName) error
}
