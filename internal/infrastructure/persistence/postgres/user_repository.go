package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/repository"
	"github.com/turtacn/acadmin/pkg/logger"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository stores users and their role assignments.
type UserRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewUserRepository creates a gorm-backed user repository.
func NewUserRepository(db *gorm.DB, log logger.Logger) *UserRepository {
	return &UserRepository{db: db, logger: log.WithComponent("user_repository")}
}

// Create inserts the user with its roles and fills in the generated ID.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roles, err := lookupRoles(tx, user.Roles)
		if err != nil {
			return err
		}
		m := &userDBM{
			Email:        string(user.Email),
			PasswordHash: user.PasswordHash,
			FullName:     user.FullName,
			IsActive:     user.IsActive,
			Roles:        roles,
			CreatedAt:    user.CreatedAt,
			UpdatedAt:    user.UpdatedAt,
		}
		if err := tx.Omit("Roles.*").Create(m).Error; err != nil {
			r.logger.Error(ctx, "Failed to create user", err, logger.String("email", string(user.Email)))
			return translateError(err, "user", user.Email)
		}
		user.ID = m.ID
		user.CreatedAt = m.CreatedAt
		user.UpdatedAt = m.UpdatedAt
		return nil
	})
}

// Update persists profile and activation changes. Roles are changed through ReplaceRoles.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Model(&userDBM{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"email":         string(user.Email),
		"password_hash": user.PasswordHash,
		"full_name":     user.FullName,
		"is_active":     user.IsActive,
		"updated_at":    user.UpdatedAt,
	})
	if result.Error != nil {
		r.logger.Error(ctx, "Failed to update user", result.Error, logger.Uint("user_id", user.ID))
		return translateError(result.Error, "user", user.ID)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "user", user.ID)
	}
	return nil
}

// FindByID loads a user with its roles.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var m userDBM
	if err := r.db.WithContext(ctx).Preload("Roles").First(&m, id).Error; err != nil {
		return nil, translateError(err, "user", id)
	}
	return m.toDomain(), nil
}

// FindByEmail loads a user by normalized email.
func (r *UserRepository) FindByEmail(ctx context.Context, email models.Email) (*models.User, error) {
	var m userDBM
	err := r.db.WithContext(ctx).Preload("Roles").Where("email = ?", string(email)).First(&m).Error
	if err != nil {
		return nil, translateError(err, "user", email)
	}
	return m.toDomain(), nil
}

// List returns one page of users ordered by ID, plus the total count.
func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&userDBM{}).Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "user", "list")
	}

	var rows []userDBM
	err := r.db.WithContext(ctx).Preload("Roles").Order("id").Offset(offset).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, 0, translateError(err, "user", "list")
	}
	users := make([]*models.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toDomain())
	}
	return users, total, nil
}

// ReplaceRoles overwrites the user's role set inside one transaction.
func (r *UserRepository) ReplaceRoles(ctx context.Context, userID uint, roles []models.RoleName) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m userDBM
		if err := tx.First(&m, userID).Error; err != nil {
			return translateError(err, "user", userID)
		}
		rows, err := lookupRoles(tx, roles)
		if err != nil {
			return err
		}
		assoc := tx.Model(&m).Association("Roles")
		if len(rows) == 0 {
			err = assoc.Clear()
		} else {
			err = assoc.Replace(rows)
		}
		if err != nil {
			r.logger.Error(ctx, "Failed to replace roles", err, logger.Uint("user_id", userID))
			return translateError(err, "user_roles", userID)
		}
		r.logger.Info(ctx, "User roles replaced", logger.Uint("user_id", userID), logger.Int("roles", len(rows)))
		return nil
	})
}

func lookupRoles(tx *gorm.DB, names []models.RoleName) ([]roleDBM, error) {
	if len(names) == 0 {
		return nil, nil
	}
	raw := make([]string, 0, len(names))
	for _, n := range names {
		raw = append(raw, string(n))
	}
	var roles []roleDBM
	if err := tx.Where("name IN ?", raw).Find(&roles).Error; err != nil {
		return nil, translateError(err, "role", raw)
	}
	if len(roles) != len(raw) {
		return nil, translateError(gorm.ErrRecordNotFound, "role", fmt.Sprint(raw))
	}
	return roles, nil
}
