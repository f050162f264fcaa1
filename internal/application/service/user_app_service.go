package service

import (
	"context"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/repository"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
	"github.com/turtacn/acadmin/pkg/utils"
)

// UserAppService defines the account administration use cases.
type UserAppService interface {
	GetUser(ctx context.Context, id uint) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, page, pageSize int) (*dto.PagedList[*dto.UserResponse], error)
	AssignRole(ctx context.Context, id uint, role models.RoleName) (*dto.UserResponse, error)
	RemoveRole(ctx context.Context, id uint, role models.RoleName) (*dto.UserResponse, error)
	Activate(ctx context.Context, id uint) (*dto.UserResponse, error)
	Deactivate(ctx context.Context, id uint) (*dto.UserResponse, error)
}

type userAppServiceImpl struct {
	users  repository.UserRepository
	logger logger.Logger
}

// NewUserAppService creates a new instance of UserAppService.
func NewUserAppService(users repository.UserRepository, log logger.Logger) UserAppService {
	return &userAppServiceImpl{users: users, logger: log.WithComponent("user_app_service")}
}

func (s *userAppServiceImpl) GetUser(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *userAppServiceImpl) ListUsers(ctx context.Context, page, pageSize int) (*dto.PagedList[*dto.UserResponse], error) {
	page, limit, offset := utils.NormalizePage(page, pageSize)
	users, total, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	items := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.NewUserResponse(u))
	}
	return dto.NewPagedList(items, page, limit, total), nil
}

func (s *userAppServiceImpl) AssignRole(ctx context.Context, id uint, role models.RoleName) (*dto.UserResponse, error) {
	return s.changeRoles(ctx, id, func(u *models.User) error { return u.AssignRole(role) }, "Role assigned", role)
}

func (s *userAppServiceImpl) RemoveRole(ctx context.Context, id uint, role models.RoleName) (*dto.UserResponse, error) {
	return s.changeRoles(ctx, id, func(u *models.User) error { return u.RemoveRole(role) }, "Role removed", role)
}

func (s *userAppServiceImpl) changeRoles(ctx context.Context, id uint, mutate func(*models.User) error, msg string, role models.RoleName) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(user); err != nil {
		return nil, err
	}
	if err := s.users.ReplaceRoles(ctx, user.ID, user.Roles); err != nil {
		s.logger.Error(ctx, "Failed to update roles", err, logger.Uint("user_id", id))
		return nil, errors.Wrap(err, "failed to update roles")
	}
	s.logger.Info(ctx, msg, logger.Uint("user_id", id), logger.String("role", string(role)))
	return dto.NewUserResponse(user), nil
}

func (s *userAppServiceImpl) Activate(ctx context.Context, id uint) (*dto.UserResponse, error) {
	return s.setActive(ctx, id, true)
}

func (s *userAppServiceImpl) Deactivate(ctx context.Context, id uint) (*dto.UserResponse, error) {
	return s.setActive(ctx, id, false)
}

func (s *userAppServiceImpl) setActive(ctx context.Context, id uint, active bool) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if active {
		user.Activate()
	} else {
		user.Deactivate()
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}
	s.logger.Info(ctx, "User status changed", logger.Uint("user_id", id), logger.Bool("active", active))
	return dto.NewUserResponse(user), nil
}
