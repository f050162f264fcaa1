package repository

import (
	"context"

	"github.com/turtacn/acadmin/internal/domain/models"
)

// SubjectRepository persists the course catalogue.
type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	FindByID(ctx context.Context, id uint) (*models.Subject, error)
	FindByCode(ctx context.Context, code models.SubjectCode) (*models.Subject, error)
	List(ctx context.Context, offset, limit int) ([]*models.Subject, int64, error)
}

// GroupRepository persists groups.
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	FindByID(ctx context.Context, id uint) (*models.Group, error)
}

// EnrollmentRepository persists enrollments.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Update(ctx context.Context, enrollment *models.Enrollment) error
	// FindActive returns the active enrollment of a student in a group, or a not_found error.
	FindActive(ctx context.Context, studentID, groupID uint) (*models.Enrollment, error)
	CountActive(ctx context.Context, groupID uint) (int64, error)
	ListActiveStudentIDs(ctx context.Context, groupID uint) ([]uint, error)
}
