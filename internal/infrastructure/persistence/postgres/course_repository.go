package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/repository"
	"github.com/turtacn/acadmin/pkg/logger"
)

var (
	_ repository.SubjectRepository    = (*SubjectRepository)(nil)
	_ repository.GroupRepository      = (*GroupRepository)(nil)
	_ repository.EnrollmentRepository = (*EnrollmentRepository)(nil)
)

// SubjectRepository stores the subject catalogue.
type SubjectRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewSubjectRepository(db *gorm.DB, log logger.Logger) *SubjectRepository {
	return &SubjectRepository{db: db, logger: log.WithComponent("subject_repository")}
}

func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	m := subjectFromDomain(subject)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error(ctx, "Failed to create subject", err, logger.String("code", string(subject.Code)))
		return translateError(err, "subject", subject.Code)
	}
	subject.ID = m.ID
	return nil
}

func (r *SubjectRepository) FindByID(ctx context.Context, id uint) (*models.Subject, error) {
	var m subjectDBM
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err, "subject", id)
	}
	return m.toDomain(), nil
}

func (r *SubjectRepository) FindByCode(ctx context.Context, code models.SubjectCode) (*models.Subject, error) {
	var m subjectDBM
	if err := r.db.WithContext(ctx).Where("code = ?", string(code)).First(&m).Error; err != nil {
		return nil, translateError(err, "subject", code)
	}
	return m.toDomain(), nil
}

func (r *SubjectRepository) List(ctx context.Context, offset, limit int) ([]*models.Subject, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&subjectDBM{}).Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "subject", "list")
	}
	var rows []subjectDBM
	if err := r.db.WithContext(ctx).Order("code").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, translateError(err, "subject", "list")
	}
	out := make([]*models.Subject, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, total, nil
}

// GroupRepository stores groups.
type GroupRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewGroupRepository(db *gorm.DB, log logger.Logger) *GroupRepository {
	return &GroupRepository{db: db, logger: log.WithComponent("group_repository")}
}

func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	m := &groupDBM{
		SubjectID: group.SubjectID,
		Name:      group.Name,
		Period:    group.Period,
		TeacherID: group.TeacherID,
		Capacity:  group.Capacity,
		CreatedAt: group.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error(ctx, "Failed to create group", err, logger.Uint("subject_id", group.SubjectID))
		return translateError(err, "group", group.Name)
	}
	group.ID = m.ID
	return nil
}

func (r *GroupRepository) FindByID(ctx context.Context, id uint) (*models.Group, error) {
	var m groupDBM
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err, "group", id)
	}
	return m.toDomain(), nil
}

// EnrollmentRepository stores enrollments. A student may hold several
// historical enrollments in a group but at most one ACTIVE one.
type EnrollmentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewEnrollmentRepository(db *gorm.DB, log logger.Logger) *EnrollmentRepository {
	return &EnrollmentRepository{db: db, logger: log.WithComponent("enrollment_repository")}
}

func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	m := &enrollmentDBM{
		StudentID:  enrollment.StudentID,
		GroupID:    enrollment.GroupID,
		Status:     string(enrollment.Status),
		EnrolledAt: enrollment.EnrolledAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error(ctx, "Failed to create enrollment", err,
			logger.Uint("student_id", enrollment.StudentID),
			logger.Uint("group_id", enrollment.GroupID),
		)
		return translateError(err, "enrollment", enrollment.StudentID)
	}
	enrollment.ID = m.ID
	return nil
}

func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	result := r.db.WithContext(ctx).Model(&enrollmentDBM{}).
		Where("id = ?", enrollment.ID).
		Update("status", string(enrollment.Status))
	if result.Error != nil {
		return translateError(result.Error, "enrollment", enrollment.ID)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "enrollment", enrollment.ID)
	}
	return nil
}

func (r *EnrollmentRepository) FindActive(ctx context.Context, studentID, groupID uint) (*models.Enrollment, error) {
	var m enrollmentDBM
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND group_id = ? AND status = ?", studentID, groupID, string(models.EnrollmentActive)).
		First(&m).Error
	if err != nil {
		return nil, translateError(err, "enrollment", studentID)
	}
	return m.toDomain(), nil
}

func (r *EnrollmentRepository) CountActive(ctx context.Context, groupID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&enrollmentDBM{}).
		Where("group_id = ? AND status = ?", groupID, string(models.EnrollmentActive)).
		Count(&n).Error
	if err != nil {
		return 0, translateError(err, "enrollment", groupID)
	}
	return n, nil
}

func (r *EnrollmentRepository) ListActiveStudentIDs(ctx context.Context, groupID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&enrollmentDBM{}).
		Where("group_id = ? AND status = ?", groupID, string(models.EnrollmentActive)).
		Order("student_id").
		Pluck("student_id", &ids).Error
	if err != nil {
		return nil, translateError(err, "enrollment", groupID)
	}
	return ids, nil
}
