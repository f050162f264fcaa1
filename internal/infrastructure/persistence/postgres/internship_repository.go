package postgres

import (
	"context"
	goerrors "errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/repository"
	"github.com/turtacn/acadmin/pkg/logger"
)

var _ repository.InternshipRepository = (*InternshipRepository)(nil)

// InternshipRepository stores internship offers and applications.
type InternshipRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewInternshipRepository(db *gorm.DB, log logger.Logger) *InternshipRepository {
	return &InternshipRepository{db: db, logger: log.WithComponent("internship_repository")}
}

func (r *InternshipRepository) Create(ctx context.Context, internship *models.Internship) error {
	m := &internshipDBM{
		Company:     internship.Company,
		Title:       internship.Title,
		Description: internship.Description,
		Slots:       internship.Slots,
		Deadline:    internship.Deadline,
		IsOpen:      internship.IsOpen,
		CreatedAt:   internship.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error(ctx, "Failed to create internship", err, logger.String("company", internship.Company))
		return translateError(err, "internship", internship.Title)
	}
	internship.ID = m.ID
	return nil
}

func (r *InternshipRepository) FindByID(ctx context.Context, id uint) (*models.Internship, error) {
	var m internshipDBM
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err, "internship", id)
	}
	return m.toDomain(), nil
}

func (r *InternshipRepository) CreateApplication(ctx context.Context, application *models.InternshipApplication) error {
	m := applicationFromDomain(application)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Warn(ctx, "Failed to create internship application",
			logger.Uint("internship_id", application.InternshipID),
			logger.Uint("student_id", application.StudentID),
			logger.String("error", err.Error()),
		)
		return translateError(err, "internship application", application.StudentID)
	}
	application.ID = m.ID
	return nil
}

func (r *InternshipRepository) DecideApplication(ctx context.Context, applicationID uint, decide repository.ApplicationDecision) (*models.InternshipApplication, error) {
	var decided *models.InternshipApplication
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app applicationDBM
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&app, applicationID).Error; err != nil {
			return translateError(err, "internship application", applicationID)
		}
		var internship internshipDBM
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&internship, app.InternshipID).Error; err != nil {
			return translateError(err, "internship", app.InternshipID)
		}
		var approved int64
		err := tx.Model(&applicationDBM{}).
			Where("internship_id = ? AND status = ?", app.InternshipID, string(models.ApplicationApproved)).
			Count(&approved).Error
		if err != nil {
			return translateError(err, "internship application", app.InternshipID)
		}

		application := app.toDomain()
		if err := decide(internship.toDomain(), application, approved); err != nil {
			return err
		}
		err = tx.Model(&applicationDBM{}).
			Where("id = ?", application.ID).
			Updates(map[string]interface{}{
				"status":     string(application.Status),
				"note":       application.Note,
				"decided_at": application.DecidedAt,
			}).Error
		if err != nil {
			return translateError(err, "internship application", application.ID)
		}
		decided = application
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}

func (r *InternshipRepository) FindApplication(ctx context.Context, id uint) (*models.InternshipApplication, error) {
	var m applicationDBM
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err, "internship application", id)
	}
	return m.toDomain(), nil
}

func (r *InternshipRepository) FindApplicationByStudent(ctx context.Context, internshipID, studentID uint) (*models.InternshipApplication, error) {
	var m applicationDBM
	err := r.db.WithContext(ctx).
		Where("internship_id = ? AND student_id = ?", internshipID, studentID).
		First(&m).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError(err, "internship application", studentID)
	}
	return m.toDomain(), nil
}

func (r *InternshipRepository) ListApplications(ctx context.Context, internshipID uint) ([]*models.InternshipApplication, error) {
	var rows []applicationDBM
	if err := r.db.WithContext(ctx).Where("internship_id = ?", internshipID).Order("applied_at, id").Find(&rows).Error; err != nil {
		return nil, translateError(err, "internship application", internshipID)
	}
	out := make([]*models.InternshipApplication, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}
