package postgres

import (
	"context"
	goerrors "errors"

	"gorm.io/gorm"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/repository"
	"github.com/turtacn/acadmin/pkg/logger"
)

var _ repository.RiskRepository = (*RiskRepository)(nil)

// RiskRepository is the append-only store of risk assessments.
type RiskRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewRiskRepository creates a new RiskRepository.
func NewRiskRepository(db *gorm.DB, log logger.Logger) *RiskRepository {
	return &RiskRepository{db: db, logger: log.WithComponent("risk_repository")}
}

// Save inserts a new assessment row. Existing rows are never updated.
func (r *RiskRepository) Save(ctx context.Context, assessment *models.RiskAssessment) (*models.RiskAssessment, error) {
	dbm := riskAssessmentFromDomain(assessment)
	dbm.ID = 0
	if err := r.db.WithContext(ctx).Create(dbm).Error; err != nil {
		r.logger.Error(ctx, "Failed to save risk assessment", err,
			logger.Uint("student_id", assessment.StudentID),
			logger.Uint("group_id", assessment.GroupID),
		)
		return nil, translateError(err, "risk assessment", assessment.StudentID)
	}
	return dbm.toDomain(), nil
}

// GetLatest returns nil, nil when the student has never been assessed in the group.
// The latest row is the one with the highest id, matching GetAtRisk.
func (r *RiskRepository) GetLatest(ctx context.Context, studentID, groupID uint) (*models.RiskAssessment, error) {
	var dbm riskAssessmentDBM
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND group_id = ?", studentID, groupID).
		Order("id DESC").
		First(&dbm).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError(err, "risk assessment", studentID)
	}
	return dbm.toDomain(), nil
}

func (r *RiskRepository) GetHistory(ctx context.Context, studentID uint, limit int) ([]*models.RiskAssessment, error) {
	var rows []riskAssessmentDBM
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "risk assessment", studentID)
	}
	return toAssessments(rows), nil
}

// GetAtRisk considers only each student's most recent assessment in the group,
// so a student who has since improved drops off the list. Results are ordered
// by score, most severe first.
func (r *RiskRepository) GetAtRisk(ctx context.Context, groupID uint, minLevel models.RiskLevel) ([]*models.RiskAssessment, error) {
	levels := make([]string, 0, 4)
	for _, l := range []models.RiskLevel{models.RiskLow, models.RiskMedium, models.RiskHigh, models.RiskCritical} {
		if l.AtLeast(minLevel) {
			levels = append(levels, string(l))
		}
	}

	latest := r.db.Model(&riskAssessmentDBM{}).
		Select("MAX(id)").
		Where("group_id = ?", groupID).
		Group("student_id")

	var rows []riskAssessmentDBM
	err := r.db.WithContext(ctx).
		Where("id IN (?)", latest).
		Where("risk_level IN ?", levels).
		Order("risk_score DESC, student_id").
		Find(&rows).Error
	if err != nil {
		r.logger.Error(ctx, "Failed to query at-risk students", err, logger.Uint("group_id", groupID))
		return nil, translateError(err, "risk assessment", groupID)
	}
	return toAssessments(rows), nil
}

func toAssessments(rows []riskAssessmentDBM) []*models.RiskAssessment {
	out := make([]*models.RiskAssessment, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out
}
