package repository

import (
	"context"

	"github.com/turtacn/acadmin/internal/domain/models"
)

// RiskRepository persists risk assessments. Assessments are append-only.
//
//go:generate mockery --name RiskRepository --output ../repository/mocks --filename risk_repository.go
type RiskRepository interface {
	// Save appends an assessment and fills in its generated ID.
	Save(ctx context.Context, assessment *models.RiskAssessment) (*models.RiskAssessment, error)

	// GetLatest returns the most recent assessment of a student in a group.
	// If none exists, it returns (nil, nil) so callers can render a "no data" view.
	GetLatest(ctx context.Context, studentID, groupID uint) (*models.RiskAssessment, error)

	// GetHistory returns up to limit assessments of a student, newest first.
	GetHistory(ctx context.Context, studentID uint, limit int) ([]*models.RiskAssessment, error)

	// GetAtRisk returns the latest assessment of every student in the group whose
	// level is minLevel or more severe.
	GetAtRisk(ctx context.Context, groupID uint, minLevel models.RiskLevel) ([]*models.RiskAssessment, error)
}
