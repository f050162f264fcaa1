package repository

import (
	"context"

	"github.com/turtacn/acadmin/internal/domain/models"
)

// InternshipRepository persists internships and their applications.
type InternshipRepository interface {
	Create(ctx context.Context, internship *models.Internship) error
	FindByID(ctx context.Context, id uint) (*models.Internship, error)

	CreateApplication(ctx context.Context, application *models.InternshipApplication) error
	// DecideApplication loads the application and its internship with the
	// internship row locked, lets decide mutate the application and stores it.
	// Decisions on the same internship are serialized.
	DecideApplication(ctx context.Context, applicationID uint, decide ApplicationDecision) (*models.InternshipApplication, error)
	FindApplication(ctx context.Context, id uint) (*models.InternshipApplication, error)
	// FindApplicationByStudent returns (nil, nil) when the student has not applied.
	FindApplicationByStudent(ctx context.Context, internshipID, studentID uint) (*models.InternshipApplication, error)
	ListApplications(ctx context.Context, internshipID uint) ([]*models.InternshipApplication, error)
}

// ApplicationDecision changes a pending application. approved is the number of
// applications of the internship already approved.
type ApplicationDecision func(internship *models.Internship, application *models.InternshipApplication, approved int64) error
