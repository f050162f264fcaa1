package dto

import (
	"time"

	"github.com/turtacn/acadmin/internal/domain/models"
)

// CreateInternshipRequest publishes an internship offer.
type CreateInternshipRequest struct {
	Company     string    `json:"company" validate:"required,max=200"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description,omitempty"`
	Slots       int       `json:"slots" validate:"required,min=1"`
	Deadline    time.Time `json:"deadline" validate:"required"`
}

// InternshipResponse is the public view of an internship.
type InternshipResponse struct {
	ID          uint      `json:"id"`
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Slots       int       `json:"slots"`
	Deadline    time.Time `json:"deadline"`
	IsOpen      bool      `json:"is_open"`
}

// NewInternshipResponse maps an internship.
func NewInternshipResponse(i *models.Internship) *InternshipResponse {
	return &InternshipResponse{
		ID:          i.ID,
		Company:     i.Company,
		Title:       i.Title,
		Description: i.Description,
		Slots:       i.Slots,
		Deadline:    i.Deadline,
		IsOpen:      i.IsOpen,
	}
}

// DecisionRequest carries an optional note for approve/reject.
type DecisionRequest struct {
	Note string `json:"note" validate:"max=1000"`
}

// ApplicationResponse is the public view of an application.
type ApplicationResponse struct {
	ID           uint       `json:"id"`
	InternshipID uint       `json:"internship_id"`
	StudentID    uint       `json:"student_id"`
	Status       string     `json:"status"`
	Note         string     `json:"note,omitempty"`
	AppliedAt    time.Time  `json:"applied_at"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
}

// NewApplicationResponse maps an application.
func NewApplicationResponse(a *models.InternshipApplication) *ApplicationResponse {
	return &ApplicationResponse{
		ID:           a.ID,
		InternshipID: a.InternshipID,
		StudentID:    a.StudentID,
		Status:       string(a.Status),
		Note:         a.Note,
		AppliedAt:    a.AppliedAt,
		DecidedAt:    a.DecidedAt,
	}
}
