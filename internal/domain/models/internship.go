package models

import (
	"fmt"
	"time"

	"github.com/turtacn/acadmin/pkg/errors"
)

// Internship is an offer published by a company.
type Internship struct {
	ID          uint      `json:"id"`
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Slots       int       `json:"slots"`
	Deadline    time.Time `json:"deadline"`
	IsOpen      bool      `json:"is_open"`
	CreatedAt   time.Time `json:"created_at"`
}

// AcceptsApplications reports whether students may still apply at now.
func (i *Internship) AcceptsApplications(now time.Time) bool {
	return i.IsOpen && now.Before(i.Deadline)
}

// ApplicationStatus is the decision state of an internship application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// InternshipApplication is a student's application to an internship.
type InternshipApplication struct {
	ID           uint              `json:"id"`
	InternshipID uint              `json:"internship_id"`
	StudentID    uint              `json:"student_id"`
	Status       ApplicationStatus `json:"status"`
	Note         string            `json:"note,omitempty"`
	AppliedAt    time.Time         `json:"applied_at"`
	DecidedAt    *time.Time        `json:"decided_at,omitempty"`
}

// NewInternshipApplication creates a pending application.
func NewInternshipApplication(internshipID, studentID uint) *InternshipApplication {
	return &InternshipApplication{
		InternshipID: internshipID,
		StudentID:    studentID,
		Status:       ApplicationPending,
		AppliedAt:    time.Now().UTC(),
	}
}

// Approve accepts a pending application.
func (a *InternshipApplication) Approve(note string) error {
	return a.decide(ApplicationApproved, note)
}

// Reject declines a pending application.
func (a *InternshipApplication) Reject(note string) error {
	return a.decide(ApplicationRejected, note)
}

func (a *InternshipApplication) decide(to ApplicationStatus, note string) error {
	if a.Status != ApplicationPending {
		return errors.ErrConflict(fmt.Sprintf("application %d is already %s", a.ID, a.Status))
	}
	now := time.Now().UTC()
	a.Status = to
	a.Note = note
	a.DecidedAt = &now
	return nil
}
