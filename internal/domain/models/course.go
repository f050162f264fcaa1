package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/acadmin/pkg/errors"
)

// Subject is an entry of the course catalogue.
type Subject struct {
	ID          uint        `json:"id"`
	Code        SubjectCode `json:"code"`
	Name        string      `json:"name"`
	Credits     Credits     `json:"credits"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Group is one teaching instance of a subject in a period.
type Group struct {
	ID        uint      `json:"id"`
	SubjectID uint      `json:"subject_id"`
	Name      string    `json:"name"`
	Period    string    `json:"period"`
	TeacherID *uint     `json:"teacher_id,omitempty"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// NewGroup validates and builds a group.
func NewGroup(subjectID uint, name, period string, teacherID *uint, capacity int) (*Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.ErrInvalidRequest("group name is required")
	}
	if capacity <= 0 {
		return nil, errors.ErrInvalidRequest(fmt.Sprintf("group capacity must be positive, got %d", capacity))
	}
	return &Group{
		SubjectID: subjectID,
		Name:      strings.TrimSpace(name),
		Period:    strings.TrimSpace(period),
		TeacherID: teacherID,
		Capacity:  capacity,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EnrollmentStatus is the state of a student's membership in a group.
type EnrollmentStatus string

const (
	EnrollmentActive  EnrollmentStatus = "ACTIVE"
	EnrollmentDropped EnrollmentStatus = "DROPPED"
)

// Enrollment links a student to a group.
type Enrollment struct {
	ID         uint             `json:"id"`
	StudentID  uint             `json:"student_id"`
	GroupID    uint             `json:"group_id"`
	Status     EnrollmentStatus `json:"status"`
	EnrolledAt time.Time        `json:"enrolled_at"`
}

// Drop ends an active enrollment.
func (e *Enrollment) Drop() error {
	if e.Status == EnrollmentDropped {
		return errors.ErrConflict(fmt.Sprintf("enrollment %d is already dropped", e.ID))
	}
	e.Status = EnrollmentDropped
	return nil
}
