package dto

import (
	"time"

	"github.com/turtacn/acadmin/internal/domain/models"
)

// CreateSubjectRequest adds a subject to the catalogue.
type CreateSubjectRequest struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required,max=200"`
	Credits     int    `json:"credits" validate:"required"`
	Description string `json:"description,omitempty"`
}

// SubjectResponse is the public view of a subject.
type SubjectResponse struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Credits     int    `json:"credits"`
	Description string `json:"description,omitempty"`
}

// NewSubjectResponse maps a subject.
func NewSubjectResponse(s *models.Subject) *SubjectResponse {
	return &SubjectResponse{
		ID:          s.ID,
		Code:        s.Code.String(),
		Name:        s.Name,
		Credits:     int(s.Credits),
		Description: s.Description,
	}
}

// CreateGroupRequest opens a group for a subject.
type CreateGroupRequest struct {
	SubjectID uint   `json:"subject_id" validate:"required"`
	Name      string `json:"name" validate:"required,max=100"`
	Period    string `json:"period" validate:"required,max=20"`
	TeacherID *uint  `json:"teacher_id,omitempty"`
	Capacity  int    `json:"capacity" validate:"required,min=1"`
}

// GroupResponse is the public view of a group.
type GroupResponse struct {
	ID        uint   `json:"id"`
	SubjectID uint   `json:"subject_id"`
	Name      string `json:"name"`
	Period    string `json:"period"`
	TeacherID *uint  `json:"teacher_id,omitempty"`
	Capacity  int    `json:"capacity"`
}

// NewGroupResponse maps a group.
func NewGroupResponse(g *models.Group) *GroupResponse {
	return &GroupResponse{
		ID:        g.ID,
		SubjectID: g.SubjectID,
		Name:      g.Name,
		Period:    g.Period,
		TeacherID: g.TeacherID,
		Capacity:  g.Capacity,
	}
}

// EnrollRequest enrolls a student into a group.
type EnrollRequest struct {
	StudentID uint `json:"student_id" validate:"required"`
}

// EnrollmentResponse is the public view of an enrollment.
type EnrollmentResponse struct {
	ID         uint      `json:"id"`
	StudentID  uint      `json:"student_id"`
	GroupID    uint      `json:"group_id"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// NewEnrollmentResponse maps an enrollment.
func NewEnrollmentResponse(e *models.Enrollment) *EnrollmentResponse {
	return &EnrollmentResponse{
		ID:         e.ID,
		StudentID:  e.StudentID,
		GroupID:    e.GroupID,
		Status:     string(e.Status),
		EnrolledAt: e.EnrolledAt,
	}
}
