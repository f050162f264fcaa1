package dto

import "time"

// RecordAttendanceRequest marks presence for one session.
type RecordAttendanceRequest struct {
	StudentID   uint      `json:"student_id" validate:"required"`
	GroupID     uint      `json:"group_id" validate:"required"`
	SessionDate time.Time `json:"session_date" validate:"required"`
	Present     bool      `json:"present"`
}

// RecordGradeRequest stores one graded item.
type RecordGradeRequest struct {
	StudentID uint    `json:"student_id" validate:"required"`
	GroupID   uint    `json:"group_id" validate:"required"`
	Title     string  `json:"title" validate:"required,max=200"`
	Score     float64 `json:"score" validate:"gte=0,lte=100"`
}

// RecordSubmissionRequest registers an assignment and, optionally, its hand-in time.
type RecordSubmissionRequest struct {
	StudentID       uint       `json:"student_id" validate:"required"`
	GroupID         uint       `json:"group_id" validate:"required"`
	AssignmentTitle string     `json:"assignment_title" validate:"required,max=200"`
	DueAt           time.Time  `json:"due_at" validate:"required"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
}

// RecordResponse acknowledges a stored record.
type RecordResponse struct {
	ID uint `json:"id"`
}
