package models

import "time"

// AttendanceRecord marks a student's presence at one session of a group.
type AttendanceRecord struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	GroupID     uint      `json:"group_id"`
	SessionDate time.Time `json:"session_date"`
	Present     bool      `json:"present"`
}

// GradeRecord is a single graded item on a 0-100 scale.
type GradeRecord struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	GroupID   uint      `json:"group_id"`
	Title     string    `json:"title"`
	Score     float64   `json:"score"`
	GradedAt  time.Time `json:"graded_at"`
}

// AssignmentSubmission tracks one assignment for one student. A nil SubmittedAt
// means the assignment has not been handed in.
type AssignmentSubmission struct {
	ID              uint       `json:"id"`
	StudentID       uint       `json:"student_id"`
	GroupID         uint       `json:"group_id"`
	AssignmentTitle string     `json:"assignment_title"`
	DueAt           time.Time  `json:"due_at"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
}

// IsMissed reports whether the assignment is overdue at now and was never submitted.
func (s *AssignmentSubmission) IsMissed(now time.Time) bool {
	return s.SubmittedAt == nil && s.DueAt.Before(now)
}
