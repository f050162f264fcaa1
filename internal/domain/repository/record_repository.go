package repository

import (
	"context"
	"time"

	"github.com/turtacn/acadmin/internal/domain/models"
)

// AttendanceRepository stores attendance and answers the attendance rate.
type AttendanceRepository interface {
	Record(ctx context.Context, record *models.AttendanceRecord) error
	// AttendanceRate is the percentage of sessions attended, 100 when there are none.
	AttendanceRate(ctx context.Context, studentID, groupID uint) (float64, error)
}

// GradeRepository stores grades and answers the average grade.
type GradeRepository interface {
	Record(ctx context.Context, record *models.GradeRecord) error
	// AverageGrade is the mean score, 100 when there are no grades.
	AverageGrade(ctx context.Context, studentID, groupID uint) (float64, error)
}

// SubmissionRepository stores assignment submissions.
type SubmissionRepository interface {
	Record(ctx context.Context, submission *models.AssignmentSubmission) error
	// CountMissed counts assignments due before now that were never submitted.
	CountMissed(ctx context.Context, studentID, groupID uint, now time.Time) (int, error)
}
