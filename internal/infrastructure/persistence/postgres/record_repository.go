package postgres

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/repository"
	"github.com/turtacn/acadmin/pkg/logger"
)

var (
	_ repository.AttendanceRepository = (*AttendanceRepository)(nil)
	_ repository.GradeRepository      = (*GradeRepository)(nil)
	_ repository.SubmissionRepository = (*SubmissionRepository)(nil)
)

// neutralMetric is reported for rates and averages with no underlying records.
const neutralMetric = 100.0

// AttendanceRepository stores attendance records.
type AttendanceRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewAttendanceRepository(db *gorm.DB, log logger.Logger) *AttendanceRepository {
	return &AttendanceRepository{db: db, logger: log.WithComponent("attendance_repository")}
}

func (r *AttendanceRepository) Record(ctx context.Context, record *models.AttendanceRecord) error {
	m := &attendanceDBM{
		StudentID:   record.StudentID,
		GroupID:     record.GroupID,
		SessionDate: record.SessionDate,
		Present:     record.Present,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error(ctx, "Failed to record attendance", err, logger.Uint("student_id", record.StudentID))
		return translateError(err, "attendance", record.StudentID)
	}
	record.ID = m.ID
	return nil
}

// AttendanceRate returns present sessions over all sessions, as a percentage.
func (r *AttendanceRepository) AttendanceRate(ctx context.Context, studentID, groupID uint) (float64, error) {
	scope := r.db.WithContext(ctx).Model(&attendanceDBM{}).
		Where("student_id = ? AND group_id = ?", studentID, groupID)

	var total int64
	if err := scope.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, translateError(err, "attendance", studentID)
	}
	if total == 0 {
		return neutralMetric, nil
	}
	var present int64
	if err := scope.Session(&gorm.Session{}).Where("present = ?", true).Count(&present).Error; err != nil {
		return 0, translateError(err, "attendance", studentID)
	}
	return float64(present) * 100 / float64(total), nil
}

// GradeRepository stores grades.
type GradeRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewGradeRepository(db *gorm.DB, log logger.Logger) *GradeRepository {
	return &GradeRepository{db: db, logger: log.WithComponent("grade_repository")}
}

func (r *GradeRepository) Record(ctx context.Context, record *models.GradeRecord) error {
	m := &gradeDBM{
		StudentID: record.StudentID,
		GroupID:   record.GroupID,
		Title:     record.Title,
		Score:     record.Score,
		GradedAt:  record.GradedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error(ctx, "Failed to record grade", err, logger.Uint("student_id", record.StudentID))
		return translateError(err, "grade", record.StudentID)
	}
	record.ID = m.ID
	return nil
}

func (r *GradeRepository) AverageGrade(ctx context.Context, studentID, groupID uint) (float64, error) {
	var avg sql.NullFloat64
	row := r.db.WithContext(ctx).Model(&gradeDBM{}).
		Select("AVG(score)").
		Where("student_id = ? AND group_id = ?", studentID, groupID).
		Row()
	if err := row.Scan(&avg); err != nil {
		return 0, translateError(err, "grade", studentID)
	}
	if !avg.Valid {
		return neutralMetric, nil
	}
	return avg.Float64, nil
}

// SubmissionRepository stores assignment submissions.
type SubmissionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewSubmissionRepository(db *gorm.DB, log logger.Logger) *SubmissionRepository {
	return &SubmissionRepository{db: db, logger: log.WithComponent("submission_repository")}
}

func (r *SubmissionRepository) Record(ctx context.Context, submission *models.AssignmentSubmission) error {
	m := &submissionDBM{
		StudentID:       submission.StudentID,
		GroupID:         submission.GroupID,
		AssignmentTitle: submission.AssignmentTitle,
		DueAt:           submission.DueAt,
		SubmittedAt:     submission.SubmittedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error(ctx, "Failed to record submission", err, logger.Uint("student_id", submission.StudentID))
		return translateError(err, "submission", submission.StudentID)
	}
	submission.ID = m.ID
	return nil
}

func (r *SubmissionRepository) CountMissed(ctx context.Context, studentID, groupID uint, now time.Time) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&submissionDBM{}).
		Where("student_id = ? AND group_id = ? AND submitted_at IS NULL AND due_at < ?", studentID, groupID, now.UTC()).
		Count(&n).Error
	if err != nil {
		return 0, translateError(err, "submission", studentID)
	}
	return int(n), nil
}
