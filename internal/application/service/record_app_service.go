package service

import (
	"context"
	"strings"
	"time"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/repository"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

// RecordAppService stores the academic records that feed risk assessments.
type RecordAppService interface {
	RecordAttendance(ctx context.Context, req *dto.RecordAttendanceRequest) (*dto.RecordResponse, error)
	RecordGrade(ctx context.Context, req *dto.RecordGradeRequest) (*dto.RecordResponse, error)
	RecordSubmission(ctx context.Context, req *dto.RecordSubmissionRequest) (*dto.RecordResponse, error)
}

type recordAppServiceImpl struct {
	enrollments repository.EnrollmentRepository
	attendance  repository.AttendanceRepository
	grades      repository.GradeRepository
	submissions repository.SubmissionRepository
	logger      logger.Logger
}

// NewRecordAppService creates a new instance of RecordAppService.
func NewRecordAppService(
	enrollments repository.EnrollmentRepository,
	attendance repository.AttendanceRepository,
	grades repository.GradeRepository,
	submissions repository.SubmissionRepository,
	log logger.Logger,
) RecordAppService {
	return &recordAppServiceImpl{
		enrollments: enrollments,
		attendance:  attendance,
		grades:      grades,
		submissions: submissions,
		logger:      log.WithComponent("record_app_service"),
	}
}

// requireEnrollment returns not_found unless the student is actively enrolled.
func (s *recordAppServiceImpl) requireEnrollment(ctx context.Context, studentID, groupID uint) error {
	_, err := s.enrollments.FindActive(ctx, studentID, groupID)
	return err
}

func (s *recordAppServiceImpl) RecordAttendance(ctx context.Context, req *dto.RecordAttendanceRequest) (*dto.RecordResponse, error) {
	if err := s.requireEnrollment(ctx, req.StudentID, req.GroupID); err != nil {
		return nil, err
	}
	record := &models.AttendanceRecord{
		StudentID:   req.StudentID,
		GroupID:     req.GroupID,
		SessionDate: req.SessionDate.UTC(),
		Present:     req.Present,
	}
	if err := s.attendance.Record(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to record attendance")
	}
	s.logger.Debug(ctx, "Attendance recorded", logger.Uint("student_id", req.StudentID), logger.Bool("present", req.Present))
	return &dto.RecordResponse{ID: record.ID}, nil
}

func (s *recordAppServiceImpl) RecordGrade(ctx context.Context, req *dto.RecordGradeRequest) (*dto.RecordResponse, error) {
	if req.Score < 0 || req.Score > 100 {
		return nil, errors.ErrInvalidRequest("score must be between 0 and 100")
	}
	if err := s.requireEnrollment(ctx, req.StudentID, req.GroupID); err != nil {
		return nil, err
	}
	record := &models.GradeRecord{
		StudentID: req.StudentID,
		GroupID:   req.GroupID,
		Title:     strings.TrimSpace(req.Title),
		Score:     req.Score,
		GradedAt:  time.Now().UTC(),
	}
	if err := s.grades.Record(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to record grade")
	}
	s.logger.Debug(ctx, "Grade recorded", logger.Uint("student_id", req.StudentID), logger.Float64("score", req.Score))
	return &dto.RecordResponse{ID: record.ID}, nil
}

func (s *recordAppServiceImpl) RecordSubmission(ctx context.Context, req *dto.RecordSubmissionRequest) (*dto.RecordResponse, error) {
	if err := s.requireEnrollment(ctx, req.StudentID, req.GroupID); err != nil {
		return nil, err
	}
	submission := &models.AssignmentSubmission{
		StudentID:       req.StudentID,
		GroupID:         req.GroupID,
		AssignmentTitle: strings.TrimSpace(req.AssignmentTitle),
		DueAt:           req.DueAt.UTC(),
	}
	if req.SubmittedAt != nil {
		t := req.SubmittedAt.UTC()
		submission.SubmittedAt = &t
	}
	if err := s.submissions.Record(ctx, submission); err != nil {
		return nil, errors.Wrap(err, "failed to record submission")
	}
	s.logger.Debug(ctx, "Submission recorded", logger.Uint("student_id", req.StudentID), logger.Bool("submitted", req.SubmittedAt != nil))
	return &dto.RecordResponse{ID: submission.ID}, nil
}
