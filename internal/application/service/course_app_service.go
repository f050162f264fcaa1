package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/repository"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
	"github.com/turtacn/acadmin/pkg/utils"
)

// CourseAppService defines the course planning and enrollment use cases.
type CourseAppService interface {
	CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	ListSubjects(ctx context.Context, page, pageSize int) (*dto.PagedList[*dto.SubjectResponse], error)
	CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	Enroll(ctx context.Context, groupID, studentID uint) (*dto.EnrollmentResponse, error)
	Drop(ctx context.Context, groupID, studentID uint) error
	ListGroupStudents(ctx context.Context, groupID uint) ([]*dto.UserResponse, error)
}

type courseAppServiceImpl struct {
	subjects    repository.SubjectRepository
	groups      repository.GroupRepository
	enrollments repository.EnrollmentRepository
	users       repository.UserRepository
	logger      logger.Logger
}

// NewCourseAppService creates a new instance of CourseAppService.
func NewCourseAppService(
	subjects repository.SubjectRepository,
	groups repository.GroupRepository,
	enrollments repository.EnrollmentRepository,
	users repository.UserRepository,
	log logger.Logger,
) CourseAppService {
	return &courseAppServiceImpl{
		subjects:    subjects,
		groups:      groups,
		enrollments: enrollments,
		users:       users,
		logger:      log.WithComponent("course_app_service"),
	}
}

func (s *courseAppServiceImpl) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	code, err := models.NewSubjectCode(req.Code)
	if err != nil {
		return nil, err
	}
	credits, err := models.NewCredits(req.Credits)
	if err != nil {
		return nil, err
	}

	existing, err := s.subjects.FindByCode(ctx, code)
	if err != nil && !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, "failed to look up subject")
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf("subject %s already exists", code))
	}

	subject := &models.Subject{
		Code:        code,
		Name:        strings.TrimSpace(req.Name),
		Credits:     credits,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, errors.Wrap(err, "failed to create subject")
	}
	s.logger.Info(ctx, "Subject created", logger.Uint("subject_id", subject.ID), logger.String("code", code.String()))
	return dto.NewSubjectResponse(subject), nil
}

func (s *courseAppServiceImpl) ListSubjects(ctx context.Context, page, pageSize int) (*dto.PagedList[*dto.SubjectResponse], error) {
	page, limit, offset := utils.NormalizePage(page, pageSize)
	subjects, total, err := s.subjects.List(ctx, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subjects")
	}
	items := make([]*dto.SubjectResponse, 0, len(subjects))
	for _, sub := range subjects {
		items = append(items, dto.NewSubjectResponse(sub))
	}
	return dto.NewPagedList(items, page, limit, total), nil
}

func (s *courseAppServiceImpl) CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	if _, err := s.subjects.FindByID(ctx, req.SubjectID); err != nil {
		return nil, err
	}
	if req.TeacherID != nil {
		teacher, err := s.users.FindByID(ctx, *req.TeacherID)
		if err != nil {
			return nil, err
		}
		if !teacher.HasRole(models.RoleTeacher) {
			return nil, errors.ErrInvalidRequest(fmt.Sprintf("user %d is not a teacher", teacher.ID))
		}
	}

	group, err := models.NewGroup(req.SubjectID, req.Name, req.Period, req.TeacherID, req.Capacity)
	if err != nil {
		return nil, err
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, errors.Wrap(err, "failed to create group")
	}
	s.logger.Info(ctx, "Group created", logger.Uint("group_id", group.ID), logger.Uint("subject_id", group.SubjectID))
	return dto.NewGroupResponse(group), nil
}

func (s *courseAppServiceImpl) Enroll(ctx context.Context, groupID, studentID uint) (*dto.EnrollmentResponse, error) {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	student, err := s.users.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !student.HasRole(models.RoleStudent) {
		return nil, errors.ErrInvalidRequest(fmt.Sprintf("user %d is not a student", studentID))
	}
	if !student.IsActive {
		return nil, errors.ErrInvalidRequest(fmt.Sprintf("user %d is deactivated", studentID))
	}

	if _, err := s.enrollments.FindActive(ctx, studentID, groupID); err == nil {
		return nil, errors.ErrConflict(fmt.Sprintf("student %d is already enrolled in group %d", studentID, groupID))
	} else if !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, "failed to check enrollment")
	}

	count, err := s.enrollments.CountActive(ctx, groupID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count enrollments")
	}
	if count >= int64(group.Capacity) {
		return nil, errors.ErrConflict(fmt.Sprintf("group %d is full", groupID))
	}

	enrollment := &models.Enrollment{
		StudentID:  studentID,
		GroupID:    groupID,
		Status:     models.EnrollmentActive,
		EnrolledAt: time.Now().UTC(),
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, errors.Wrap(err, "failed to enroll student")
	}
	s.logger.Info(ctx, "Student enrolled", logger.Uint("student_id", studentID), logger.Uint("group_id", groupID))
	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *courseAppServiceImpl) Drop(ctx context.Context, groupID, studentID uint) error {
	enrollment, err := s.enrollments.FindActive(ctx, studentID, groupID)
	if err != nil {
		return err
	}
	if err := enrollment.Drop(); err != nil {
		return err
	}
	if err := s.enrollments.Update(ctx, enrollment); err != nil {
		return errors.Wrap(err, "failed to drop enrollment")
	}
	s.logger.Info(ctx, "Student dropped", logger.Uint("student_id", studentID), logger.Uint("group_id", groupID))
	return nil
}

func (s *courseAppServiceImpl) ListGroupStudents(ctx context.Context, groupID uint) ([]*dto.UserResponse, error) {
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		return nil, err
	}
	ids, err := s.enrollments.ListActiveStudentIDs(ctx, groupID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list enrollments")
	}
	out := make([]*dto.UserResponse, 0, len(ids))
	for _, id := range ids {
		u, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.NewUserResponse(u))
	}
	return out, nil
}
