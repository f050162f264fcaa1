package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/repository"
	"github.com/turtacn/acadmin/internal/domain/service"
	"github.com/turtacn/acadmin/pkg/constants"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

// InternshipAppService defines the internship tracking use cases.
type InternshipAppService interface {
	CreateInternship(ctx context.Context, req *dto.CreateInternshipRequest) (*dto.InternshipResponse, error)
	Apply(ctx context.Context, internshipID, studentID uint) (*dto.ApplicationResponse, error)
	Approve(ctx context.Context, applicationID uint, note string) (*dto.ApplicationResponse, error)
	Reject(ctx context.Context, applicationID uint, note string) (*dto.ApplicationResponse, error)
	ListApplications(ctx context.Context, internshipID uint) ([]*dto.ApplicationResponse, error)
}

type internshipAppServiceImpl struct {
	internships repository.InternshipRepository
	users       repository.UserRepository
	publisher   service.EventPublisher
	now         func() time.Time
	logger      logger.Logger
}

// NewInternshipAppService creates a new instance of InternshipAppService.
func NewInternshipAppService(
	internships repository.InternshipRepository,
	users repository.UserRepository,
	publisher service.EventPublisher,
	log logger.Logger,
) InternshipAppService {
	return &internshipAppServiceImpl{
		internships: internships,
		users:       users,
		publisher:   publisher,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      log.WithComponent("internship_app_service"),
	}
}

func (s *internshipAppServiceImpl) CreateInternship(ctx context.Context, req *dto.CreateInternshipRequest) (*dto.InternshipResponse, error) {
	if req.Slots <= 0 {
		return nil, errors.ErrInvalidRequest("slots must be positive")
	}
	now := s.now()
	if !req.Deadline.After(now) {
		return nil, errors.ErrInvalidRequest("deadline must be in the future")
	}
	internship := &models.Internship{
		Company:     strings.TrimSpace(req.Company),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Slots:       req.Slots,
		Deadline:    req.Deadline.UTC(),
		IsOpen:      true,
		CreatedAt:   now,
	}
	if err := s.internships.Create(ctx, internship); err != nil {
		return nil, errors.Wrap(err, "failed to create internship")
	}
	s.logger.Info(ctx, "Internship created", logger.Uint("internship_id", internship.ID), logger.String("company", internship.Company))
	return dto.NewInternshipResponse(internship), nil
}

func (s *internshipAppServiceImpl) Apply(ctx context.Context, internshipID, studentID uint) (*dto.ApplicationResponse, error) {
	internship, err := s.internships.FindByID(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	if !internship.AcceptsApplications(s.now()) {
		return nil, errors.ErrConflict(fmt.Sprintf("internship %d is closed for applications", internshipID))
	}

	student, err := s.users.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !student.HasRole(models.RoleStudent) {
		return nil, errors.ErrForbidden("only students can apply to internships")
	}

	existing, err := s.internships.FindApplicationByStudent(ctx, internshipID, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check existing application")
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf("student %d already applied to internship %d", studentID, internshipID))
	}

	application := models.NewInternshipApplication(internshipID, studentID)
	if err := s.internships.CreateApplication(ctx, application); err != nil {
		return nil, errors.Wrap(err, "failed to create application")
	}
	s.logger.Info(ctx, "Internship application submitted",
		logger.Uint("application_id", application.ID), logger.Uint("student_id", studentID))
	return dto.NewApplicationResponse(application), nil
}

func (s *internshipAppServiceImpl) Approve(ctx context.Context, applicationID uint, note string) (*dto.ApplicationResponse, error) {
	return s.decide(ctx, applicationID, func(internship *models.Internship, application *models.InternshipApplication, approved int64) error {
		if err := application.Approve(note); err != nil {
			return err
		}
		if approved >= int64(internship.Slots) {
			return errors.ErrConflict(fmt.Sprintf("internship %d has no free slots", internship.ID))
		}
		return nil
	})
}

func (s *internshipAppServiceImpl) Reject(ctx context.Context, applicationID uint, note string) (*dto.ApplicationResponse, error) {
	return s.decide(ctx, applicationID, func(_ *models.Internship, application *models.InternshipApplication, _ int64) error {
		return application.Reject(note)
	})
}

// decide applies the decision under the repository's internship lock, so the
// slot count cannot change between the check and the update.
func (s *internshipAppServiceImpl) decide(ctx context.Context, applicationID uint, decision repository.ApplicationDecision) (*dto.ApplicationResponse, error) {
	application, err := s.internships.DecideApplication(ctx, applicationID, decision)
	if err != nil {
		return nil, errors.Wrap(err, "failed to save decision")
	}
	resp := dto.NewApplicationResponse(application)
	if s.publisher != nil {
		event := models.NewDomainEvent(constants.EventApplicationDecided, strconv.FormatUint(uint64(application.ID), 10), resp)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn(ctx, "Failed to publish application decision", logger.String("error", err.Error()))
		}
	}
	s.logger.Info(ctx, "Application decided",
		logger.Uint("application_id", application.ID), logger.String("status", string(application.Status)))
	return resp, nil
}

func (s *internshipAppServiceImpl) ListApplications(ctx context.Context, internshipID uint) ([]*dto.ApplicationResponse, error) {
	if _, err := s.internships.FindByID(ctx, internshipID); err != nil {
		return nil, err
	}
	applications, err := s.internships.ListApplications(ctx, internshipID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}
	out := make([]*dto.ApplicationResponse, 0, len(applications))
	for _, a := range applications {
		out = append(out, dto.NewApplicationResponse(a))
	}
	return out, nil
}
