package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/repository"
)

// MockRiskRepository is a mock implementation of repository.RiskRepository
type MockRiskRepository struct {
	mock.Mock
}

func (m *MockRiskRepository) Save(ctx context.Context, a *models.RiskAssessment) (*models.RiskAssessment, error) {
	args := m.Called(ctx, a)
	if fn, ok := args.Get(0).(func(context.Context, *models.RiskAssessment) *models.RiskAssessment); ok {
		return fn(ctx, a), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskAssessment), args.Error(1)
}

func (m *MockRiskRepository) GetLatest(ctx context.Context, studentID, groupID uint) (*models.RiskAssessment, error) {
	args := m.Called(ctx, studentID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskAssessment), args.Error(1)
}

func (m *MockRiskRepository) GetHistory(ctx context.Context, studentID uint, limit int) ([]*models.RiskAssessment, error) {
	args := m.Called(ctx, studentID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RiskAssessment), args.Error(1)
}

func (m *MockRiskRepository) GetAtRisk(ctx context.Context, groupID uint, minLevel models.RiskLevel) ([]*models.RiskAssessment, error) {
	args := m.Called(ctx, groupID, minLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RiskAssessment), args.Error(1)
}

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email models.Email) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ReplaceRoles(ctx context.Context, userID uint, roles []models.RoleName) error {
	args := m.Called(ctx, userID, roles)
	return args.Error(0)
}

// MockSubjectRepository is a mock implementation of repository.SubjectRepository
type MockSubjectRepository struct {
	mock.Mock
}

func (m *MockSubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

func (m *MockSubjectRepository) FindByID(ctx context.Context, id uint) (*models.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

func (m *MockSubjectRepository) FindByCode(ctx context.Context, code models.SubjectCode) (*models.Subject, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

func (m *MockSubjectRepository) List(ctx context.Context, offset, limit int) ([]*models.Subject, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Subject), args.Get(1).(int64), args.Error(2)
}

// MockGroupRepository is a mock implementation of repository.GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) Create(ctx context.Context, group *models.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) FindByID(ctx context.Context, id uint) (*models.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

// MockEnrollmentRepository is a mock implementation of repository.EnrollmentRepository
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Create(ctx context.Context, e *models.Enrollment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) Update(ctx context.Context, e *models.Enrollment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) FindActive(ctx context.Context, studentID, groupID uint) (*models.Enrollment, error) {
	args := m.Called(ctx, studentID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) CountActive(ctx context.Context, groupID uint) (int64, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEnrollmentRepository) ListActiveStudentIDs(ctx context.Context, groupID uint) ([]uint, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

// MockAttendanceRepository is a mock implementation of repository.AttendanceRepository
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Record(ctx context.Context, r *models.AttendanceRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockAttendanceRepository) AttendanceRate(ctx context.Context, studentID, groupID uint) (float64, error) {
	args := m.Called(ctx, studentID, groupID)
	return args.Get(0).(float64), args.Error(1)
}

// MockGradeRepository is a mock implementation of repository.GradeRepository
type MockGradeRepository struct {
	mock.Mock
}

func (m *MockGradeRepository) Record(ctx context.Context, r *models.GradeRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockGradeRepository) AverageGrade(ctx context.Context, studentID, groupID uint) (float64, error) {
	args := m.Called(ctx, studentID, groupID)
	return args.Get(0).(float64), args.Error(1)
}

// MockSubmissionRepository is a mock implementation of repository.SubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Record(ctx context.Context, s *models.AssignmentSubmission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubmissionRepository) CountMissed(ctx context.Context, studentID, groupID uint, now time.Time) (int, error) {
	args := m.Called(ctx, studentID, groupID, now)
	return args.Int(0), args.Error(1)
}

// MockResourceRepository is a mock implementation of repository.ResourceRepository
type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) Create(ctx context.Context, r *models.Resource) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockResourceRepository) FindByID(ctx context.Context, id uint) (*models.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Resource), args.Error(1)
}

// MockReservationRepository is a mock implementation of repository.ReservationRepository
type MockReservationRepository struct {
	mock.Mock
}

// CreateGuarded runs guard against the resource and overlapping reservations
// passed to Return(resource, overlapping, err). A nil resource returns err
// without calling guard.
func (m *MockReservationRepository) CreateGuarded(ctx context.Context, r *models.Reservation, guard repository.ReservationGuard) error {
	args := m.Called(ctx, r)
	resource, _ := args.Get(0).(*models.Resource)
	if resource == nil {
		return args.Error(2)
	}
	overlapping, _ := args.Get(1).([]*models.Reservation)
	if err := guard(resource, overlapping); err != nil {
		return err
	}
	return args.Error(2)
}

func (m *MockReservationRepository) Update(ctx context.Context, r *models.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindOverlapping(ctx context.Context, resourceID uint, slot models.TimeSlot) ([]*models.Reservation, error) {
	args := m.Called(ctx, resourceID, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListForResource(ctx context.Context, resourceID uint) ([]*models.Reservation, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Reservation), args.Error(1)
}

// MockInternshipRepository is a mock implementation of repository.InternshipRepository
type MockInternshipRepository struct {
	mock.Mock
}

func (m *MockInternshipRepository) Create(ctx context.Context, i *models.Internship) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockInternshipRepository) FindByID(ctx context.Context, id uint) (*models.Internship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Internship), args.Error(1)
}

func (m *MockInternshipRepository) CreateApplication(ctx context.Context, a *models.InternshipApplication) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// DecideApplication runs decide against Return(application, internship, approved, err).
// A nil application returns err without calling decide.
func (m *MockInternshipRepository) DecideApplication(ctx context.Context, id uint, decide repository.ApplicationDecision) (*models.InternshipApplication, error) {
	args := m.Called(ctx, id)
	application, _ := args.Get(0).(*models.InternshipApplication)
	if application == nil {
		return nil, args.Error(3)
	}
	internship, _ := args.Get(1).(*models.Internship)
	approved, _ := args.Get(2).(int64)
	if err := decide(internship, application, approved); err != nil {
		return nil, err
	}
	return application, args.Error(3)
}

func (m *MockInternshipRepository) FindApplication(ctx context.Context, id uint) (*models.InternshipApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InternshipApplication), args.Error(1)
}

func (m *MockInternshipRepository) FindApplicationByStudent(ctx context.Context, internshipID, studentID uint) (*models.InternshipApplication, error) {
	args := m.Called(ctx, internshipID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InternshipApplication), args.Error(1)
}

func (m *MockInternshipRepository) ListApplications(ctx context.Context, internshipID uint) ([]*models.InternshipApplication, error) {
	args := m.Called(ctx, internshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InternshipApplication), args.Error(1)
}

