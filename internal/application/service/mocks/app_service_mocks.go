// Package mocks holds testify mocks of the application services, used by the
// transport layer tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/domain/models"
)

// MockAuthAppService is a mock implementation of service.AuthAppService
type MockAuthAppService struct {
	mock.Mock
}

func (m *MockAuthAppService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockAuthAppService) CreateUser(ctx context.Context, req *dto.RegisterRequest, roles ...models.RoleName) (*dto.UserResponse, error) {
	args := m.Called(ctx, req, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockAuthAppService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

func (m *MockAuthAppService) Logout(ctx context.Context, claims *models.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *MockAuthAppService) Authenticate(ctx context.Context, token string) (*models.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Claims), args.Error(1)
}

// MockUserAppService is a mock implementation of service.UserAppService
type MockUserAppService struct {
	mock.Mock
}

func (m *MockUserAppService) user(args mock.Arguments) (*dto.UserResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserAppService) GetUser(ctx context.Context, id uint) (*dto.UserResponse, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserAppService) ListUsers(ctx context.Context, page, pageSize int) (*dto.PagedList[*dto.UserResponse], error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PagedList[*dto.UserResponse]), args.Error(1)
}

func (m *MockUserAppService) AssignRole(ctx context.Context, id uint, role models.RoleName) (*dto.UserResponse, error) {
	return m.user(m.Called(ctx, id, role))
}

func (m *MockUserAppService) RemoveRole(ctx context.Context, id uint, role models.RoleName) (*dto.UserResponse, error) {
	return m.user(m.Called(ctx, id, role))
}

func (m *MockUserAppService) Activate(ctx context.Context, id uint) (*dto.UserResponse, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserAppService) Deactivate(ctx context.Context, id uint) (*dto.UserResponse, error) {
	return m.user(m.Called(ctx, id))
}

// MockCourseAppService is a mock implementation of service.CourseAppService
type MockCourseAppService struct {
	mock.Mock
}

func (m *MockCourseAppService) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubjectResponse), args.Error(1)
}

func (m *MockCourseAppService) ListSubjects(ctx context.Context, page, pageSize int) (*dto.PagedList[*dto.SubjectResponse], error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PagedList[*dto.SubjectResponse]), args.Error(1)
}

func (m *MockCourseAppService) CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GroupResponse), args.Error(1)
}

func (m *MockCourseAppService) Enroll(ctx context.Context, groupID, studentID uint) (*dto.EnrollmentResponse, error) {
	args := m.Called(ctx, groupID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EnrollmentResponse), args.Error(1)
}

func (m *MockCourseAppService) Drop(ctx context.Context, groupID, studentID uint) error {
	args := m.Called(ctx, groupID, studentID)
	return args.Error(0)
}

func (m *MockCourseAppService) ListGroupStudents(ctx context.Context, groupID uint) ([]*dto.UserResponse, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dto.UserResponse), args.Error(1)
}

// MockRecordAppService is a mock implementation of service.RecordAppService
type MockRecordAppService struct {
	mock.Mock
}

func (m *MockRecordAppService) record(args mock.Arguments) (*dto.RecordResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecordResponse), args.Error(1)
}

func (m *MockRecordAppService) RecordAttendance(ctx context.Context, req *dto.RecordAttendanceRequest) (*dto.RecordResponse, error) {
	return m.record(m.Called(ctx, req))
}

func (m *MockRecordAppService) RecordGrade(ctx context.Context, req *dto.RecordGradeRequest) (*dto.RecordResponse, error) {
	return m.record(m.Called(ctx, req))
}

func (m *MockRecordAppService) RecordSubmission(ctx context.Context, req *dto.RecordSubmissionRequest) (*dto.RecordResponse, error) {
	return m.record(m.Called(ctx, req))
}

// MockReservationAppService is a mock implementation of service.ReservationAppService
type MockReservationAppService struct {
	mock.Mock
}

func (m *MockReservationAppService) reservation(args mock.Arguments) (*dto.ReservationResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReservationResponse), args.Error(1)
}

func (m *MockReservationAppService) CreateResource(ctx context.Context, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ResourceResponse), args.Error(1)
}

func (m *MockReservationAppService) Reserve(ctx context.Context, userID uint, req *dto.ReserveRequest) (*dto.ReservationResponse, error) {
	return m.reservation(m.Called(ctx, userID, req))
}

func (m *MockReservationAppService) Confirm(ctx context.Context, reservationID uint) (*dto.ReservationResponse, error) {
	return m.reservation(m.Called(ctx, reservationID))
}

func (m *MockReservationAppService) Cancel(ctx context.Context, reservationID uint, actor *models.Claims) (*dto.ReservationResponse, error) {
	return m.reservation(m.Called(ctx, reservationID, actor))
}

func (m *MockReservationAppService) ListForResource(ctx context.Context, resourceID uint) ([]*dto.ReservationResponse, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dto.ReservationResponse), args.Error(1)
}

// MockInternshipAppService is a mock implementation of service.InternshipAppService
type MockInternshipAppService struct {
	mock.Mock
}

func (m *MockInternshipAppService) application(args mock.Arguments) (*dto.ApplicationResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ApplicationResponse), args.Error(1)
}

func (m *MockInternshipAppService) CreateInternship(ctx context.Context, req *dto.CreateInternshipRequest) (*dto.InternshipResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.InternshipResponse), args.Error(1)
}

func (m *MockInternshipAppService) Apply(ctx context.Context, internshipID, studentID uint) (*dto.ApplicationResponse, error) {
	return m.application(m.Called(ctx, internshipID, studentID))
}

func (m *MockInternshipAppService) Approve(ctx context.Context, applicationID uint, note string) (*dto.ApplicationResponse, error) {
	return m.application(m.Called(ctx, applicationID, note))
}

func (m *MockInternshipAppService) Reject(ctx context.Context, applicationID uint, note string) (*dto.ApplicationResponse, error) {
	return m.application(m.Called(ctx, applicationID, note))
}

func (m *MockInternshipAppService) ListApplications(ctx context.Context, internshipID uint) ([]*dto.ApplicationResponse, error) {
	args := m.Called(ctx, internshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dto.ApplicationResponse), args.Error(1)
}

// MockRiskAppService is a mock implementation of service.RiskAppService
type MockRiskAppService struct {
	mock.Mock
}

func (m *MockRiskAppService) assessment(args mock.Arguments) (*dto.RiskAssessmentResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RiskAssessmentResponse), args.Error(1)
}

func (m *MockRiskAppService) assessments(args mock.Arguments) ([]*dto.RiskAssessmentResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dto.RiskAssessmentResponse), args.Error(1)
}

func (m *MockRiskAppService) CalculateRisk(ctx context.Context, studentID, groupID uint, overrides *dto.RiskOverrides) (*dto.RiskAssessmentResponse, error) {
	return m.assessment(m.Called(ctx, studentID, groupID, overrides))
}

func (m *MockRiskAppService) SimulateRisk(ctx context.Context, req *dto.SimulateRiskRequest) (*dto.RiskAssessmentResponse, error) {
	return m.assessment(m.Called(ctx, req))
}

func (m *MockRiskAppService) AssessGroup(ctx context.Context, groupID uint) ([]*dto.RiskAssessmentResponse, error) {
	return m.assessments(m.Called(ctx, groupID))
}

func (m *MockRiskAppService) GetGroupDashboard(ctx context.Context, groupID uint, minLevel models.RiskLevel) (*dto.RiskDashboardResponse, error) {
	args := m.Called(ctx, groupID, minLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RiskDashboardResponse), args.Error(1)
}

func (m *MockRiskAppService) GetStudentRiskFactors(ctx context.Context, studentID, groupID uint) (*dto.RiskFactorsResponse, error) {
	args := m.Called(ctx, studentID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RiskFactorsResponse), args.Error(1)
}

func (m *MockRiskAppService) GetRiskHistory(ctx context.Context, studentID uint, limit int) ([]*dto.RiskAssessmentResponse, error) {
	return m.assessments(m.Called(ctx, studentID, limit))
}
