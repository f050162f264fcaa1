package service

import (
	"context"
	goerrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/domain/models"
	domainservice "github.com/turtacn/acadmin/internal/domain/service"
	"github.com/turtacn/acadmin/internal/domain/service/mocks"
	"github.com/turtacn/acadmin/pkg/constants"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

type RiskAppServiceSuite struct {
	suite.Suite

	ctx         context.Context
	users       *mocks.MockUserRepository
	groups      *mocks.MockGroupRepository
	enrollments *mocks.MockEnrollmentRepository
	attendance  *mocks.MockAttendanceRepository
	grades      *mocks.MockGradeRepository
	submissions *mocks.MockSubmissionRepository
	risks       *mocks.MockRiskRepository
	publisher   *mocks.MockEventPublisher
	metrics     *mocks.MockMetrics
	fixedNow    time.Time
	svc         *riskAppServiceImpl
}

func TestRiskAppServiceSuite(t *testing.T) {
	suite.Run(t, new(RiskAppServiceSuite))
}

func (s *RiskAppServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.users = new(mocks.MockUserRepository)
	s.groups = new(mocks.MockGroupRepository)
	s.enrollments = new(mocks.MockEnrollmentRepository)
	s.attendance = new(mocks.MockAttendanceRepository)
	s.grades = new(mocks.MockGradeRepository)
	s.submissions = new(mocks.MockSubmissionRepository)
	s.risks = new(mocks.MockRiskRepository)
	s.publisher = new(mocks.MockEventPublisher)
	s.metrics = new(mocks.MockMetrics)
	s.fixedNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	svc := NewRiskAppService(RiskDependencies{
		Users:       s.users,
		Groups:      s.groups,
		Enrollments: s.enrollments,
		Attendance:  s.attendance,
		Grades:      s.grades,
		Submissions: s.submissions,
		Risks:       s.risks,
		Calculator:  domainservice.NewRiskCalculator(domainservice.NewHeuristicRiskModel(domainservice.WithJitter(domainservice.FixedJitter(5)))),
		Publisher:   s.publisher,
		Metrics:     s.metrics,
	}, logger.NewNoopLogger()).(*riskAppServiceImpl)
	svc.now = func() time.Time { return s.fixedNow }
	s.svc = svc
}

func (s *RiskAppServiceSuite) expectStudentAndGroup(studentID, groupID uint) {
	s.users.On("FindByID", mock.Anything, studentID).Return(&models.User{ID: studentID, Roles: []models.RoleName{models.RoleStudent}}, nil)
	s.groups.On("FindByID", mock.Anything, groupID).Return(&models.Group{ID: groupID, Capacity: 30}, nil)
}

func (s *RiskAppServiceSuite) expectMetrics(studentID, groupID uint, att, grade float64, missed int) {
	s.attendance.On("AttendanceRate", mock.Anything, studentID, groupID).Return(att, nil)
	s.grades.On("AverageGrade", mock.Anything, studentID, groupID).Return(grade, nil)
	s.submissions.On("CountMissed", mock.Anything, studentID, groupID, s.fixedNow).Return(missed, nil)
}

func (s *RiskAppServiceSuite) TestCalculateRisk_PersistsAndPublishes() {
	s.expectStudentAndGroup(7, 3)
	s.expectMetrics(7, 3, 50, 40, 5)

	s.risks.On("Save", mock.Anything, mock.MatchedBy(func(a *models.RiskAssessment) bool {
		return a.StudentID == 7 && a.GroupID == 3 && a.RiskScore == 69 && a.RiskLevel == models.RiskHigh &&
			len(a.Factors) == 3 && a.AssessedAt.Equal(s.fixedNow)
	})).Return(func(_ context.Context, a *models.RiskAssessment) *models.RiskAssessment {
		saved := *a
		saved.ID = 101
		return &saved
	}, nil)
	s.metrics.On("RecordRiskAssessment", models.RiskHigh).Return()
	s.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e models.DomainEvent) bool {
		return e.Type == constants.EventRiskAssessed && e.Key == "7"
	})).Return(nil)

	resp, err := s.svc.CalculateRisk(s.ctx, 7, 3, nil)
	s.Require().NoError(err)
	s.Equal(uint(101), resp.ID)
	s.Equal(69, resp.RiskScore)
	s.Equal("HIGH", resp.RiskLevel)
	s.Equal(50, resp.AttendanceScore)
	s.Equal(60, resp.GradesScore)
	s.Equal(50, resp.AssignmentsScore)
	s.Equal(domainservice.RecommendationHigh, resp.Recommendation)
	s.True(resp.Persisted)
	s.Equal([]string{"attendance", "grades", "assignments"}, []string{resp.Factors[0].Name, resp.Factors[1].Name, resp.Factors[2].Name})

	s.risks.AssertExpectations(s.T())
	s.publisher.AssertExpectations(s.T())
	s.metrics.AssertExpectations(s.T())
}

func (s *RiskAppServiceSuite) TestCalculateRisk_PublishFailureIsNotReturned() {
	s.expectStudentAndGroup(7, 3)
	s.expectMetrics(7, 3, 100, 100, 0)
	s.risks.On("Save", mock.Anything, mock.Anything).Return(&models.RiskAssessment{ID: 1, StudentID: 7, GroupID: 3, RiskScore: 5, RiskLevel: models.RiskLow}, nil)
	s.metrics.On("RecordRiskAssessment", models.RiskLow).Return()
	s.publisher.On("Publish", mock.Anything, mock.Anything).Return(goerrors.New("broker down"))

	resp, err := s.svc.CalculateRisk(s.ctx, 7, 3, nil)
	s.Require().NoError(err)
	s.Equal(5, resp.RiskScore)
}

func (s *RiskAppServiceSuite) TestCalculateRisk_FirstGatherErrorWins() {
	s.expectStudentAndGroup(7, 3)
	dbErr := goerrors.New("connection reset")
	s.attendance.On("AttendanceRate", mock.Anything, uint(7), uint(3)).Return(0.0, dbErr)
	s.grades.On("AverageGrade", mock.Anything, uint(7), uint(3)).Return(80.0, nil).Maybe()
	s.submissions.On("CountMissed", mock.Anything, uint(7), uint(3), s.fixedNow).Return(0, nil).Maybe()

	_, err := s.svc.CalculateRisk(s.ctx, 7, 3, nil)
	s.Require().Error(err)
	s.ErrorIs(err, dbErr)
	s.risks.AssertNotCalled(s.T(), "Save", mock.Anything, mock.Anything)
}

func (s *RiskAppServiceSuite) TestCalculateRisk_SaveFailure() {
	s.expectStudentAndGroup(7, 3)
	s.expectMetrics(7, 3, 90, 90, 0)
	s.risks.On("Save", mock.Anything, mock.Anything).Return(nil, goerrors.New("disk full"))

	_, err := s.svc.CalculateRisk(s.ctx, 7, 3, nil)
	s.True(errors.HasCode(err, errors.CodeInternal))
	s.publisher.AssertNotCalled(s.T(), "Publish", mock.Anything, mock.Anything)
}

func (s *RiskAppServiceSuite) TestCalculateRisk_UnknownStudent() {
	s.users.On("FindByID", mock.Anything, uint(99)).Return(nil, errors.ErrNotFound("user", 99))

	_, err := s.svc.CalculateRisk(s.ctx, 99, 3, nil)
	s.True(errors.IsNotFound(err))
}

func (s *RiskAppServiceSuite) TestCalculateRisk_UnknownGroup() {
	s.users.On("FindByID", mock.Anything, uint(7)).Return(&models.User{ID: 7}, nil)
	s.groups.On("FindByID", mock.Anything, uint(42)).Return(nil, errors.ErrNotFound("group", 42))

	_, err := s.svc.CalculateRisk(s.ctx, 7, 42, nil)
	s.True(errors.IsNotFound(err))
}

func (s *RiskAppServiceSuite) TestSimulateRisk_OverridesSkipQueriesAndDoNotPersist() {
	s.expectStudentAndGroup(7, 3)
	att, missed := 30.0, 10
	// Only the grade is measured.
	s.grades.On("AverageGrade", mock.Anything, uint(7), uint(3)).Return(95.0, nil)

	resp, err := s.svc.SimulateRisk(s.ctx, &dto.SimulateRiskRequest{
		StudentID:     7,
		GroupID:       3,
		RiskOverrides: dto.RiskOverrides{AttendanceRate: &att, MissedAssignments: &missed},
	})
	s.Require().NoError(err)
	// (100-30)*0.4 + 10*5 = 28 + 50
	s.Equal(78, resp.RiskScore)
	s.Equal("HIGH", resp.RiskLevel)
	s.False(resp.Persisted)
	s.Equal(95.0, resp.Metrics.AverageGrade)

	s.attendance.AssertNotCalled(s.T(), "AttendanceRate", mock.Anything, mock.Anything, mock.Anything)
	s.submissions.AssertNotCalled(s.T(), "CountMissed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.risks.AssertNotCalled(s.T(), "Save", mock.Anything, mock.Anything)
	s.publisher.AssertNotCalled(s.T(), "Publish", mock.Anything, mock.Anything)
}

func (s *RiskAppServiceSuite) TestSimulateRisk_LowScoreUsesInjectedJitter() {
	s.expectStudentAndGroup(7, 3)
	s.expectMetrics(7, 3, 95, 88, 1)

	resp, err := s.svc.SimulateRisk(s.ctx, &dto.SimulateRiskRequest{StudentID: 7, GroupID: 3})
	s.Require().NoError(err)
	s.Equal(5, resp.RiskScore)
	s.Equal("LOW", resp.RiskLevel)
	s.Empty(resp.Factors)
	s.Equal(domainservice.RecommendationLow, resp.Recommendation)
}

func (s *RiskAppServiceSuite) TestAssessGroup() {
	s.groups.On("FindByID", mock.Anything, uint(3)).Return(&models.Group{ID: 3}, nil)
	s.enrollments.On("ListActiveStudentIDs", mock.Anything, uint(3)).Return([]uint{7, 8}, nil)
	for _, id := range []uint{7, 8} {
		s.users.On("FindByID", mock.Anything, id).Return(&models.User{ID: id}, nil)
		s.expectMetrics(id, 3, 100, 100, 0)
	}
	s.risks.On("Save", mock.Anything, mock.Anything).Return(func(_ context.Context, a *models.RiskAssessment) *models.RiskAssessment {
		return a
	}, nil)
	s.metrics.On("RecordRiskAssessment", models.RiskLow).Return()
	s.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	results, err := s.svc.AssessGroup(s.ctx, 3)
	s.Require().NoError(err)
	s.Len(results, 2)
	s.risks.AssertNumberOfCalls(s.T(), "Save", 2)
}

func (s *RiskAppServiceSuite) TestGetGroupDashboard() {
	s.groups.On("FindByID", mock.Anything, uint(3)).Return(&models.Group{ID: 3}, nil)
	assessments := []*models.RiskAssessment{
		{StudentID: 1, RiskScore: 90, RiskLevel: models.RiskCritical, Recommendation: domainservice.RecommendationCritical,
			Factors: []models.RiskFactor{{Name: "attendance", Contribution: 30}, {Name: "assignments", Contribution: 50}}},
		{StudentID: 2, RiskScore: 85, RiskLevel: models.RiskCritical},
		{StudentID: 3, RiskScore: 70, RiskLevel: models.RiskHigh, Factors: []models.RiskFactor{{Name: "grades", Contribution: 40}}},
		{StudentID: 4, RiskScore: 45, RiskLevel: models.RiskMedium},
		{StudentID: 5, RiskScore: 5, RiskLevel: models.RiskLow},
	}
	s.risks.On("GetAtRisk", mock.Anything, uint(3), models.RiskLow).Return(assessments, nil)

	resp, err := s.svc.GetGroupDashboard(s.ctx, 3, models.RiskLow)
	s.Require().NoError(err)

	s.Equal(dto.DashboardSummary{TotalAssessed: 5, Critical: 2, High: 1, Medium: 1, Low: 1}, resp.Summary)
	sum := resp.Summary.Critical + resp.Summary.High + resp.Summary.Medium + resp.Summary.Low
	s.Equal(resp.Summary.TotalAssessed, sum)

	s.Require().Len(resp.CriticalStudents, 2)
	s.Equal("assignments", resp.CriticalStudents[0].MainFactor)
	s.Require().NotNil(resp.CriticalStudents[0].Recommendation)
	s.Equal(domainservice.RecommendationCritical, *resp.CriticalStudents[0].Recommendation)
	s.Equal("none", resp.CriticalStudents[1].MainFactor)
	s.Nil(resp.CriticalStudents[1].Recommendation)

	s.Require().Len(resp.HighRiskStudents, 1)
	s.Equal("grades", resp.HighRiskStudents[0].MainFactor)
}

func (s *RiskAppServiceSuite) TestGetGroupDashboard_Empty() {
	s.groups.On("FindByID", mock.Anything, uint(3)).Return(&models.Group{ID: 3}, nil)
	s.risks.On("GetAtRisk", mock.Anything, uint(3), models.RiskHigh).Return([]*models.RiskAssessment{}, nil)

	resp, err := s.svc.GetGroupDashboard(s.ctx, 3, models.RiskHigh)
	s.Require().NoError(err)
	s.Equal(0, resp.Summary.TotalAssessed)
	s.NotNil(resp.CriticalStudents)
	s.NotNil(resp.HighRiskStudents)
}

func (s *RiskAppServiceSuite) TestGetStudentRiskFactors_NoData() {
	s.risks.On("GetLatest", mock.Anything, uint(7), uint(3)).Return(nil, nil)

	resp, err := s.svc.GetStudentRiskFactors(s.ctx, 7, 3)
	s.Require().NoError(err)
	s.False(resp.HasData)
	s.Equal("UNKNOWN", resp.RiskLevel)
	s.Equal(0, resp.RiskScore)
	s.Nil(resp.AssessedAt)
	s.Empty(resp.Factors)
	s.Equal("No assessment available yet.", resp.Recommendation)
}

func (s *RiskAppServiceSuite) TestGetStudentRiskFactors_WithData() {
	latest := &models.RiskAssessment{
		StudentID: 7, GroupID: 3, RiskScore: 44, RiskLevel: models.RiskMedium,
		AttendanceScore: 40, GradesScore: 55, AssignmentsScore: 20,
		Factors:        []models.RiskFactor{{Name: "grades", Contribution: 22}, {Name: "attendance", Contribution: 22}},
		Recommendation: domainservice.RecommendationMedium,
		AssessedAt:     s.fixedNow,
	}
	s.risks.On("GetLatest", mock.Anything, uint(7), uint(3)).Return(latest, nil)

	resp, err := s.svc.GetStudentRiskFactors(s.ctx, 7, 3)
	s.Require().NoError(err)
	s.True(resp.HasData)
	s.Equal("MEDIUM", resp.RiskLevel)
	s.Require().NotNil(resp.AssessedAt)
	s.Equal([]dto.FactorScoreDTO{
		{Name: "attendance", Score: 40, Status: "High Risk"},
		{Name: "grades", Score: 55, Status: "High Risk"},
		{Name: "assignments", Score: 20, Status: "Normal"},
	}, resp.Factors)
}

func (s *RiskAppServiceSuite) TestGetRiskHistory_DefaultLimit() {
	s.users.On("FindByID", mock.Anything, uint(7)).Return(&models.User{ID: 7}, nil)
	s.risks.On("GetHistory", mock.Anything, uint(7), constants.DefaultRiskHistoryLimit).
		Return([]*models.RiskAssessment{{ID: 2}, {ID: 1}}, nil)

	resp, err := s.svc.GetRiskHistory(s.ctx, 7, 0)
	s.Require().NoError(err)
	s.Len(resp, 2)
	s.Equal(uint(2), resp[0].ID)
}
