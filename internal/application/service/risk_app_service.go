package service

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/repository"
	"github.com/turtacn/acadmin/internal/domain/service"
	"github.com/turtacn/acadmin/pkg/constants"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

const noAssessmentRecommendation = "No assessment available yet."

// RiskAppService defines the use cases around student risk assessments.
type RiskAppService interface {
	// CalculateRisk measures the student's metrics, applies overrides, scores and
	// persists a new assessment.
	CalculateRisk(ctx context.Context, studentID, groupID uint, overrides *dto.RiskOverrides) (*dto.RiskAssessmentResponse, error)

	// SimulateRisk scores like CalculateRisk but does not persist or publish anything.
	SimulateRisk(ctx context.Context, req *dto.SimulateRiskRequest) (*dto.RiskAssessmentResponse, error)

	// AssessGroup calculates a fresh assessment for every active student of a group.
	AssessGroup(ctx context.Context, groupID uint) ([]*dto.RiskAssessmentResponse, error)

	// GetGroupDashboard aggregates the latest assessments of a group at or above minLevel.
	GetGroupDashboard(ctx context.Context, groupID uint, minLevel models.RiskLevel) (*dto.RiskDashboardResponse, error)

	// GetStudentRiskFactors explains the latest assessment of a student in a group.
	GetStudentRiskFactors(ctx context.Context, studentID, groupID uint) (*dto.RiskFactorsResponse, error)

	// GetRiskHistory lists a student's assessments, newest first.
	GetRiskHistory(ctx context.Context, studentID uint, limit int) ([]*dto.RiskAssessmentResponse, error)
}

// RiskDependencies groups the collaborators of the risk use cases.
type RiskDependencies struct {
	Users       repository.UserRepository
	Groups      repository.GroupRepository
	Enrollments repository.EnrollmentRepository
	Attendance  repository.AttendanceRepository
	Grades      repository.GradeRepository
	Submissions repository.SubmissionRepository
	Risks       repository.RiskRepository
	Calculator  *service.RiskCalculator
	Publisher   service.EventPublisher
	Metrics     service.Metrics
	// GatherTimeout bounds metric collection. Zero means no extra deadline.
	GatherTimeout time.Duration
}

type riskAppServiceImpl struct {
	deps   RiskDependencies
	now    func() time.Time
	tracer trace.Tracer
	logger logger.Logger
}

// NewRiskAppService creates a new instance of RiskAppService.
func NewRiskAppService(deps RiskDependencies, log logger.Logger) RiskAppService {
	if deps.Metrics == nil {
		deps.Metrics = service.NewNoopMetrics()
	}
	return &riskAppServiceImpl{
		deps:   deps,
		now:    func() time.Time { return time.Now().UTC() },
		tracer: otel.Tracer("acadmin/application/risk"),
		logger: log.WithComponent("risk_app_service"),
	}
}

func (s *riskAppServiceImpl) CalculateRisk(ctx context.Context, studentID, groupID uint, overrides *dto.RiskOverrides) (*dto.RiskAssessmentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RiskAppService.CalculateRisk", trace.WithAttributes(
		attribute.Int64("student_id", int64(studentID)),
		attribute.Int64("group_id", int64(groupID)),
	))
	defer span.End()

	assessment, err := s.evaluate(ctx, studentID, groupID, overrides)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	saved, err := s.deps.Risks.Save(ctx, assessment)
	if err != nil {
		s.logger.Error(ctx, "Failed to save risk assessment", err,
			logger.Uint("student_id", studentID), logger.Uint("group_id", groupID))
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to save risk assessment")
	}

	s.deps.Metrics.RecordRiskAssessment(saved.RiskLevel)
	s.publish(ctx, saved)

	s.logger.Info(ctx, "Risk assessed",
		logger.Uint("student_id", studentID),
		logger.Uint("group_id", groupID),
		logger.Int("risk_score", saved.RiskScore),
		logger.String("risk_level", string(saved.RiskLevel)),
	)
	return dto.NewRiskAssessmentResponse(saved, true), nil
}

func (s *riskAppServiceImpl) SimulateRisk(ctx context.Context, req *dto.SimulateRiskRequest) (*dto.RiskAssessmentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RiskAppService.SimulateRisk")
	defer span.End()

	assessment, err := s.evaluate(ctx, req.StudentID, req.GroupID, &req.RiskOverrides)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return dto.NewRiskAssessmentResponse(assessment, false), nil
}

func (s *riskAppServiceImpl) AssessGroup(ctx context.Context, groupID uint) ([]*dto.RiskAssessmentResponse, error) {
	if _, err := s.deps.Groups.FindByID(ctx, groupID); err != nil {
		return nil, err
	}
	studentIDs, err := s.deps.Enrollments.ListActiveStudentIDs(ctx, groupID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list group students")
	}

	results := make([]*dto.RiskAssessmentResponse, 0, len(studentIDs))
	for _, studentID := range studentIDs {
		res, err := s.CalculateRisk(ctx, studentID, groupID, nil)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	s.logger.Info(ctx, "Group assessed", logger.Uint("group_id", groupID), logger.Int("students", len(results)))
	return results, nil
}

// evaluate builds an unsaved assessment from measured metrics and overrides.
func (s *riskAppServiceImpl) evaluate(ctx context.Context, studentID, groupID uint, overrides *dto.RiskOverrides) (*models.RiskAssessment, error) {
	if _, err := s.deps.Users.FindByID(ctx, studentID); err != nil {
		return nil, err
	}
	if _, err := s.deps.Groups.FindByID(ctx, groupID); err != nil {
		return nil, err
	}

	metrics, err := s.gatherMetrics(ctx, studentID, groupID, overrides)
	if err != nil {
		s.logger.Error(ctx, "Failed to gather risk metrics", err,
			logger.Uint("student_id", studentID), logger.Uint("group_id", groupID))
		return nil, errors.Wrap(err, "failed to gather risk metrics")
	}

	eval, err := s.deps.Calculator.Evaluate(ctx, metrics)
	if err != nil {
		return nil, errors.Wrap(err, "risk model failed")
	}

	return &models.RiskAssessment{
		StudentID:        studentID,
		GroupID:          groupID,
		RiskScore:        eval.Score,
		RiskLevel:        eval.Level,
		AttendanceScore:  eval.AttendanceScore,
		GradesScore:      eval.GradesScore,
		AssignmentsScore: eval.AssignmentsScore,
		Factors:          eval.Factors,
		Recommendation:   eval.Recommendation,
		Metrics:          metrics,
		AssessedAt:       s.now(),
	}, nil
}

// gatherMetrics reads the metrics that are not overridden. The first failing
// query cancels the others and its error is returned.
func (s *riskAppServiceImpl) gatherMetrics(ctx context.Context, studentID, groupID uint, overrides *dto.RiskOverrides) (models.RiskMetrics, error) {
	if overrides == nil {
		overrides = &dto.RiskOverrides{}
	}
	if s.deps.GatherTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.deps.GatherTimeout)
		defer cancel()
	}

	var metrics models.RiskMetrics
	g, gctx := errgroup.WithContext(ctx)

	if overrides.AttendanceRate != nil {
		metrics.AttendanceRate = *overrides.AttendanceRate
	} else {
		g.Go(func() error {
			rate, err := s.deps.Attendance.AttendanceRate(gctx, studentID, groupID)
			metrics.AttendanceRate = rate
			return err
		})
	}

	if overrides.AverageGrade != nil {
		metrics.AverageGrade = *overrides.AverageGrade
	} else {
		g.Go(func() error {
			avg, err := s.deps.Grades.AverageGrade(gctx, studentID, groupID)
			metrics.AverageGrade = avg
			return err
		})
	}

	if overrides.MissedAssignments != nil {
		metrics.MissedAssignments = *overrides.MissedAssignments
	} else {
		now := s.now()
		g.Go(func() error {
			missed, err := s.deps.Submissions.CountMissed(gctx, studentID, groupID, now)
			metrics.MissedAssignments = missed
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return models.RiskMetrics{}, err
	}
	return metrics, nil
}

func (s *riskAppServiceImpl) publish(ctx context.Context, a *models.RiskAssessment) {
	if s.deps.Publisher == nil {
		return
	}
	event := models.NewDomainEvent(constants.EventRiskAssessed, strconv.FormatUint(uint64(a.StudentID), 10), dto.NewRiskAssessmentResponse(a, true))
	if err := s.deps.Publisher.Publish(ctx, event); err != nil {
		s.logger.Warn(ctx, "Failed to publish risk event",
			logger.Uint("assessment_id", a.ID), logger.String("error", err.Error()))
	}
}

func (s *riskAppServiceImpl) GetGroupDashboard(ctx context.Context, groupID uint, minLevel models.RiskLevel) (*dto.RiskDashboardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RiskAppService.GetGroupDashboard")
	defer span.End()

	if _, err := s.deps.Groups.FindByID(ctx, groupID); err != nil {
		return nil, err
	}
	assessments, err := s.deps.Risks.GetAtRisk(ctx, groupID, minLevel)
	if err != nil {
		s.logger.Error(ctx, "Failed to load at-risk assessments", err, logger.Uint("group_id", groupID))
		return nil, errors.Wrap(err, "failed to load assessments")
	}
	return BuildDashboard(assessments), nil
}

// BuildDashboard partitions assessments by level in one pass.
func BuildDashboard(assessments []*models.RiskAssessment) *dto.RiskDashboardResponse {
	resp := &dto.RiskDashboardResponse{
		CriticalStudents: []dto.CriticalStudentDTO{},
		HighRiskStudents: []dto.HighRiskStudentDTO{},
	}
	for _, a := range assessments {
		resp.Summary.TotalAssessed++
		switch a.RiskLevel {
		case models.RiskCritical:
			resp.Summary.Critical++
			var rec *string
			if a.Recommendation != "" {
				r := a.Recommendation
				rec = &r
			}
			resp.CriticalStudents = append(resp.CriticalStudents, dto.CriticalStudentDTO{
				StudentID:      a.StudentID,
				RiskScore:      a.RiskScore,
				MainFactor:     a.MainFactor(),
				Recommendation: rec,
			})
		case models.RiskHigh:
			resp.Summary.High++
			resp.HighRiskStudents = append(resp.HighRiskStudents, dto.HighRiskStudentDTO{
				StudentID:  a.StudentID,
				RiskScore:  a.RiskScore,
				MainFactor: a.MainFactor(),
			})
		case models.RiskMedium:
			resp.Summary.Medium++
		default:
			resp.Summary.Low++
		}
	}
	return resp
}

func (s *riskAppServiceImpl) GetStudentRiskFactors(ctx context.Context, studentID, groupID uint) (*dto.RiskFactorsResponse, error) {
	latest, err := s.deps.Risks.GetLatest(ctx, studentID, groupID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load latest assessment")
	}
	if latest == nil {
		return &dto.RiskFactorsResponse{
			HasData:        false,
			RiskLevel:      "UNKNOWN",
			RiskScore:      0,
			Factors:        []dto.FactorScoreDTO{},
			Recommendation: noAssessmentRecommendation,
		}, nil
	}

	status := func(name string) string {
		if latest.HasFactor(name) {
			return dto.FactorStatusHighRisk
		}
		return dto.FactorStatusNormal
	}
	assessedAt := latest.AssessedAt
	return &dto.RiskFactorsResponse{
		HasData:    true,
		RiskLevel:  string(latest.RiskLevel),
		RiskScore:  latest.RiskScore,
		AssessedAt: &assessedAt,
		Factors: []dto.FactorScoreDTO{
			{Name: models.FactorAttendance, Score: latest.AttendanceScore, Status: status(models.FactorAttendance)},
			{Name: models.FactorGrades, Score: latest.GradesScore, Status: status(models.FactorGrades)},
			{Name: models.FactorAssignments, Score: latest.AssignmentsScore, Status: status(models.FactorAssignments)},
		},
		Recommendation: latest.Recommendation,
	}, nil
}

func (s *riskAppServiceImpl) GetRiskHistory(ctx context.Context, studentID uint, limit int) ([]*dto.RiskAssessmentResponse, error) {
	if limit <= 0 {
		limit = constants.DefaultRiskHistoryLimit
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}
	if _, err := s.deps.Users.FindByID(ctx, studentID); err != nil {
		return nil, err
	}
	history, err := s.deps.Risks.GetHistory(ctx, studentID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load risk history")
	}
	out := make([]*dto.RiskAssessmentResponse, 0, len(history))
	for _, a := range history {
		out = append(out, dto.NewRiskAssessmentResponse(a, true))
	}
	return out, nil
}
