package dto

import (
	"time"

	"github.com/turtacn/acadmin/internal/domain/models"
)

// RiskOverrides replaces measured metrics. Nil fields keep the measured value.
type RiskOverrides struct {
	AttendanceRate    *float64 `json:"attendance_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
	AverageGrade      *float64 `json:"average_grade,omitempty" validate:"omitempty,gte=0,lte=100"`
	MissedAssignments *int     `json:"missed_assignments,omitempty" validate:"omitempty,gte=0"`
}

// SimulateRiskRequest computes a risk score without persisting it.
type SimulateRiskRequest struct {
	StudentID uint `json:"student_id" validate:"required"`
	GroupID   uint `json:"group_id" validate:"required"`
	RiskOverrides
}

// RiskFactorDTO is one ordered contribution to a score.
type RiskFactorDTO struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
	Explanation  string  `json:"explanation"`
}

// RiskAssessmentResponse is the public view of an assessment.
type RiskAssessmentResponse struct {
	ID               uint               `json:"id,omitempty"`
	StudentID        uint               `json:"student_id"`
	GroupID          uint               `json:"group_id"`
	RiskScore        int                `json:"risk_score"`
	RiskLevel        string             `json:"risk_level"`
	AttendanceScore  int                `json:"attendance_score"`
	GradesScore      int                `json:"grades_score"`
	AssignmentsScore int                `json:"assignments_score"`
	Factors          []RiskFactorDTO    `json:"factors"`
	Recommendation   string             `json:"recommendation,omitempty"`
	Metrics          models.RiskMetrics `json:"metrics"`
	AssessedAt       time.Time          `json:"assessed_at"`
	Persisted        bool               `json:"persisted"`
}

// NewRiskAssessmentResponse maps an assessment.
func NewRiskAssessmentResponse(a *models.RiskAssessment, persisted bool) *RiskAssessmentResponse {
	factors := make([]RiskFactorDTO, 0, len(a.Factors))
	for _, f := range a.Factors {
		factors = append(factors, RiskFactorDTO{Name: f.Name, Contribution: f.Contribution, Explanation: f.Explanation})
	}
	return &RiskAssessmentResponse{
		ID:               a.ID,
		StudentID:        a.StudentID,
		GroupID:          a.GroupID,
		RiskScore:        a.RiskScore,
		RiskLevel:        string(a.RiskLevel),
		AttendanceScore:  a.AttendanceScore,
		GradesScore:      a.GradesScore,
		AssignmentsScore: a.AssignmentsScore,
		Factors:          factors,
		Recommendation:   a.Recommendation,
		Metrics:          a.Metrics,
		AssessedAt:       a.AssessedAt,
		Persisted:        persisted,
	}
}

// DashboardSummary counts assessments per level.
type DashboardSummary struct {
	TotalAssessed int `json:"total_assessed"`
	Critical      int `json:"critical"`
	High          int `json:"high"`
	Medium        int `json:"medium"`
	Low           int `json:"low"`
}

// CriticalStudentDTO is a row of the critical band.
type CriticalStudentDTO struct {
	StudentID      uint    `json:"student_id"`
	RiskScore      int     `json:"risk_score"`
	MainFactor     string  `json:"main_factor"`
	Recommendation *string `json:"recommendation"`
}

// HighRiskStudentDTO is a row of the high band.
type HighRiskStudentDTO struct {
	StudentID  uint   `json:"student_id"`
	RiskScore  int    `json:"risk_score"`
	MainFactor string `json:"main_factor"`
}

// RiskDashboardResponse aggregates the latest assessments of a group.
type RiskDashboardResponse struct {
	Summary          DashboardSummary     `json:"summary"`
	CriticalStudents []CriticalStudentDTO `json:"critical_students"`
	HighRiskStudents []HighRiskStudentDTO `json:"high_risk_students"`
}

// FactorStatus values.
const (
	FactorStatusHighRisk = "High Risk"
	FactorStatusNormal   = "Normal"
)

// FactorScoreDTO is one row of the factors explanation.
type FactorScoreDTO struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Status string `json:"status"`
}

// RiskFactorsResponse explains the latest assessment of a student in a group.
type RiskFactorsResponse struct {
	HasData        bool             `json:"has_data"`
	RiskLevel      string           `json:"risk_level"`
	RiskScore      int              `json:"risk_score"`
	AssessedAt     *time.Time       `json:"assessed_at"`
	Factors        []FactorScoreDTO `json:"factors"`
	Recommendation string           `json:"recommendation"`
}
