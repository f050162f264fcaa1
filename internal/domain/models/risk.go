package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/acadmin/pkg/errors"
)

// RiskLevel is the banded classification of a risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Upper bounds, inclusive, of each band.
const (
	RiskLowMax    = 30
	RiskMediumMax = 60
	RiskHighMax   = 80
	RiskScoreMax  = 100
)

// RiskLevelFromScore maps a 0-100 score to its level.
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score <= RiskLowMax:
		return RiskLow
	case score <= RiskMediumMax:
		return RiskMedium
	case score <= RiskHighMax:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// ParseRiskLevel validates a level name, case-insensitively.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch l := RiskLevel(strings.ToUpper(strings.TrimSpace(s))); l {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return l, nil
	}
	return "", errors.ErrInvalidRequest(fmt.Sprintf("unknown risk level: %q", s))
}

// Rank orders levels from LOW (0) to CRITICAL (3).
func (l RiskLevel) Rank() int {
	switch l {
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether l is as severe as min or more.
func (l RiskLevel) AtLeast(min RiskLevel) bool {
	return l.Rank() >= min.Rank()
}

// Factor names, in evaluation order.
const (
	FactorAttendance  = "attendance"
	FactorGrades      = "grades"
	FactorAssignments = "assignments"
)

// RiskFactor explains one contribution to a risk score.
type RiskFactor struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
	Explanation  string  `json:"explanation"`
}

// RiskMetrics are the three observed inputs of a risk prediction.
type RiskMetrics struct {
	AttendanceRate    float64 `json:"attendance_rate"`
	AverageGrade      float64 `json:"average_grade"`
	MissedAssignments int     `json:"missed_assignments"`
}

// RiskAssessment is an immutable, persisted evaluation of a student in a group.
type RiskAssessment struct {
	ID               uint         `json:"id"`
	StudentID        uint         `json:"student_id"`
	GroupID          uint         `json:"group_id"`
	RiskScore        int          `json:"risk_score"`
	RiskLevel        RiskLevel    `json:"risk_level"`
	AttendanceScore  int          `json:"attendance_score"`
	GradesScore      int          `json:"grades_score"`
	AssignmentsScore int          `json:"assignments_score"`
	Factors          []RiskFactor `json:"factors"`
	Recommendation   string       `json:"recommendation,omitempty"`
	Metrics          RiskMetrics  `json:"metrics"`
	AssessedAt       time.Time    `json:"assessed_at"`
}

// MainFactor returns the name of the factor with the largest contribution, or
// "none". Ties go to the earlier factor.
func (a *RiskAssessment) MainFactor() string {
	main := "none"
	best := 0.0
	for _, f := range a.Factors {
		if f.Contribution > best {
			best = f.Contribution
			main = f.Name
		}
	}
	return main
}

// HasFactor reports whether the named factor contributed to the score.
func (a *RiskAssessment) HasFactor(name string) bool {
	for _, f := range a.Factors {
		if f.Name == name {
			return true
		}
	}
	return false
}
