package service

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/turtacn/acadmin/internal/domain/models"
)

// Heuristic thresholds and weights.
const (
	attendanceThreshold    = 70.0
	gradeThreshold         = 60.0
	missedThreshold        = 2
	attendanceWeight       = 0.4
	gradeWeight            = 0.4
	missedAssignmentWeight = 5

	// Scores below this floor are replaced by the low-score jitter.
	lowScoreFloor = 10
	maxJitter     = 10
)

// Recommendations by level.
const (
	RecommendationCritical = "Immediate intervention required: schedule a meeting with the student and tutor."
	RecommendationHigh     = "Schedule a follow-up with the student and review their study plan."
	RecommendationMedium   = "Monitor student progress and encourage participation."
	RecommendationLow      = "Monitor student progress."
)

// LowScoreJitter returns a value in [0, 10] used in place of scores below 10.
type LowScoreJitter func() int

// NewRandomJitter returns a jitter backed by its own PCG source. A zero seed
// still yields a valid, deterministic sequence.
func NewRandomJitter(seed uint64) LowScoreJitter {
	var mu sync.Mutex
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return func() int {
		mu.Lock()
		defer mu.Unlock()
		return rng.IntN(maxJitter + 1)
	}
}

// FixedJitter always returns n. Useful to pin low scores in tests and demos.
func FixedJitter(n int) LowScoreJitter {
	return func() int { return n }
}

// HeuristicRiskModel scores students with a weighted-threshold heuristic over
// attendance, grades and missed assignments.
type HeuristicRiskModel struct {
	jitter LowScoreJitter
}

// HeuristicOption configures a HeuristicRiskModel.
type HeuristicOption func(*HeuristicRiskModel)

// WithJitter sets the strategy applied to scores below 10.
func WithJitter(j LowScoreJitter) HeuristicOption {
	return func(m *HeuristicRiskModel) { m.jitter = j }
}

// WithoutJitter keeps low scores as computed.
func WithoutJitter() HeuristicOption {
	return func(m *HeuristicRiskModel) { m.jitter = nil }
}

// NewHeuristicRiskModel creates the model. By default low scores are jittered
// from a source seeded with a random seed.
func NewHeuristicRiskModel(opts ...HeuristicOption) *HeuristicRiskModel {
	m := &HeuristicRiskModel{jitter: NewRandomJitter(rand.Uint64())}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Predict implements RiskModel. It never fails.
func (m *HeuristicRiskModel) Predict(_ context.Context, metrics models.RiskMetrics) (RiskPrediction, error) {
	score, factors := m.Score(metrics)
	return RiskPrediction{Score: score, Factors: factors}, nil
}

// Score applies the heuristic. Inputs are not validated or clamped.
func (m *HeuristicRiskModel) Score(metrics models.RiskMetrics) (int, []models.RiskFactor) {
	raw := 0.0
	factors := make([]models.RiskFactor, 0, 3)

	if metrics.AttendanceRate < attendanceThreshold {
		c := (100 - metrics.AttendanceRate) * attendanceWeight
		raw += c
		factors = append(factors, models.RiskFactor{Name: models.FactorAttendance, Contribution: c, Explanation: "Low attendance"})
	}
	if metrics.AverageGrade < gradeThreshold {
		c := (100 - metrics.AverageGrade) * gradeWeight
		raw += c
		factors = append(factors, models.RiskFactor{Name: models.FactorGrades, Contribution: c, Explanation: "Low academic performance"})
	}
	if metrics.MissedAssignments > missedThreshold {
		c := float64(metrics.MissedAssignments * missedAssignmentWeight)
		raw += c
		factors = append(factors, models.RiskFactor{
			Name:         models.FactorAssignments,
			Contribution: c,
			Explanation:  fmt.Sprintf("%d missed assignments", metrics.MissedAssignments),
		})
	}

	score := int(math.Min(models.RiskScoreMax, math.Floor(raw)))
	if score < lowScoreFloor && m.jitter != nil {
		score = clamp(m.jitter(), 0, maxJitter)
	}
	return score, factors
}

// RiskEvaluation is a prediction enriched with level, component scores and a recommendation.
type RiskEvaluation struct {
	Score            int
	Level            models.RiskLevel
	Factors          []models.RiskFactor
	AttendanceScore  int
	GradesScore      int
	AssignmentsScore int
	Recommendation   string
}

// RiskCalculator wraps a RiskModel with the bookkeeping every assessment needs.
type RiskCalculator struct {
	model RiskModel
}

// NewRiskCalculator creates a calculator around model.
func NewRiskCalculator(model RiskModel) *RiskCalculator {
	return &RiskCalculator{model: model}
}

// Evaluate predicts the score and derives the rest of the assessment from it.
func (c *RiskCalculator) Evaluate(ctx context.Context, metrics models.RiskMetrics) (RiskEvaluation, error) {
	prediction, err := c.model.Predict(ctx, metrics)
	if err != nil {
		return RiskEvaluation{}, err
	}
	score := clamp(prediction.Score, 0, models.RiskScoreMax)
	level := models.RiskLevelFromScore(score)
	factors := prediction.Factors
	if factors == nil {
		factors = []models.RiskFactor{}
	}
	return RiskEvaluation{
		Score:            score,
		Level:            level,
		Factors:          factors,
		AttendanceScore:  AttendanceComponentScore(metrics.AttendanceRate),
		GradesScore:      GradesComponentScore(metrics.AverageGrade),
		AssignmentsScore: AssignmentsComponentScore(metrics.MissedAssignments),
		Recommendation:   RecommendationFor(level),
	}, nil
}

// AttendanceComponentScore is the absence percentage, 0-100.
func AttendanceComponentScore(attendanceRate float64) int {
	return clamp(int(math.Round(100-attendanceRate)), 0, 100)
}

// GradesComponentScore is the distance of the average from a perfect grade, 0-100.
func GradesComponentScore(averageGrade float64) int {
	return clamp(int(math.Round(100-averageGrade)), 0, 100)
}

// AssignmentsComponentScore grows by 10 per missed assignment, capped at 100.
func AssignmentsComponentScore(missed int) int {
	return clamp(missed*10, 0, 100)
}

// RecommendationFor returns the advice attached to a level.
func RecommendationFor(level models.RiskLevel) string {
	switch level {
	case models.RiskCritical:
		return RecommendationCritical
	case models.RiskHigh:
		return RecommendationHigh
	case models.RiskMedium:
		return RecommendationMedium
	default:
		return RecommendationLow
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
