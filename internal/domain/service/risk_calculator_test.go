package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/acadmin/internal/domain/models"
)

func metrics(att, grade float64, missed int) models.RiskMetrics {
	return models.RiskMetrics{AttendanceRate: att, AverageGrade: grade, MissedAssignments: missed}
}

func factorNames(factors []models.RiskFactor) []string {
	names := make([]string, 0, len(factors))
	for _, f := range factors {
		names = append(names, f.Name)
	}
	return names
}

func TestHeuristicRiskModel_Contributions(t *testing.T) {
	m := NewHeuristicRiskModel(WithoutJitter())

	t.Run("attendance only", func(t *testing.T) {
		score, factors := m.Score(metrics(50, 100, 0))
		assert.Equal(t, 20, score)
		require.Len(t, factors, 1)
		assert.Equal(t, models.FactorAttendance, factors[0].Name)
		assert.InDelta(t, 20.0, factors[0].Contribution, 1e-9)
		assert.Equal(t, "Low attendance", factors[0].Explanation)
	})

	t.Run("grades only", func(t *testing.T) {
		score, factors := m.Score(metrics(100, 40, 0))
		assert.Equal(t, 24, score)
		require.Len(t, factors, 1)
		assert.Equal(t, "Low academic performance", factors[0].Explanation)
	})

	t.Run("assignments only", func(t *testing.T) {
		score, factors := m.Score(metrics(100, 100, 5))
		assert.Equal(t, 25, score)
		require.Len(t, factors, 1)
		assert.Equal(t, "5 missed assignments", factors[0].Explanation)
	})

	t.Run("combined example", func(t *testing.T) {
		score, factors := m.Score(metrics(50, 40, 5))
		assert.Equal(t, 69, score)
		assert.Equal(t, models.RiskHigh, models.RiskLevelFromScore(score))
		assert.Equal(t, []string{models.FactorAttendance, models.FactorGrades, models.FactorAssignments}, factorNames(factors))
	})

	t.Run("thresholds are strict", func(t *testing.T) {
		score, factors := m.Score(metrics(70, 60, 2))
		assert.Equal(t, 0, score)
		assert.Empty(t, factors)
	})

	t.Run("clamped to 100", func(t *testing.T) {
		score, _ := m.Score(metrics(0, 0, 20))
		assert.Equal(t, 100, score)
	})

	t.Run("floors fractional scores", func(t *testing.T) {
		// (100-45.5)*0.4 = 21.8
		score, _ := m.Score(metrics(45.5, 100, 0))
		assert.Equal(t, 21, score)

		// (100-27.50000000125)*0.4 = 28.9999999995
		score, _ = m.Score(metrics(27.50000000125, 100, 0))
		assert.Equal(t, 28, score)
	})
}

func TestHeuristicRiskModel_LowScoreJitter(t *testing.T) {
	t.Run("injected jitter replaces low scores", func(t *testing.T) {
		m := NewHeuristicRiskModel(WithJitter(FixedJitter(7)))
		score, factors := m.Score(metrics(95, 90, 0))
		assert.Equal(t, 7, score)
		assert.Empty(t, factors)
	})

	t.Run("jitter does not touch scores of ten or more", func(t *testing.T) {
		m := NewHeuristicRiskModel(WithJitter(FixedJitter(3)))
		score, _ := m.Score(metrics(100, 100, 3))
		assert.Equal(t, 15, score)
	})

	t.Run("out of range jitter is clamped", func(t *testing.T) {
		m := NewHeuristicRiskModel(WithJitter(FixedJitter(42)))
		score, _ := m.Score(metrics(100, 100, 0))
		assert.Equal(t, 10, score)
	})

	t.Run("random jitter stays within bounds", func(t *testing.T) {
		m := NewHeuristicRiskModel()
		for i := 0; i < 500; i++ {
			score, _ := m.Score(metrics(100, 100, 0))
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 10)
		}
	})

	t.Run("seeded jitter is reproducible", func(t *testing.T) {
		a, b := NewRandomJitter(42), NewRandomJitter(42)
		for i := 0; i < 20; i++ {
			assert.Equal(t, a(), b())
		}
	})
}

func TestHeuristicRiskModel_ScoreAlwaysInRange(t *testing.T) {
	m := NewHeuristicRiskModel()
	for att := 0.0; att <= 100; att += 12.5 {
		for grade := 0.0; grade <= 100; grade += 12.5 {
			for missed := 0; missed <= 25; missed += 5 {
				score, _ := m.Score(metrics(att, grade, missed))
				assert.GreaterOrEqual(t, score, 0)
				assert.LessOrEqual(t, score, 100)
			}
		}
	}
}

func TestHeuristicRiskModel_Idempotent(t *testing.T) {
	m := NewHeuristicRiskModel()
	s1, f1 := m.Score(metrics(55, 35, 4))
	s2, f2 := m.Score(metrics(55, 35, 4))
	assert.Equal(t, s1, s2)
	assert.Equal(t, f1, f2)
}

func TestRiskCalculator_Evaluate(t *testing.T) {
	calc := NewRiskCalculator(NewHeuristicRiskModel(WithoutJitter()))

	eval, err := calc.Evaluate(context.Background(), metrics(50, 40, 5))
	require.NoError(t, err)
	assert.Equal(t, 69, eval.Score)
	assert.Equal(t, models.RiskHigh, eval.Level)
	assert.Equal(t, 50, eval.AttendanceScore)
	assert.Equal(t, 60, eval.GradesScore)
	assert.Equal(t, 50, eval.AssignmentsScore)
	assert.Equal(t, RecommendationHigh, eval.Recommendation)

	eval, err = calc.Evaluate(context.Background(), metrics(100, 100, 0))
	require.NoError(t, err)
	assert.Equal(t, models.RiskLow, eval.Level)
	assert.NotNil(t, eval.Factors)
	assert.Equal(t, RecommendationLow, eval.Recommendation)
}

func TestComponentScores_Clamped(t *testing.T) {
	assert.Equal(t, 0, AttendanceComponentScore(120))
	assert.Equal(t, 100, AttendanceComponentScore(-5))
	assert.Equal(t, 0, GradesComponentScore(100))
	assert.Equal(t, 100, AssignmentsComponentScore(15))
	assert.Equal(t, 0, AssignmentsComponentScore(0))
}

func TestRecommendationFor(t *testing.T) {
	assert.Equal(t, RecommendationCritical, RecommendationFor(models.RiskCritical))
	assert.Equal(t, RecommendationMedium, RecommendationFor(models.RiskMedium))
}
