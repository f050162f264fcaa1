// Package service defines the domain services and the ports they depend on.
package service

import (
	"context"
	"time"

	"github.com/turtacn/acadmin/internal/domain/models"
)

// RiskPrediction is the output of a risk model: a 0-100 score and the ordered
// factors that produced it.
type RiskPrediction struct {
	Score   int
	Factors []models.RiskFactor
}

//go:generate mockery --name RiskModel --output mocks --outpkg mocks
// RiskModel turns observed academic metrics into a risk prediction. The heuristic
// model satisfies it today; a trained model can replace it without touching callers.
type RiskModel interface {
	Predict(ctx context.Context, metrics models.RiskMetrics) (RiskPrediction, error)
}

//go:generate mockery --name EventPublisher --output mocks --outpkg mocks
// EventPublisher delivers domain events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event models.DomainEvent) error
	Close() error
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}

//go:generate mockery --name TokenManager --output mocks --outpkg mocks
// TokenManager issues and verifies access tokens.
type TokenManager interface {
	Issue(ctx context.Context, user *models.User) (string, *models.Claims, error)
	Verify(ctx context.Context, token string) (*models.Claims, error)
}

// TokenRevocationList remembers logged-out token IDs until they would have expired.
type TokenRevocationList interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// LoginAttemptLimiter throttles repeated failed logins for one key (the email).
type LoginAttemptLimiter interface {
	// Allow reports whether another attempt is permitted.
	Allow(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// AuditService keeps the trail of state-changing calls.
type AuditService interface {
	Record(ctx context.Context, event *models.AuditEvent) error
}

// Metrics records business and transport metrics.
// This abstraction keeps the application layer independent of Prometheus.
type Metrics interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
	RecordRiskAssessment(level models.RiskLevel)
	RecordReservationConflict()
}

type noopMetrics struct{}

// NewNoopMetrics returns a Metrics that records nothing.
func NewNoopMetrics() Metrics { return noopMetrics{} }

func (noopMetrics) RecordHTTPRequest(string, string, int, time.Duration) {}
func (noopMetrics) RecordRiskAssessment(models.RiskLevel)               {}
func (noopMetrics) RecordReservationConflict()                          {}
