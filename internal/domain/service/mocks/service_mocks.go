package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/service"
)

// MockRiskModel is a mock implementation of service.RiskModel
type MockRiskModel struct {
	mock.Mock
}

func (m *MockRiskModel) Predict(ctx context.Context, metrics models.RiskMetrics) (service.RiskPrediction, error) {
	args := m.Called(ctx, metrics)
	return args.Get(0).(service.RiskPrediction), args.Error(1)
}

// MockEventPublisher is a mock implementation of service.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event models.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockPasswordHasher is a mock implementation of service.PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

// MockTokenManager is a mock implementation of service.TokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Issue(ctx context.Context, user *models.User) (string, *models.Claims, error) {
	args := m.Called(ctx, user)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.Claims), args.Error(2)
}

func (m *MockTokenManager) Verify(ctx context.Context, token string) (*models.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Claims), args.Error(1)
}

// MockTokenRevocationList is a mock implementation of service.TokenRevocationList
type MockTokenRevocationList struct {
	mock.Mock
}

func (m *MockTokenRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	args := m.Called(ctx, jti, ttl)
	return args.Error(0)
}

func (m *MockTokenRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

// MockLoginAttemptLimiter is a mock implementation of service.LoginAttemptLimiter
type MockLoginAttemptLimiter struct {
	mock.Mock
}

func (m *MockLoginAttemptLimiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoginAttemptLimiter) RecordFailure(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockLoginAttemptLimiter) Reset(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockMetrics is a mock implementation of service.Metrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.Called(method, route, status, duration)
}

func (m *MockMetrics) RecordRiskAssessment(level models.RiskLevel) {
	m.Called(level)
}

func (m *MockMetrics) RecordReservationConflict() {
	m.Called()
}
