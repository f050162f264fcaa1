package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/config"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/service"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Environment: "development",
		Database: config.DatabaseConfig{
			Driver:      "sqlite",
			SQLitePath:  filepath.Join(t.TempDir(), "acadmin.db"),
			AutoMigrate: true,
		},
		JWT:  config.JWTConfig{Secret: strings.Repeat("s", 32), Issuer: "acadmin-test"},
		Risk: config.RiskConfig{JitterEnabled: false, GatherTimeout: 2},
	}
}

func TestNew_WiresServicesOnSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Audit = config.AuditConfig{Enabled: true, HMACKey: "audit-key"}
	a, err := New(ctx, cfg, service.NewNoopMetrics(), logger.NewNoopLogger())
	require.NoError(t, err)
	defer a.Close(ctx)

	assert.Nil(t, a.Redis)
	require.NotNil(t, a.Auditor())
	events, err := a.Audit.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
	require.NoError(t, a.DB.Ping(ctx))

	admin, err := a.Auth.CreateUser(ctx, &dto.RegisterRequest{
		Email: "root@uni.edu", Password: "change-me-now", FullName: "Root",
	}, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, admin.Roles)

	token, err := a.Auth.Login(ctx, &dto.LoginRequest{Email: "root@uni.edu", Password: "change-me-now"})
	require.NoError(t, err)

	claims, err := a.Auth.Authenticate(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.UserID)
	assert.Equal(t, "acadmin-test", claims.Issuer)

	_, err = a.Risk.AssessGroup(ctx, 99)
	assert.True(t, errors.IsNotFound(err))
}

func TestNew_RejectsShortSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.JWT.Secret = "short"
	a, err := New(context.Background(), cfg, nil, logger.NewNoopLogger())
	require.Error(t, err)
	assert.Nil(t, a)
}

func TestNewRiskModel(t *testing.T) {
	perfect := models.RiskMetrics{AttendanceRate: 100, AverageGrade: 100}

	score, _ := NewRiskModel(&config.RiskConfig{JitterEnabled: false}).Score(perfect)
	assert.Equal(t, 0, score)

	first := NewRiskModel(&config.RiskConfig{JitterEnabled: true, JitterSeed: 42})
	second := NewRiskModel(&config.RiskConfig{JitterEnabled: true, JitterSeed: 42})
	for i := 0; i < 5; i++ {
		a, _ := first.Score(perfect)
		b, _ := second.Score(perfect)
		assert.Equal(t, a, b)
		assert.LessOrEqual(t, a, 10)
	}
}

func TestNew_SharesMemoryRevocationsOverKafka(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := New(ctx, cfg, nil, logger.NewNoopLogger())
	require.NoError(t, err)
	assert.Nil(t, a.RevocationConsumer)
	assert.Nil(t, a.Auditor())
	a.Close(ctx)

	cfg.Kafka = config.KafkaConfig{Brokers: []string{"127.0.0.1:9092"}, Topic: "acadmin.events"}
	a, err = New(ctx, cfg, nil, logger.NewNoopLogger())
	require.NoError(t, err)
	assert.NotNil(t, a.RevocationConsumer)
	a.Close(ctx)
}
