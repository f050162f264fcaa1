// Package app builds the service graph from configuration. The server and the
// admin CLI share it.
package app

import (
	"context"
	"time"

	appservice "github.com/turtacn/acadmin/internal/application/service"
	"github.com/turtacn/acadmin/internal/config"
	"github.com/turtacn/acadmin/internal/domain/service"
	"github.com/turtacn/acadmin/internal/infrastructure/audit"
	"github.com/turtacn/acadmin/internal/infrastructure/consumers"
	"github.com/turtacn/acadmin/internal/infrastructure/crypto"
	"github.com/turtacn/acadmin/internal/infrastructure/messaging"
	"github.com/turtacn/acadmin/internal/infrastructure/persistence/postgres"
	redisinfra "github.com/turtacn/acadmin/internal/infrastructure/persistence/redis"
	"github.com/turtacn/acadmin/internal/infrastructure/ratelimit"
	"github.com/turtacn/acadmin/internal/infrastructure/revocation"
	"github.com/turtacn/acadmin/pkg/constants"
	"github.com/turtacn/acadmin/pkg/logger"
)

// App holds the infrastructure connections and the application services.
type App struct {
	Config *config.Config
	DB     *postgres.DBConnection
	// Redis is nil when redis.enabled is false.
	Redis     *redisinfra.RedisConnection
	Publisher service.EventPublisher
	// RevocationConsumer is set when revocations are kept in memory and
	// shared over Kafka. The caller runs it.
	RevocationConsumer *consumers.RevocationConsumer
	// Audit is nil when audit.enabled is false.
	Audit *audit.GormAuditService

	Auth        appservice.AuthAppService
	Users       appservice.UserAppService
	Courses     appservice.CourseAppService
	Records     appservice.RecordAppService
	Reservation appservice.ReservationAppService
	Internships appservice.InternshipAppService
	Risk        appservice.RiskAppService

	logger logger.Logger
}

// New connects to the configured backends and wires every service. On error
// the connections opened so far are closed.
func New(ctx context.Context, cfg *config.Config, metrics service.Metrics, log logger.Logger) (_ *App, err error) {
	a := &App{Config: cfg, logger: log.WithComponent("app")}
	defer func() {
		if err != nil {
			a.Close(context.Background())
		}
	}()

	if a.DB, err = postgres.NewDBConnection(ctx, &cfg.Database, log); err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err = postgres.Migrate(ctx, a.DB.DB(), log); err != nil {
			return nil, err
		}
	}

	if cfg.Audit.Enabled {
		a.Audit = audit.NewGormAuditService(a.DB.DB(), audit.NewSigner(cfg.Audit.HMACKey), log)
		if cfg.Database.AutoMigrate {
			if err = a.Audit.Migrate(ctx); err != nil {
				return nil, err
			}
		}
	}

	a.Publisher = messaging.NewPublisher(&cfg.Kafka, log)

	var (
		revoked service.TokenRevocationList
		limiter service.LoginAttemptLimiter
	)
	if cfg.Redis.Enabled {
		if a.Redis, err = redisinfra.NewRedisConnection(ctx, &cfg.Redis, log); err != nil {
			return nil, err
		}
		revoked = revocation.NewRedisRevocationList(a.Redis, log)
		limiter = ratelimit.NewRedisLoginLimiter(a.Redis, constants.LoginMaxFailures, constants.LoginFailureWindow, log)
	} else {
		a.logger.Warn(ctx, "Redis disabled, auth state is kept in process memory")
		memory := revocation.NewMemoryRevocationList()
		revoked = memory
		if cfg.Kafka.Enabled() {
			revoked = revocation.NewBroadcastingRevocationList(memory, a.Publisher, log)
			a.RevocationConsumer = consumers.NewRevocationConsumer(&cfg.Kafka, memory, log)
		}
		limiter = ratelimit.NewMemoryLoginLimiter(constants.LoginMaxFailures, constants.LoginFailureWindow)
	}

	secrets, err := newSecretProvider(cfg, log)
	if err != nil {
		return nil, err
	}
	tokens := crypto.NewJWTManager(secrets, cfg.JWT.Issuer, cfg.JWT.TTL(), log)

	db := a.DB.DB()
	users := postgres.NewUserRepository(db, log)
	groups := postgres.NewGroupRepository(db, log)
	enrollments := postgres.NewEnrollmentRepository(db, log)
	attendance := postgres.NewAttendanceRepository(db, log)
	grades := postgres.NewGradeRepository(db, log)
	submissions := postgres.NewSubmissionRepository(db, log)

	a.Auth = appservice.NewAuthAppService(users, crypto.NewBcryptHasher(0), tokens, revoked, limiter, log)
	a.Users = appservice.NewUserAppService(users, log)
	a.Courses = appservice.NewCourseAppService(postgres.NewSubjectRepository(db, log), groups, enrollments, users, log)
	a.Records = appservice.NewRecordAppService(enrollments, attendance, grades, submissions, log)
	a.Reservation = appservice.NewReservationAppService(
		postgres.NewResourceRepository(db, log), postgres.NewReservationRepository(db, log), a.Publisher, metrics, log)
	a.Internships = appservice.NewInternshipAppService(postgres.NewInternshipRepository(db, log), users, a.Publisher, log)
	a.Risk = appservice.NewRiskAppService(appservice.RiskDependencies{
		Users:         users,
		Groups:        groups,
		Enrollments:   enrollments,
		Attendance:    attendance,
		Grades:        grades,
		Submissions:   submissions,
		Risks:         postgres.NewRiskRepository(db, log),
		Calculator:    service.NewRiskCalculator(NewRiskModel(&cfg.Risk)),
		Publisher:     a.Publisher,
		Metrics:       metrics,
		GatherTimeout: time.Duration(cfg.Risk.GatherTimeout) * time.Second,
	}, log)

	return a, nil
}

// Auditor returns the audit service, or nil when auditing is disabled.
func (a *App) Auditor() service.AuditService {
	if a.Audit == nil {
		return nil
	}
	return a.Audit
}

// NewRiskModel builds the heuristic model with the configured jitter strategy.
func NewRiskModel(cfg *config.RiskConfig) *service.HeuristicRiskModel {
	switch {
	case !cfg.JitterEnabled:
		return service.NewHeuristicRiskModel(service.WithoutJitter())
	case cfg.JitterSeed != 0:
		return service.NewHeuristicRiskModel(service.WithJitter(service.NewRandomJitter(uint64(cfg.JitterSeed))))
	default:
		return service.NewHeuristicRiskModel()
	}
}

func newSecretProvider(cfg *config.Config, log logger.Logger) (crypto.SecretProvider, error) {
	if !cfg.Vault.Enabled {
		static, err := crypto.NewStaticSecretProvider(cfg.JWT.Secret)
		if err != nil {
			return nil, err
		}
		return static, nil
	}
	client, err := crypto.NewVaultClient(&cfg.Vault, log)
	if err != nil {
		return nil, err
	}
	return crypto.NewVaultSecretProvider(client, cfg.Vault.SecretPath, log), nil
}

// Close releases the connections.
func (a *App) Close(ctx context.Context) {
	if a.RevocationConsumer != nil {
		if err := a.RevocationConsumer.Close(); err != nil {
			a.logger.Error(ctx, "Failed to close revocation consumer", err)
		}
	}
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			a.logger.Error(ctx, "Failed to close event publisher", err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.logger.Error(ctx, "Failed to close Redis connection", err)
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
