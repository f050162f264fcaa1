// Package http wires the gin engine: middleware, health and metrics endpoints
// and the /api/v1 routes.
package http

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/turtacn/acadmin/internal/config"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/service"
	"github.com/turtacn/acadmin/internal/interfaces/http/handlers"
	"github.com/turtacn/acadmin/internal/interfaces/http/middleware"
	"github.com/turtacn/acadmin/pkg/constants"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

var (
	staff      = []models.RoleName{models.RoleAdmin, models.RoleCoordinator, models.RoleTeacher}
	management = []models.RoleName{models.RoleAdmin, models.RoleCoordinator}
)

// Handlers groups the API handlers mounted by the router.
type Handlers struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Course      *handlers.CourseHandler
	Record      *handlers.RecordHandler
	Reservation *handlers.ReservationHandler
	Internship  *handlers.InternshipHandler
	Risk        *handlers.RiskHandler
}

// Router HTTP router
type Router struct {
	engine   *gin.Engine
	config   *config.Config
	logger   logger.Logger
	handlers Handlers
	auth     middleware.Authenticator
	tracer   trace.Tracer
	metrics  service.Metrics
	gatherer prometheus.Gatherer
	auditor  service.AuditService
	server   *http.Server
}

// NewRouter creates the router and registers every route. A nil auditor
// disables the audit trail.
func NewRouter(
	cfg *config.Config,
	log logger.Logger,
	h Handlers,
	auth middleware.Authenticator,
	tracer trace.Tracer,
	metrics service.Metrics,
	gatherer prometheus.Gatherer,
	auditor service.AuditService,
) *Router {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := &Router{
		engine:   gin.New(),
		config:   cfg,
		logger:   log.WithComponent("http_router"),
		handlers: h,
		auth:     auth,
		tracer:   tracer,
		metrics:  metrics,
		gatherer: gatherer,
		auditor:  auditor,
	}
	r.setupRoutes()
	r.server = &http.Server{
		Addr:           cfg.Server.Addr(),
		Handler:        r.engine,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    2 * time.Minute,
		MaxHeaderBytes: 1 << 20, // 1MB
	}
	return r
}

func (r *Router) setupRoutes() {
	r.engine.Use(
		middleware.RequestID(),
		middleware.Logging(r.logger),
		middleware.Recovery(r.logger),
		middleware.Observability(r.tracer, r.metrics),
	)

	corsConfig := cors.Config{
		AllowOrigins:     r.config.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", constants.HeaderRequestID},
		ExposeHeaders:    []string{constants.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 || slices.Contains(corsConfig.AllowOrigins, "*") {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.engine.Use(cors.New(corsConfig))
	if r.auditor != nil {
		r.engine.Use(middleware.Audit(r.auditor, r.logger))
	}

	r.engine.GET("/health", r.handlers.Health.HealthCheck)
	r.engine.GET("/ready", r.handlers.Health.ReadinessCheck)
	r.engine.GET("/live", r.handlers.Health.LivenessCheck)
	r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))

	if !r.config.IsProduction() {
		pprof.Register(r.engine)
	}

	requireJWT := middleware.RequireJWT(r.auth, r.logger)
	only := middleware.RequireRoles

	v1 := r.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.handlers.Auth.Register)
			auth.POST("/login", r.handlers.Auth.Login)
			auth.POST("/logout", requireJWT, r.handlers.Auth.Logout)
		}

		api := v1.Group("", requireJWT)

		users := api.Group("/users", only(models.RoleAdmin))
		{
			users.GET("", r.handlers.User.ListUsers)
			users.GET("/:id", r.handlers.User.GetUser)
			users.POST("/:id/roles", r.handlers.User.AssignRole)
			users.DELETE("/:id/roles/:role", r.handlers.User.RemoveRole)
			users.POST("/:id/activate", r.handlers.User.Activate)
			users.POST("/:id/deactivate", r.handlers.User.Deactivate)
		}

		api.GET("/subjects", r.handlers.Course.ListSubjects)
		api.POST("/subjects", only(management...), r.handlers.Course.CreateSubject)
		groups := api.Group("/groups")
		{
			groups.POST("", only(management...), r.handlers.Course.CreateGroup)
			groups.POST("/:id/enrollments", only(management...), r.handlers.Course.Enroll)
			groups.DELETE("/:id/enrollments/:student_id", only(management...), r.handlers.Course.Drop)
			groups.GET("/:id/students", only(staff...), r.handlers.Course.ListGroupStudents)
		}

		records := api.Group("/records", only(staff...))
		{
			records.POST("/attendance", r.handlers.Record.RecordAttendance)
			records.POST("/grades", r.handlers.Record.RecordGrade)
			records.POST("/submissions", r.handlers.Record.RecordSubmission)
		}

		api.POST("/resources", only(models.RoleAdmin), r.handlers.Reservation.CreateResource)
		api.GET("/resources/:id/reservations", r.handlers.Reservation.ListForResource)
		reservations := api.Group("/reservations")
		{
			reservations.POST("", r.handlers.Reservation.Reserve)
			reservations.POST("/:id/confirm", only(management...), r.handlers.Reservation.Confirm)
			reservations.POST("/:id/cancel", r.handlers.Reservation.Cancel)
		}

		internships := api.Group("/internships")
		{
			internships.POST("", only(management...), r.handlers.Internship.CreateInternship)
			internships.POST("/:id/applications", only(models.RoleStudent), r.handlers.Internship.Apply)
			internships.GET("/:id/applications", only(management...), r.handlers.Internship.ListApplications)
		}
		applications := api.Group("/applications", only(management...))
		{
			applications.POST("/:id/approve", r.handlers.Internship.Approve)
			applications.POST("/:id/reject", r.handlers.Internship.Reject)
		}

		risk := api.Group("/risk")
		{
			risk.POST("/students/:student_id/groups/:group_id/assess", only(staff...), r.handlers.Risk.CalculateRisk)
			risk.POST("/simulate", only(staff...), r.handlers.Risk.SimulateRisk)
			risk.POST("/groups/:group_id/assess", only(staff...), r.handlers.Risk.AssessGroup)
			risk.GET("/groups/:group_id/dashboard", only(staff...), r.handlers.Risk.GetGroupDashboard)
			risk.GET("/students/:student_id/groups/:group_id/factors", r.handlers.Risk.GetStudentRiskFactors)
			risk.GET("/students/:student_id/history", r.handlers.Risk.GetRiskHistory)
		}
	}

	r.engine.NoRoute(func(c *gin.Context) {
		middleware.AbortWithError(c, errors.ErrNotFound("route", c.Request.URL.Path))
	})
}

// Handler returns the engine, for tests and embedding.
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Start serves HTTP until Stop is called.
func (r *Router) Start() error {
	r.logger.Info(context.Background(), "Starting HTTP server", logger.String("address", r.server.Addr))
	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests until ctx expires.
func (r *Router) Stop(ctx context.Context) error {
	r.logger.Info(ctx, "Stopping HTTP server")
	return r.server.Shutdown(ctx)
}
