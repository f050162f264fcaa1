package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/turtacn/acadmin/internal/app"
	"github.com/turtacn/acadmin/internal/config"
	"github.com/turtacn/acadmin/internal/infrastructure/monitoring"
	grpcserver "github.com/turtacn/acadmin/internal/interfaces/grpc"
	httpserver "github.com/turtacn/acadmin/internal/interfaces/http"
	"github.com/turtacn/acadmin/internal/interfaces/http/handlers"
	"github.com/turtacn/acadmin/pkg/logger"
)

const (
	shutdownTimeout     = 15 * time.Second
	dependencyProbeRate = 10 * time.Second
)

func main() {
	configFile := flag.String("config", os.Getenv("ACADMIN_CONFIG"), "path to the config file")
	flag.Parse()

	// Logger for startup
	startupLogger, err := monitoring.NewZapLogger(&config.LogConfig{Level: "info"})
	if err != nil {
		log.Fatalf("Failed to create startup logger: %v", err)
	}

	loader := config.NewLoader(*configFile, startupLogger)
	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	appLogger := zapLogger.WithComponent("server")

	// Only the log level is hot-reloadable; everything else needs a restart.
	loader.Watch(func(updated *config.Config) {
		zapLogger.SetLevel(updated.Log.Level)
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracing, err := monitoring.NewTracingManager(&cfg.Tracing, cfg.Environment, zapLogger)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize tracing", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := monitoring.NewMetrics(registry)

	application, err := app.New(ctx, cfg, metrics, zapLogger)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize application", err)
	}

	httpDeps := map[string]handlers.Pinger{"database": application.DB}
	grpcDeps := map[string]grpcserver.Pinger{"database": application.DB}
	if application.Redis != nil {
		httpDeps["redis"] = application.Redis
		grpcDeps["redis"] = application.Redis
	}

	router := httpserver.NewRouter(cfg, zapLogger, httpserver.Handlers{
		Health:      handlers.NewHealthHandler(httpDeps, zapLogger),
		Auth:        handlers.NewAuthHandler(application.Auth),
		User:        handlers.NewUserHandler(application.Users),
		Course:      handlers.NewCourseHandler(application.Courses),
		Record:      handlers.NewRecordHandler(application.Records),
		Reservation: handlers.NewReservationHandler(application.Reservation),
		Internship:  handlers.NewInternshipHandler(application.Internships),
		Risk:        handlers.NewRiskHandler(application.Risk),
	}, application.Auth, tracing.Tracer(), metrics, registry, application.Auditor())

	grpcServer := grpcserver.NewServer(grpcDeps, zapLogger)
	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr())
	if err != nil {
		appLogger.Fatal(ctx, "Failed to listen for gRPC", err, logger.String("address", cfg.Server.GRPCAddr()))
	}

	errCh := make(chan error, 2)
	go func() { errCh <- router.Start() }()
	go func() { errCh <- grpcServer.Serve(lis) }()
	go grpcServer.WatchDependencies(ctx, dependencyProbeRate)
	if application.RevocationConsumer != nil {
		go application.RevocationConsumer.Run(ctx)
	}

	select {
	case <-ctx.Done():
		appLogger.Info(context.Background(), "Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			appLogger.Error(context.Background(), "Server failed", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := router.Stop(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "HTTP server shutdown failed", err)
	}
	grpcServer.Stop(shutdownCtx)
	_ = tracing.Shutdown(shutdownCtx)
	application.Close(shutdownCtx)

	appLogger.Info(shutdownCtx, "Server exited")
}
