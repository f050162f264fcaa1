// Package grpc serves the operational gRPC surface: the standard health
// service, kept in sync with the service's dependencies.
package grpc

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/turtacn/acadmin/pkg/logger"
)

// ServiceName is the health service name reported for the whole API.
const ServiceName = "acadmin.v1.API"

// Pinger is a dependency whose reachability decides the serving status.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wraps a grpc.Server with its health service.
type Server struct {
	server       *grpc.Server
	health       *health.Server
	dependencies map[string]Pinger
	log          logger.Logger
}

// NewServer creates the gRPC server. Nil dependencies are skipped.
func NewServer(dependencies map[string]Pinger, log logger.Logger) *Server {
	log = log.WithComponent("grpc")
	deps := make(map[string]Pinger, len(dependencies))
	for name, p := range dependencies {
		if p != nil {
			deps[name] = p
		}
	}

	server := grpc.NewServer(NewInterceptorChain(log).ChainUnaryInterceptors())
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	reflection.Register(server)

	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return &Server{server: server, health: healthServer, dependencies: deps, log: log}
}

// Serve accepts connections on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info(context.Background(), "Starting gRPC server", logger.String("address", lis.Addr().String()))
	if err := s.server.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return err
	}
	return nil
}

// Probe pings every dependency once and updates the serving status.
func (s *Server) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	state := healthpb.HealthCheckResponse_SERVING
	for name, dep := range s.dependencies {
		if err := dep.Ping(ctx); err != nil {
			s.log.Warn(ctx, "Dependency unreachable", logger.String("dependency", name), logger.String("error", err.Error()))
			state = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus(ServiceName, state)
	s.health.SetServingStatus("", state)
	return state
}

// WatchDependencies probes every interval until ctx is done.
func (s *Server) WatchDependencies(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		s.Probe(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Stop drains in-flight calls, or stops hard when ctx expires first.
func (s *Server) Stop(ctx context.Context) {
	s.health.Shutdown()
	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.server.Stop()
	}
	s.log.Info(ctx, "gRPC server stopped")
}
