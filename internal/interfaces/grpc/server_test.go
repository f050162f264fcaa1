package grpc

import (
	"context"
	"fmt"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	grpcCodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

type togglePinger struct {
	down atomic.Bool
}

func (p *togglePinger) Ping(context.Context) error {
	if p.down.Load() {
		return fmt.Errorf("connection refused")
	}
	return nil
}

func dial(t *testing.T, s *Server) healthpb.HealthClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Stop(ctx)
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func TestServer_HealthFollowsDependencies(t *testing.T) {
	db := &togglePinger{}
	s := NewServer(map[string]Pinger{"database": db, "redis": nil}, logger.NewNoopLogger())
	client := dial(t, s)
	ctx := context.Background()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	db.down.Store(true)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, s.Probe(ctx))
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	db.down.Store(false)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, s.Probe(ctx))

	_, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: "unknown.Service"})
	assert.Equal(t, grpcCodes.NotFound, status.Code(err))
}

func TestServer_WatchDependencies(t *testing.T) {
	db := &togglePinger{}
	db.down.Store(true)
	s := NewServer(map[string]Pinger{"database": db}, logger.NewNoopLogger())
	client := dial(t, s)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.WatchDependencies(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_NOT_SERVING
	}, time.Second, 10*time.Millisecond)
}

func TestInterceptors(t *testing.T) {
	ic := NewInterceptorChain(logger.NewNoopLogger())
	info := &grpc.UnaryServerInfo{FullMethod: "/acadmin.v1.API/Test"}
	ctx := context.Background()

	_, err := ic.UnaryRecoveryInterceptor()(ctx, nil, info, func(context.Context, interface{}) (interface{}, error) {
		panic("boom")
	})
	assert.Equal(t, grpcCodes.Internal, status.Code(err))

	tests := []struct {
		err  error
		code grpcCodes.Code
	}{
		{errors.ErrNotFound("user", 3), grpcCodes.NotFound},
		{errors.ErrInvalidRequest("bad"), grpcCodes.InvalidArgument},
		{errors.ErrUnauthorized("no"), grpcCodes.Unauthenticated},
		{errors.ErrForbidden("no"), grpcCodes.PermissionDenied},
		{errors.ErrConflict("taken"), grpcCodes.AlreadyExists},
		{errors.ErrRateLimitExceeded("login"), grpcCodes.ResourceExhausted},
		{errors.ErrServiceUnavailable("down"), grpcCodes.Unavailable},
		{fmt.Errorf("raw"), grpcCodes.Internal},
		{status.Error(grpcCodes.Canceled, "gone"), grpcCodes.Canceled},
	}
	errorInterceptor := ic.UnaryErrorInterceptor()
	for _, tt := range tests {
		_, err := errorInterceptor(ctx, nil, info, func(context.Context, interface{}) (interface{}, error) {
			return nil, tt.err
		})
		assert.Equal(t, tt.code, status.Code(err), tt.err.Error())
	}

	resp, err := ic.UnaryLoggingInterceptor()(ctx, "req", info, func(_ context.Context, req interface{}) (interface{}, error) {
		return req, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "req", resp)
}
