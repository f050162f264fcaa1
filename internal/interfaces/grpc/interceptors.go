package grpc

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/grpc"
	grpcCodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

// InterceptorChain holds the unary interceptors of the gRPC server.
type InterceptorChain struct {
	log logger.Logger
}

// NewInterceptorChain creates the interceptor chain.
func NewInterceptorChain(log logger.Logger) *InterceptorChain {
	return &InterceptorChain{log: log}
}

// UnaryRecoveryInterceptor turns a handler panic into codes.Internal.
func (ic *InterceptorChain) UnaryRecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				ic.log.Error(ctx, "gRPC handler panic recovered", fmt.Errorf("%v", r),
					logger.String("method", info.FullMethod),
				)
				err = status.Error(grpcCodes.Internal, "internal server error")
			}
		}()

		return handler(ctx, req)
	}
}

// UnaryLoggingInterceptor logs every call once it completes.
func (ic *InterceptorChain) UnaryLoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		startTime := time.Now()

		var userAgent string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if agents := md.Get("user-agent"); len(agents) > 0 {
				userAgent = agents[0]
			}
		}

		resp, err := handler(ctx, req)

		fields := logger.Merge(
			logger.String("method", info.FullMethod),
			logger.Int64("duration_ms", time.Since(startTime).Milliseconds()),
			logger.String("status", status.Code(err).String()),
			logger.String("user_agent", userAgent),
		)
		if status.Code(err) == grpcCodes.Internal {
			ic.log.Error(ctx, "gRPC request failed", err, fields)
		} else {
			ic.log.Debug(ctx, "gRPC request completed", fields)
		}
		return resp, err
	}
}

// UnaryErrorInterceptor converts AppErrors into gRPC statuses.
func (ic *InterceptorChain) UnaryErrorInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return resp, toStatus(err)
	}
}

func toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	appErr, ok := errors.As(err)
	if !ok {
		return status.Error(grpcCodes.Internal, "internal server error")
	}

	switch appErr.HTTPStatus {
	case http.StatusBadRequest:
		return status.Error(grpcCodes.InvalidArgument, appErr.Message)
	case http.StatusUnauthorized:
		return status.Error(grpcCodes.Unauthenticated, appErr.Message)
	case http.StatusForbidden:
		return status.Error(grpcCodes.PermissionDenied, appErr.Message)
	case http.StatusNotFound:
		return status.Error(grpcCodes.NotFound, appErr.Message)
	case http.StatusConflict:
		return status.Error(grpcCodes.AlreadyExists, appErr.Message)
	case http.StatusTooManyRequests:
		return status.Error(grpcCodes.ResourceExhausted, appErr.Message)
	case http.StatusServiceUnavailable:
		return status.Error(grpcCodes.Unavailable, appErr.Message)
	default:
		return status.Error(grpcCodes.Internal, "internal server error")
	}
}

// ChainUnaryInterceptors returns the chain as a server option. Recovery runs
// outermost so a panic in any other interceptor is caught too.
func (ic *InterceptorChain) ChainUnaryInterceptors() grpc.ServerOption {
	return grpc.ChainUnaryInterceptor(
		ic.UnaryRecoveryInterceptor(),
		ic.UnaryLoggingInterceptor(),
		ic.UnaryErrorInterceptor(),
	)
}
