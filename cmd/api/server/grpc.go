package server

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"

	grpcadapter "twitter-api/internal/adapter/grpc"
	"twitter-api/internal/adapter/grpc/middleware"
	"twitter-api/internal/adapter/ratelimit"
	"twitter-api/pkg/logger"
)

// SetupGRPC creates and configures the gRPC server
func SetupGRPC(svc grpcadapter.TwitterServiceServer, limiter *ratelimit.Limiter, l *zap.Logger) *grpc.Server {
	// Request IDs are assigned before rate limiting so rejections are traceable
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logger.RequestIDInterceptor(),
			middleware.RateLimitInterceptor(limiter),
		),
	)
	grpcadapter.RegisterTwitterServiceServer(grpcServer, svc)

	l.Info("gRPC service registered", zap.String("service", grpcadapter.ServiceName))
	return grpcServer
}
