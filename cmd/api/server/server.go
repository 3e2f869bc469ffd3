package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	ginhandler "twitter-api/internal/adapter/gin/handler"
	grpcadapter "twitter-api/internal/adapter/grpc"
	"twitter-api/internal/adapter/ratelimit"
	"twitter-api/internal/config"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	GRPC   *grpc.Server
	HTTP   *http.Server
}

// New creates a new server instance with the gRPC and REST transports
// sharing one rate limiter.
func New(
	cfg *config.Config,
	l *zap.Logger,
	svc grpcadapter.TwitterServiceServer,
	userHandler *ginhandler.UserHandler,
	tweetHandler *ginhandler.TweetHandler,
	limiter *ratelimit.Limiter,
) *Server {
	s := &Server{Config: cfg, Logger: l}
	s.GRPC = SetupGRPC(svc, limiter, l)
	s.HTTP = SetupGinServer(userHandler, tweetHandler, limiter, s.httpAddress(), l)
	return s
}

// Run listens on the configured ports and serves until ctx is canceled or
// either transport fails.
func (s *Server) Run(ctx context.Context) error {
	lc := net.ListenConfig{}

	grpcLis, err := lc.Listen(ctx, "tcp", s.grpcAddress())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.grpcAddress(), err)
	}

	httpLis, err := lc.Listen(ctx, "tcp", s.httpAddress())
	if err != nil {
		_ = grpcLis.Close()
		return fmt.Errorf("failed to listen on %s: %w", s.httpAddress(), err)
	}

	return s.Serve(ctx, grpcLis, httpLis)
}

// Serve runs both transports on the given listeners. It returns nil after a
// graceful shutdown triggered by ctx.
func (s *Server) Serve(ctx context.Context, grpcLis, httpLis net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.Logger.Info("gRPC server running", zap.String("address", grpcLis.Addr().String()))
		if err := s.GRPC.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("gRPC server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.Logger.Info("REST server running", zap.String("address", httpLis.Addr().String()))
		if err := s.HTTP.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown()
	})

	return g.Wait()
}

// shutdown stops both transports within the configured timeout. gRPC falls
// back to a hard stop when in-flight calls outlive it.
func (s *Server) shutdown() error {
	timeout := s.Config.App.ShutdownTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.Logger.Info("starting graceful shutdown", zap.Duration("timeout", timeout))

	var errs []error
	if err := s.HTTP.Shutdown(ctx); err != nil {
		s.Logger.Error("failed to shutdown HTTP server", zap.Error(err))
		errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
	}

	stopped := make(chan struct{})
	go func() {
		s.GRPC.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		s.Logger.Warn("gRPC graceful stop timed out, forcing stop")
		s.GRPC.Stop()
		<-stopped
	}

	s.Logger.Info("servers stopped")
	return errors.Join(errs...)
}

// grpcAddress returns the gRPC server address
func (s *Server) grpcAddress() string {
	return ":" + s.Config.App.GRPCPort
}

// httpAddress returns the HTTP server address
func (s *Server) httpAddress() string {
	return ":" + s.Config.App.HTTPPort
}
