package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"user-directory-service/cmd/api/di"
	"user-directory-service/internal/config"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// Server runs the gRPC and Gin listeners of the service.
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	GRPC   *grpc.Server
	Gin    *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, l *zap.Logger, c *di.Container) *Server {
	return &Server{
		Config: cfg,
		Logger: l,
		GRPC:   SetupGRPC(c.GRPCService, l),
		Gin:    SetupGinServer(c.GinHandler, c.UserRepo, cfg.Logger.ServiceName, ":"+cfg.App.HTTPPort, l),
	}
}

// Start listens on both ports and serves until one of the servers stops.
// Listener errors are returned before any request is served.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}

	grpcLis, err := lc.Listen(ctx, "tcp", s.grpcAddress())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.grpcAddress(), err)
	}

	ginLis, err := lc.Listen(ctx, "tcp", s.Gin.Addr)
	if err != nil {
		_ = grpcLis.Close()
		return fmt.Errorf("failed to listen on %s: %w", s.Gin.Addr, err)
	}

	return s.Serve(grpcLis, ginLis)
}

// Serve runs both servers on the given listeners. If either server fails,
// the other is stopped so the error is reported instead of serving half
// the API.
func (s *Server) Serve(grpcLis, ginLis net.Listener) error {
	g, gctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		s.Logger.Info("gRPC server running", zap.String("address", grpcLis.Addr().String()))
		if err := s.GRPC.Serve(grpcLis); err != nil {
			return fmt.Errorf("gRPC server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.Logger.Info("Gin server running", zap.String("address", ginLis.Addr().String()))
		if err := s.Gin.Serve(ginLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("gin server: %w", err)
		}
		return nil
	})

	go func() {
		<-gctx.Done()
		// Cause is context.Canceled when both servers returned cleanly.
		cause := context.Cause(gctx)
		if errors.Is(cause, context.Canceled) {
			return
		}
		s.Logger.Error("server failed, stopping the other", zap.Error(cause))
		s.GRPC.Stop()
		_ = s.Gin.Close()
	}()

	return g.Wait()
}

// Shutdown stops the Gin server within ctx and drains gRPC calls.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	s.Logger.Info("shutting down Gin server...")
	if err := s.Gin.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("gin shutdown: %w", err))
	}

	s.Logger.Info("shutting down gRPC server...")
	stopped := make(chan struct{})
	go func() {
		s.GRPC.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		s.GRPC.Stop()
		errs = append(errs, fmt.Errorf("gRPC graceful stop: %w", ctx.Err()))
	}

	return errors.Join(errs...)
}

// grpcAddress returns the gRPC server address
func (s *Server) grpcAddress() string {
	return ":" + s.Config.App.GRPCPort
}
