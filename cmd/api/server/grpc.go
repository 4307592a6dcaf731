package server

import (
	grpcadapter "user-directory-service/internal/adapter/grpc"
	"user-directory-service/internal/adapter/grpc/middleware"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// SetupGRPC creates and configures the gRPC server
func SetupGRPC(svc grpcadapter.UserDirectoryServer, l *zap.Logger) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(middleware.UnaryInterceptors(l)...),
	)
	grpcadapter.RegisterUserDirectoryServer(grpcServer, svc)

	return grpcServer
}
