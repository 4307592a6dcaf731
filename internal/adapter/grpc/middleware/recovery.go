package middleware

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	apperrors "user-directory-service/pkg/errors"
	"user-directory-service/pkg/logger"
)

// Recovery returns a unary interceptor that converts a handler panic into
// a generic Internal status.
func Recovery(l *zap.Logger) grpc.UnaryServerInterceptor {
	return recovery.UnaryServerInterceptor(
		recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
			logger.WithContext(ctx, l).Error("panic recovered in gRPC handler",
				zap.Any("panic", p),
				zap.Stack("stack"),
			)
			return apperrors.NewInternalError(nil)
		}),
	)
}

// UnaryInterceptors returns the server interceptor chain in order:
// request ID, logging, then recovery closest to the handler.
func UnaryInterceptors(l *zap.Logger) []grpc.UnaryServerInterceptor {
	return []grpc.UnaryServerInterceptor{
		logger.RequestIDInterceptor(),
		Logging(l),
		Recovery(l),
	}
}
