package middleware

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"user-directory-service/pkg/logger"
)

// InterceptorLogger adapts zap to the go-grpc-middleware logging API.
// The request ID from the context is attached to every entry.
func InterceptorLogger(l *zap.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		f := make([]zap.Field, 0, len(fields)/2)

		for i := 0; i+1 < len(fields); i += 2 {
			key := fmt.Sprint(fields[i])
			switch v := fields[i+1].(type) {
			case string:
				f = append(f, zap.String(key, v))
			case int:
				f = append(f, zap.Int(key, v))
			case bool:
				f = append(f, zap.Bool(key, v))
			default:
				f = append(f, zap.Any(key, v))
			}
		}

		log := logger.WithContext(ctx, l).WithOptions(zap.AddCallerSkip(1)).With(f...)

		switch lvl {
		case logging.LevelDebug:
			log.Debug(msg)
		case logging.LevelInfo:
			log.Info(msg)
		case logging.LevelWarn:
			log.Warn(msg)
		default:
			log.Error(msg)
		}
	})
}

// Logging returns a unary interceptor that logs the outcome of every call.
func Logging(l *zap.Logger) grpc.UnaryServerInterceptor {
	return logging.UnaryServerInterceptor(
		InterceptorLogger(l),
		logging.WithLogOnEvents(logging.FinishCall),
	)
}
