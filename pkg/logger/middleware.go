package logger

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// RequestIDMetadataKey is the gRPC metadata key callers may use to supply a request ID.
const RequestIDMetadataKey = "x-request-id"

// MaxRequestIDLength bounds a caller-supplied request ID.
const MaxRequestIDLength = 64

// ValidRequestID reports whether a caller-supplied id may be reused as is.
// Only short ids made of letters, digits, '-', '_' and '.' are accepted.
func ValidRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch c := id[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

// RequestIDOrNew returns id when it is valid and a fresh UUID otherwise.
func RequestIDOrNew(id string) string {
	if ValidRequestID(id) {
		return id
	}
	return uuid.NewString()
}

// RequestIDInterceptor is a gRPC interceptor that adds a request ID to the context.
// A valid ID supplied in the incoming metadata is reused; otherwise a new one is generated.
func RequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		requestID := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get(RequestIDMetadataKey); len(values) > 0 {
				requestID = values[0]
			}
		}

		return handler(ContextWithRequestID(ctx, RequestIDOrNew(requestID)), req)
	}
}
