package middleware

import (
	"github.com/gin-gonic/gin"

	"user-directory-service/pkg/logger"
)

// RequestIDHeader carries the correlation id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID reuses a well-formed X-Request-ID from the caller or generates
// one. The id is echoed on the response and stored in the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := logger.RequestIDOrNew(c.GetHeader(RequestIDHeader))

		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}
