package middleware

import (
	"github.com/andreicionca/motivare-absente/internal/shared/contextutil"
	platform "github.com/andreicionca/motivare-absente/internal/shared/request"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger attaches a logger carrying the request id and client type so
// services can log through contextutil without knowing about gin.
// AuthMiddleware later adds the user to it.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		if rid == "" {
			rid = uuid.NewString()
			c.Set("request_id", rid)
			c.Header(RequestIDHeader, rid)
		}

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("client_type", platform.ResolveClientType(c.GetHeader("X-Client-Type"), c.Request.UserAgent())),
		)

		ctx := contextutil.WithRequestID(c.Request.Context(), rid)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
