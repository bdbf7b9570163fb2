package middleware

import (
	"net/http"

	"github.com/andreicionca/motivare-absente/internal/shared/apperror"
	"github.com/andreicionca/motivare-absente/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MethodNotAllowed is installed as the engine NoMethod handler.
func MethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Error(c, http.StatusMethodNotAllowed, apperror.CodeMethodNotAllowed, "Method not allowed", nil)
	}
}

func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, apperror.CodeNotFound, "Route not found", nil)
	}
}

// Recovery converts a handler panic into the error envelope.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("handler panic recovered",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		response.Abort(c, http.StatusInternalServerError, apperror.CodeInternalError, apperror.ErrInternal.Message)
	})
}
