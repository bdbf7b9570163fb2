package media

import (
	"github.com/andreicionca/motivare-absente/internal/middleware"
	"github.com/andreicionca/motivare-absente/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, auth gin.HandlerFunc) {
	evidence := r.Group("/evidence")
	evidence.Use(auth)
	{
		evidence.POST("/upload",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEvidence, rbac.ActionUpload),
			handler.Upload,
		)
	}
}
