package shortleave

import (
	"github.com/andreicionca/motivare-absente/internal/middleware"
	"github.com/andreicionca/motivare-absente/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, auth, idempotency gin.HandlerFunc) {
	shortLeaves := r.Group("/short-leaves")
	shortLeaves.Use(auth)
	{
		shortLeaves.POST("/submit",
			middleware.RBACAuthorize(rbacService, rbac.ResourceShortLeave, rbac.ActionSubmit),
			idempotency,
			handler.Submit,
		)
	}
}
