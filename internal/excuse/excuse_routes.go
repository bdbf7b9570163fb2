package excuse

import (
	"github.com/andreicionca/motivare-absente/internal/middleware"
	"github.com/andreicionca/motivare-absente/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, auth, idempotency gin.HandlerFunc) {
	excuses := r.Group("/excuses")
	excuses.Use(auth)
	{
		excuses.POST("/submit",
			middleware.RBACAuthorize(rbacService, rbac.ResourceExcuse, rbac.ActionSubmit),
			idempotency,
			handler.Submit,
		)
	}
}
