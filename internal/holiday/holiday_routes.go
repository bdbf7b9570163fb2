package holiday

import (
	"github.com/andreicionca/motivare-absente/internal/middleware"
	"github.com/andreicionca/motivare-absente/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, auth gin.HandlerFunc) {
	holidays := r.Group("/holidays")
	holidays.Use(auth)
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceHoliday, rbac.ActionRead), handler.List)
	}
}
