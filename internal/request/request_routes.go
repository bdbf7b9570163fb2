package request

import (
	"github.com/andreicionca/motivare-absente/internal/middleware"
	"github.com/andreicionca/motivare-absente/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, auth, idempotency gin.HandlerFunc) {
	requests := r.Group("/requests")
	requests.Use(auth)
	{
		requests.POST("/list-for-student",
			middleware.RBACAuthorize(rbacService, rbac.ResourceRequest, rbac.ActionReadOwn),
			handler.ListForStudent,
		)
		requests.POST("/list-for-teacher",
			middleware.RBACAuthorize(rbacService, rbac.ResourceRequest, rbac.ActionReadClass),
			handler.ListForTeacher,
		)
		requests.POST("/update-status",
			middleware.RBACAuthorize(rbacService, rbac.ResourceRequest, rbac.ActionReview),
			handler.UpdateStatus,
		)
		requests.POST("/finalize-batch",
			middleware.RBACAuthorize(rbacService, rbac.ResourceRequest, rbac.ActionFinalize),
			idempotency,
			handler.FinalizeBatch,
		)
		requests.POST("/delete-pending",
			middleware.RBACAuthorize(rbacService, rbac.ResourceExcuse, rbac.ActionWithdraw),
			handler.DeletePending,
		)
		requests.POST("/export-script",
			middleware.RBACAuthorize(rbacService, rbac.ResourceRequest, rbac.ActionExport),
			handler.ExportScript,
		)
	}

	classes := r.Group("/classes")
	classes.Use(auth)
	{
		classes.GET("/stats",
			middleware.RBACAuthorize(rbacService, rbac.ResourceClass, rbac.ActionRead),
			handler.ClassStats,
		)
		classes.GET("/stats/export",
			middleware.RBACAuthorize(rbacService, rbac.ResourceClass, rbac.ActionRead),
			handler.ExportClassStats,
		)
	}
}
