package auth

import (
	"github.com/andreicionca/motivare-absente/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	g := r.Group("/auth")
	{
		g.POST("/authenticate", middleware.RateLimitByIP(0.2, 5), handler.Authenticate)
		g.GET("/me", auth, middleware.RateLimitByUser(2, 5), handler.Me)
		g.POST("/logout", handler.Logout)
	}
}
