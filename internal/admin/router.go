package admin

import (
	"flowdesk/internal/shared/middleware"
	"flowdesk/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers admin-only routes behind the authorization gate
func SetupAdminRoutes(rg *gin.RouterGroup, controller *Controller, l *logger.Logger) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RequireAdmin(l))
	{
		admin.GET("/session-policy", controller.GetSessionPolicy)
	}
}
