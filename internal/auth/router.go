package auth

import (
	"flowdesk/internal/shared/middleware"
	"flowdesk/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
	logger     *logger.Logger
}

// NewRouter creates a new auth router
func NewRouter(controller *Controller, l *logger.Logger) *Router {
	return &Router{controller: controller, logger: l}
}

// SetupRoutes registers all auth routes. The session middleware runs on the
// parent group, so the principal is already resolved here.
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/logout", authRouter.controller.Logout)

		protected := auth.Group("")
		protected.Use(middleware.RequireAuth(authRouter.logger))
		{
			protected.GET("/me", authRouter.controller.GetMe)
		}
	}
}
