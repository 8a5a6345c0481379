// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"flowdesk/internal/admin"
	"flowdesk/internal/auth"
	"flowdesk/internal/shared/config"
	"flowdesk/internal/shared/database"
	"flowdesk/internal/shared/middleware"
	"flowdesk/internal/shared/utils/response"
	"flowdesk/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	verifier middleware.SessionVerifier
	logger   *logger.Logger
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, verifier middleware.SessionVerifier, l *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		verifier: verifier,
		logger:   l,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	// Every API request resolves its session first
	api := engine.Group(r.config.GetAPIBasePath())
	api.Use(middleware.SessionAuth(r.verifier, r.config.Cookie, r.config.JWT.AccessExpiresIn, r.logger))
	{
		r.setupAuthRoutes(api)
		r.setupAdminRoutes(api)
	}

	engine.NoRoute(func(c *gin.Context) {
		response.AbortWithError(c, http.StatusNotFound, "Route not found")
	})
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "flowdesk-api",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "flowdesk-api",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures session routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authController := auth.NewController(r.config.Cookie)
	auth.NewRouter(authController, r.logger).SetupRoutes(rg)
}

// setupAdminRoutes configures admin-only routes
func (r *Router) setupAdminRoutes(rg *gin.RouterGroup) {
	admin.SetupAdminRoutes(rg, admin.NewController(r.config), r.logger)
}
