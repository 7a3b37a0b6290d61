package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"boxmas/internal/application/user/usecases"
	"boxmas/internal/infrastructure/config"
	"boxmas/internal/interfaces/http/middleware"
	"boxmas/internal/interfaces/http/routes"
	"boxmas/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	return &Router{Container: NewContainer(db, redisClient, cfg, log)}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CustomLogger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", r.hdlrs.healthHandler.Check)

	var rateLimit gin.HandlerFunc
	if r.rateLimiter != nil {
		rateLimit = middleware.RateLimit(r.rateLimiter, r.log)
	}

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler:    r.hdlrs.authHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimit:      rateLimit,
	})
	routes.SetupUserRoutes(r.engine, &routes.UserRouteConfig{
		UserHandler:    r.hdlrs.userHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimit:      rateLimit,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// SessionCleanupJob returns the job that purges expired sessions.
func (r *Router) SessionCleanupJob() *usecases.PurgeExpiredSessionsUseCase {
	return r.ucs.purgeSessionUC
}
