package routes

import (
	"github.com/gin-gonic/gin"

	"boxmas/internal/interfaces/http/handlers"
	"boxmas/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for user routes.
type UserRouteConfig struct {
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimit      gin.HandlerFunc // may be nil when rate limiting is off
}

// SetupUserRoutes configures user routes. Registration is open; listing
// requires a live session.
func SetupUserRoutes(engine *gin.Engine, cfg *UserRouteConfig) {
	users := engine.Group("/user")
	{
		users.POST("", withOptional(cfg.RateLimit, cfg.UserHandler.Register)...)
		users.GET("", cfg.AuthMiddleware.RequireAuth(), cfg.UserHandler.List)
	}
}
