package routes

import (
	"github.com/gin-gonic/gin"

	"boxmas/internal/interfaces/http/handlers"
	"boxmas/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimit      gin.HandlerFunc // may be nil when rate limiting is off
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		auth.POST("/login", withOptional(cfg.RateLimit, cfg.AuthHandler.Login)...)
		auth.POST("/logout", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Logout)
		auth.DELETE("/logout", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.LogoutAll)
	}
}

// withOptional prepends mw to the chain when it is set.
func withOptional(mw gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	if mw == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{mw, handler}
}
