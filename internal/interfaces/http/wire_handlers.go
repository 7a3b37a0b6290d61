package http

import (
	"boxmas/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	authHandler   *handlers.AuthHandler
	userHandler   *handlers.UserHandler
	healthHandler *handlers.HealthHandler
}

func (c *Container) initHandlers() {
	c.hdlrs = &allHandlers{
		authHandler:   handlers.NewAuthHandler(c.ucs.loginUC, c.ucs.logoutUC, c.ucs.logoutAllUC, c.log),
		userHandler:   handlers.NewUserHandler(c.ucs.registerUC, c.ucs.listUsersUC, c.log),
		healthHandler: handlers.NewHealthHandler(),
	}
}
