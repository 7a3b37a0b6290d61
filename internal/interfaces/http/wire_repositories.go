package http

import (
	"boxmas/internal/domain/user"
	"boxmas/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		userRepo:    repository.NewUserRepository(c.db, c.log),
		sessionRepo: repository.NewSessionRepository(c.db),
	}
}
