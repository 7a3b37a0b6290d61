package http

import (
	"boxmas/internal/application/user/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	loginUC        *usecases.LoginWithPasswordUseCase
	logoutUC       *usecases.LogoutUseCase
	logoutAllUC    *usecases.LogoutAllUseCase
	authorizeUC    *usecases.AuthorizeRequestUseCase
	registerUC     *usecases.RegisterUserUseCase
	listUsersUC    *usecases.ListUsersUseCase
	purgeSessionUC *usecases.PurgeExpiredSessionsUseCase
}

func (c *Container) initUseCases() {
	userRepo := c.repos.userRepo
	sessionRepo := c.repos.sessionRepo

	c.ucs = &allUseCases{
		loginUC:        usecases.NewLoginWithPasswordUseCase(userRepo, sessionRepo, c.hasher, c.tokenCodec, c.log),
		logoutUC:       usecases.NewLogoutUseCase(sessionRepo, c.log),
		logoutAllUC:    usecases.NewLogoutAllUseCase(sessionRepo, c.log),
		authorizeUC:    usecases.NewAuthorizeRequestUseCase(c.tokenCodec, sessionRepo, c.log),
		registerUC:     usecases.NewRegisterUserUseCase(userRepo, c.hasher, c.log),
		listUsersUC:    usecases.NewListUsersUseCase(userRepo, c.log),
		purgeSessionUC: usecases.NewPurgeExpiredSessionsUseCase(sessionRepo, c.log),
	}
}
