package handlers

import (
	"context"

	"boxmas/internal/application/user/usecases"
	"boxmas/internal/domain/user"
)

// Use case interfaces for the handlers - enables unit testing with mocks.

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginWithPasswordCommand) (*usecases.LoginWithPasswordResult, error)
}

type logoutUseCase interface {
	Execute(ctx context.Context, token string) error
}

type logoutAllUseCase interface {
	Execute(ctx context.Context, token string) (*usecases.LogoutAllResult, error)
}

type registerUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.RegisterUserCommand) (*user.User, error)
}

type listUsersUseCase interface {
	Execute(ctx context.Context) ([]*user.User, error)
}
