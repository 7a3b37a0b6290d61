package usecases

import (
	"context"
	"fmt"

	"boxmas/internal/domain/user"
	vo "boxmas/internal/domain/user/valueobjects"
	"boxmas/internal/shared/biztime"
	"boxmas/internal/shared/errors"
	"boxmas/internal/shared/logger"
	"boxmas/internal/shared/utils"
)

type RegisterUserCommand struct {
	Name     string
	Email    string
	Password string
}

type RegisterUserUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	now            biztime.Clock
	logger         logger.Interface
}

func NewRegisterUserUseCase(userRepo user.Repository, hasher user.PasswordHasher, logger logger.Interface) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		now:            biztime.NowUTC,
		logger:         logger,
	}
}

// WithClock replaces the time source used for creation timestamps
func (uc *RegisterUserUseCase) WithClock(clock biztime.Clock) *RegisterUserUseCase {
	uc.now = clock
	return uc
}

// Execute creates a user with a hashed credential. The email must not be taken.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	name, err := vo.NewName(cmd.Name)
	if err != nil {
		return nil, errors.NewValidationError("Invalid name", err.Error())
	}

	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError("Invalid email", err.Error())
	}

	password, err := vo.NewPassword(cmd.Password)
	if err != nil {
		return nil, errors.NewValidationError("Invalid password", err.Error())
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		uc.logger.Infow("registration rejected: email taken", "email", utils.MaskEmail(email.String()))
		return nil, user.NewEmailTakenError()
	}

	hash, err := uc.passwordHasher.Hash(password.String())
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := user.NewUser(name, email, hash, uc.now())
	if err != nil {
		return nil, fmt.Errorf("failed to build user: %w", err)
	}

	// Create maps a unique index violation to the same conflict error
	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	uc.logger.Infow("user registered", "user_id", newUser.ID(), "sid", newUser.SID())
	return newUser, nil
}
