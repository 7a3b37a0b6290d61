package usecases

import (
	"context"
	"errors"
	"fmt"

	"boxmas/internal/domain/user"
	vo "boxmas/internal/domain/user/valueobjects"
	"boxmas/internal/shared/biztime"
	apperrors "boxmas/internal/shared/errors"
	"boxmas/internal/shared/logger"
	"boxmas/internal/shared/utils"
)

type LoginWithPasswordCommand struct {
	Email      string
	Password   string
	DeviceInfo string
	IPAddress  string
}

type LoginWithPasswordResult struct {
	User    *user.User
	Token   string
	Session *user.Session
}

type LoginWithPasswordUseCase struct {
	userRepo       user.Repository
	sessionRepo    user.SessionRepository
	passwordHasher user.PasswordHasher
	tokenCodec     user.TokenCodec
	now            biztime.Clock
	logger         logger.Interface
}

func NewLoginWithPasswordUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	hasher user.PasswordHasher,
	tokenCodec user.TokenCodec,
	logger logger.Interface,
) *LoginWithPasswordUseCase {
	return &LoginWithPasswordUseCase{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		passwordHasher: hasher,
		tokenCodec:     tokenCodec,
		now:            biztime.NowUTC,
		logger:         logger,
	}
}

// WithClock replaces the time source used to stamp migrated credentials
func (uc *LoginWithPasswordUseCase) WithClock(clock biztime.Clock) *LoginWithPasswordUseCase {
	uc.now = clock
	return uc
}

// Execute verifies credentials and opens a new session. Unknown email and wrong
// password return the same InvalidCredentials error. A matching legacy plaintext
// credential is re-hashed and written back before the session is created.
func (uc *LoginWithPasswordUseCase) Execute(ctx context.Context, cmd LoginWithPasswordCommand) (*LoginWithPasswordResult, error) {
	email := vo.NormalizeEmail(cmd.Email)

	existingUser, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if existingUser == nil {
		uc.logger.Infow("login rejected: unknown email", "email", utils.MaskEmail(email))
		return nil, apperrors.NewInvalidCredentialsError()
	}

	needsUpgrade, err := existingUser.VerifyPassword(cmd.Password, uc.passwordHasher)
	if err != nil {
		if errors.Is(err, user.ErrPasswordMismatch) {
			uc.logger.Infow("login rejected: wrong password", "user_id", existingUser.ID())
			return nil, apperrors.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	if needsUpgrade {
		uc.upgradeCredential(ctx, existingUser, cmd.Password)
	}

	token, claims, err := uc.tokenCodec.Issue(existingUser.ID(), existingUser.Email())
	if err != nil {
		uc.logger.Errorw("failed to issue token", "user_id", existingUser.ID(), "error", err)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	session, err := user.NewSession(existingUser.ID(), token, cmd.DeviceInfo, cmd.IPAddress, claims.IssuedAt, claims.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to build session: %w", err)
	}

	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		uc.logger.Errorw("failed to create session", "user_id", existingUser.ID(), "error", err)
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	uc.logger.Infow("user logged in successfully",
		"user_id", existingUser.ID(),
		"session_id", session.ID,
		"ip_address", cmd.IPAddress,
	)

	return &LoginWithPasswordResult{
		User:    existingUser,
		Token:   token,
		Session: session,
	}, nil
}

// upgradeCredential hashes a verified plaintext password and persists it. A
// failure leaves the plaintext in place for the next login and does not fail this one.
func (uc *LoginWithPasswordUseCase) upgradeCredential(ctx context.Context, u *user.User, password string) {
	hash, err := uc.passwordHasher.Hash(password)
	if err != nil {
		uc.logger.Errorw("failed to hash legacy password", "user_id", u.ID(), "error", err)
		return
	}

	if err := uc.userRepo.UpdatePasswordHash(ctx, u.ID(), hash); err != nil {
		uc.logger.Errorw("failed to persist migrated password hash", "user_id", u.ID(), "error", err)
		return
	}

	if err := u.ChangePasswordHash(hash, uc.now()); err != nil {
		uc.logger.Warnw("failed to update in-memory password hash", "user_id", u.ID(), "error", err)
		return
	}

	uc.logger.Infow("migrated plaintext password to hash", "user_id", u.ID())
}
