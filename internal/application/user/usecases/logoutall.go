package usecases

import (
	"context"
	"fmt"

	"boxmas/internal/domain/user"
	"boxmas/internal/shared/errors"
	"boxmas/internal/shared/logger"
)

type LogoutAllResult struct {
	UserID       uint
	RevokedCount int64
}

type LogoutAllUseCase struct {
	sessionRepo user.SessionRepository
	logger      logger.Interface
}

func NewLogoutAllUseCase(sessionRepo user.SessionRepository, logger logger.Interface) *LogoutAllUseCase {
	return &LogoutAllUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Execute revokes every session of the user who owns token, including token itself.
func (uc *LogoutAllUseCase) Execute(ctx context.Context, token string) (*LogoutAllResult, error) {
	session, err := uc.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewTokenInvalidError("Token does not belong to a session")
		}
		uc.logger.Errorw("failed to resolve session", "error", err)
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	revoked, err := uc.sessionRepo.DeleteByUserID(ctx, session.UserID)
	if err != nil {
		uc.logger.Errorw("failed to delete user sessions", "user_id", session.UserID, "error", err)
		return nil, fmt.Errorf("failed to logout all sessions: %w", err)
	}

	uc.logger.Infow("user logged out of all sessions",
		"user_id", session.UserID,
		"revoked_count", revoked,
	)

	return &LogoutAllResult{
		UserID:       session.UserID,
		RevokedCount: revoked,
	}, nil
}
