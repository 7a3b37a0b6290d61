package usecases

import (
	"context"
	"fmt"

	"boxmas/internal/domain/user"
	"boxmas/internal/shared/errors"
	"boxmas/internal/shared/logger"
)

type LogoutUseCase struct {
	sessionRepo user.SessionRepository
	logger      logger.Interface
}

func NewLogoutUseCase(sessionRepo user.SessionRepository, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Execute deletes the session holding token. A token with no session yields a
// NotFound error, meaning the caller was already logged out.
func (uc *LogoutUseCase) Execute(ctx context.Context, token string) error {
	deleted, err := uc.sessionRepo.DeleteByToken(ctx, token)
	if err != nil {
		uc.logger.Errorw("failed to delete session", "error", err)
		return fmt.Errorf("failed to logout: %w", err)
	}

	if deleted == 0 {
		return errors.NewNotFoundError("Session not found", "Already logged out")
	}

	uc.logger.Infow("user logged out successfully")
	return nil
}
