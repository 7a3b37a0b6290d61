package usecases

import (
	"context"
	"fmt"

	"boxmas/internal/domain/user"
	"boxmas/internal/shared/biztime"
	"boxmas/internal/shared/logger"
)

// PurgeExpiredSessionsUseCase sweeps sessions whose persisted expiry has passed.
// It satisfies scheduler.BatchJob.
type PurgeExpiredSessionsUseCase struct {
	sessionRepo user.SessionRepository
	now         biztime.Clock
	logger      logger.Interface
}

func NewPurgeExpiredSessionsUseCase(sessionRepo user.SessionRepository, logger logger.Interface) *PurgeExpiredSessionsUseCase {
	return &PurgeExpiredSessionsUseCase{
		sessionRepo: sessionRepo,
		now:         biztime.NowUTC,
		logger:      logger,
	}
}

func (uc *PurgeExpiredSessionsUseCase) WithClock(clock biztime.Clock) *PurgeExpiredSessionsUseCase {
	uc.now = clock
	return uc
}

func (uc *PurgeExpiredSessionsUseCase) Execute(ctx context.Context) (int, error) {
	deleted, err := uc.sessionRepo.DeleteExpiredBefore(ctx, uc.now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}

	if deleted > 0 {
		uc.logger.Infow("expired sessions purged", "count", deleted)
	}
	return int(deleted), nil
}
