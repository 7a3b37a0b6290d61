package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"boxmas/internal/domain/user"
	"boxmas/internal/infrastructure/persistence/mappers"
	"boxmas/internal/infrastructure/persistence/models"
	apperrors "boxmas/internal/shared/errors"
)

var _ user.SessionRepository = (*SessionRepository)(nil)

type SessionRepository struct {
	db     *gorm.DB
	mapper mappers.SessionMapper
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{
		db:     db,
		mapper: mappers.NewSessionMapper(),
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *user.Session) error {
	model := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByToken returns the session holding token regardless of its expiry;
// expiry is judged by the caller.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*user.Session, error) {
	var model models.SessionModel
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to get session by token: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *SessionRepository) TouchLastUsed(ctx context.Context, sessionID string, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.SessionModel{}).
		Where("id = ?", sessionID).
		Update("last_used_at", at.UTC()).Error
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) (int64, error) {
	result := r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.SessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete session: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *SessionRepository) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.SessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete user sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteExpiredBefore removes every session whose expiry is at or before now
func (r *SessionRepository) DeleteExpiredBefore(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now.UTC()).Delete(&models.SessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
