package user

import (
	"context"
	"fmt"
	"time"

	"boxmas/internal/shared/constants"
	"boxmas/internal/shared/id"
)

// Session binds one issued token to one user. It is the authority on whether a token is live.
type Session struct {
	ID         string
	UserID     uint
	Token      string
	DeviceInfo string
	IPAddress  string
	ExpiresAt  time.Time
	LastUsedAt time.Time
	CreatedAt  time.Time
}

// NewSession creates a session for a freshly issued token. expiresAt is fixed at creation
// and never extended by activity.
func NewSession(userID uint, token, deviceInfo, ipAddress string, issuedAt, expiresAt time.Time) (*Session, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if token == "" {
		return nil, fmt.Errorf("token is required")
	}
	if !expiresAt.After(issuedAt) {
		return nil, fmt.Errorf("session must expire after it is issued")
	}

	sid, err := id.GenerateWithPrefix(constants.PrefixSession, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	return &Session{
		ID:         sid,
		UserID:     userID,
		Token:      token,
		DeviceInfo: deviceInfo,
		IPAddress:  ipAddress,
		ExpiresAt:  expiresAt,
		LastUsedAt: issuedAt,
		CreatedAt:  issuedAt,
	}, nil
}

// IsExpiredAt reports whether the session is no longer usable at now
func (s *Session) IsExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	// GetByToken returns a not-found AppError when no session holds token.
	GetByToken(ctx context.Context, token string) (*Session, error)
	TouchLastUsed(ctx context.Context, sessionID string, at time.Time) error
	DeleteByToken(ctx context.Context, token string) (int64, error)
	DeleteByUserID(ctx context.Context, userID uint) (int64, error)
	DeleteExpiredBefore(ctx context.Context, now time.Time) (int64, error)
}
