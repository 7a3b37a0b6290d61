package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"boxmas/internal/domain/user"
	"boxmas/internal/shared/biztime"
	"boxmas/internal/shared/constants"
	"boxmas/internal/shared/errors"
	"boxmas/internal/shared/logger"
)

// Identity is the caller resolved from a live session
type Identity struct {
	UserID    uint
	Email     string
	SessionID string
	Token     string
}

type AuthorizeRequestUseCase struct {
	tokenCodec  user.TokenCodec
	sessionRepo user.SessionRepository
	now         biztime.Clock
	logger      logger.Interface
}

func NewAuthorizeRequestUseCase(
	tokenCodec user.TokenCodec,
	sessionRepo user.SessionRepository,
	logger logger.Interface,
) *AuthorizeRequestUseCase {
	return &AuthorizeRequestUseCase{
		tokenCodec:  tokenCodec,
		sessionRepo: sessionRepo,
		now:         biztime.NowUTC,
		logger:      logger,
	}
}

// WithClock replaces the time source used for the persisted expiry check and lastUsedAt
func (uc *AuthorizeRequestUseCase) WithClock(clock biztime.Clock) *AuthorizeRequestUseCase {
	uc.now = clock
	return uc
}

// ExtractBearerToken returns the token from an Authorization header value.
// Only the exact "Bearer " prefix is accepted.
func ExtractBearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, constants.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, constants.BearerPrefix))
	if token == "" {
		return "", false
	}
	return token, true
}

// Execute admits a request only if its token verifies and is backed by a live
// session. Both the token's embedded expiry and the session's persisted expiry
// must hold; an expired session row is deleted on sight.
func (uc *AuthorizeRequestUseCase) Execute(ctx context.Context, authorizationHeader string) (*Identity, error) {
	token, ok := ExtractBearerToken(authorizationHeader)
	if !ok {
		return nil, errors.NewNoTokenError()
	}

	claims, err := uc.tokenCodec.Parse(token)
	if err != nil {
		if stderrors.Is(err, user.ErrTokenExpired) {
			uc.purgeSession(ctx, token)
			return nil, errors.NewTokenInvalidError("Token has expired")
		}
		uc.logger.Warnw("rejected malformed token", "error", err)
		return nil, errors.NewTokenInvalidError("Token is malformed or its signature is invalid")
	}

	session, err := uc.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewTokenRevokedError()
		}
		uc.logger.Errorw("failed to look up session", "error", err)
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	now := uc.now()
	if session.IsExpiredAt(now) {
		// A row left behind here is removed by the cleanup job.
		if _, err := uc.sessionRepo.DeleteByToken(ctx, token); err != nil {
			uc.logger.Errorw("failed to delete expired session", "session_id", session.ID, "error", err)
		} else {
			uc.logger.Infow("expired session purged", "session_id", session.ID, "user_id", session.UserID)
		}
		return nil, errors.NewTokenExpiredError()
	}

	if err := uc.sessionRepo.TouchLastUsed(ctx, session.ID, now); err != nil {
		uc.logger.Warnw("failed to update session last used time", "session_id", session.ID, "error", err)
	}

	return &Identity{
		UserID:    session.UserID,
		Email:     claims.Email,
		SessionID: session.ID,
		Token:     token,
	}, nil
}

// purgeSession removes the row of a token whose signature expired, if one exists
func (uc *AuthorizeRequestUseCase) purgeSession(ctx context.Context, token string) {
	deleted, err := uc.sessionRepo.DeleteByToken(ctx, token)
	if err != nil {
		uc.logger.Warnw("failed to purge session of expired token", "error", err)
		return
	}
	if deleted > 0 {
		uc.logger.Infow("session of expired token purged")
	}
}
