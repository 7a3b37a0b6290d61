package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"boxmas/internal/application/user/usecases"
	"boxmas/internal/shared/constants"
	"boxmas/internal/shared/errors"
	"boxmas/internal/shared/logger"
	"boxmas/internal/shared/utils"
)

// Authorizer resolves an Authorization header value to a caller identity
type Authorizer interface {
	Execute(ctx context.Context, authorizationHeader string) (*usecases.Identity, error)
}

type AuthMiddleware struct {
	authorizer Authorizer
	logger     logger.Interface
}

func NewAuthMiddleware(authorizer Authorizer, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		authorizer: authorizer,
		logger:     logger,
	}
}

// RequireAuth admits only requests carrying a bearer token backed by a live session.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.authorizer.Execute(c.Request.Context(), c.GetHeader(constants.HeaderAuthorization))
		if err != nil {
			switch {
			case !errors.IsUnauthenticated(err):
				m.logger.Errorw("authorization failed unexpectedly",
					"path", c.Request.URL.Path,
					"error", err)
			case errors.ShouldLogAuthError(err):
				m.logger.Warnw("request rejected",
					"path", c.Request.URL.Path,
					"client_ip", c.ClientIP(),
					"error", err)
			case errors.IsSecurityEvent(err):
				m.logger.Infow("request rejected",
					"path", c.Request.URL.Path,
					"client_ip", c.ClientIP(),
					"reason", errors.GetAuthError(err).Type)
			}
			utils.AbortWithError(c, err)
			return
		}

		c.Set(constants.ContextKeyUserID, identity.UserID)
		c.Set(constants.ContextKeyEmail, identity.Email)
		c.Set(constants.ContextKeySessionID, identity.SessionID)
		c.Set(constants.ContextKeyToken, identity.Token)

		c.Next()
	}
}

// GetToken returns the bearer token that authenticated the request
func GetToken(c *gin.Context) (string, bool) {
	token := c.GetString(constants.ContextKeyToken)
	return token, token != ""
}
