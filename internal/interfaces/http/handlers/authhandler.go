package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boxmas/internal/application/user/dto"
	"boxmas/internal/application/user/usecases"
	"boxmas/internal/interfaces/http/middleware"
	"boxmas/internal/shared/errors"
	"boxmas/internal/shared/logger"
	"boxmas/internal/shared/utils"
)

type AuthHandler struct {
	loginUseCase     loginUseCase
	logoutUseCase    logoutUseCase
	logoutAllUseCase logoutAllUseCase
	logger           logger.Interface
}

func NewAuthHandler(
	loginUC loginUseCase,
	logoutUC logoutUseCase,
	logoutAllUC logoutAllUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		loginUseCase:     loginUC,
		logoutUseCase:    logoutUC,
		logoutAllUseCase: logoutAllUC,
		logger:           logger,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	cmd := usecases.LoginWithPasswordCommand{
		Email:      req.Email,
		Password:   req.Password,
		DeviceInfo: utils.DeviceInfo(c),
		IPAddress:  utils.OriginatingIP(c),
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		if errors.ShouldLogAuthError(err) {
			h.logger.Errorw("login failed", "error", err)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		User:  dto.ToUserDTO(result.User),
		Token: result.Token,
	})
}

// Logout handles POST /auth/logout, revoking only the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.GetToken(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewNoTokenError())
		return
	}

	if err := h.logoutUseCase.Execute(c.Request.Context(), token); err != nil {
		if !errors.IsNotFoundError(err) {
			h.logger.Errorw("logout failed", "error", err)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LogoutResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

// LogoutAll handles DELETE /auth/logout, revoking every session of the caller.
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	token, ok := middleware.GetToken(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewNoTokenError())
		return
	}

	result, err := h.logoutAllUseCase.Execute(c.Request.Context(), token)
	if err != nil {
		if !errors.IsAuthError(err) {
			h.logger.Errorw("logout from all devices failed", "error", err)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LogoutAllResponse{
		Success:      true,
		Message:      "Logged out from all devices",
		RevokedCount: result.RevokedCount,
	})
}
