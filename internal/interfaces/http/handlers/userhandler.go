package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boxmas/internal/application/user/dto"
	"boxmas/internal/application/user/usecases"
	"boxmas/internal/shared/errors"
	"boxmas/internal/shared/logger"
	"boxmas/internal/shared/utils"
)

type UserHandler struct {
	registerUseCase registerUserUseCase
	listUseCase     listUsersUseCase
	logger          logger.Interface
}

func NewUserHandler(registerUC registerUserUseCase, listUC listUsersUseCase, logger logger.Interface) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUC,
		listUseCase:     listUC,
		logger:          logger,
	}
}

// Register handles POST /user
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	cmd := usecases.RegisterUserCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	created, err := h.registerUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		if !errors.IsAppError(err) {
			h.logger.Errorw("registration failed", "email", utils.MaskEmail(req.Email), "error", err)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterUserResponse{
		User: dto.ToUserDTO(created),
	})
}

// List handles GET /user
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.listUseCase.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list users", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOList(users))
}
