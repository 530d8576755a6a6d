package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	"inventory-system/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	tokens, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, tokens, "Signed in", http.StatusOK)
}

func (ctrl *AuthController) Refresh(c echo.Context) error {
	var payload dto.RefreshDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	tokens, err := ctrl.authService.Refresh(c.Request().Context(), payload.RefreshToken)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, tokens, "Token refreshed", http.StatusOK)
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	sessionID, err := utils.GetSessionIDFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.authService.Logout(ctx, userID, sessionID); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Signed out", http.StatusOK)
}
