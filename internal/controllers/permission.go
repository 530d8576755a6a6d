package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/services"
	"inventory-system/pkg/utils"
)

type PermissionController struct {
	permissionService services.PermissionServiceInterface
	logger            *zap.Logger
}

func NewPermissionController(permissionService services.PermissionServiceInterface, logger *zap.Logger) *PermissionController {
	return &PermissionController{permissionService: permissionService, logger: logger}
}

func (ctrl *PermissionController) GetPermissions(c echo.Context) error {
	permissions, err := ctrl.permissionService.GetPermissions(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, permissions, "Permission list", http.StatusOK)
}
