package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	"inventory-system/pkg/utils"
)

type OfficeController struct {
	officeService services.OfficeServiceInterface
	logger        *zap.Logger
}

func NewOfficeController(officeService services.OfficeServiceInterface, logger *zap.Logger) *OfficeController {
	return &OfficeController{officeService: officeService, logger: logger}
}

func (ctrl *OfficeController) GetOffices(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	list, total, err := ctrl.officeService.GetOffices(ctx, actor, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, list, "Office list", http.StatusOK, total)
}

func (ctrl *OfficeController) GetOffice(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	office, err := ctrl.officeService.GetOffice(ctx, actor, id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, office, "Office detail", http.StatusOK)
}

func (ctrl *OfficeController) CreateOffice(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.CreateOfficeDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	id, err := ctrl.officeService.CreateOffice(ctx, actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, map[string]interface{}{"id": id}, "Office created", http.StatusCreated)
}

func (ctrl *OfficeController) UpdateOffice(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.UpdateOfficeDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.officeService.UpdateOffice(ctx, actor, id, payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Office updated", http.StatusOK)
}

func (ctrl *OfficeController) DeleteOffice(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.officeService.DeleteOffice(ctx, actor, id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Office deleted", http.StatusOK)
}
