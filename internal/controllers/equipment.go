package controllers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	"inventory-system/pkg/utils"
)

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	exporter         services.EquipmentExporterInterface
	logger           *zap.Logger
}

func NewEquipmentController(
	equipmentService services.EquipmentServiceInterface,
	exporter services.EquipmentExporterInterface,
	logger *zap.Logger,
) *EquipmentController {
	return &EquipmentController{
		equipmentService: equipmentService,
		exporter:         exporter,
		logger:           logger,
	}
}

func (ctrl *EquipmentController) GetEquipments(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	list, total, err := ctrl.equipmentService.GetEquipments(ctx, actor, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, list, "Equipment list", http.StatusOK, total)
}

func (ctrl *EquipmentController) GetEquipment(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	equipment, err := ctrl.equipmentService.GetEquipment(ctx, actor, id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, equipment, "Equipment detail", http.StatusOK)
}

func (ctrl *EquipmentController) CreateEquipment(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.CreateEquipmentDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	equipment, err := ctrl.equipmentService.CreateEquipment(ctx, actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, equipment, "Equipment registered", http.StatusCreated)
}

func (ctrl *EquipmentController) UpdateEquipment(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.UpdateEquipmentDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.equipmentService.UpdateEquipment(ctx, actor, id, payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Equipment updated", http.StatusOK)
}

func (ctrl *EquipmentController) DeleteEquipment(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.equipmentService.DeleteEquipment(ctx, actor, id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Equipment deleted", http.StatusOK)
}

func (ctrl *EquipmentController) ExportEquipments(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	content, filename, err := ctrl.exporter.ExportEquipments(ctx, actor, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
