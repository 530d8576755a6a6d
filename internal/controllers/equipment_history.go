package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

type EquipmentHistoryController struct {
	historyService services.EquipmentHistoryServiceInterface
	logger         *zap.Logger
}

func NewEquipmentHistoryController(
	historyService services.EquipmentHistoryServiceInterface,
	logger *zap.Logger,
) *EquipmentHistoryController {
	return &EquipmentHistoryController{historyService: historyService, logger: logger}
}

func (ctrl *EquipmentHistoryController) GetHistories(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	equipmentID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	list, total, err := ctrl.historyService.GetHistories(ctx, actor, equipmentID, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, list, "History list", http.StatusOK, total)
}

// GenerateJoNumber previews the next job order number for a date. The number
// is not reserved; submission may still be assigned the next free one.
func (ctrl *EquipmentHistoryController) GenerateJoNumber(c echo.Context) error {
	ctx := c.Request().Context()
	date := c.QueryParam("date")
	if date == "" {
		return utils.ErrorResponse(c, apperrors.NewValidationError(map[string]string{
			"date": "query parameter is required",
		}), ctrl.logger)
	}

	generated, err := ctrl.historyService.GenerateJoNumber(ctx, date)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, generated, "Job order number generated", http.StatusOK)
}

func (ctrl *EquipmentHistoryController) CheckBackdate(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	equipmentID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	date := c.QueryParam("date")
	if date == "" {
		return utils.ErrorResponse(c, apperrors.NewValidationError(map[string]string{
			"date": "query parameter is required",
		}), ctrl.logger)
	}

	check, err := ctrl.historyService.CheckBackdate(ctx, actor, equipmentID, date)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, check, "Backdate check", http.StatusOK)
}

func (ctrl *EquipmentHistoryController) CreateHistory(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	equipmentID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.CreateEquipmentHistoryDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	history, err := ctrl.historyService.CreateHistory(ctx, actor, equipmentID, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, history, "History entry recorded", http.StatusCreated)
}

func (ctrl *EquipmentHistoryController) UpdateHistory(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	historyID, err := parseIDParam(c, "historyId")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.UpdateEquipmentHistoryDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.historyService.UpdateHistory(ctx, actor, historyID, payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "History entry updated", http.StatusOK)
}
