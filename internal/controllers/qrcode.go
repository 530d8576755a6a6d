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

type QRCodeController struct {
	qrService services.QRCodeServiceInterface
	logger    *zap.Logger
}

func NewQRCodeController(qrService services.QRCodeServiceInterface, logger *zap.Logger) *QRCodeController {
	return &QRCodeController{qrService: qrService, logger: logger}
}

func (ctrl *QRCodeController) GetImage(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	equipmentID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	image, err := ctrl.qrService.GetOrRenderImage(ctx, actor, equipmentID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, image, "QR image", http.StatusOK)
}

func (ctrl *QRCodeController) ResolveScan(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.ResolveScanDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	equipment, err := ctrl.qrService.ResolveScan(ctx, actor, payload.Payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, equipment, "Scan resolved", http.StatusOK)
}

func (ctrl *QRCodeController) BatchBundles(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.QRBatchRequestDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	bundles, err := ctrl.qrService.BatchBundles(ctx, actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, bundles, "QR bundles", http.StatusOK)
}
