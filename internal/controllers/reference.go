package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/services"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

type ReferenceController struct {
	referenceService services.ReferenceServiceInterface
	logger           *zap.Logger
}

func NewReferenceController(referenceService services.ReferenceServiceInterface, logger *zap.Logger) *ReferenceController {
	return &ReferenceController{referenceService: referenceService, logger: logger}
}

func (ctrl *ReferenceController) GetEquipmentTypes(c echo.Context) error {
	list, err := ctrl.referenceService.GetEquipmentTypes(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, list, "Equipment types", http.StatusOK)
}

func (ctrl *ReferenceController) GetEquipmentCategories(c echo.Context) error {
	list, err := ctrl.referenceService.GetEquipmentCategories(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, list, "Equipment categories", http.StatusOK)
}

type createNamedDTO struct {
	Name string `json:"name" validate:"required"`
}

func (ctrl *ReferenceController) CreateEquipmentType(c echo.Context) error {
	var payload createNamedDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if payload.Name == "" {
		return utils.ErrorResponse(c, apperrors.NewValidationError(map[string]string{
			"name": "is required",
		}), ctrl.logger)
	}

	id, err := ctrl.referenceService.CreateEquipmentType(c.Request().Context(), payload.Name)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, map[string]interface{}{"id": id}, "Equipment type created", http.StatusCreated)
}

func (ctrl *ReferenceController) CreateEquipmentCategory(c echo.Context) error {
	var payload createNamedDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if payload.Name == "" {
		return utils.ErrorResponse(c, apperrors.NewValidationError(map[string]string{
			"name": "is required",
		}), ctrl.logger)
	}

	id, err := ctrl.referenceService.CreateEquipmentCategory(c.Request().Context(), payload.Name)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, map[string]interface{}{"id": id}, "Equipment category created", http.StatusCreated)
}
