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

type CampusController struct {
	campusService services.CampusServiceInterface
	logger        *zap.Logger
}

func NewCampusController(campusService services.CampusServiceInterface, logger *zap.Logger) *CampusController {
	return &CampusController{campusService: campusService, logger: logger}
}

func (ctrl *CampusController) GetCampuses(c echo.Context) error {
	campuses, err := ctrl.campusService.GetCampuses(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, campuses, "Campus list", http.StatusOK)
}

func (ctrl *CampusController) GetCampus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	campus, err := ctrl.campusService.GetCampus(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, campus, "Campus detail", http.StatusOK)
}

func (ctrl *CampusController) CreateCampus(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.CreateCampusDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	id, err := ctrl.campusService.CreateCampus(ctx, actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, map[string]interface{}{"id": id}, "Campus created", http.StatusCreated)
}

func (ctrl *CampusController) UpdateCampus(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.UpdateCampusDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.campusService.UpdateCampus(ctx, actor, id, payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Campus updated", http.StatusOK)
}

func (ctrl *CampusController) DeleteCampus(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := authz.ActorFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.campusService.DeleteCampus(ctx, actor, id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Campus deleted", http.StatusOK)
}
