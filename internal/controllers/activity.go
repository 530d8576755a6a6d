package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/services"
	"inventory-system/pkg/utils"
)

type ActivityController struct {
	activityService services.ActivityServiceInterface
	logger          *zap.Logger
}

func NewActivityController(activityService services.ActivityServiceInterface, logger *zap.Logger) *ActivityController {
	return &ActivityController{activityService: activityService, logger: logger}
}

// GetActivities lists the activity log, filterable by category through
// filter[a.category].
func (ctrl *ActivityController) GetActivities(c echo.Context) error {
	ctx := c.Request().Context()
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	list, total, err := ctrl.activityService.GetActivities(ctx, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, list, "Activity log", http.StatusOK, total)
}
