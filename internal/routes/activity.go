package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/controllers"
)

func runActivityRouter(g *echo.Group, ctrl *controllers.ActivityController, logger *zap.Logger) {
	g.GET("/activities", ctrl.GetActivities,
		authz.RequirePermission(authz.ActivitiesView, logger))
}
