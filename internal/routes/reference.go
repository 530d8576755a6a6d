package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/controllers"
)

func runReferenceRouter(g *echo.Group, ctrl *controllers.ReferenceController, logger *zap.Logger) {
	g.GET("/equipment-types", ctrl.GetEquipmentTypes,
		authz.RequirePermission(authz.EquipmentView, logger))
	g.POST("/equipment-types", ctrl.CreateEquipmentType,
		authz.RequirePermission(authz.EquipmentCreate, logger))
	g.GET("/equipment-categories", ctrl.GetEquipmentCategories,
		authz.RequirePermission(authz.EquipmentView, logger))
	g.POST("/equipment-categories", ctrl.CreateEquipmentCategory,
		authz.RequirePermission(authz.EquipmentCreate, logger))
}
