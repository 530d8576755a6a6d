package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/controllers"
)

func runEquipmentRouter(
	g *echo.Group,
	equipmentCtrl *controllers.EquipmentController,
	historyCtrl *controllers.EquipmentHistoryController,
	qrCtrl *controllers.QRCodeController,
	logger *zap.Logger,
) {
	g.GET("/equipments", equipmentCtrl.GetEquipments,
		authz.RequirePermission(authz.EquipmentView, logger))
	g.GET("/equipments/export", equipmentCtrl.ExportEquipments,
		authz.RequirePermission(authz.EquipmentExport, logger))
	g.GET("/equipments/:id", equipmentCtrl.GetEquipment,
		authz.RequirePermission(authz.EquipmentView, logger))
	g.POST("/equipments", equipmentCtrl.CreateEquipment,
		authz.RequirePermission(authz.EquipmentCreate, logger))
	g.PUT("/equipments/:id", equipmentCtrl.UpdateEquipment,
		authz.RequirePermission(authz.EquipmentEdit, logger))
	g.DELETE("/equipments/:id", equipmentCtrl.DeleteEquipment,
		authz.RequirePermission(authz.EquipmentDelete, logger))

	g.GET("/equipments/:id/histories", historyCtrl.GetHistories,
		authz.RequirePermission(authz.HistoryView, logger))
	g.POST("/equipments/:id/histories", historyCtrl.CreateHistory,
		authz.RequirePermission(authz.HistoryCreate, logger))
	g.PUT("/equipments/:id/histories/:historyId", historyCtrl.UpdateHistory,
		authz.RequirePermission(authz.HistoryEdit, logger))
	g.GET("/equipments/:id/histories/backdate-check", historyCtrl.CheckBackdate,
		authz.RequirePermission(authz.HistoryCreate, logger))

	g.GET("/histories/generate-jo-number", historyCtrl.GenerateJoNumber,
		authz.RequirePermission(authz.HistoryCreate, logger))

	g.GET("/equipments/:id/qr", qrCtrl.GetImage,
		authz.RequirePermission(authz.QRView, logger))
}
