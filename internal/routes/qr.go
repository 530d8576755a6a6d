package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/controllers"
)

func runQRRouter(g *echo.Group, ctrl *controllers.QRCodeController, logger *zap.Logger) {
	g.POST("/qr/resolve", ctrl.ResolveScan,
		authz.RequirePermission(authz.QRResolve, logger))
	g.POST("/qr/batch", ctrl.BatchBundles,
		authz.RequirePermission(authz.QRPrint, logger))
}
