package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runAuthRouter(g *echo.Group, ctrl *controllers.AuthController) {
	g.POST("/auth/login", ctrl.Login)
	g.POST("/auth/refresh", ctrl.Refresh)
}
