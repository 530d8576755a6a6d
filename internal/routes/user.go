package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/controllers"
)

func runUserRouter(g *echo.Group, ctrl *controllers.UserController, logger *zap.Logger) {
	g.GET("/users", ctrl.GetUsers,
		authz.RequirePermission(authz.UsersView, logger))
	g.GET("/users/:id", ctrl.GetUser,
		authz.RequirePermission(authz.UsersView, logger))
	g.POST("/users", ctrl.CreateUser,
		authz.RequirePermission(authz.UsersCreate, logger))
	g.PUT("/users/:id", ctrl.UpdateUser,
		authz.RequirePermission(authz.UsersEdit, logger))
	g.PUT("/users/:id/role", ctrl.AssignRole,
		authz.RequirePermission(authz.UsersEdit, logger))

	g.GET("/users/:id/overrides", ctrl.GetOverrides,
		authz.RequirePermission(authz.PermissionsView, logger))
	g.PUT("/users/:id/overrides", ctrl.SetOverride,
		authz.RequirePermission(authz.PermissionsManage, logger))
	g.DELETE("/users/:id/overrides/:permissionId", ctrl.RemoveOverride,
		authz.RequirePermission(authz.PermissionsManage, logger))
}
