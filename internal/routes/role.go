package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/controllers"
)

func runRoleRouter(g *echo.Group, roleCtrl *controllers.RoleController, permissionCtrl *controllers.PermissionController, logger *zap.Logger) {
	g.GET("/roles", roleCtrl.GetRoles,
		authz.RequirePermission(authz.RolesView, logger))
	g.GET("/roles/:id", roleCtrl.GetRole,
		authz.RequirePermission(authz.RolesView, logger))
	g.POST("/roles", roleCtrl.CreateRole,
		authz.RequirePermission(authz.RolesManage, logger))
	g.PUT("/roles/:id", roleCtrl.UpdateRole,
		authz.RequirePermission(authz.RolesManage, logger))
	g.PUT("/roles/:id/permissions", roleCtrl.ReplacePermissions,
		authz.RequirePermission(authz.RolesManage, logger))

	g.GET("/permissions", permissionCtrl.GetPermissions,
		authz.RequirePermission(authz.PermissionsView, logger))
}
