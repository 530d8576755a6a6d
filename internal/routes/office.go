package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/controllers"
)

func runOfficeRouter(g *echo.Group, officeCtrl *controllers.OfficeController, campusCtrl *controllers.CampusController, logger *zap.Logger) {
	g.GET("/offices", officeCtrl.GetOffices,
		authz.RequirePermission(authz.OfficesView, logger))
	g.GET("/offices/:id", officeCtrl.GetOffice,
		authz.RequirePermission(authz.OfficesView, logger))
	g.POST("/offices", officeCtrl.CreateOffice,
		authz.RequirePermission(authz.OfficesManage, logger))
	g.PUT("/offices/:id", officeCtrl.UpdateOffice,
		authz.RequirePermission(authz.OfficesManage, logger))
	g.DELETE("/offices/:id", officeCtrl.DeleteOffice,
		authz.RequirePermission(authz.OfficesManage, logger))

	g.GET("/campuses", campusCtrl.GetCampuses,
		authz.RequirePermission(authz.CampusesView, logger))
	g.GET("/campuses/:id", campusCtrl.GetCampus,
		authz.RequirePermission(authz.CampusesView, logger))
	g.POST("/campuses", campusCtrl.CreateCampus,
		authz.RequirePermission(authz.CampusesManage, logger))
	g.PUT("/campuses/:id", campusCtrl.UpdateCampus,
		authz.RequirePermission(authz.CampusesManage, logger))
	g.DELETE("/campuses/:id", campusCtrl.DeleteCampus,
		authz.RequirePermission(authz.CampusesManage, logger))
}
