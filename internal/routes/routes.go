package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/controllers"
	"inventory-system/internal/listeners"
	"inventory-system/internal/repositories"
	"inventory-system/internal/services"
	"inventory-system/pkg/config"
	"inventory-system/pkg/eventbus"
	"inventory-system/pkg/filestorage"
	"inventory-system/pkg/middleware"
	"inventory-system/pkg/service"
)

// InitRouter wires repositories, services, controllers, and the event bus,
// then mounts every route group under /api.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) error {
	api := e.Group("/api")

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Storage.BasePath)
	if err != nil {
		return err
	}

	txManager := repositories.NewTxManager(dbConn)
	bus := eventbus.New(logger)

	// Repositories.
	userRepo := repositories.NewUserRepository(dbConn)
	roleRepo := repositories.NewRoleRepository(dbConn)
	permissionRepo := repositories.NewPermissionRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	historyRepo := repositories.NewEquipmentHistoryRepository(dbConn)
	officeRepo := repositories.NewOfficeRepository(dbConn)
	campusRepo := repositories.NewCampusRepository(dbConn)
	typeRepo := repositories.NewEquipmentTypeRepository(dbConn)
	activityRepo := repositories.NewActivityRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	sessionRepo := repositories.NewSessionRepository(redisClient)

	// Listeners.
	listeners.NewSessionListener(sessionRepo, cacheRepo, logger).Register(bus)

	// Services.
	activityService := services.NewActivityService(activityRepo, logger)
	authPermissionService := services.NewAuthPermissionService(permissionRepo, cacheRepo, logger)
	gatekeeper := services.NewGatekeeper(userRepo, authPermissionService, logger)
	authService := services.NewAuthService(userRepo, sessionRepo, jwtSvc, activityService, logger)
	allocator := services.NewJoNumberAllocator(historyRepo, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, activityService, logger)
	historyService := services.NewEquipmentHistoryService(historyRepo, equipmentRepo, allocator, txManager, activityService, logger)
	qrService := services.NewQRCodeService(equipmentRepo, fileStorage, activityService, cfg.Server.PublicBaseURL, logger)
	exporter := services.NewEquipmentExporter(equipmentRepo, logger)
	userService := services.NewUserService(userRepo, roleRepo, permissionRepo, bus, activityService, logger)
	roleService := services.NewRoleService(roleRepo, userRepo, bus, activityService, logger)
	permissionService := services.NewPermissionService(permissionRepo)
	officeService := services.NewOfficeService(officeRepo, activityService, logger)
	campusService := services.NewCampusService(campusRepo, activityService, logger)
	referenceService := services.NewReferenceService(typeRepo)

	// Controllers.
	authController := controllers.NewAuthController(authService, logger)
	equipmentController := controllers.NewEquipmentController(equipmentService, exporter, logger)
	historyController := controllers.NewEquipmentHistoryController(historyService, logger)
	qrController := controllers.NewQRCodeController(qrService, logger)
	userController := controllers.NewUserController(userService, logger)
	roleController := controllers.NewRoleController(roleService, logger)
	permissionController := controllers.NewPermissionController(permissionService, logger)
	officeController := controllers.NewOfficeController(officeService, logger)
	campusController := controllers.NewCampusController(campusService, logger)
	activityController := controllers.NewActivityController(activityService, logger)
	referenceController := controllers.NewReferenceController(referenceService, logger)

	// Public routes.
	runAuthRouter(api, authController)

	// Everything else requires a live session and a resolved actor.
	secure := api.Group("",
		middleware.AuthMiddleware(jwtSvc, sessionRepo, logger),
		authz.ActorMiddleware(gatekeeper, logger),
	)

	secure.POST("/auth/logout", authController.Logout)

	runEquipmentRouter(secure, equipmentController, historyController, qrController, logger)
	runQRRouter(secure, qrController, logger)
	runUserRouter(secure, userController, logger)
	runRoleRouter(secure, roleController, permissionController, logger)
	runOfficeRouter(secure, officeController, campusController, logger)
	runReferenceRouter(secure, referenceController, logger)
	runActivityRouter(secure, activityController, logger)

	return nil
}
