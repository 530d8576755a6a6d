package main

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"inventory-system/internal/routes"
	"inventory-system/pkg/config"
	"inventory-system/pkg/database/postgresql"
	apperrors "inventory-system/pkg/errors"
	applogger "inventory-system/pkg/logger"
	"inventory-system/pkg/service"
	"inventory-system/pkg/utils"
	"inventory-system/pkg/validation"
)

func main() {
	e := echo.New()
	e.HideBanner = true

	logger := applogger.NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg := config.New()

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "internal server error", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	absPath, err := filepath.Abs(cfg.Storage.BasePath)
	if err != nil {
		logger.Fatal("could not resolve storage path", zap.Error(err))
	}
	e.Static("/uploads", absPath)

	e.Validator = validation.New()

	if err := postgresql.RunMigrations(cfg.Postgres.DSN); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	dbConn, err := postgresql.ConnectDB(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("could not connect to postgres", zap.Error(err))
	}
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("could not connect to redis",
			zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	if err := routes.InitRouter(e, dbConn, redisClient, jwtSvc, logger, cfg); err != nil {
		logger.Fatal("router initialization failed", zap.Error(err))
	}

	logger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
