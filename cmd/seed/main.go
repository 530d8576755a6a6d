package main

import (
	"context"

	"go.uber.org/zap"

	"inventory-system/pkg/config"
	"inventory-system/pkg/database/postgresql"
	applogger "inventory-system/pkg/logger"
	"inventory-system/seeders"
)

func main() {
	logger := applogger.NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg := config.New()
	ctx := context.Background()

	if err := postgresql.RunMigrations(cfg.Postgres.DSN); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("could not connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := seeders.RunAll(ctx, pool, logger); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
	logger.Info("seeding complete")
}
