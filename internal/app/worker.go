package app

import (
	"context"

	"go-firme/internal/apilog"
	"go-firme/internal/config"
	"go-firme/internal/database"
	"go-firme/internal/shared/connection"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RunWorker runs the api log retention sweep until ctx is done. Redis is
// optional; without it every worker sweeps on its own schedule.
func RunWorker(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger = logger.Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := database.Migrate(ctx, sqlDB, cfg.Database.Driver, logger); err != nil {
		return err
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis, logger)
		if err != nil {
			return err
		}
		defer rdb.Close()
	} else {
		logger.Warn("redis not configured, retention sweep runs without a lock")
	}

	service := apilog.NewService(apilog.NewRepository(gormDB), logger)
	apilog.NewSweeper(service, rdb, cfg.Retention, logger).Run(ctx)

	logger.Info("worker shutting down")
	return nil
}
