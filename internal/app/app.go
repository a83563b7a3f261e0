package app

import (
	"context"
	"errors"

	"go-firme/internal/audit"
	"go-firme/internal/config"
	"go-firme/internal/database"
	"go-firme/internal/messaging/kafka/producer"
	"go-firme/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, applies migrations and mounts every
// module on router. The returned cleanup releases what was opened.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	logger = logger.Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(ctx, sqlDB, cfg.Database.Driver, logger); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	var closers []func() error
	closers = append(closers, sqlDB.Close)

	var extraSinks []audit.Sink
	if cfg.Kafka.Enabled {
		writer := connection.NewKafkaWriter(cfg.Kafka)
		closers = append(closers, writer.Close)
		extraSinks = append(extraSinks, producer.NewAPILogPublisher(writer, logger))
		logger.Info("api log events enabled", zap.String("topic", cfg.Kafka.Topic))
	}

	registerModules(router, cfg, gormDB, extraSinks, logger)

	cleanup := func() {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		if err := errors.Join(errs...); err != nil {
			logger.Warn("cleanup failed", zap.Error(err))
		}
	}
	return cleanup, nil
}
