package apilog

import (
	"context"
	"time"

	"go-firme/internal/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	retentionLockKey = "firme:apilog:retention:lock"
	minLockTTL       = time.Minute
)

// Sweeper periodically purges api logs past the retention window. With a
// Redis client, only the worker holding the lock sweeps in a given window.
type Sweeper struct {
	service  Service
	rdb      *redis.Client
	days     int
	interval time.Duration
	owner    string
	logger   *zap.Logger
}

func NewSweeper(service Service, rdb *redis.Client, cfg config.RetentionConfig, logger ...*zap.Logger) *Sweeper {
	l := zap.L().Named("apilog.retention")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("apilog.retention")
	}

	return &Sweeper{
		service:  service,
		rdb:      rdb,
		days:     cfg.Days,
		interval: cfg.Interval,
		owner:    uuid.NewString(),
		logger:   l,
	}
}

// lockTTL keeps the lock for half an interval, so a peer on the same
// schedule skips instead of sweeping right after.
func (s *Sweeper) lockTTL() time.Duration {
	ttl := s.interval / 2
	if ttl < minLockTTL {
		ttl = minLockTTL
	}
	return ttl
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	interval := s.interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("retention sweeper started",
		zap.Int("days", s.days),
		zap.Duration("interval", interval),
	)

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("retention sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if _, _, err := s.SweepOnce(ctx); err != nil {
		s.logger.Error("retention sweep failed", zap.Error(err))
	}
}

// SweepOnce purges once. ran is false when another worker holds the lock.
func (s *Sweeper) SweepOnce(ctx context.Context) (deleted int64, ran bool, err error) {
	if s.rdb != nil {
		acquired, err := s.rdb.SetNX(ctx, retentionLockKey, s.owner, s.lockTTL()).Result()
		if err != nil {
			return 0, false, err
		}
		if !acquired {
			s.logger.Debug("retention lock held elsewhere, skipping")
			return 0, false, nil
		}
	}

	deleted, err = s.service.PurgeOlderThan(ctx, s.days)
	if err != nil {
		return 0, true, err
	}
	return deleted, true, nil
}
