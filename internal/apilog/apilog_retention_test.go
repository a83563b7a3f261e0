package apilog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-firme/internal/apilog"
	apilogMock "go-firme/internal/apilog/mock"
	"go-firme/internal/config"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const lockKey = "firme:apilog:retention:lock"

func TestSweeper_SweepOnce(t *testing.T) {
	ctx := context.Background()
	cfg := config.RetentionConfig{Days: 30, Interval: time.Hour}

	t.Run("acquires lock and purges", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := apilogMock.NewMockService(ctrl)
		rdb, mock := redismock.NewClientMock()

		mock.Regexp().ExpectSetNX(lockKey, `.+`, 30*time.Minute).SetVal(true)
		svc.EXPECT().PurgeOlderThan(ctx, 30).Return(int64(12), nil)

		deleted, ran, err := apilog.NewSweeper(svc, rdb, cfg, zap.NewNop()).SweepOnce(ctx)

		assert.NoError(t, err)
		assert.True(t, ran)
		assert.Equal(t, int64(12), deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips when lock is held", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := apilogMock.NewMockService(ctrl)
		rdb, mock := redismock.NewClientMock()

		mock.Regexp().ExpectSetNX(lockKey, `.+`, 30*time.Minute).SetVal(false)
		svc.EXPECT().PurgeOlderThan(gomock.Any(), gomock.Any()).Times(0)

		deleted, ran, err := apilog.NewSweeper(svc, rdb, cfg, zap.NewNop()).SweepOnce(ctx)

		assert.NoError(t, err)
		assert.False(t, ran)
		assert.Zero(t, deleted)
	})

	t.Run("redis error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := apilogMock.NewMockService(ctrl)
		rdb, mock := redismock.NewClientMock()

		mock.Regexp().ExpectSetNX(lockKey, `.+`, 30*time.Minute).SetErr(errors.New("redis down"))

		_, ran, err := apilog.NewSweeper(svc, rdb, cfg, zap.NewNop()).SweepOnce(ctx)

		assert.Error(t, err)
		assert.False(t, ran)
	})

	t.Run("without redis always sweeps", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := apilogMock.NewMockService(ctrl)
		svc.EXPECT().PurgeOlderThan(ctx, 30).Return(int64(0), nil)

		_, ran, err := apilog.NewSweeper(svc, nil, cfg, zap.NewNop()).SweepOnce(ctx)

		assert.NoError(t, err)
		assert.True(t, ran)
	})
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := apilogMock.NewMockService(ctrl)
	svc.EXPECT().PurgeOlderThan(gomock.Any(), 30).Return(int64(0), nil).MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		apilog.NewSweeper(svc, nil, config.RetentionConfig{Days: 30, Interval: time.Hour}, zap.NewNop()).Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
