package main

import (
	"context"
	"flag"

	"go-firme/internal/app"
	"go-firme/internal/bootstrap"
	"go-firme/internal/config"
	"go-firme/internal/middleware"
	"go-firme/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.ContextLogger(logger), middleware.AccessLog(logger))

	// build dependency + routes
	cleanup, err := app.BuildApp(context.Background(), r, cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	if err := bootstrap.StartHTTPServer(r, cfg.Server, bootstrap.NewZapLifecycleLogger(logger)); err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}
