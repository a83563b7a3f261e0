package app

import (
	"net/http"

	"go-firme/internal/apilog"
	"go-firme/internal/audit"
	"go-firme/internal/company"
	"go-firme/internal/config"
	"go-firme/internal/listafirme"
	"go-firme/internal/shared/response"
	"go-firme/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	gormDB *gorm.DB,
	extraSinks []audit.Sink,
	logger *zap.Logger,
) {
	// --- Repositories ---
	apiLogRepo := apilog.NewRepository(gormDB)

	// --- Services ---
	apiLogService := apilog.NewService(apiLogRepo, logger)

	sinks := append(audit.MultiSink{apiLogService, audit.NewZapSink(logger)}, extraSinks...)

	client := listafirme.NewClient(cfg.ListaFirme, sinks, logger)
	companyService := company.NewService(client, cfg.ListaFirme, logger)

	if cfg.ListaFirme.APIKey == "" {
		if cfg.ListaFirme.DemoMode {
			logger.Warn("lista firme api key missing, demo mode serves the test CUI only",
				zap.String("test_cui", cfg.ListaFirme.TestCUI))
		} else {
			logger.Warn("lista firme api key missing, lookups will fail")
		}
	}

	// --- Handlers ---
	companyHandler := company.NewHandler(companyService, logger)
	apiLogHandler := apilog.NewHandler(apiLogService, logger)

	// --- Routes Registration ---
	router.SetHTMLTemplate(web.Templates())
	router.GET("/healthz", healthHandler(gormDB))
	company.RegisterWebRoutes(router, companyHandler)

	api := router.Group("/api/v1")
	{
		company.RegisterRoutes(api, companyHandler)
		apilog.RegisterRoutes(api, apiLogHandler)
	}
}

func healthHandler(gormDB *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := gormDB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Database unreachable", nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	}
}
