package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "apphooks/docs"
	"apphooks/internal/api/handlers"
	"apphooks/internal/api/middleware"
	"apphooks/internal/install"
	"apphooks/internal/metrics"
	"apphooks/internal/store"
)

const Version = "1.0.0"

type Dependencies struct {
	Repositories store.Repositories
	Installer    *install.Service
	Verifier     handlers.SignatureVerifier
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	DB           handlers.Pinger
	AdminAPIKey  string
	Debug        bool
}

func NewRouter(deps Dependencies) *gin.Engine {
	if !deps.Debug && gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	mw := middleware.New()

	r.Use(mw.Recovery())
	r.Use(mw.RequestID())
	r.Use(mw.Logger())
	r.Use(mw.Security())
	r.Use(mw.CORS())

	health := handlers.NewHealthHandler(deps.DB, Version)
	r.GET("/health", health.Check)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Chamadas de apps externos: autenticadas pela assinatura, não pela API key.
	webhooks := handlers.NewWebhookHandler(deps.Verifier, deps.Repositories.Apps, deps.Metrics)
	r.POST("/webhooks/:event", webhooks.Receive)

	admin := r.Group("/", middleware.AdminAuth(deps.AdminAPIKey))

	apps := handlers.NewAppHandler(deps.Repositories.Apps, deps.Repositories.WebhookLogs)
	admin.POST("/apps", apps.CreateApp)
	admin.GET("/apps", apps.ListApps)
	admin.GET("/apps/:appId", apps.GetApp)
	admin.POST("/apps/:appId/secret/rotate", apps.RotateSecret)

	installs := handlers.NewInstallHandler(deps.Installer)
	institute := admin.Group("/institutes/:instituteId/apps/:appId")
	institute.POST("/install", installs.Install)
	institute.DELETE("/install", installs.Uninstall)
	institute.PATCH("/status", installs.SetStatus)
	institute.PUT("/settings", installs.Configure)
	institute.GET("/webhook-logs", apps.ListWebhookLogs)

	return r
}
