// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"enercore/internal/domain/resources/affiliate"
	"enercore/internal/domain/resources/bond"
	"enercore/internal/domain/resources/donation"
	"enercore/internal/domain/resources/installation"
	"enercore/internal/domain/resources/mainttask"
	"enercore/internal/domain/resources/saleorder"
	"enercore/internal/infrastructure/http/v1/handlers"
	"enercore/internal/infrastructure/http/v1/middleware"
	"enercore/internal/infrastructure/storage/postgres"
	"enercore/internal/metadata"
	"enercore/pkg/logger"
)

// RouterConfig holds everything the router needs to wire the API surface.
type RouterConfig struct {
	// Pool is the database pool, used by health checks
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// MetadataRegistry stores resource descriptions
	MetadataRegistry *metadata.Registry

	// Resource services
	Affiliates       *affiliate.Service
	Bonds            *bond.Service
	Donations        *donation.Service
	Installations    *installation.Service
	SaleOrders       *saleorder.Service
	MaintenanceTasks *mainttask.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no actor required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	base := handlers.NewBaseHandler()

	// API v1
	api := router.Group("/api/v1")
	api.Use(middleware.Actor())
	api.Use(middleware.Metrics())
	{
		meta := handlers.NewMetaHandler(cfg.MetadataRegistry)
		meta.Register(api.Group("/meta"))

		affiliates := api.Group("/affiliates")
		handlers.NewAffiliateHandler(base, cfg.Affiliates).Register(affiliates)
		meta.RegisterResource(affiliates, "affiliate")

		bonds := api.Group("/bonds")
		handlers.NewBondHandler(base, cfg.Bonds).Register(bonds)
		meta.RegisterResource(bonds, "bond")

		donations := api.Group("/donations")
		handlers.NewDonationHandler(base, cfg.Donations).Register(donations)
		meta.RegisterResource(donations, "donation")

		installations := api.Group("/installations")
		handlers.NewInstallationHandler(base, cfg.Installations).Register(installations)
		meta.RegisterResource(installations, "installation")

		saleOrders := api.Group("/sale-orders")
		handlers.NewSaleOrderHandler(base, cfg.SaleOrders).Register(saleOrders)
		meta.RegisterResource(saleOrders, "sale_order")

		maintenanceTasks := api.Group("/maintenance-tasks")
		handlers.NewMaintenanceTaskHandler(base, cfg.MaintenanceTasks).Register(maintenanceTasks)
		meta.RegisterResource(maintenanceTasks, "maintenance_task")
	}

	return router
}
