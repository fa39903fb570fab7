package main

import (
	"strings"
	"time"

	"github.com/aidmatch/trust-engine/internal/fraud"
	"github.com/aidmatch/trust-engine/internal/matching"
	"github.com/aidmatch/trust-engine/internal/preferences"
	"github.com/aidmatch/trust-engine/internal/trust"
	"github.com/aidmatch/trust-engine/pkg/common"
	"github.com/aidmatch/trust-engine/pkg/config"
	"github.com/aidmatch/trust-engine/pkg/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestBodySize = 10 << 20

// routerDeps carries the services and health probes the router exposes
type routerDeps struct {
	matchingService *matching.Service
	fraudService    *fraud.Service
	healthChecks    map[string]func() error
	extra           []gin.HandlerFunc
}

func newRouter(cfg *config.Config, deps routerDeps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics(cfg.Server.ServiceName))
	router.Use(middleware.MaxBodySize(maxRequestBodySize))
	if cfg.Server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}
	router.Use(deps.extra...)

	corsConfig := cors.Config{
		AllowOrigins:     strings.Split(cfg.Server.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID", "X-Correlation-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", common.HealthCheckWithDeps(cfg.Server.ServiceName, cfg.Server.Version, deps.healthChecks))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	trust.NewHandler().RegisterRoutes(api)
	preferences.NewHandler().RegisterRoutes(api)
	matching.NewHandler(deps.matchingService).RegisterRoutes(api)
	fraud.NewHandler(deps.fraudService).RegisterRoutes(api)

	return router
}
