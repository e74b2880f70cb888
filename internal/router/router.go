// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/flight-demand-dashboard/internal/config"
	"github.com/iliyamo/flight-demand-dashboard/internal/handler"
	"github.com/iliyamo/flight-demand-dashboard/internal/middleware"
)

// RegisterRoutes registers routes that do not belong to a feature group.
// Currently it exposes only a health check, which load balancers and
// monitoring systems can use to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterDashboard registers the read-only chart and summary endpoints
// under /v1. Chart responses are derived from the same booking window,
// so they share a Redis response cache when one is available; rdb may be
// nil, in which case the endpoints serve uncached.
func RegisterDashboard(e *echo.Echo, h *handler.DashboardHandler, cfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1")
	if rdb != nil && cfg.Enabled {
		g.Use(middleware.NewRedisCache(cfg, rdb))
	}
	g.GET("/dashboard/summary", h.GetSummary)
	g.GET("/charts/price-trends", h.GetPriceTrends)
	g.GET("/charts/route-popularity", h.GetRoutePopularity)
	g.GET("/charts/demand-heatmap", h.GetDemandHeatmap)
	g.GET("/charts/seasonal", h.GetSeasonal)
}

// RegisterData registers the flight listing, airport filter and ingestion
// trigger endpoints under /v1.
func RegisterData(e *echo.Echo, h *handler.DataHandler) {
	e.GET("/v1/flights", h.GetFlights)
	e.GET("/v1/filters/airports", h.GetAirports)
	e.POST("/v1/data/fetch", h.PostFetch)
}

// RegisterInsights registers the insight listing and generation-trigger
// endpoints under /v1.
func RegisterInsights(e *echo.Echo, h *handler.InsightHandler) {
	e.GET("/v1/insights", h.GetInsights)
	e.POST("/v1/insights/generate", h.PostGenerate)
}

// RegisterRateLimit applies the Redis token-bucket limiter to every
// route. It is a no-op when limiting is disabled or Redis is down, so
// the API degrades gracefully instead of refusing traffic.
func RegisterRateLimit(e *echo.Echo, cfg config.RateLimitConfig, rdb *redis.Client) {
	if rdb == nil || !cfg.Enabled {
		return
	}
	e.Use(middleware.NewTokenBucket(cfg, rdb))
}
