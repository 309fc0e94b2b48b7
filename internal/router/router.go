package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/train-ticket-validation/internal/config"
	"github.com/iliyamo/train-ticket-validation/internal/handler"
	"github.com/iliyamo/train-ticket-validation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI wires all ticket endpoints.
//
// Purchase, verification and the static informational endpoints are public:
// anyone can buy a ticket or check one.  The scan endpoints are what the
// conductor fleet uses and sit behind the device JWT middleware plus a
// per-device rate limit.  The static GET endpoints are wrapped in the Redis
// response cache; rdb may be nil, in which case caching and rate limiting
// silently disable themselves.
func RegisterAPI(e *echo.Echo, cfg config.Config, rdb *redis.Client,
	scans *handler.ScanHandler, tickets *handler.TicketHandler, auth *handler.DeviceAuthHandler) {

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Device onboarding and token exchange.
	e.POST("/v1/auth/device", auth.Token)
	e.POST("/v1/auth/device/register", auth.Register)

	// Public purchase and verification endpoints.
	e.PUT("/v1/tickets", tickets.Buy)
	e.POST("/v1/tickets/verify", tickets.Verify)
	e.GET("/v1/routes", tickets.Routes, cacheMW)
	e.GET("/v1/public-key", tickets.PublicKey, cacheMW)

	// Scan endpoints, restricted to authenticated scanner devices.
	protected := e.Group("/v1")
	protected.Use(middleware.DeviceAuth(cfg.JWTSecret))
	protected.Use(limitMW)
	protected.PUT("/scans/:token", scans.Register)
	protected.GET("/tickets/:token", scans.Lookup)
}
