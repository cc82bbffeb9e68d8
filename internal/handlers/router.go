package handlers

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rental-insights/internal/analytics"
	"rental-insights/internal/config"
	"rental-insights/internal/ratelimit"
)

// NewRouter wires middleware and routes for the query API
func NewRouter(svc *analytics.Service, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger, cfg.Logging.LogRequests))

	// CORS configuration; no configured origins means any origin
	corsConfig := cors.Config{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{"GET"},
		AllowHeaders:  []string{"Origin", "Content-Type", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	limiter := ratelimit.NewRateLimiter(
		cfg.RateLimit.RequestsPerSecond(),
		cfg.RateLimit.Burst,
		cfg.RateLimit.Enabled,
	)

	r.GET("/health", HealthCheck)
	r.GET("/api/ratelimit/stats", RateLimitStats(limiter))

	limited := r.Group("/", RateLimit(limiter))
	NewQueryHandler(svc).Register(limited)

	return r
}
