package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/feed-engine/internal/auth"
	"github.com/jonesrussell/feed-engine/internal/config"
	"github.com/jonesrussell/feed-engine/internal/handler"
	"github.com/jonesrussell/feed-engine/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the route handlers the router wires up.
type Handlers struct {
	Health     *handler.HealthHandler
	Feed       *handler.FeedHandler
	Summarize  *handler.SummarizeHandler
	Engagement *handler.EngagementHandler
	History    *handler.HistoryHandler
}

// SetupRoutes configures all API routes. The done channel stops the rate
// limiter's cleanup goroutine on shutdown.
func SetupRoutes(
	router *gin.Engine,
	h Handlers,
	cfg *config.Config,
	registry *prometheus.Registry,
	done <-chan struct{},
) {
	router.GET("/health", h.Health.HealthCheck)
	router.GET("/health/ready", h.Health.ReadyCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimiter(cfg.RateLimit.MaxRequestsPerMinute, window, done))

	v1.POST("/feed", h.Feed.GetFeed)
	v1.POST("/summarize", h.Summarize.Summarize)

	// Identity-scoped routes.
	authed := v1.Group("")
	authed.Use(auth.Middleware(cfg.Service.JWTSecret))
	authed.POST("/feed/personalized", h.Feed.GetPersonalizedFeed)
	authed.POST("/history/clear", h.History.Clear)

	engage := authed.Group("")
	engage.Use(middleware.BotFilter())
	engage.POST("/engagement", h.Engagement.Record)
}
