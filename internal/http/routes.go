package http

import (
	"time"

	"arcade_hub/internal/config"
	"arcade_hub/internal/http/handlers"
	"arcade_hub/internal/http/middleware"
	"arcade_hub/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Limits are the rate-limit settings applied to the API.
type Limits struct {
	API        int
	APIWindow  time.Duration
	Play       int
	PlayWindow time.Duration
	// Redis selects the shared Redis limiter; otherwise counters are kept
	// in process memory.
	Redis bool
}

func LimitsFromConfig(cfg *config.Config, redis bool) Limits {
	return Limits{
		API:        cfg.APIRateLimit,
		APIWindow:  cfg.APIRateWindow,
		Play:       cfg.PlayRateLimit,
		PlayWindow: cfg.PlayRateWindow,
		Redis:      redis,
	}
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, health *handlers.HealthHandler, limits Limits, allowedOrigin string) {
	r.Use(middleware.Observe())

	// Health checks (no rate limiting)
	r.GET("/health", health.Health)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiRL := middleware.SimpleRateLimit(limits.API, limits.APIWindow)
	if limits.Redis {
		apiRL = middleware.RedisRateLimit(limits.API, limits.APIWindow)
	}

	v1 := r.Group("/api/v1")
	v1.Use(apiRL)
	registerAPIRoutes(v1, h, limits)

	// Live round stream
	r.GET("/ws/play/:id", ws.HandleWS(h.Plays, allowedOrigin))
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, limits Limits) {
	// Catalog
	api.GET("/games", h.ListGames)
	api.GET("/games/featured", h.FeaturedGames)
	api.GET("/games/:id", h.GetGame)
	api.GET("/stats", h.Stats)
	api.GET("/leaderboard", h.GetLeaderboard)

	auth := api.Group("")
	auth.Use(middleware.JWT())

	// Profile
	auth.GET("/me", h.Me)
	auth.PATCH("/me", h.UpdateMe)
	auth.GET("/me/sessions", h.MySessions)
	auth.GET("/achievements", h.GetAchievements)

	// Rounds (per user rate limit on starts only)
	auth.POST("/play", middleware.PlayRateLimit(limits.Play, limits.PlayWindow), h.StartPlay)
	auth.GET("/play/:id", h.GetPlay)
	auth.POST("/play/:id/actions", h.PlayAction)
	auth.DELETE("/play/:id", h.AbandonPlay)

	// Community feed
	auth.GET("/feed", h.GetFeed)
	auth.POST("/feed/posts", h.CreatePost)
	auth.DELETE("/feed/posts/:id", h.DeletePost)
	auth.POST("/feed/posts/:id/like", h.ToggleLike)
}
