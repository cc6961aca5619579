package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arcade_hub/internal/config"
	"arcade_hub/internal/db"
	"arcade_hub/internal/game"
	httpServer "arcade_hub/internal/http"
	"arcade_hub/internal/http/handlers"
	"arcade_hub/internal/http/middleware"
	"arcade_hub/internal/logger"
	"arcade_hub/internal/migrations"
	"arcade_hub/internal/repository"
	"arcade_hub/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT(cfg.JWTSecret)

	if cfg.AutoMigrate {
		if err := migrations.Up(cfg.DatabaseURL); err != nil {
			logger.Fatal("migrations failed", "error", err)
		}
		logger.Info("migrations applied")
	}

	ctx := context.Background()
	dbPool := db.Connect(ctx, cfg.DatabaseURL)
	defer dbPool.Close()

	rdb := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if rdb != nil {
		defer rdb.Close()
	}
	middleware.UseRedis(rdb)

	profiles := repository.NewProfileRepository(dbPool)
	games := repository.NewGameRepository(dbPool)
	sessions := repository.NewSessionRepository(dbPool)

	leaderboard := service.NewLeaderboardService(profiles, rdb, cfg.LeaderboardSize, cfg.LeaderboardTTL)
	completion := service.NewCompletionService(sessions, games, profiles)
	plays := service.NewPlayService(games, profiles, completion, game.NewFactory(0), game.SystemClock).
		WithLeaderboard(leaderboard)
	feeds := service.NewFeedService(
		repository.NewPostRepository(dbPool),
		repository.NewLikeRepository(dbPool),
		service.FeedConfig{Limit: cfg.FeedLimit, StaleAfter: cfg.LikesStaleness},
		time.Now,
	)

	h := &handlers.Handler{
		Catalog:      service.NewCatalogService(games, profiles, sessions),
		Plays:        plays,
		Feeds:        feeds,
		Leaderboard:  leaderboard,
		Achievements: service.NewAchievementService(repository.NewAchievementRepository(dbPool)),
		Profiles:     service.NewProfileService(profiles),
	}

	var cache handlers.Pinger
	if rdb != nil {
		cache = handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}
	health := handlers.NewHealthHandler(dbPool, cache, plays.Active, version)

	sched, err := service.StartScheduler(plays, feeds, service.SchedulerConfig{
		RoundIdle:      cfg.RoundIdle,
		FeedIdle:       cfg.FeedIdle,
		LikesStaleness: cfg.LikesStaleness,
	})
	if err != nil {
		logger.Fatal("failed to start scheduler", "error", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// CORS for production (frontend on different domain)
	corsConfig := cors.DefaultConfig()
	if cfg.AllowedOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.AllowedOrigin}
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	httpServer.RegisterRoutes(r, h, health, httpServer.LimitsFromConfig(cfg, rdb != nil), cfg.AllowedOrigin)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	if err := sched.Shutdown(); err != nil {
		logger.Warn("scheduler shutdown failed", "error", err)
	}
	// abandons open rounds and waits for handoffs already in flight
	if err := plays.Shutdown(shutdownCtx); err != nil {
		logger.Warn("pending handoffs not finished", "error", err)
	}

	logger.Info("server exited")
}
