package config

import (
	"os"
	"strconv"
	"time"

	"arcade_hub/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	DatabaseURL   string
	JWTSecret     string
	AllowedOrigin string

	LogLevel    string
	LogJSON     bool
	AutoMigrate bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Rate limits
	APIRateLimit    int
	APIRateWindow   time.Duration
	PlayRateLimit   int
	PlayRateWindow  time.Duration
	FeedLimit       int
	LeaderboardSize int

	LeaderboardTTL time.Duration
	LikesStaleness time.Duration
	RoundIdle      time.Duration
	FeedIdle       time.Duration
}

// Load reads .env (if present) and the environment. Missing required values
// are fatal; malformed numbers fall back to their defaults.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	return &Config{
		AppPort:       envString("APP_PORT", "8080"),
		DatabaseURL:   dbURL,
		JWTSecret:     jwtSecret,
		AllowedOrigin: envString("ALLOWED_ORIGIN", "*"),

		LogLevel:    envString("LOG_LEVEL", "info"),
		LogJSON:     os.Getenv("LOG_JSON") == "true",
		AutoMigrate: os.Getenv("AUTO_MIGRATE") == "true",

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		APIRateLimit:    envInt("API_RATE_LIMIT", 120),
		APIRateWindow:   envSeconds("API_RATE_WINDOW_SECONDS", 60),
		PlayRateLimit:   envInt("PLAY_RATE_LIMIT", 30), // новых раундов за окно
		PlayRateWindow:  envSeconds("PLAY_RATE_WINDOW_SECONDS", 60),
		FeedLimit:       envInt("FEED_LIMIT", 50),
		LeaderboardSize: envInt("LEADERBOARD_LIMIT", 50),

		LeaderboardTTL: envSeconds("LEADERBOARD_CACHE_SECONDS", 30),
		LikesStaleness: envSeconds("LIKES_STALE_SECONDS", 30),
		RoundIdle:      time.Duration(envInt("ROUND_IDLE_MINUTES", 60)) * time.Minute,
		FeedIdle:       time.Duration(envInt("FEED_IDLE_MINUTES", 30)) * time.Minute,
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt returns a positive integer from key, or def. REDIS_DB is the only
// value where zero is meaningful, so zero is accepted too.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		logger.Warn("invalid config value, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envSeconds(key string, def int) time.Duration {
	return time.Duration(envInt(key, def)) * time.Second
}
