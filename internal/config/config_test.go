package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/arcade")
	t.Setenv("JWT_SECRET", "secret")
	for _, k := range []string{"APP_PORT", "REDIS_ADDR", "FEED_LIMIT", "LIKES_STALE_SECONDS", "ROUND_IDLE_MINUTES", "LOG_JSON"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 50, cfg.FeedLimit)
	assert.Equal(t, 30*time.Second, cfg.LikesStaleness)
	assert.Equal(t, time.Hour, cfg.RoundIdle)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.LogJSON)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/arcade")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("FEED_LIMIT", "20")
	t.Setenv("LEADERBOARD_CACHE_SECONDS", "5")
	t.Setenv("PLAY_RATE_LIMIT", "not-a-number")
	t.Setenv("REDIS_DB", "2")

	cfg := Load()
	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, 20, cfg.FeedLimit)
	assert.Equal(t, 5*time.Second, cfg.LeaderboardTTL)
	assert.Equal(t, 30, cfg.PlayRateLimit)
	assert.Equal(t, 2, cfg.RedisDB)
}
