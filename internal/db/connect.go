package db

import (
	"context"
	"time"

	"arcade_hub/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func Connect(ctx context.Context, dsn string) *pgxpool.Pool {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Fatal("invalid database url", "error", err)
	}
	cfg.MaxConnIdleTime = 5 * time.Minute

	db, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	if err := db.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("database connected")
	return db
}

// ConnectRedis returns nil when addr is empty. An unreachable server is
// logged and the client is still returned; callers fail open.
func ConnectRedis(ctx context.Context, addr, password string, dbIndex int) *redis.Client {
	if addr == "" {
		logger.Info("redis not configured")
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       dbIndex,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis ping failed", "addr", addr, "error", err)
	} else {
		logger.Info("redis connected", "addr", addr)
	}
	return rdb
}
