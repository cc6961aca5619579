package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"arcade_hub/internal/domain"
	"arcade_hub/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	ProfileID   string `json:"profile_id"`
	Username    string `json:"username"`
	AvatarType  string `json:"avatar_type"`
	AvatarColor string `json:"avatar_color"`
	TotalPoints int64  `json:"total_points"`
	Level       int    `json:"level"`
}

// LeaderboardService serves the top players, cached in Redis when a client
// is configured. Redis problems fall through to the database.
type LeaderboardService struct {
	profiles ProfileStore
	rdb      *redis.Client
	limit    int
	ttl      time.Duration
}

func NewLeaderboardService(profiles ProfileStore, rdb *redis.Client, limit int, ttl time.Duration) *LeaderboardService {
	if limit <= 0 {
		limit = 50
	}
	return &LeaderboardService{profiles: profiles, rdb: rdb, limit: limit, ttl: ttl}
}

func (s *LeaderboardService) key() string {
	return "leaderboard:top:" + strconv.Itoa(s.limit)
}

func (s *LeaderboardService) Top(ctx context.Context) ([]LeaderboardEntry, error) {
	if s.rdb != nil && s.ttl > 0 {
		raw, err := s.rdb.Get(ctx, s.key()).Bytes()
		switch {
		case err == nil:
			var cached []LeaderboardEntry
			if jerr := json.Unmarshal(raw, &cached); jerr == nil {
				return cached, nil
			}
		case !errors.Is(err, redis.Nil):
			logger.WithContext(ctx).Warn("leaderboard cache read failed", "error", err)
		}
	}

	profiles, err := s.profiles.TopByPoints(ctx, s.limit)
	if err != nil {
		return nil, err
	}
	entries := rank(profiles)

	if s.rdb != nil && s.ttl > 0 {
		if raw, err := json.Marshal(entries); err == nil {
			if err := s.rdb.Set(ctx, s.key(), raw, s.ttl).Err(); err != nil {
				logger.WithContext(ctx).Warn("leaderboard cache write failed", "error", err)
			}
		}
	}
	return entries, nil
}

// Invalidate drops the cached board so the next read sees new totals.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, s.key()).Err(); err != nil {
		logger.WithContext(ctx).Warn("leaderboard cache invalidate failed", "error", err)
	}
}

func rank(profiles []domain.Profile) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, len(profiles))
	for i, p := range profiles {
		entries[i] = LeaderboardEntry{
			Rank:        i + 1,
			ProfileID:   p.ID.String(),
			Username:    p.Username,
			AvatarType:  p.AvatarType,
			AvatarColor: p.AvatarColor,
			TotalPoints: p.TotalPoints,
			Level:       p.Level,
		}
	}
	return entries
}
