package service_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"arcade_hub/internal/domain"
	"arcade_hub/internal/service"
	"arcade_hub/internal/service/mocks"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func topProfiles() []domain.Profile {
	return []domain.Profile{
		{ID: uuid.New(), Username: "linus", AvatarType: "hacker", AvatarColor: "#10b981", TotalPoints: 4200, Level: 5},
		{ID: uuid.New(), Username: "ada", AvatarType: "coder", AvatarColor: "#ec4899", TotalPoints: 1200, Level: 2},
	}
}

func TestLeaderboardWithoutCache(t *testing.T) {
	profiles := new(mocks.ProfileStore)
	svc := service.NewLeaderboardService(profiles, nil, 10, time.Minute)
	ctx := context.Background()

	profiles.On("TopByPoints", mock.Anything, 10).Return(topProfiles(), nil).Twice()

	entries, err := svc.Top(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "linus", entries[0].Username)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 2, entries[1].Level)

	svc.Invalidate(ctx)
	_, err = svc.Top(ctx)
	require.NoError(t, err)
	profiles.AssertExpectations(t)
}

func TestLeaderboardStoreError(t *testing.T) {
	profiles := new(mocks.ProfileStore)
	svc := service.NewLeaderboardService(profiles, nil, 0, 0)

	profiles.On("TopByPoints", mock.Anything, 50).Return(nil, errors.New("db down")).Once()
	_, err := svc.Top(context.Background())
	assert.Error(t, err)
}

func TestLeaderboardRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx).Err())

	profiles := new(mocks.ProfileStore)
	limit := 7 + int(time.Now().UnixNano()%1000)
	svc := service.NewLeaderboardService(profiles, rdb, limit, time.Minute)
	svc.Invalidate(ctx)
	defer svc.Invalidate(ctx)

	profiles.On("TopByPoints", mock.Anything, limit).Return(topProfiles(), nil).Once()

	first, err := svc.Top(ctx)
	require.NoError(t, err)
	cached, err := svc.Top(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, cached)
	profiles.AssertNumberOfCalls(t, "TopByPoints", 1)

	svc.Invalidate(ctx)
	profiles.On("TopByPoints", mock.Anything, limit).Return(topProfiles()[:1], nil).Once()
	fresh, err := svc.Top(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 1)
}
