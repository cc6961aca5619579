package service_test

import (
	"context"
	"errors"
	"testing"

	"arcade_hub/internal/domain"
	"arcade_hub/internal/service"
	"arcade_hub/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCompletionHandoff(t *testing.T) {
	ctx := context.Background()
	gameID := uuid.New()
	player := domain.Profile{ID: uuid.New(), Username: "ada", TotalPoints: 900, Level: 1}

	t.Run("all steps succeed", func(t *testing.T) {
		sessions := new(mocks.SessionStore)
		games := new(mocks.GameStore)
		profiles := new(mocks.ProfileStore)
		svc := service.NewCompletionService(sessions, games, profiles)

		sessions.On("Create", ctx, mock.MatchedBy(func(s *domain.GameSession) bool {
			return s.GameID == gameID && s.PlayerID == player.ID && s.Score == 300 && s.DurationSeconds == 42 && s.Completed
		})).Return(nil).Once()
		games.On("SetPlayCount", ctx, gameID, int64(8)).Return(nil).Once()
		updated := &domain.Profile{ID: player.ID, TotalPoints: 1200, Level: 2}
		profiles.On("Update", ctx, player.ID, domain.ProfileUpdate{
			TotalPoints: ptr(int64(1200)),
			Level:       ptr(2),
		}).Return(updated, nil).Once()

		res := svc.Complete(ctx, service.Completion{
			GameID:         gameID,
			PriorPlayCount: 7,
			Player:         player,
			Score:          300,
			Duration:       42,
		})

		assert.True(t, res.OK())
		assert.Equal(t, int64(1200), res.TotalPoints)
		assert.Equal(t, 2, res.Level)
		assert.Equal(t, int64(8), res.PlayCount)
		require.NotNil(t, res.Session)
		assert.Equal(t, updated, res.Profile)

		sessions.AssertExpectations(t)
		games.AssertExpectations(t)
		profiles.AssertExpectations(t)
	})

	t.Run("failed steps do not stop the others", func(t *testing.T) {
		sessions := new(mocks.SessionStore)
		games := new(mocks.GameStore)
		profiles := new(mocks.ProfileStore)
		svc := service.NewCompletionService(sessions, games, profiles)

		sessions.On("Create", ctx, mock.Anything).Return(errors.New("insert failed")).Once()
		games.On("SetPlayCount", ctx, gameID, int64(1)).Return(errors.New("timeout")).Once()
		profiles.On("Update", ctx, player.ID, mock.Anything).Return(&domain.Profile{ID: player.ID}, nil).Once()

		res := svc.Complete(ctx, service.Completion{GameID: gameID, Player: player, Score: 50})

		assert.False(t, res.OK())
		assert.Equal(t, []string{service.StepSession, service.StepPlayCount}, res.Failed)
		assert.Nil(t, res.Session)
		assert.NotNil(t, res.Profile)
		profiles.AssertExpectations(t)
	})
}
