package service

import (
	"context"
	"time"

	"arcade_hub/internal/domain"
	"arcade_hub/internal/logger"

	"github.com/google/uuid"
)

type AchievementView struct {
	domain.Achievement
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

type AchievementGroup struct {
	Category     string            `json:"category"`
	Achievements []AchievementView `json:"achievements"`
}

// AchievementBoard is the read-only achievements page for one user.
type AchievementBoard struct {
	Earned   int                `json:"earned"`
	Total    int                `json:"total"`
	Progress float64            `json:"progress"`
	Groups   []AchievementGroup `json:"groups"`
}

type AchievementService struct {
	achievements AchievementStore
}

func NewAchievementService(achievements AchievementStore) *AchievementService {
	return &AchievementService{achievements: achievements}
}

// Board lists every achievement grouped by category (in the order categories
// first appear, most valuable first) and marks the ones userID has earned.
func (s *AchievementService) Board(ctx context.Context, userID uuid.UUID) (*AchievementBoard, error) {
	all, err := s.achievements.List(ctx)
	if err != nil {
		return nil, err
	}

	earned := map[uuid.UUID]time.Time{}
	if userID != uuid.Nil {
		list, err := s.achievements.Earned(ctx, userID)
		if err != nil {
			logger.WithContext(ctx).Warn("load earned achievements failed", "user_id", userID, "error", err)
		}
		for _, ua := range list {
			earned[ua.AchievementID] = ua.EarnedAt
		}
	}

	return BuildBoard(all, earned), nil
}

func BuildBoard(all []domain.Achievement, earned map[uuid.UUID]time.Time) *AchievementBoard {
	board := &AchievementBoard{Total: len(all), Groups: []AchievementGroup{}}
	index := map[string]int{}

	for _, a := range all {
		a.Rarity = a.DisplayRarity()
		v := AchievementView{Achievement: a}
		if at, ok := earned[a.ID]; ok {
			v.Earned = true
			v.EarnedAt = &at
			board.Earned++
		}

		i, ok := index[a.Category]
		if !ok {
			i = len(board.Groups)
			index[a.Category] = i
			board.Groups = append(board.Groups, AchievementGroup{Category: a.Category})
		}
		board.Groups[i].Achievements = append(board.Groups[i].Achievements, v)
	}

	if board.Total > 0 {
		board.Progress = float64(board.Earned) / float64(board.Total) * 100
	}
	return board
}
