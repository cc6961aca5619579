package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

type Achievement struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Icon        string    `db:"icon" json:"icon"`
	Category    string    `db:"category" json:"category"`
	Points      int       `db:"points" json:"points"`
	Rarity      string    `db:"rarity" json:"rarity"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// DisplayRarity returns the rarity tier, treating unknown values as common.
func (a Achievement) DisplayRarity() string {
	switch a.Rarity {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return a.Rarity
	}
	return RarityCommon
}

type UserAchievement struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	AchievementID uuid.UUID `db:"achievement_id" json:"achievement_id"`
	EarnedAt      time.Time `db:"earned_at" json:"earned_at"`
}
