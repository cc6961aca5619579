package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	CategoryTrivia   = "trivia"
	CategoryPuzzle   = "puzzle"
	CategoryArcade   = "arcade"
	CategoryCreative = "creative"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	// FilterAll disables a category or difficulty filter.
	FilterAll = "all"
)

// Game is a catalog entry. Kind and Icon are derived, not stored.
type Game struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	Category      string    `db:"category" json:"category"`
	Difficulty    string    `db:"difficulty" json:"difficulty"`
	Icon          string    `db:"icon" json:"icon"`
	IsMultiplayer bool      `db:"is_multiplayer" json:"is_multiplayer"`
	IsFeatured    bool      `db:"is_featured" json:"is_featured"`
	PlayCount     int64     `db:"play_count" json:"play_count"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type GameSession struct {
	ID              uuid.UUID `db:"id" json:"id"`
	GameID          uuid.UUID `db:"game_id" json:"game_id"`
	PlayerID        uuid.UUID `db:"player_id" json:"player_id"`
	Score           int       `db:"score" json:"score"`
	DurationSeconds int       `db:"duration_seconds" json:"duration_seconds"`
	Completed       bool      `db:"completed" json:"completed"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// Stats are the hub-wide counters shown on the landing page.
type Stats struct {
	Players  int64 `json:"players"`
	Sessions int64 `json:"sessions"`
}
