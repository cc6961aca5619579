package repository

import (
	"context"

	"arcade_hub/internal/domain"

	"github.com/google/uuid"
)

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.GameSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO game_sessions (id, game_id, player_id, score, duration_seconds, completed)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		s.ID, s.GameID, s.PlayerID, s.Score, s.DurationSeconds, s.Completed,
	).Scan(&s.CreatedAt)
}

// Count returns the number of recorded sessions.
func (r *SessionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM game_sessions`).Scan(&n)
	return n, err
}

func (r *SessionRepository) ListByPlayer(ctx context.Context, playerID uuid.UUID, limit int) ([]domain.GameSession, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, game_id, player_id, score, duration_seconds, completed, created_at
		 FROM game_sessions
		 WHERE player_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.GameSession
	for rows.Next() {
		var s domain.GameSession
		if err := rows.Scan(&s.ID, &s.GameID, &s.PlayerID, &s.Score, &s.DurationSeconds, &s.Completed, &s.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}
