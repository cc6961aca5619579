package repository

import (
	"context"

	"arcade_hub/internal/domain"

	"github.com/google/uuid"
)

const gameColumns = `id, title, description, category, difficulty, icon, is_multiplayer, is_featured, play_count, created_at`

type GameRepository struct {
	db DBTX
}

func NewGameRepository(db DBTX) *GameRepository {
	return &GameRepository{db: db}
}

func scanGame(row rowScanner) (*domain.Game, error) {
	var g domain.Game
	if err := row.Scan(
		&g.ID,
		&g.Title,
		&g.Description,
		&g.Category,
		&g.Difficulty,
		&g.Icon,
		&g.IsMultiplayer,
		&g.IsFeatured,
		&g.PlayCount,
		&g.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns games ordered by popularity. limit <= 0 means no limit.
func (r *GameRepository) List(ctx context.Context, featuredOnly bool, limit int) ([]domain.Game, error) {
	q := `SELECT ` + gameColumns + ` FROM games`
	if featuredOnly {
		q += ` WHERE is_featured`
	}
	q += ` ORDER BY play_count DESC, title ASC`

	var args []any
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *g)
	}
	return res, rows.Err()
}

func (r *GameRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	g, err := scanGame(r.db.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return g, nil
}

// SetPlayCount overwrites the counter with an absolute value. Callers compute
// it from a previous read, so concurrent completions can lose increments.
func (r *GameRepository) SetPlayCount(ctx context.Context, id uuid.UUID, count int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE games SET play_count = $2 WHERE id = $1`, id, count)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
