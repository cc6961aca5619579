package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type LikeRepository struct {
	db DBTX
}

func NewLikeRepository(db DBTX) *LikeRepository {
	return &LikeRepository{db: db}
}

// LikedPostIDs returns every post userID has liked.
func (r *LikeRepository) LikedPostIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT post_id FROM post_likes WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	return res, rows.Err()
}

func (r *LikeRepository) Add(ctx context.Context, postID, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`, postID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyLiked
		}
		return fmt.Errorf("add like: %w", err)
	}
	return nil
}

func (r *LikeRepository) Remove(ctx context.Context, postID, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return fmt.Errorf("remove like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotLiked
	}
	return nil
}
