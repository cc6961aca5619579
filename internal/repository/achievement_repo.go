package repository

import (
	"context"

	"arcade_hub/internal/domain"

	"github.com/google/uuid"
)

type AchievementRepository struct {
	db DBTX
}

func NewAchievementRepository(db DBTX) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// List returns every achievement, most valuable first.
func (r *AchievementRepository) List(ctx context.Context) ([]domain.Achievement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, description, icon, category, points, rarity, created_at
		 FROM achievements
		 ORDER BY points DESC, title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Achievement
	for rows.Next() {
		var a domain.Achievement
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Icon, &a.Category, &a.Points, &a.Rarity, &a.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *AchievementRepository) Earned(ctx context.Context, userID uuid.UUID) ([]domain.UserAchievement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, achievement_id, earned_at
		 FROM user_achievements
		 WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.UserAchievement
	for rows.Next() {
		var ua domain.UserAchievement
		if err := rows.Scan(&ua.ID, &ua.UserID, &ua.AchievementID, &ua.EarnedAt); err != nil {
			return nil, err
		}
		res = append(res, ua)
	}
	return res, rows.Err()
}
