package service

import (
	"context"

	"arcade_hub/internal/domain"

	"github.com/google/uuid"
)

// The store interfaces are the gateway operations each service needs. The
// pgx repositories implement them.

type ProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, id uuid.UUID, u domain.ProfileUpdate) (*domain.Profile, error)
	TopByPoints(ctx context.Context, limit int) ([]domain.Profile, error)
	Count(ctx context.Context) (int64, error)
}

type GameStore interface {
	List(ctx context.Context, featuredOnly bool, limit int) ([]domain.Game, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error)
	SetPlayCount(ctx context.Context, id uuid.UUID, count int64) error
}

type SessionStore interface {
	Create(ctx context.Context, s *domain.GameSession) error
	Count(ctx context.Context) (int64, error)
	ListByPlayer(ctx context.Context, playerID uuid.UUID, limit int) ([]domain.GameSession, error)
}

type AchievementStore interface {
	List(ctx context.Context) ([]domain.Achievement, error)
	Earned(ctx context.Context, userID uuid.UUID) ([]domain.UserAchievement, error)
}

type PostStore interface {
	ListRecent(ctx context.Context, limit int) ([]domain.CommunityPost, error)
	Create(ctx context.Context, in domain.NewPost) (*domain.CommunityPost, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementLikes(ctx context.Context, id uuid.UUID) error
	DecrementLikes(ctx context.Context, id uuid.UUID) error
	LikesCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error)
}

type LikeStore interface {
	LikedPostIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Add(ctx context.Context, postID, userID uuid.UUID) error
	Remove(ctx context.Context, postID, userID uuid.UUID) error
}
