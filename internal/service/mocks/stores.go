package mocks

import (
	"context"

	"arcade_hub/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock ProfileStore
type ProfileStore struct {
	mock.Mock
}

func (m *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Profile)
	return p, args.Error(1)
}
func (m *ProfileStore) Update(ctx context.Context, id uuid.UUID, u domain.ProfileUpdate) (*domain.Profile, error) {
	args := m.Called(ctx, id, u)
	p, _ := args.Get(0).(*domain.Profile)
	return p, args.Error(1)
}
func (m *ProfileStore) TopByPoints(ctx context.Context, limit int) ([]domain.Profile, error) {
	args := m.Called(ctx, limit)
	ps, _ := args.Get(0).([]domain.Profile)
	return ps, args.Error(1)
}
func (m *ProfileStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

// Mock GameStore
type GameStore struct {
	mock.Mock
}

func (m *GameStore) List(ctx context.Context, featuredOnly bool, limit int) ([]domain.Game, error) {
	args := m.Called(ctx, featuredOnly, limit)
	gs, _ := args.Get(0).([]domain.Game)
	return gs, args.Error(1)
}
func (m *GameStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*domain.Game)
	return g, args.Error(1)
}
func (m *GameStore) SetPlayCount(ctx context.Context, id uuid.UUID, count int64) error {
	args := m.Called(ctx, id, count)
	return args.Error(0)
}

// Mock SessionStore
type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) Create(ctx context.Context, s *domain.GameSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *SessionStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}
func (m *SessionStore) ListByPlayer(ctx context.Context, playerID uuid.UUID, limit int) ([]domain.GameSession, error) {
	args := m.Called(ctx, playerID, limit)
	ss, _ := args.Get(0).([]domain.GameSession)
	return ss, args.Error(1)
}

// Mock AchievementStore
type AchievementStore struct {
	mock.Mock
}

func (m *AchievementStore) List(ctx context.Context) ([]domain.Achievement, error) {
	args := m.Called(ctx)
	as, _ := args.Get(0).([]domain.Achievement)
	return as, args.Error(1)
}
func (m *AchievementStore) Earned(ctx context.Context, userID uuid.UUID) ([]domain.UserAchievement, error) {
	args := m.Called(ctx, userID)
	es, _ := args.Get(0).([]domain.UserAchievement)
	return es, args.Error(1)
}

// Mock PostStore
type PostStore struct {
	mock.Mock
}

func (m *PostStore) ListRecent(ctx context.Context, limit int) ([]domain.CommunityPost, error) {
	args := m.Called(ctx, limit)
	ps, _ := args.Get(0).([]domain.CommunityPost)
	return ps, args.Error(1)
}
func (m *PostStore) Create(ctx context.Context, in domain.NewPost) (*domain.CommunityPost, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(*domain.CommunityPost)
	return p, args.Error(1)
}
func (m *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *PostStore) IncrementLikes(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *PostStore) DecrementLikes(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *PostStore) LikesCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, ids)
	counts, _ := args.Get(0).(map[uuid.UUID]int)
	return counts, args.Error(1)
}

// Mock LikeStore
type LikeStore struct {
	mock.Mock
}

func (m *LikeStore) LikedPostIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}
func (m *LikeStore) Add(ctx context.Context, postID, userID uuid.UUID) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}
func (m *LikeStore) Remove(ctx context.Context, postID, userID uuid.UUID) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}
