package service

import (
	"context"
	"errors"

	"arcade_hub/internal/domain"
	"arcade_hub/internal/repository"

	"github.com/google/uuid"
)

type ProfileService struct {
	profiles ProfileStore
}

func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	return p, err
}

// Edit applies a user edit. Points and level are owned by the completion
// handoff and are ignored here.
func (s *ProfileService) Edit(ctx context.Context, id uuid.UUID, u domain.ProfileUpdate) (*domain.Profile, error) {
	u.TotalPoints = nil
	u.Level = nil
	if err := u.Validate(); err != nil {
		return nil, err
	}
	p, err := s.profiles.Update(ctx, id, u)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	return p, err
}
