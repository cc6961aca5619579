package service

import (
	"context"
	"strings"

	"arcade_hub/internal/domain"
	"arcade_hub/internal/game"

	"github.com/google/uuid"
)

const featuredLimit = 3

// GameFilter narrows the games listing. Empty or "all" fields do not filter.
type GameFilter struct {
	Query      string
	Category   string
	Difficulty string
}

// GameCard is a catalog entry annotated with how it is played and drawn.
type GameCard struct {
	domain.Game
	Kind     game.Kind `json:"kind,omitempty"`
	Playable bool      `json:"playable"`
	IconKey  string    `json:"icon_key"`
}

type CatalogService struct {
	games    GameStore
	profiles ProfileStore
	sessions SessionStore
}

func NewCatalogService(games GameStore, profiles ProfileStore, sessions SessionStore) *CatalogService {
	return &CatalogService{games: games, profiles: profiles, sessions: sessions}
}

// List returns all games, most played first, filtered in memory.
func (s *CatalogService) List(ctx context.Context, f GameFilter) ([]GameCard, error) {
	games, err := s.games.List(ctx, false, 0)
	if err != nil {
		return nil, err
	}
	return cards(FilterGames(games, f)), nil
}

func (s *CatalogService) Featured(ctx context.Context) ([]GameCard, error) {
	games, err := s.games.List(ctx, true, featuredLimit)
	if err != nil {
		return nil, err
	}
	return cards(games), nil
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*GameCard, error) {
	g, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c := card(*g)
	return &c, nil
}

// Stats counts players and recorded sessions. A failed count reads as zero.
func (s *CatalogService) Stats(ctx context.Context) domain.Stats {
	var st domain.Stats
	if n, err := s.profiles.Count(ctx); err == nil {
		st.Players = n
	}
	if n, err := s.sessions.Count(ctx); err == nil {
		st.Sessions = n
	}
	return st
}

// History returns the player's most recent sessions, newest first.
func (s *CatalogService) History(ctx context.Context, playerID uuid.UUID, limit int) ([]domain.GameSession, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.sessions.ListByPlayer(ctx, playerID, limit)
}

// FilterGames keeps games matching every set field of f. Query matches the
// title or description, case-insensitively.
func FilterGames(games []domain.Game, f GameFilter) []domain.Game {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]domain.Game, 0, len(games))
	for _, g := range games {
		if q != "" &&
			!strings.Contains(strings.ToLower(g.Title), q) &&
			!strings.Contains(strings.ToLower(g.Description), q) {
			continue
		}
		if f.Category != "" && f.Category != domain.FilterAll && g.Category != f.Category {
			continue
		}
		if f.Difficulty != "" && f.Difficulty != domain.FilterAll && g.Difficulty != f.Difficulty {
			continue
		}
		out = append(out, g)
	}
	return out
}

func card(g domain.Game) GameCard {
	c := GameCard{Game: g, IconKey: game.IconFor(g.Icon)}
	if k, err := game.KindForTitle(g.Title); err == nil {
		c.Kind = k
		c.Playable = true
	}
	return c
}

func cards(games []domain.Game) []GameCard {
	out := make([]GameCard, len(games))
	for i, g := range games {
		out[i] = card(g)
	}
	return out
}
