package service

import (
	"context"
	"log/slog"

	"arcade_hub/internal/domain"
	"arcade_hub/internal/logger"

	"github.com/google/uuid"
)

// Handoff steps, in the order they are issued.
const (
	StepSession   = "session"
	StepPlayCount = "play_count"
	StepProfile   = "profile"
)

// Completion is everything the handoff needs about a finished round.
type Completion struct {
	GameID         uuid.UUID
	PriorPlayCount int64
	Player         domain.Profile
	Score          int
	Duration       int
}

// HandoffResult reports what was written. Failed lists the steps that did
// not go through; the others still ran.
type HandoffResult struct {
	Session     *domain.GameSession `json:"session,omitempty"`
	PlayCount   int64               `json:"play_count"`
	TotalPoints int64               `json:"total_points"`
	Level       int                 `json:"level"`
	Profile     *domain.Profile     `json:"profile,omitempty"`
	Failed      []string            `json:"failed,omitempty"`
}

func (r HandoffResult) OK() bool { return len(r.Failed) == 0 }

type CompletionService struct {
	sessions SessionStore
	games    GameStore
	profiles ProfileStore
}

func NewCompletionService(sessions SessionStore, games GameStore, profiles ProfileStore) *CompletionService {
	return &CompletionService{sessions: sessions, games: games, profiles: profiles}
}

// Complete records a finished round: session row, play count, then the
// player's points and level. Every step is attempted regardless of the
// others and nothing is rolled back.
func (s *CompletionService) Complete(ctx context.Context, c Completion) HandoffResult {
	log := logger.WithContext(ctx).With("game_id", c.GameID, "player_id", c.Player.ID)

	total := c.Player.TotalPoints + int64(c.Score)
	level := domain.Level(total)
	res := HandoffResult{
		PlayCount:   c.PriorPlayCount + 1,
		TotalPoints: total,
		Level:       level,
	}

	sess := &domain.GameSession{
		GameID:          c.GameID,
		PlayerID:        c.Player.ID,
		Score:           c.Score,
		DurationSeconds: c.Duration,
		Completed:       true,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		s.fail(&res, StepSession, log, err)
	} else {
		res.Session = sess
	}

	// read-then-write of the prior count; concurrent completions can lose an increment
	if err := s.games.SetPlayCount(ctx, c.GameID, res.PlayCount); err != nil {
		s.fail(&res, StepPlayCount, log, err)
	}

	p, err := s.profiles.Update(ctx, c.Player.ID, domain.ProfileUpdate{TotalPoints: &total, Level: &level})
	if err != nil {
		s.fail(&res, StepProfile, log, err)
	} else {
		res.Profile = p
	}

	log.Info("round recorded", "score", c.Score, "duration", c.Duration, "total_points", total, "level", level, "failed", res.Failed)
	return res
}

func (s *CompletionService) fail(res *HandoffResult, step string, log *slog.Logger, err error) {
	res.Failed = append(res.Failed, step)
	HandoffFailures.WithLabelValues(step).Inc()
	log.Warn("handoff step failed", "step", step, "error", err)
}
