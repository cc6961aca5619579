package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"arcade_hub/internal/domain"
	"arcade_hub/internal/game"
	"arcade_hub/internal/logger"
	"arcade_hub/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrRoundNotFound   = errors.New("round not found")
	ErrGameNotFound    = errors.New("game not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrShuttingDown    = errors.New("play service is shutting down")
)

const (
	defaultHandoffTimeout = 5 * time.Second
	subscriberBuffer      = 16
)

// Outcome is the result of a finished round. Recorded turns true once the
// completion handoff has run.
type Outcome struct {
	Score    int            `json:"score"`
	Duration int            `json:"duration_seconds"`
	Recorded bool           `json:"recorded"`
	Handoff  *HandoffResult `json:"handoff,omitempty"`
}

// Round is one live engine plus the identity it was started for.
type Round struct {
	ID        uuid.UUID
	PlayerID  uuid.UUID
	Game      domain.Game
	Kind      game.Kind
	Engine    *game.Engine
	StartedAt time.Time

	player domain.Profile

	mu         sync.Mutex
	lastActive time.Time
	finishedAt time.Time
	outcome    *Outcome
	subs       map[chan game.State]struct{}
	recorded   chan struct{}
}

// RoundView is the JSON shape of a round.
type RoundView struct {
	ID      uuid.UUID  `json:"id"`
	GameID  uuid.UUID  `json:"game_id"`
	Title   string     `json:"title"`
	Kind    game.Kind  `json:"kind"`
	State   game.State `json:"state"`
	Outcome *Outcome   `json:"outcome,omitempty"`
}

func (r *Round) View() RoundView {
	return RoundView{
		ID:      r.ID,
		GameID:  r.Game.ID,
		Title:   r.Game.Title,
		Kind:    r.Kind,
		State:   r.Engine.State(),
		Outcome: r.Outcome(),
	}
}

// Outcome returns a copy of the outcome, or nil while the round is running.
func (r *Round) Outcome() *Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcome == nil {
		return nil
	}
	o := *r.outcome
	return &o
}

// Recorded is closed once the completion handoff for this round has finished.
func (r *Round) Recorded() <-chan struct{} { return r.recorded }

// Subscribe streams state snapshots. Slow subscribers miss intermediate
// snapshots rather than blocking the round. The returned func unsubscribes
// and closes the channel.
func (r *Round) Subscribe() (<-chan game.State, func()) {
	ch := make(chan game.State, subscriberBuffer)
	r.mu.Lock()
	r.subs[ch] = struct{}{}
	r.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, ch)
			r.mu.Unlock()
			close(ch)
		})
	}
}

func (r *Round) publish(st game.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for ch := range r.subs {
		select {
		case ch <- st:
		default:
		}
	}
}

func (r *Round) touch(now time.Time) {
	r.mu.Lock()
	r.lastActive = now
	r.mu.Unlock()
}

// PlayService keeps the rounds that are currently being played and hands
// finished ones to the CompletionService.
type PlayService struct {
	games      GameStore
	profiles   ProfileStore
	completion *CompletionService
	factory    *game.Factory
	clock      game.Clock

	handoffTimeout time.Duration
	leaderboard    *LeaderboardService

	mu       sync.RWMutex
	rounds   map[uuid.UUID]*Round
	byPlayer map[uuid.UUID]uuid.UUID
	closing  bool

	// handoffs counts background handoffs; Add only happens under mu while
	// closing is false.
	handoffs sync.WaitGroup
}

func NewPlayService(games GameStore, profiles ProfileStore, completion *CompletionService, factory *game.Factory, clock game.Clock) *PlayService {
	if clock == nil {
		clock = game.SystemClock
	}
	return &PlayService{
		games:          games,
		profiles:       profiles,
		completion:     completion,
		factory:        factory,
		clock:          clock,
		handoffTimeout: defaultHandoffTimeout,
		rounds:         make(map[uuid.UUID]*Round),
		byPlayer:       make(map[uuid.UUID]uuid.UUID),
	}
}

// WithLeaderboard makes recorded rounds invalidate the cached leaderboard.
func (s *PlayService) WithLeaderboard(lb *LeaderboardService) *PlayService {
	s.leaderboard = lb
	return s
}

// Start begins a new round of gameID for playerID. A round the player
// already has running is abandoned first.
func (s *PlayService) Start(ctx context.Context, playerID, gameID uuid.UUID) (*Round, error) {
	g, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("load game: %w", err)
	}

	kind, err := game.KindForTitle(g.Title)
	if err != nil {
		return nil, err
	}

	player, err := s.profiles.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	variant, err := s.factory.CreateGame(kind)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	r := &Round{
		ID:         uuid.New(),
		PlayerID:   playerID,
		Game:       *g,
		Kind:       kind,
		StartedAt:  now,
		player:     *player,
		lastActive: now,
		subs:       make(map[chan game.State]struct{}),
		recorded:   make(chan struct{}),
	}
	r.Engine = game.NewEngine(variant, s.clock, game.Hooks{
		OnChange: r.publish,
		OnComplete: func(score, duration int) {
			s.onComplete(r, score, duration)
		},
		OnClose: func() {
			RoundsFinished.WithLabelValues(string(kind), "abandoned").Inc()
			logger.Debug("round abandoned", "round_id", r.ID, "player_id", playerID)
		},
	})

	// swap under one lock so concurrent starts leave a single round per player
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		r.Engine.Close()
		return nil, ErrShuttingDown
	}
	prev := s.rounds[s.byPlayer[playerID]]
	if prev != nil {
		s.remove(prev)
	}
	s.rounds[r.ID] = r
	s.byPlayer[playerID] = r.ID
	ActiveRounds.Set(float64(len(s.rounds)))
	s.mu.Unlock()

	if prev != nil {
		prev.Engine.Close()
	}

	RoundsStarted.WithLabelValues(string(kind)).Inc()
	logger.Info("round started", "round_id", r.ID, "player_id", playerID, "kind", kind)
	return r, nil
}

func (s *PlayService) onComplete(r *Round, score, duration int) {
	RoundsFinished.WithLabelValues(string(r.Kind), "completed").Inc()

	r.mu.Lock()
	r.outcome = &Outcome{Score: score, Duration: duration}
	r.finishedAt = s.clock.Now()
	r.mu.Unlock()

	s.mu.Lock()
	closing := s.closing
	if !closing {
		s.handoffs.Add(1)
	}
	s.mu.Unlock()

	if closing {
		// Shutdown is already waiting; record on this goroutine instead.
		s.record(r, score, duration)
		return
	}
	go func() {
		defer s.handoffs.Done()
		s.record(r, score, duration)
	}()
}

func (s *PlayService) record(r *Round, score, duration int) {
	defer close(r.recorded)

	ctx, cancel := context.WithTimeout(context.Background(), s.handoffTimeout)
	defer cancel()
	ctx = logger.NewContext(ctx, "round_id", r.ID)

	// fresh copies so points earned in other rounds are not overwritten
	player := r.player
	if p, err := s.profiles.GetByID(ctx, r.PlayerID); err == nil {
		player = *p
	} else {
		logger.WithContext(ctx).Warn("reload profile failed, using start copy", "error", err)
	}
	prior := r.Game.PlayCount
	if g, err := s.games.GetByID(ctx, r.Game.ID); err == nil {
		prior = g.PlayCount
	} else {
		logger.WithContext(ctx).Warn("reload game failed, using start copy", "error", err)
	}

	res := s.completion.Complete(ctx, Completion{
		GameID:         r.Game.ID,
		PriorPlayCount: prior,
		Player:         player,
		Score:          score,
		Duration:       duration,
	})

	r.mu.Lock()
	r.outcome.Recorded = true
	r.outcome.Handoff = &res
	r.mu.Unlock()

	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx)
	}
}

// Get returns the round if it belongs to playerID.
func (s *PlayService) Get(playID, playerID uuid.UUID) (*Round, error) {
	s.mu.RLock()
	r, ok := s.rounds[playID]
	s.mu.RUnlock()
	if !ok || r.PlayerID != playerID {
		return nil, ErrRoundNotFound
	}
	r.touch(s.clock.Now())
	return r, nil
}

// Apply runs a player action against the round and returns the new state.
// The state is returned even when the action is rejected.
func (s *PlayService) Apply(playID, playerID uuid.UUID, a game.Action) (game.State, error) {
	r, err := s.Get(playID, playerID)
	if err != nil {
		return game.State{}, err
	}
	err = r.Engine.Apply(a)
	return r.Engine.State(), err
}

// Close abandons the round. A finished round is just forgotten.
func (s *PlayService) Close(playID, playerID uuid.UUID) error {
	s.mu.Lock()
	r, ok := s.rounds[playID]
	if !ok || r.PlayerID != playerID {
		s.mu.Unlock()
		return ErrRoundNotFound
	}
	s.remove(r)
	s.mu.Unlock()

	r.Engine.Close()
	return nil
}

// Sweep closes rounds nobody touched for maxIdle and forgets finished rounds
// whose outcome has been kept for maxIdle. It returns how many were dropped.
func (s *PlayService) Sweep(maxIdle time.Duration) int {
	now := s.clock.Now()
	var stale []*Round

	s.mu.Lock()
	for _, r := range s.rounds {
		r.mu.Lock()
		expired := false
		if r.outcome != nil {
			expired = r.outcome.Recorded && now.Sub(r.finishedAt) > maxIdle
		} else {
			expired = now.Sub(r.lastActive) > maxIdle
		}
		r.mu.Unlock()

		if expired {
			s.remove(r)
			stale = append(stale, r)
		}
	}
	s.mu.Unlock()

	for _, r := range stale {
		r.Engine.Close()
	}
	if len(stale) > 0 {
		logger.Info("swept rounds", "count", len(stale))
	}
	return len(stale)
}

// Active returns the number of rounds held in memory.
func (s *PlayService) Active() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rounds)
}

// Shutdown refuses new rounds, abandons every running one and waits for
// pending handoffs.
func (s *PlayService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing = true
	var all []*Round
	for _, r := range s.rounds {
		all = append(all, r)
		s.remove(r)
	}
	s.mu.Unlock()

	for _, r := range all {
		r.Engine.Close()
	}

	done := make(chan struct{})
	go func() {
		s.handoffs.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// remove must be called with s.mu held.
func (s *PlayService) remove(r *Round) {
	delete(s.rounds, r.ID)
	if s.byPlayer[r.PlayerID] == r.ID {
		delete(s.byPlayer, r.PlayerID)
	}
	ActiveRounds.Set(float64(len(s.rounds)))
}
