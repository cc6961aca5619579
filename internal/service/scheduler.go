package service

import (
	"context"
	"fmt"
	"time"

	"arcade_hub/internal/logger"

	"github.com/go-co-op/gocron/v2"
)

type SchedulerConfig struct {
	RoundIdle      time.Duration
	FeedIdle       time.Duration
	LikesStaleness time.Duration
}

// Scheduler runs the housekeeping jobs: sweeping idle rounds, reconciling
// cached like counts and evicting idle feed mirrors.
type Scheduler struct {
	sched gocron.Scheduler
}

func StartScheduler(plays *PlayService, feeds *FeedService, cfg SchedulerConfig) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	sweepEvery := cfg.RoundIdle / 4
	if sweepEvery < time.Minute {
		sweepEvery = time.Minute
	}
	jobs := []struct {
		name  string
		every time.Duration
		fn    func()
	}{
		{"sweep-rounds", sweepEvery, func() {
			plays.Sweep(cfg.RoundIdle)
		}},
		{"reconcile-feeds", cfg.LikesStaleness, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if n := feeds.ReconcileAll(ctx); n > 0 {
				logger.Debug("feed like counts reconciled", "posts", n)
			}
		}},
		{"evict-feeds", time.Minute, func() {
			if n := feeds.Evict(cfg.FeedIdle); n > 0 {
				logger.Debug("feed mirrors evicted", "count", n)
			}
		}},
	}

	for _, j := range jobs {
		if j.every <= 0 {
			continue
		}
		if _, err := sched.NewJob(
			gocron.DurationJob(j.every),
			gocron.NewTask(j.fn),
			gocron.WithName(j.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			_ = sched.Shutdown()
			return nil, fmt.Errorf("schedule %s: %w", j.name, err)
		}
	}

	sched.Start()
	logger.Info("scheduler started", "jobs", len(sched.Jobs()))
	return &Scheduler{sched: sched}, nil
}

func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}
