// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// sweepTimeout bounds a single sweep run.
const sweepTimeout = 10 * time.Minute

// Scheduler runs the upload sweeper on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers the sweeper under schedule (standard cron syntax
// or descriptors such as "@every 6h"). Overlapping runs are skipped.
func NewScheduler(schedule string, sweeper *Sweeper) (*Scheduler, error) {
	logger := cron.PrintfLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn))
	c := cron.New(cron.WithChain(
		cron.Recover(logger),
		cron.SkipIfStillRunning(logger),
	))

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		start := time.Now()
		n, err := sweeper.Sweep(ctx)
		if err != nil {
			slog.Error("upload sweep failed", "error", err, "deleted", n)
			return
		}
		slog.Info("upload sweep finished", "deleted", n, "duration", time.Since(start).String())
	})
	if err != nil {
		return nil, fmt.Errorf("schedule upload sweep %q: %w", schedule, err)
	}

	return &Scheduler{cron: c}, nil
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("job scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop halts the scheduler and waits for a running job to finish or ctx
// to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		slog.Info("job scheduler stopped")
	case <-ctx.Done():
		slog.Warn("job scheduler stop timed out")
	}
}
