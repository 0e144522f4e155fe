package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/usecase/deletion"
)

type Sweeper interface {
	Execute(ctx context.Context) (deletion.SweepResult, error)
}

// Scheduler runs the periodic purge sweep.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	log     *zap.Logger
	timeout time.Duration
}

func NewScheduler(spec string, loc *time.Location, sweeper Sweeper, log *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		sweeper: sweeper,
		log:     log,
		timeout: 5 * time.Minute,
	}

	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return nil, fmt.Errorf("schedule purge sweep %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		s.log.Error("purge sweep failed", zap.Error(err))
	}
}

// Run performs one sweep immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	started := time.Now()
	res, err := s.sweeper.Execute(ctx)
	if err != nil {
		return err
	}
	s.log.Info("purge sweep",
		zap.Int("purged", res.Purged),
		zap.Int("collected", res.Collected),
		zap.Duration("took", time.Since(started)),
	)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("job scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for a running sweep or for ctx, whichever ends first.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("job scheduler stop timed out")
	}
}
