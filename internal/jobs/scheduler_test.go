package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/usecase/deletion"
)

type fakeSweeper struct {
	calls int
	err   error
}

func (f *fakeSweeper) Execute(context.Context) (deletion.SweepResult, error) {
	f.calls++
	return deletion.SweepResult{Purged: 2, Collected: 1}, f.err
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	if _, err := NewScheduler("not a cron", time.UTC, &fakeSweeper{}, zap.NewNop()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunDelegatesToSweeper(t *testing.T) {
	sw := &fakeSweeper{}
	s, err := NewScheduler("0 3 * * *", time.UTC, sw, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if sw.calls != 1 {
		t.Fatalf("calls %d", sw.calls)
	}

	sw.err = errors.New("db down")
	if err := s.Run(context.Background()); err == nil {
		t.Fatal("sweeper error should surface")
	}
}

func TestStartStop(t *testing.T) {
	s, err := NewScheduler("@every 1h", time.UTC, &fakeSweeper{}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
