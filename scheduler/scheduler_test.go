package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunnerRunsOnceWithoutInterval(t *testing.T) {
	calls := 0
	r := &Runner{Cycle: func(ctx context.Context) error {
		calls++
		return nil
	}}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected exactly one cycle, got %d", calls)
	}
}

func TestRunnerRepeatsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	r := &Runner{
		Interval: 10 * time.Millisecond,
		Cycle: func(ctx context.Context) error {
			calls++
			if calls >= 3 {
				cancel()
			}
			return nil
		},
	}
	err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls < 3 {
		t.Errorf("expected at least 3 cycles, got %d", calls)
	}
}

func TestRunnerKeepsGoingAfterCycleError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	r := &Runner{
		Interval: 10 * time.Millisecond,
		Cycle: func(ctx context.Context) error {
			calls++
			if calls >= 2 {
				cancel()
			}
			return errors.New("sweep failed")
		},
	}
	r.Run(ctx)
	if calls < 2 {
		t.Errorf("a failing cycle must not stop the schedule, got %d calls", calls)
	}
}
