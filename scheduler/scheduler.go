// Package scheduler drives one function on a fixed interval.
package scheduler

import (
	"context"
	"log"
	"time"
)

// Runner invokes Cycle immediately and then once per Interval until the
// context is cancelled. A non-positive Interval means run exactly once.
type Runner struct {
	Interval time.Duration
	Cycle    func(ctx context.Context) error
}

func (r *Runner) Run(ctx context.Context) error {
	if err := r.Cycle(ctx); err != nil {
		log.Printf("[scheduler] cycle failed: %v", err)
	}
	if r.Interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.Cycle(ctx); err != nil {
				log.Printf("[scheduler] cycle failed: %v", err)
			}
		}
	}
}
