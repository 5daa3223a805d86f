package app

import (
	"context"
	"log"
	"time"

	"domainwatch/domain"
	"domainwatch/registry"
)

// QueryClient performs exactly one query attempt against one source. A nil
// error carries a clean protocol answer and must not be retried; a non-nil
// error marks a transient transport fault.
type QueryClient interface {
	Query(ctx context.Context, src registry.Source, fqdn string) (domain.Outcome, error)
}

// RetryPolicy bounds repeated attempts against a single source.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts > 0 {
		return p.MaxAttempts
	}
	return 3
}

// backoff returns the wait before retrying after attempt n (0-indexed):
// base doubled per attempt, capped at MaxDelay.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Second
	}
	d := base << attempt
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// Retrier re-runs a query while it reports transient faults. Exhausting all
// attempts degrades the source's outcome to unknown instead of erroring.
type Retrier struct {
	Client QueryClient
	Policy RetryPolicy
	// Sleep is replaceable for tests; nil means a context-aware sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (r *Retrier) Query(ctx context.Context, src registry.Source, fqdn string) domain.Outcome {
	sleep := r.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	attempts := r.Policy.attempts()
	var lastErr error
	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return domain.OutcomeUnknown
		}
		out, err := r.Client.Query(ctx, src, fqdn)
		if err == nil {
			return out
		}
		lastErr = err
		if i == attempts-1 {
			break
		}
		if err := sleep(ctx, r.Policy.backoff(i)); err != nil {
			return domain.OutcomeUnknown
		}
	}
	log.Printf("[query] source=%s domain=%s exhausted %d attempts: %v", src.Key(), fqdn, attempts, lastErr)
	return domain.OutcomeUnknown
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
