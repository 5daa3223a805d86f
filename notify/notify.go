// Package notify routes availability events to the configured channels.
package notify

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Event is the structured notification emitted when a domain transitions to
// available. Channels render it however their transport requires.
type Event struct {
	Domain    string    `json:"domain"`
	Verdict   string    `json:"verdict"`
	Timestamp time.Time `json:"timestamp"`
}

// Text renders the shared human-readable message body.
func (e Event) Text() string {
	return fmt.Sprintf("Domain %s is %s (checked %s)", e.Domain, e.Verdict, e.Timestamp.UTC().Format(time.RFC3339))
}

// Channel delivers events over one transport.
type Channel interface {
	Name() string
	Send(ctx context.Context, ev Event) error
}

// Router fans an event out to every configured channel, retrying each with
// exponential backoff. Dispatch succeeds when at least one channel
// delivered, so a single broken webhook does not swallow an alert.
type Router struct {
	Channels []Channel
	Retries  int
	Backoff  time.Duration
	// Sleep is replaceable for tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (r *Router) Dispatch(ctx context.Context, ev Event) error {
	if len(r.Channels) == 0 {
		return nil
	}

	delivered := 0
	var lastErr error
	for _, ch := range r.Channels {
		if err := r.sendWithRetry(ctx, ch, ev); err != nil {
			lastErr = err
			log.Printf("[notify] channel=%s domain=%s delivery failed: %v", ch.Name(), ev.Domain, err)
			continue
		}
		delivered++
	}
	if delivered == 0 {
		return fmt.Errorf("all notification channels failed: %w", lastErr)
	}
	return nil
}

func (r *Router) sendWithRetry(ctx context.Context, ch Channel, ev Event) error {
	sleep := r.Sleep
	if sleep == nil {
		sleep = func(ctx context.Context, d time.Duration) error {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
				return nil
			}
		}
	}
	backoff := r.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}

	var err error
	for attempt := 0; attempt <= r.Retries; attempt++ {
		if err = ch.Send(ctx, ev); err == nil {
			return nil
		}
		if attempt == r.Retries {
			break
		}
		if serr := sleep(ctx, backoff); serr != nil {
			return serr
		}
		backoff *= 2
	}
	return err
}
