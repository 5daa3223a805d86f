// Package ratelimit paces outbound requests per source host.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Pacer guarantees that two requests against the same source key are never
// dispatched closer together than the configured minimum interval, no matter
// how many goroutines are evaluating domains. State lives for the process
// lifetime only.
type Pacer struct {
	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	def       time.Duration
	overrides map[string]time.Duration
}

// New builds a pacer with a global minimum delay and optional per-key
// overrides. A non-positive delay disables pacing for that key.
func New(minDelay time.Duration, overrides map[string]time.Duration) *Pacer {
	return &Pacer{
		limiters:  make(map[string]*rate.Limiter),
		def:       minDelay,
		overrides: overrides,
	}
}

// Acquire blocks until a request to key may be dispatched. The reservation
// is taken atomically inside the limiter, so concurrent callers on the same
// key are serialized without a double grant.
func (p *Pacer) Acquire(ctx context.Context, key string) error {
	return p.limiterFor(key).Wait(ctx)
}

func (p *Pacer) limiterFor(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.limiters[key]; ok {
		return l
	}
	delay := p.def
	if override, ok := p.overrides[key]; ok {
		delay = override
	}
	var l *rate.Limiter
	if delay <= 0 {
		l = rate.NewLimiter(rate.Inf, 1)
	} else {
		l = rate.NewLimiter(rate.Every(delay), 1)
	}
	p.limiters[key] = l
	return l
}
