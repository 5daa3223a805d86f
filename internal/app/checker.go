package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"domainwatch/domain"
	"domainwatch/notify"
)

// Evaluator produces a verdict for a single normalized domain.
type Evaluator interface {
	Evaluate(ctx context.Context, fqdn string) (domain.Verdict, error)
}

// Dispatcher fans an event out to the configured channels.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev notify.Event) error
}

// CheckerService runs one availability sweep over the watch list.
type CheckerService struct {
	Engine      Evaluator
	Store       domain.Store
	Notifier    Dispatcher
	Concurrency int
	Now         func() time.Time
}

type CycleError struct {
	Domain string
	Err    error
}

// CycleSummary is what one sweep produced, for logging and inspection.
type CycleSummary struct {
	RunID     string
	Started   time.Time
	Finished  time.Time
	Checked   int
	Available int
	Notified  int
	Errors    []CycleError
}

// Run checks every domain in raws once. Invalid entries and per-domain
// failures are collected into the summary; they never abort the sweep.
func (s *CheckerService) Run(ctx context.Context, raws []string) (CycleSummary, error) {
	if s.Engine == nil || s.Store == nil {
		return CycleSummary{}, ErrMissingDependencies
	}
	now := s.Now
	if now == nil {
		now = time.Now
	}

	summary := CycleSummary{
		RunID:   uuid.NewString(),
		Started: now(),
	}

	fqdns, errs := normalizeList(raws)
	summary.Errors = append(summary.Errors, errs...)

	workers := s.Concurrency
	if workers <= 0 {
		workers = 1
	}

	type result struct {
		fqdn     string
		verdict  domain.Verdict
		notified bool
		err      error
	}

	results := make([]result, len(fqdns))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, fqdn := range fqdns {
		wg.Add(1)
		go func(i int, fqdn string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			verdict, notified, err := s.checkOne(ctx, fqdn, now)
			results[i] = result{fqdn: fqdn, verdict: verdict, notified: notified, err: err}
		}(i, fqdn)
	}
	wg.Wait()

	for _, r := range results {
		if r.err != nil {
			summary.Errors = append(summary.Errors, CycleError{Domain: r.fqdn, Err: r.err})
			continue
		}
		summary.Checked++
		if r.verdict == domain.VerdictAvailable {
			summary.Available++
		}
		if r.notified {
			summary.Notified++
		}
	}

	summary.Finished = now()
	log.Printf("[checker] run %s: checked=%d available=%d notified=%d errors=%d in %s",
		summary.RunID, summary.Checked, summary.Available, summary.Notified,
		len(summary.Errors), summary.Finished.Sub(summary.Started).Round(time.Millisecond))
	return summary, nil
}

// checkOne evaluates one domain and reconciles the stored state. When a
// notification is due it is delivered before the transition is recorded,
// so a failed delivery is retried on the next sweep.
func (s *CheckerService) checkOne(ctx context.Context, fqdn string, now func() time.Time) (domain.Verdict, bool, error) {
	verdict, err := s.Engine.Evaluate(ctx, fqdn)
	if err != nil {
		return verdict, false, err
	}

	due, err := s.Store.ShouldNotify(fqdn, verdict)
	if err != nil {
		return verdict, false, err
	}

	notified := false
	if due && s.Notifier != nil {
		ev := notify.Event{
			Domain:    fqdn,
			Verdict:   verdict.String(),
			Timestamp: now(),
		}
		if err := s.Notifier.Dispatch(ctx, ev); err != nil {
			log.Printf("[checker] notify %s failed, leaving state untouched: %v", fqdn, err)
			return verdict, false, err
		}
		notified = true
	}

	if err := s.Store.RecordTransition(fqdn, verdict, now()); err != nil {
		return verdict, notified, err
	}
	return verdict, notified, nil
}

// normalizeList cleans, validates and dedupes the raw watch list,
// keeping first-seen order.
func normalizeList(raws []string) ([]string, []CycleError) {
	seen := make(map[string]bool, len(raws))
	var fqdns []string
	var errs []CycleError
	for _, raw := range raws {
		fqdn, err := domain.Normalize(raw)
		if err != nil {
			errs = append(errs, CycleError{Domain: raw, Err: err})
			continue
		}
		if seen[fqdn] {
			continue
		}
		seen[fqdn] = true
		fqdns = append(fqdns, fqdn)
	}
	return fqdns, errs
}
