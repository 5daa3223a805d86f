package app

import (
	"context"
	"log"
	"time"

	"domainwatch/domain"
	"domainwatch/ratelimit"
	"domainwatch/registry"
)

// Engine reconciles possibly-conflicting or unreachable sources into a
// single verdict per domain. It is stateless across calls; the pacer holds
// the only shared state.
type Engine struct {
	Registry *registry.Registry
	Pacer    *ratelimit.Pacer
	RDAP     QueryClient
	WHOIS    QueryClient
	Retry    RetryPolicy
	// Budget bounds one domain's whole evaluation across all sources.
	Budget time.Duration
	// Sleep is forwarded to the retriers; nil for real backoff sleeps.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Evaluate queries the domain's sources in descending trust order and
// applies the consensus rule. The only error it returns is a
// *registry.ConfigError; network trouble degrades to a verdict instead.
func (e *Engine) Evaluate(ctx context.Context, fqdn string) (domain.Verdict, error) {
	if e.Registry == nil || e.Pacer == nil || e.RDAP == nil || e.WHOIS == nil {
		return domain.VerdictIndeterminate, ErrMissingDependencies
	}

	tld, sources, err := e.Registry.Match(fqdn)
	if err != nil {
		return domain.VerdictIndeterminate, err
	}

	if e.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Budget)
		defer cancel()
	}

	// An authoritative answer settles the verdict alone; only an
	// unreachable or unparseable authoritative source falls through.
	var fallbacks []registry.Source
	for _, src := range sources {
		if src.Tier != registry.TierAuthoritative {
			fallbacks = append(fallbacks, src)
			continue
		}
		switch e.querySource(ctx, src, fqdn) {
		case domain.OutcomeFree:
			return domain.VerdictAvailable, nil
		case domain.OutcomeTaken:
			return domain.VerdictTaken, nil
		}
		log.Printf("[engine] domain=%s tld=%s authoritative source %s unreachable, consulting fallbacks", fqdn, tld, src.Key())
	}

	outcomes := make([]domain.Outcome, 0, len(fallbacks))
	for _, src := range fallbacks {
		outcomes = append(outcomes, e.querySource(ctx, src, fqdn))
	}
	return aggregateFallbacks(outcomes), nil
}

// aggregateFallbacks applies the consensus rule for lower-trust sources:
// any taken answer wins, and available requires every reached source to
// agree the name is free, with at least one reached. Unreached sources can
// neither confirm nor veto.
func aggregateFallbacks(outcomes []domain.Outcome) domain.Verdict {
	reached := 0
	for _, o := range outcomes {
		switch o {
		case domain.OutcomeTaken:
			return domain.VerdictTaken
		case domain.OutcomeFree:
			reached++
		}
	}
	if reached == 0 {
		return domain.VerdictIndeterminate
	}
	return domain.VerdictAvailable
}

// querySource runs one paced, retried query and absorbs every failure mode
// into the tri-state outcome.
func (e *Engine) querySource(ctx context.Context, src registry.Source, fqdn string) domain.Outcome {
	if err := e.Pacer.Acquire(ctx, src.Key()); err != nil {
		return domain.OutcomeUnknown
	}
	client := e.RDAP
	if src.Protocol == registry.ProtocolWHOIS {
		client = e.WHOIS
	}
	r := &Retrier{Client: client, Policy: e.Retry, Sleep: e.Sleep}
	return r.Query(ctx, src, fqdn)
}
