package app

import (
	"context"

	"domainwatch/domain"
	"domainwatch/registry"
)

// SimulatedClient satisfies QueryClient without touching the network. It
// replaces both protocol clients in dry runs; everything above the client
// boundary behaves exactly as in production.
type SimulatedClient struct {
	// Outcomes scripts the answer per domain; unscripted domains get
	// Default, which should stay taken to keep dry runs conservative.
	Outcomes map[string]domain.Outcome
	Default  domain.Outcome
}

func (s SimulatedClient) Query(ctx context.Context, src registry.Source, fqdn string) (domain.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return domain.OutcomeUnknown, err
	}
	if out, ok := s.Outcomes[fqdn]; ok {
		return out, nil
	}
	return s.Default, nil
}
