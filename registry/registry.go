// Package registry maps TLDs to the ordered query sources for them.
package registry

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Protocol names a registry-query protocol.
type Protocol string

const (
	ProtocolRDAP  Protocol = "rdap"
	ProtocolWHOIS Protocol = "whois"
)

// Tier is the trust tier of a source. Authoritative registry endpoints are
// trusted alone; fallback sources only count in unanimous agreement.
type Tier int

const (
	TierAuthoritative Tier = iota
	TierFallback
)

func (t Tier) String() string {
	if t == TierAuthoritative {
		return "authoritative"
	}
	return "fallback"
}

// Source is one query endpoint for a TLD. Endpoint is an RDAP base URL
// ending in /domain/ or a WHOIS server host.
type Source struct {
	Protocol Protocol
	Endpoint string
	Tier     Tier
}

// Key identifies the rate-limit bucket for a source, one per remote host.
func (s Source) Key() string {
	if s.Protocol == ProtocolWHOIS {
		return s.Endpoint
	}
	if u, err := url.Parse(s.Endpoint); err == nil && u.Host != "" {
		return u.Host
	}
	return s.Endpoint
}

// ConfigError reports an unrecoverable setup problem for one domain's
// evaluation: an unknown TLD with no generic fallback, or a malformed
// source descriptor. It never covers network conditions.
type ConfigError struct {
	TLD    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for tld %q: %s", e.TLD, e.Reason)
}

// rdapOrg is the aggregator consulted when a registry has no native RDAP or
// the native endpoint is unreachable.
const rdapOrg = "https://rdap.org/domain/"

// Registry holds the per-TLD source lists. The zero value is not usable;
// construct with New.
type Registry struct {
	sources map[string][]Source
	// generic sources are used for TLDs without an entry. Disabled when nil.
	generic []Source
}

// New returns a registry preloaded with the built-in TLD table and the
// rdap.org generic fallback enabled.
func New() *Registry {
	r := &Registry{
		sources: make(map[string][]Source, len(builtinTLDs)),
		generic: []Source{{Protocol: ProtocolRDAP, Endpoint: rdapOrg, Tier: TierFallback}},
	}
	for _, e := range builtinTLDs {
		r.sources[e.tld] = buildSources(e.rdap, e.whois)
	}
	return r
}

// buildSources assembles the standard source ladder for a TLD: native RDAP
// as authoritative when known, then the rdap.org aggregator, then WHOIS.
func buildSources(rdapEndpoint, whoisServer string) []Source {
	var out []Source
	if rdapEndpoint != "" {
		out = append(out, Source{Protocol: ProtocolRDAP, Endpoint: rdapEndpoint, Tier: TierAuthoritative})
	}
	out = append(out, Source{Protocol: ProtocolRDAP, Endpoint: rdapOrg, Tier: TierFallback})
	if whoisServer != "" {
		out = append(out, Source{Protocol: ProtocolWHOIS, Endpoint: whoisServer, Tier: TierFallback})
	}
	return out
}

// Override replaces (or adds) the source list for a TLD.
func (r *Registry) Override(tld string, sources []Source) {
	r.sources[strings.ToLower(strings.TrimPrefix(tld, "."))] = sources
}

// DisableGenericFallback makes unknown TLDs a configuration error.
func (r *Registry) DisableGenericFallback() { r.generic = nil }

// TLDs returns every configured TLD, sorted. Used by self tests and logs.
func (r *Registry) TLDs() []string {
	out := make([]string, 0, len(r.sources))
	for tld := range r.sources {
		out = append(out, tld)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the source list for a TLD ordered by descending trust.
func (r *Registry) Lookup(tld string) ([]Source, error) {
	tld = strings.ToLower(strings.TrimPrefix(tld, "."))
	sources, ok := r.sources[tld]
	if !ok {
		if r.generic == nil {
			return nil, &ConfigError{TLD: tld, Reason: "no sources configured and generic fallback disabled"}
		}
		sources = r.generic
	}
	ordered := make([]Source, len(sources))
	copy(ordered, sources)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Tier < ordered[j].Tier })
	for _, s := range ordered {
		if err := validate(tld, s); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}

// Match resolves the TLD of a normalized domain, preferring the longest
// configured suffix so entries like co.uk win over uk.
func (r *Registry) Match(fqdn string) (string, []Source, error) {
	labels := strings.Split(fqdn, ".")
	if len(labels) < 2 {
		return "", nil, &ConfigError{TLD: fqdn, Reason: "domain has no TLD"}
	}
	for i := 1; i < len(labels); i++ {
		suffix := strings.Join(labels[i:], ".")
		if _, ok := r.sources[suffix]; ok {
			sources, err := r.Lookup(suffix)
			return suffix, sources, err
		}
	}
	tld := labels[len(labels)-1]
	sources, err := r.Lookup(tld)
	return tld, sources, err
}

func validate(tld string, s Source) error {
	switch s.Protocol {
	case ProtocolRDAP:
		u, err := url.Parse(s.Endpoint)
		if err != nil || u.Scheme != "https" || u.Host == "" {
			return &ConfigError{TLD: tld, Reason: fmt.Sprintf("rdap endpoint %q is not an https URL", s.Endpoint)}
		}
	case ProtocolWHOIS:
		if s.Endpoint == "" || strings.ContainsAny(s.Endpoint, "/ ") {
			return &ConfigError{TLD: tld, Reason: fmt.Sprintf("whois server %q is not a host name", s.Endpoint)}
		}
	default:
		return &ConfigError{TLD: tld, Reason: fmt.Sprintf("unknown protocol %q", s.Protocol)}
	}
	return nil
}
