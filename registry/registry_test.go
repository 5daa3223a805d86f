package registry

import (
	"errors"
	"testing"
)

func TestLookupOrdersAuthoritativeFirst(t *testing.T) {
	r := New()
	sources, err := r.Lookup("com")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if len(sources) < 2 {
		t.Fatalf("expected at least two sources for com, got %d", len(sources))
	}
	if sources[0].Tier != TierAuthoritative || sources[0].Protocol != ProtocolRDAP {
		t.Errorf("first source must be authoritative RDAP, got %+v", sources[0])
	}
	for _, s := range sources[1:] {
		if s.Tier == TierAuthoritative {
			t.Errorf("authoritative source after a fallback: %+v", s)
		}
	}
}

func TestLookupUnknownTLDUsesGenericFallback(t *testing.T) {
	r := New()
	sources, err := r.Lookup("zz")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if len(sources) != 1 || sources[0].Tier != TierFallback {
		t.Errorf("expected the single generic fallback source, got %+v", sources)
	}
}

func TestLookupUnknownTLDWithoutFallbackIsConfigError(t *testing.T) {
	r := New()
	r.DisableGenericFallback()
	_, err := r.Lookup("zz")
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if cfgErr.TLD != "zz" {
		t.Errorf("unexpected TLD in error: %s", cfgErr.TLD)
	}
}

func TestMatchPrefersLongestSuffix(t *testing.T) {
	r := New()
	tld, _, err := r.Match("shop.example.co.uk")
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if tld != "co.uk" {
		t.Errorf("expected co.uk, got %s", tld)
	}

	tld, _, err = r.Match("example.com")
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if tld != "com" {
		t.Errorf("expected com, got %s", tld)
	}
}

func TestMatchSingleLabelIsConfigError(t *testing.T) {
	r := New()
	if _, _, err := r.Match("localhost"); err == nil {
		t.Error("expected error for single-label name")
	}
}

func TestOverrideReplacesSources(t *testing.T) {
	r := New()
	r.Override(".test", []Source{
		{Protocol: ProtocolWHOIS, Endpoint: "whois.example.test", Tier: TierFallback},
	})
	sources, err := r.Lookup("test")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if len(sources) != 1 || sources[0].Endpoint != "whois.example.test" {
		t.Errorf("override not applied: %+v", sources)
	}
}

func TestLookupRejectsMalformedDescriptors(t *testing.T) {
	cases := []Source{
		{Protocol: ProtocolRDAP, Endpoint: "http://insecure.example/domain/", Tier: TierAuthoritative},
		{Protocol: ProtocolRDAP, Endpoint: "not a url", Tier: TierAuthoritative},
		{Protocol: ProtocolWHOIS, Endpoint: "whois.example.com/path", Tier: TierFallback},
		{Protocol: Protocol("finger"), Endpoint: "example.com", Tier: TierFallback},
	}
	for _, src := range cases {
		r := New()
		r.Override("bad", []Source{src})
		_, err := r.Lookup("bad")
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("source %+v: expected *ConfigError, got %v", src, err)
		}
	}
}

func TestSourceKeyUsesHost(t *testing.T) {
	rdapSrc := Source{Protocol: ProtocolRDAP, Endpoint: "https://rdap.verisign.com/com/v1/domain/"}
	if got := rdapSrc.Key(); got != "rdap.verisign.com" {
		t.Errorf("unexpected rdap key: %s", got)
	}
	whoisSrc := Source{Protocol: ProtocolWHOIS, Endpoint: "whois.verisign-grs.com"}
	if got := whoisSrc.Key(); got != "whois.verisign-grs.com" {
		t.Errorf("unexpected whois key: %s", got)
	}
}
