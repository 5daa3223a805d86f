package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"

	"domainwatch/domain"
	"domainwatch/registry"
)

// noMatchSignals are registry-specific markers that a name is unregistered.
// They are matched verbatim, before any generic pattern.
var noMatchSignals = map[string][]string{
	"de":   {"Status: free"},
	"com":  {"No match for domain"},
	"net":  {"No match for domain"},
	"org":  {"NOT FOUND"},
	"eu":   {"Status: AVAILABLE"},
	"io":   {"NOT FOUND"},
	"co":   {"No Data Found"},
	"info": {"NOT FOUND"},
	"biz":  {"Not found:"},
}

// takenPatterns mark a response as describing a registered name. They are
// checked before the generic free patterns because registered records are
// the more reliable signal.
var takenPatterns = []string{
	"domain name:",
	"registrar:",
	"registrant:",
	"creation date:",
	"created:",
	"registry expiry date:",
	"expiration date:",
	"name server:",
	"nameserver:",
	"nserver:",
	"domain status:",
	"status: active",
	"status: connect",
}

var genericFreePatterns = []string{
	"no match for",
	"not found",
	"no entries found",
	"domain not found",
	"no data found",
	"status: free",
	"status: available",
	"no object found",
	"object does not exist",
	"the queried object does not exist",
	"no such domain",
	"no matching record",
	"is available for registration",
}

// WHOISClient performs a single WHOIS round trip against an explicit server
// and classifies the text strictly: unmatched responses stay unknown.
type WHOISClient struct {
	Timeout time.Duration
}

func (c *WHOISClient) Query(ctx context.Context, src registry.Source, fqdn string) (domain.Outcome, error) {
	type result struct {
		raw string
		err error
	}
	ch := make(chan result, 1)

	// The whois library does not take a context; run it on the side and
	// abandon it when the evaluation budget runs out.
	go func() {
		raw, err := whois.NewClient().SetTimeout(c.timeout()).Whois(fqdn, src.Endpoint)
		ch <- result{raw: raw, err: err}
	}()

	select {
	case <-ctx.Done():
		return domain.OutcomeUnknown, fmt.Errorf("%w: %v", errTransient, ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return domain.OutcomeUnknown, fmt.Errorf("%w: %v", errTransient, res.err)
		}
		return classifyWHOIS(res.raw, domain.TLD(fqdn)), nil
	}
}

func (c *WHOISClient) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 10 * time.Second
}

// classifyWHOIS maps raw WHOIS text to a tri-state outcome. Registry
// signals, then taken markers, then generic free markers; whois-parser
// covers formats the pattern sets miss. Anything else stays unknown.
func classifyWHOIS(raw, tld string) domain.Outcome {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return domain.OutcomeUnknown
	}

	for _, sig := range noMatchSignals[tld] {
		if strings.Contains(text, sig) {
			return domain.OutcomeFree
		}
	}

	lower := strings.ToLower(text)
	for _, p := range takenPatterns {
		if strings.Contains(lower, p) {
			return domain.OutcomeTaken
		}
	}
	for _, p := range genericFreePatterns {
		if strings.Contains(lower, p) {
			return domain.OutcomeFree
		}
	}

	parsed, err := whoisparser.Parse(raw)
	if errors.Is(err, whoisparser.ErrNotFoundDomain) {
		return domain.OutcomeFree
	}
	if err == nil && parsed.Domain != nil && parsed.Domain.Domain != "" {
		return domain.OutcomeTaken
	}
	return domain.OutcomeUnknown
}
