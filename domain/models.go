package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/idna"
)

// Outcome is the tri-state result of a single source query. Transport
// failures, timeouts and unparseable responses all normalize to
// OutcomeUnknown; clients never surface them as fatal errors.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeFree
	OutcomeTaken
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFree:
		return "free"
	case OutcomeTaken:
		return "taken"
	default:
		return "unknown"
	}
}

// ParseOutcome maps a configured outcome name to an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free", "available":
		return OutcomeFree, nil
	case "taken":
		return OutcomeTaken, nil
	case "unknown":
		return OutcomeUnknown, nil
	}
	return OutcomeUnknown, fmt.Errorf("unknown outcome %q", s)
}

// Verdict is the engine's final tri-state answer per domain per cycle.
type Verdict int

const (
	VerdictIndeterminate Verdict = iota
	VerdictAvailable
	VerdictTaken
)

func (v Verdict) String() string {
	switch v {
	case VerdictAvailable:
		return "available"
	case VerdictTaken:
		return "taken"
	default:
		return "indeterminate"
	}
}

// ParseVerdict maps the stored string form back to a Verdict.
func ParseVerdict(s string) (Verdict, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "available":
		return VerdictAvailable, nil
	case "taken":
		return VerdictTaken, nil
	case "indeterminate":
		return VerdictIndeterminate, nil
	}
	return VerdictIndeterminate, fmt.Errorf("unknown verdict %q", s)
}

// Record is the persisted notification state for one domain.
type Record struct {
	Domain      string
	LastVerdict Verdict
	CheckedAt   time.Time
	NotifiedAt  *time.Time
}

var ErrInvalidDomain = errors.New("invalid domain")

// forbiddenChars is everything a hostname label may never contain. Non-ASCII
// runes are left for IDNA to judge.
const forbiddenChars = " \t!@#$%^&*()+=[]{}|\\:;\"'<>,?/`~"

// Normalize converts raw input to the canonical lowercase IDNA form used as
// the primary key everywhere else. The result is immutable by convention.
func Normalize(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidDomain)
	}
	if i := strings.IndexAny(s, forbiddenChars); i >= 0 {
		return "", fmt.Errorf("%w: forbidden character %q in %q", ErrInvalidDomain, s[i], raw)
	}
	ascii, err := idna.Lookup.ToASCII(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDomain, err)
	}
	if !strings.Contains(ascii, ".") {
		return "", fmt.Errorf("%w: %q has no TLD", ErrInvalidDomain, raw)
	}
	return ascii, nil
}

// TLD returns the last label of a normalized domain.
func TLD(fqdn string) string {
	if i := strings.LastIndex(fqdn, "."); i >= 0 {
		return fqdn[i+1:]
	}
	return fqdn
}
