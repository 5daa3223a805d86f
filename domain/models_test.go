package domain

import (
	"errors"
	"testing"
)

func TestNormalizeLowercasesAndTrims(t *testing.T) {
	got, err := Normalize("  ExAmple.COM. ")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if got != "example.com" {
		t.Errorf("unexpected normalized form: %s", got)
	}
}

func TestNormalizeConvertsIDNToPunycode(t *testing.T) {
	got, err := Normalize("müller.de")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if got != "xn--mller-kva.de" {
		t.Errorf("expected punycode form, got %s", got)
	}
}

func TestNormalizeRejectsInvalidInput(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"nodots",
		"exa mple.com",
		"http://example.com",
		"bad_char!.com",
	}
	for _, raw := range cases {
		if _, err := Normalize(raw); !errors.Is(err, ErrInvalidDomain) {
			t.Errorf("Normalize(%q) = %v, want ErrInvalidDomain", raw, err)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once, err := Normalize("Straße.de")
	if err != nil {
		t.Fatalf("first Normalize returned error: %v", err)
	}
	twice, err := Normalize(once)
	if err != nil {
		t.Fatalf("second Normalize returned error: %v", err)
	}
	if once != twice {
		t.Errorf("normalization not idempotent: %s vs %s", once, twice)
	}
}

func TestTLDReturnsLastLabel(t *testing.T) {
	if got := TLD("shop.example.co.uk"); got != "uk" {
		t.Errorf("unexpected tld: %s", got)
	}
	if got := TLD("example.com"); got != "com" {
		t.Errorf("unexpected tld: %s", got)
	}
}

func TestParseVerdictRoundTrips(t *testing.T) {
	for _, v := range []Verdict{VerdictAvailable, VerdictTaken, VerdictIndeterminate} {
		got, err := ParseVerdict(v.String())
		if err != nil {
			t.Fatalf("ParseVerdict(%s) returned error: %v", v, err)
		}
		if got != v {
			t.Errorf("ParseVerdict(%s) = %s", v, got)
		}
	}
	if _, err := ParseVerdict("bogus"); err == nil {
		t.Error("expected error for unknown verdict string")
	}
}

func TestParseOutcomeAcceptsAliases(t *testing.T) {
	if got, err := ParseOutcome("Free"); err != nil || got != OutcomeFree {
		t.Errorf("ParseOutcome(Free) = %v, %v", got, err)
	}
	if got, err := ParseOutcome("available"); err != nil || got != OutcomeFree {
		t.Errorf("ParseOutcome(available) = %v, %v", got, err)
	}
	if _, err := ParseOutcome("maybe"); err == nil {
		t.Error("expected error for unknown outcome string")
	}
}
