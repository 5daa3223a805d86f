package telegram

import (
	"strings"
	"testing"
)

func TestSplitTelegramTextShortMessagePassesThrough(t *testing.T) {
	parts := splitTelegramText("hello", 100)
	if len(parts) != 1 || parts[0] != "hello" {
		t.Errorf("unexpected parts: %v", parts)
	}
}

func TestSplitTelegramTextPrefersNewlines(t *testing.T) {
	msg := strings.Repeat("line one\n", 20)
	parts := splitTelegramText(msg, 50)
	if len(parts) < 2 {
		t.Fatalf("expected multiple parts, got %d", len(parts))
	}
	for i, p := range parts {
		if len(p) > 50 {
			t.Errorf("part %d exceeds limit: %d chars", i, len(p))
		}
	}
}

func TestSplitTelegramTextHardCutsUnbrokenText(t *testing.T) {
	msg := strings.Repeat("x", 120)
	parts := splitTelegramText(msg, 50)
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	if total != 120 {
		t.Errorf("characters lost in split: %d of 120", total)
	}
}
