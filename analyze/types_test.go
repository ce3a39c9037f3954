package analyze

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	if got := truncate("  short  "); got != "short" {
		t.Errorf("truncate trimmed = %q, want %q", got, "short")
	}

	long := strings.Repeat("x", contextLimit+20)
	got := truncate(long)
	if len(got) != contextLimit {
		t.Errorf("truncated length = %d, want %d", len(got), contextLimit)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated string has no ellipsis: %q", got)
	}

	// Multibyte content must be cut on a rune boundary, the context string
	// ends up in JSON reports and has to stay valid UTF-8.
	wide := strings.Repeat("日", contextLimit)
	got = truncate(wide)
	if !utf8.ValidString(got) {
		t.Errorf("truncated string is not valid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated string has no ellipsis: %q", got)
	}
	if len(got) > contextLimit {
		t.Errorf("truncated length = %d, want at most %d", len(got), contextLimit)
	}
}
