package html

import (
	"strings"
	"testing"
)

func TestSanitizeIcon(t *testing.T) {
	if got := sanitizeIcon(" ✨ "); got != "✨" {
		t.Fatalf("emoji mangled: %q", got)
	}
	got := sanitizeIcon(`<svg viewBox="0 0 10 10" onload="x()"><path d="M0 0"/></svg><script>alert(1)</script>`)
	if !strings.Contains(got, "<svg") || !strings.Contains(got, `d="M0 0"`) {
		t.Fatalf("svg stripped: %q", got)
	}
	if strings.Contains(got, "script") || strings.Contains(got, "onload") {
		t.Fatalf("unsafe markup kept: %q", got)
	}
	if sanitizeIcon("   ") != "" {
		t.Fatalf("blank icon should be empty")
	}
}

func TestCSSVarsStyle(t *testing.T) {
	got := cssVarsStyle(map[string]string{"--b": "2", "--a": "1"})
	if got != "--a: 1; --b: 2;" {
		t.Fatalf("unexpected style %q", got)
	}
}
