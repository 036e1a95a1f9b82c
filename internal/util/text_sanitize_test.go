package util

import (
	"strings"
	"testing"
)

func TestSanitizeTextStripsNulAndControls(t *testing.T) {
	in := "Hello\x00 world\x01\x02\n\ttab kept"
	out := SanitizeText(in)
	if strings.Contains(out, "\x00") {
		t.Fatalf("NUL survived sanitization: %q", out)
	}
	if !strings.Contains(out, "\n\ttab kept") {
		t.Fatalf("common whitespace should survive, got %q", out)
	}
}

func TestSanitizeTextEmpty(t *testing.T) {
	if out := SanitizeText(""); out != "" {
		t.Fatalf("expected empty, got %q", out)
	}
}
