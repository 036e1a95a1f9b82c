package util

import "strings"

// SanitizeText strips characters that break downstream storage and analysis:
// NUL bytes (rejected by Postgres text columns, common in PDF extraction
// output) and other non-printing controls, keeping ordinary whitespace.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	s = strings.Map(func(ch rune) rune {
		switch ch {
		case '\n', '\r', '\t':
			return ch
		}
		if ch < 0x20 {
			return -1
		}
		return ch
	}, s)
	return strings.TrimSpace(s)
}
