package analysis

const (
	excerptWindow    = 200
	excerptMinPeriod = 100
)

// Excerpt returns a bounded preview of text: the first 200 characters, cut at
// the last sentence-ending period when one falls past position 100. When no
// such period exists an ellipsis is appended, even for short texts that fit
// the window whole. Callers rely on that trailing marker; do not "fix" it.
func Excerpt(text string) string {
	window := []rune(text)
	if len(window) > excerptWindow {
		window = window[:excerptWindow]
	}
	for i := len(window) - 1; i > excerptMinPeriod; i-- {
		if window[i] == '.' {
			return string(window[:i+1])
		}
	}
	return string(window) + "..."
}
