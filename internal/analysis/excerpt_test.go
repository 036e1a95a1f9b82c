package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExcerptLongTextTrimmedWithEllipsis(t *testing.T) {
	got := Excerpt(strings.Repeat("a", 300))
	require.Len(t, []rune(got), 203)
	require.True(t, strings.HasSuffix(got, "..."))
	require.Equal(t, strings.Repeat("a", 200)+"...", got)
}

func TestExcerptCutsAtLatePeriod(t *testing.T) {
	text := strings.Repeat("a", 150) + "." + strings.Repeat("b", 120)
	got := Excerpt(text)
	require.Equal(t, strings.Repeat("a", 150)+".", got)
}

func TestExcerptIgnoresEarlyPeriod(t *testing.T) {
	// The only period sits before position 100, so it does not count as a
	// cut point and the window is used whole.
	text := strings.Repeat("a", 50) + "." + strings.Repeat("b", 200)
	got := Excerpt(text)
	require.Len(t, []rune(got), 203)
	require.True(t, strings.HasSuffix(got, "..."))
}

func TestExcerptShortTextKeepsEllipsis(t *testing.T) {
	// Short texts still get the trailing marker even when nothing was cut.
	got := Excerpt("Tiny fragment")
	require.Equal(t, "Tiny fragment...", got)
}

func TestExcerptShortSentenceKeepsEllipsis(t *testing.T) {
	got := Excerpt("A full sentence.")
	require.Equal(t, "A full sentence....", got)
}
