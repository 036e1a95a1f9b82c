package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzerCachesByContent(t *testing.T) {
	a, err := NewAnalyzer(4)
	require.NoError(t, err)

	first := a.Analyze("She walked home. It was late.")
	second := a.Analyze("She walked home. It was late.")
	require.Equal(t, first, second)

	other := a.Analyze("I am here now.")
	require.NotEqual(t, first.Narrative.PointOfView, other.Narrative.PointOfView)
}

func TestAnalyzerDefaultsCacheSize(t *testing.T) {
	a, err := NewAnalyzer(0)
	require.NoError(t, err)
	require.NotNil(t, a)
}
