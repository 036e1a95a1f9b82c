package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeToneOptimistic(t *testing.T) {
	m := AnalyzeTone("What a wonderful day, full of joy and hope.")
	require.Equal(t, []string{ToneOptimistic}, m.EmotionalTone)
}

func TestAnalyzeTonePessimistic(t *testing.T) {
	m := AnalyzeTone("A terrible, gloomy night of fear and dread, though great in scale.")
	require.Equal(t, []string{TonePessimistic}, m.EmotionalTone)
}

func TestAnalyzeToneNeutralOnBalance(t *testing.T) {
	// One of each: neither side is more than double the other.
	m := AnalyzeTone("A happy start and a sad end.")
	require.Equal(t, []string{ToneNeutral}, m.EmotionalTone)
}

func TestAnalyzeToneFormality(t *testing.T) {
	formal := "Furthermore, the committee met. However, nothing was decided. Therefore we adjourned."
	m := AnalyzeTone(formal)
	require.Equal(t, FormalityFormal, m.FormalityLevel)

	// Same connectives diluted below the 1% threshold.
	diluted := "However " + strings.Repeat("plain word filler ", 100)
	m = AnalyzeTone(diluted)
	require.Equal(t, FormalityCasual, m.FormalityLevel)
}

func TestAnalyzeToneEmptyText(t *testing.T) {
	m := AnalyzeTone("")
	require.Equal(t, []string{ToneNeutral}, m.EmotionalTone)
	require.Equal(t, FormalityCasual, m.FormalityLevel)
}
