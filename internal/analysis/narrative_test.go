package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeNarrativeFirstPersonPresent(t *testing.T) {
	m := AnalyzeNarrative("I love my garden. It is beautiful and I am happy every day.")
	require.Equal(t, POVFirstPerson, m.PointOfView)
	require.Equal(t, TensePresent, m.Tense)
}

func TestAnalyzeNarrativeThirdPersonPast(t *testing.T) {
	m := AnalyzeNarrative("She walked to her house. They were tired and he was quiet.")
	require.Equal(t, POVThirdPerson, m.PointOfView)
	require.Equal(t, TensePast, m.Tense)
}

func TestAnalyzeNarrativeUnknownOnNoSignals(t *testing.T) {
	m := AnalyzeNarrative("Rain fell. Wind blew.")
	require.Equal(t, Unknown, m.PointOfView)
	require.Equal(t, Unknown, m.Tense)
}

func TestAnalyzeNarrativeFirstPersonNeedsClearMajority(t *testing.T) {
	// Two first-person hits against one third-person is not > 2x.
	m := AnalyzeNarrative("I saw him and my dog")
	require.Equal(t, Unknown, m.PointOfView)
}

func TestAnalyzeNarrativeWholeWordMatching(t *testing.T) {
	// "history" and "island" must not count as "his" or "i".
	m := AnalyzeNarrative("The history of the island")
	require.Equal(t, Unknown, m.PointOfView)
}
