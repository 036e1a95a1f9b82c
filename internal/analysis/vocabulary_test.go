package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeVocabularyDiversity(t *testing.T) {
	m := AnalyzeVocabulary("red green blue red")
	require.InDelta(t, 0.75, m.LexicalDiversity, 1e-9)
}

func TestAnalyzeVocabularyCaseInsensitive(t *testing.T) {
	m := AnalyzeVocabulary("Word word WORD")
	require.InDelta(t, 1.0/3.0, m.LexicalDiversity, 1e-9)
}

func TestAnalyzeVocabularyEmptyText(t *testing.T) {
	m := AnalyzeVocabulary("")
	require.Zero(t, m.LexicalDiversity)
	require.InDelta(t, 0.65, m.FormalityScore, 1e-9)
}

func TestAnalyzeVocabularyPlaceholders(t *testing.T) {
	m := AnalyzeVocabulary("some text")
	require.InDelta(t, 0.65, m.FormalityScore, 1e-9)
	require.InDelta(t, 0.05, m.UnusualWordFreq, 1e-9)
	require.InDelta(t, 0.25, m.POSDistribution["nouns"], 1e-9)
	require.InDelta(t, 0.2, m.POSDistribution["verbs"], 1e-9)
	require.InDelta(t, 0.15, m.POSDistribution["adjectives"], 1e-9)
	require.InDelta(t, 0.08, m.POSDistribution["adverbs"], 1e-9)
}
