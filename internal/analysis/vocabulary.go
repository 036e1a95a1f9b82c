package analysis

import (
	"strings"

	"inkflow/internal/models"
)

// AnalyzeVocabulary computes vocabulary metrics. Formality, unusual-word
// frequency and the POS distribution are unimplemented measures: fixed
// placeholder outputs kept numerically stable for downstream aggregation, so
// a richer analyzer can replace them without touching the pipeline.
func AnalyzeVocabulary(text string) models.VocabularyMetrics {
	m := models.VocabularyMetrics{
		FormalityScore:  0.65,
		UnusualWordFreq: 0.05,
		POSDistribution: map[string]float64{
			"nouns":      0.25,
			"verbs":      0.2,
			"adjectives": 0.15,
			"adverbs":    0.08,
		},
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return m
	}
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	m.LexicalDiversity = float64(len(unique)) / float64(len(words))
	return m
}
