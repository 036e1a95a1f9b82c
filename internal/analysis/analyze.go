package analysis

import (
	"errors"

	"inkflow/internal/models"
)

var (
	ErrEmptyText  = errors.New("no text to analyze")
	ErrNoAnalyses = errors.New("no sample analyses to aggregate")
)

// AnalyzeText runs all five extractors over a sample and derives its
// description. Each extractor is pure, total and safe to call concurrently;
// this composition is too.
func AnalyzeText(text string) models.SampleAnalysis {
	a := models.SampleAnalysis{
		Sentence:   AnalyzeSentences(text),
		Vocabulary: AnalyzeVocabulary(text),
		Narrative:  AnalyzeNarrative(text),
		Devices:    AnalyzeDevices(text),
		Tone:       AnalyzeTone(text),
	}
	a.Description = Describe(a)
	return a
}
