package analysis

import (
	"fmt"
	"strings"

	"inkflow/internal/models"
)

// Qualitative buckets shared by Describe and FormatGuidance. The two render
// the same underlying scale and must stay numerically consistent.
func lengthLabel(avg float64) string {
	switch {
	case avg < 12:
		return "short"
	case avg < 20:
		return "moderate"
	default:
		return "long"
	}
}

func complexityLabel(score float64) string {
	switch {
	case score < 0.4:
		return "simple"
	case score < 0.7:
		return "moderately complex"
	default:
		return "complex"
	}
}

func diversityLabel(d float64) string {
	switch {
	case d < 0.4:
		return "limited"
	case d < 0.6:
		return "varied"
	default:
		return "highly diverse"
	}
}

// Describe renders the five facet bundles of a single sample into one
// deterministic prose summary.
func Describe(a models.SampleAnalysis) string {
	tone := ToneNeutral
	if len(a.Tone.EmotionalTone) > 0 {
		tone = a.Tone.EmotionalTone[0]
	}
	return fmt.Sprintf(
		"This writing features %s sentences with %s structure, %s vocabulary, a %s point of view, %s tense, and a %s, %s tone.",
		lengthLabel(a.Sentence.AvgLength),
		complexityLabel(a.Sentence.ComplexityScore),
		diversityLabel(a.Vocabulary.LexicalDiversity),
		strings.ReplaceAll(a.Narrative.PointOfView, "_", " "),
		a.Narrative.Tense,
		tone,
		a.Tone.FormalityLevel,
	)
}
