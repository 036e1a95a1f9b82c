package analysis

import (
	"regexp"
	"strings"

	"inkflow/internal/models"
)

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// SplitSentences breaks text on runs of sentence terminators and drops
// blank fragments.
func SplitSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AnalyzeSentences computes sentence-structure metrics. It is total over all
// inputs: zero sentences yields zero ratios, never NaN.
func AnalyzeSentences(text string) models.SentenceMetrics {
	m := models.SentenceMetrics{
		LengthVariety: map[string]float64{"short": 0, "medium": 0, "long": 0},
	}
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return m
	}

	total := 0
	short, medium, long := 0, 0, 0
	fragments := 0
	for _, s := range sentences {
		words := len(strings.Fields(s))
		total += words
		switch {
		case words <= 10:
			short++
		case words <= 20:
			medium++
		default:
			long++
		}
		if words < 5 {
			fragments++
		}
	}

	n := float64(len(sentences))
	m.AvgLength = float64(total) / n
	m.LengthVariety["short"] = float64(short) / n
	m.LengthVariety["medium"] = float64(medium) / n
	m.LengthVariety["long"] = float64(long) / n
	m.ComplexityScore = m.AvgLength / 25
	if m.ComplexityScore > 1 {
		m.ComplexityScore = 1
	}
	m.QuestionFrequency = float64(strings.Count(text, "?")) / n
	m.FragmentFrequency = float64(fragments) / n
	return m
}
