package analysis

import (
	"regexp"
	"strings"

	"inkflow/internal/models"
)

const (
	ToneOptimistic  = "optimistic"
	TonePessimistic = "pessimistic"
	ToneNeutral     = "neutral"

	FormalityFormal = "formal"
	FormalityCasual = "casual"
)

// Small fixed lexicons. Deliberately tiny: the thresholds and word lists are
// part of the observable contract and must not be tuned in place.
var (
	positiveRe = regexp.MustCompile(`(?i)\b(?:love|happy|joy|wonderful|beautiful|great|excellent|amazing|hope|delight)\b`)
	negativeRe = regexp.MustCompile(`(?i)\b(?:hate|sad|terrible|awful|horrible|fear|pain|gloomy|miserable|dread)\b`)
	formalRe   = regexp.MustCompile(`(?i)\b(?:furthermore|however|nevertheless|therefore|thus|consequently|moreover|hence|accordingly|regarding)\b`)
)

// AnalyzeTone classifies emotional tone and formality from lexicon counts.
// The emotional tone is a list for forward compatibility but always a single
// tag here. Humor and sarcasm are unimplemented measures.
func AnalyzeTone(text string) models.ToneAttributes {
	m := models.ToneAttributes{
		EmotionalTone:  []string{ToneNeutral},
		FormalityLevel: FormalityCasual,
		HumorLevel:     0.2,
		SarcasmLevel:   0.1,
	}

	positive := len(positiveRe.FindAllString(text, -1))
	negative := len(negativeRe.FindAllString(text, -1))
	switch {
	case positive > negative*2:
		m.EmotionalTone = []string{ToneOptimistic}
	case negative > positive*2:
		m.EmotionalTone = []string{TonePessimistic}
	}

	words := len(strings.Fields(text))
	if words > 0 {
		formal := len(formalRe.FindAllString(text, -1))
		if float64(formal)/float64(words) > 0.01 {
			m.FormalityLevel = FormalityFormal
		}
	}
	return m
}
