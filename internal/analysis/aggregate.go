package analysis

import (
	"inkflow/internal/models"
)

// Aggregate folds one or more sample analyses into composite style
// parameters: arithmetic mean for scalars, first-seen-wins mode for
// categoricals, ordered union for tones. Extra comparable authors (typically
// user-supplied on the profile) are de-duplicated into the result. An empty
// sequence is rejected with ErrNoAnalyses; aggregation over zero samples is
// meaningless and must never default to zeros.
func Aggregate(analyses []models.SampleAnalysis, authors []string) (models.StyleParameters, error) {
	if len(analyses) == 0 {
		return models.StyleParameters{}, ErrNoAnalyses
	}

	n := float64(len(analyses))
	var (
		avgLen, short, medium, long       float64
		complexity, qfreq                 float64
		diversity, formality              float64
		actionReflection                  float64
		metaphor, simile, allit, repByAvg float64
	)
	povs := make([]string, 0, len(analyses))
	tenses := make([]string, 0, len(analyses))
	formalities := make([]string, 0, len(analyses))
	toneLists := make([][]string, 0, len(analyses))

	for _, a := range analyses {
		avgLen += a.Sentence.AvgLength
		short += a.Sentence.LengthVariety["short"]
		medium += a.Sentence.LengthVariety["medium"]
		long += a.Sentence.LengthVariety["long"]
		complexity += a.Sentence.ComplexityScore
		qfreq += a.Sentence.QuestionFrequency
		diversity += a.Vocabulary.LexicalDiversity
		formality += a.Vocabulary.FormalityScore
		actionReflection += a.Narrative.ActionReflectionRatio
		metaphor += a.Devices.MetaphorFrequency
		simile += a.Devices.SimileFrequency
		allit += a.Devices.AlliterationFrequency
		repByAvg += a.Devices.RepetitionPatterns

		povs = append(povs, a.Narrative.PointOfView)
		tenses = append(tenses, a.Narrative.Tense)
		formalities = append(formalities, a.Tone.FormalityLevel)
		toneLists = append(toneLists, a.Tone.EmotionalTone)
	}

	meanQFreq := qfreq / n
	meanFormality := formality / n
	meanAR := actionReflection / n
	meanMetaphor := metaphor / n
	meanSimile := simile / n
	meanAllit := allit / n
	meanRep := repByAvg / n

	p := models.StyleParameters{
		Sentence: &models.SentenceParams{
			AvgLength: avgLen / n,
			LengthVariety: map[string]float64{
				"short":  short / n,
				"medium": medium / n,
				"long":   long / n,
			},
			ComplexityScore:   complexity / n,
			QuestionFrequency: meanQFreq,
			Questions:         meanQFreq > 0.05,
		},
		Vocabulary: &models.VocabularyParams{
			LexicalDiversity: diversity / n,
			FormalityScore:   meanFormality,
			Formality:        formalityBucket(meanFormality),
		},
		Narrative: &models.NarrativeParams{
			PointOfView:           modeOf(povs, Unknown),
			Tense:                 modeOf(tenses, Unknown),
			ActionReflectionRatio: meanAR,
			DescriptionHeavy:      meanAR < 1,
		},
		Tone: &models.ToneParams{
			EmotionalTones: unionFirstSeen(toneLists...),
			FormalityLevel: modeOf(formalities, ToneNeutral),
		},
		Devices: &models.DeviceParams{
			MetaphorFrequency:     meanMetaphor,
			SimileFrequency:       meanSimile,
			AlliterationFrequency: meanAllit,
			RepetitionPatterns:    meanRep,
			Metaphors:             meanMetaphor > 0.01,
			Similes:               meanSimile > 0.01,
			Alliteration:          meanAllit > 0.01,
			Repetition:            meanRep > 0.01,
		},
		ComparableAuthors: unionFirstSeen(authors),
		SampleCount:       len(analyses),
	}
	return p, nil
}

func formalityBucket(score float64) string {
	switch {
	case score > 0.6:
		return "formal"
	case score > 0.4:
		return "neutral"
	default:
		return "casual"
	}
}
