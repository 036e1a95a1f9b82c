package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"inkflow/internal/models"
)

func sampleFor(pov, tense, tone string, avgLen float64) models.SampleAnalysis {
	return models.SampleAnalysis{
		Sentence: models.SentenceMetrics{
			AvgLength:       avgLen,
			LengthVariety:   map[string]float64{"short": 0.5, "medium": 0.3, "long": 0.2},
			ComplexityScore: avgLen / 25,
		},
		Vocabulary: models.VocabularyMetrics{LexicalDiversity: 0.5, FormalityScore: 0.65},
		Narrative:  models.NarrativeCharacteristics{PointOfView: pov, Tense: tense, ActionReflectionRatio: 1.5},
		Devices: models.StylisticDevices{
			MetaphorFrequency: 0.02, SimileFrequency: 0.015,
			AlliterationFrequency: 0.008, RepetitionPatterns: 0.03,
		},
		Tone: models.ToneAttributes{EmotionalTone: []string{tone}, FormalityLevel: FormalityCasual},
	}
}

func TestAggregateEmptyRejected(t *testing.T) {
	_, err := Aggregate(nil, nil)
	require.ErrorIs(t, err, ErrNoAnalyses)
}

func TestAggregateSingleIsIdentity(t *testing.T) {
	a := sampleFor(POVFirstPerson, TensePresent, ToneOptimistic, 15)
	p, err := Aggregate([]models.SampleAnalysis{a}, nil)
	require.NoError(t, err)

	require.InDelta(t, 15.0, p.Sentence.AvgLength, 1e-9)
	require.InDelta(t, 0.5, p.Sentence.LengthVariety["short"], 1e-9)
	require.InDelta(t, 0.5, p.Vocabulary.LexicalDiversity, 1e-9)
	require.Equal(t, POVFirstPerson, p.Narrative.PointOfView)
	require.Equal(t, TensePresent, p.Narrative.Tense)
	require.Equal(t, []string{ToneOptimistic}, p.Tone.EmotionalTones)
	require.Equal(t, 1, p.SampleCount)
}

func TestAggregateDuplicatedBundleIsIdentity(t *testing.T) {
	a := sampleFor(POVFirstPerson, TensePresent, ToneOptimistic, 17)
	single, err := Aggregate([]models.SampleAnalysis{a}, nil)
	require.NoError(t, err)
	doubled, err := Aggregate([]models.SampleAnalysis{a, a}, nil)
	require.NoError(t, err)

	require.InDelta(t, single.Sentence.AvgLength, doubled.Sentence.AvgLength, 1e-9)
	require.InDelta(t, single.Sentence.ComplexityScore, doubled.Sentence.ComplexityScore, 1e-9)
	require.InDelta(t, single.Vocabulary.LexicalDiversity, doubled.Vocabulary.LexicalDiversity, 1e-9)
	require.InDelta(t, single.Devices.MetaphorFrequency, doubled.Devices.MetaphorFrequency, 1e-9)
	require.Equal(t, single.Narrative.PointOfView, doubled.Narrative.PointOfView)
	require.Equal(t, single.Tone.EmotionalTones, doubled.Tone.EmotionalTones)
}

func TestAggregateMeansScalars(t *testing.T) {
	a := sampleFor(POVFirstPerson, TensePresent, ToneOptimistic, 10)
	b := sampleFor(POVFirstPerson, TensePresent, ToneOptimistic, 20)
	p, err := Aggregate([]models.SampleAnalysis{a, b}, nil)
	require.NoError(t, err)
	require.InDelta(t, 15.0, p.Sentence.AvgLength, 1e-9)
	require.InDelta(t, 0.6, p.Sentence.ComplexityScore, 1e-9)
	require.Equal(t, 2, p.SampleCount)
}

func TestAggregateModeMajority(t *testing.T) {
	p, err := Aggregate([]models.SampleAnalysis{
		sampleFor(POVFirstPerson, TensePast, ToneNeutral, 12),
		sampleFor(POVFirstPerson, TensePast, ToneNeutral, 12),
		sampleFor(POVThirdPerson, TensePresent, ToneNeutral, 12),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, POVFirstPerson, p.Narrative.PointOfView)
	require.Equal(t, TensePast, p.Narrative.Tense)
}

func TestAggregateModeTieKeepsFirstSeen(t *testing.T) {
	p, err := Aggregate([]models.SampleAnalysis{
		sampleFor(POVThirdPerson, TensePresent, ToneNeutral, 12),
		sampleFor(POVFirstPerson, TensePast, ToneNeutral, 12),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, POVThirdPerson, p.Narrative.PointOfView)
	require.Equal(t, TensePresent, p.Narrative.Tense)
}

func TestAggregateToneUnionPreservesOrder(t *testing.T) {
	p, err := Aggregate([]models.SampleAnalysis{
		sampleFor(POVFirstPerson, TensePresent, ToneOptimistic, 12),
		sampleFor(POVFirstPerson, TensePresent, ToneNeutral, 12),
		sampleFor(POVFirstPerson, TensePresent, ToneOptimistic, 12),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{ToneOptimistic, ToneNeutral}, p.Tone.EmotionalTones)
}

func TestAggregateAuthorsDeduplicated(t *testing.T) {
	a := sampleFor(POVFirstPerson, TensePresent, ToneNeutral, 12)
	p, err := Aggregate([]models.SampleAnalysis{a}, []string{"Woolf", "Didion", "Woolf"})
	require.NoError(t, err)
	require.Equal(t, []string{"Woolf", "Didion"}, p.ComparableAuthors)
}

func TestAggregateDerivedBooleans(t *testing.T) {
	a := sampleFor(POVFirstPerson, TensePresent, ToneNeutral, 12)
	a.Sentence.QuestionFrequency = 0.1
	a.Narrative.ActionReflectionRatio = 0.5
	p, err := Aggregate([]models.SampleAnalysis{a}, nil)
	require.NoError(t, err)

	require.True(t, p.Sentence.Questions)
	require.True(t, p.Narrative.DescriptionHeavy)
	require.True(t, p.Devices.Metaphors)
	require.True(t, p.Devices.Similes)
	require.False(t, p.Devices.Alliteration)
	require.True(t, p.Devices.Repetition)
	require.Equal(t, "formal", p.Vocabulary.Formality)
}
