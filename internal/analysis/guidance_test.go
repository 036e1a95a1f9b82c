package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"inkflow/internal/models"
)

func TestFormatGuidanceEmptyParams(t *testing.T) {
	got := FormatGuidance(models.StyleParameters{}, nil, "")
	require.Equal(t, "", got)
}

func TestFormatGuidanceOmitsAbsentSections(t *testing.T) {
	p := models.StyleParameters{
		Sentence: &models.SentenceParams{AvgLength: 14, ComplexityScore: 0.5},
	}
	got := FormatGuidance(p, nil, "")
	require.Contains(t, got, "## Sentence Structure")
	require.NotContains(t, got, "## Vocabulary")
	require.NotContains(t, got, "## Tone")
	require.NotContains(t, got, "## Similar Authors")
}

func TestFormatGuidanceFullSections(t *testing.T) {
	p := models.StyleParameters{
		Sentence: &models.SentenceParams{
			AvgLength:       9.4,
			LengthVariety:   map[string]float64{"short": 0.5, "medium": 0.3, "long": 0.2},
			ComplexityScore: 0.3,
			Questions:       true,
		},
		Vocabulary: &models.VocabularyParams{LexicalDiversity: 0.7, Formality: "neutral"},
		Narrative:  &models.NarrativeParams{PointOfView: POVFirstPerson, Tense: TensePast, DescriptionHeavy: true},
		Tone:       &models.ToneParams{EmotionalTones: []string{ToneOptimistic}, FormalityLevel: FormalityCasual},
		Devices:    &models.DeviceParams{Metaphors: true, Repetition: true},
	}
	got := FormatGuidance(p, []string{"Didion"}, "Avoid adverbs.")

	require.Contains(t, got, "- Aim for an average of about 9 words per sentence.")
	require.Contains(t, got, "roughly 50% short, 30% medium, 20% long")
	require.Contains(t, got, "- Work in the occasional rhetorical question.")
	require.Contains(t, got, "- Draw on a highly diverse vocabulary.")
	require.Contains(t, got, "- Keep the register neutral.")
	require.Contains(t, got, "- Write in the first person point of view.")
	require.Contains(t, got, "- Favor the past tense.")
	require.Contains(t, got, "- Lean into description and reflection over action.")
	require.Contains(t, got, "- Maintain a optimistic emotional tone.")
	require.Contains(t, got, "- Use metaphor to carry imagery.")
	require.NotContains(t, got, "similes")
	require.Contains(t, got, "- Comparable voices: Didion.")
	require.Contains(t, got, "## Additional Notes\nAvoid adverbs.")
}

func TestFormatGuidanceSectionOrder(t *testing.T) {
	p := models.StyleParameters{
		Sentence:   &models.SentenceParams{AvgLength: 10},
		Vocabulary: &models.VocabularyParams{},
		Narrative:  &models.NarrativeParams{},
		Tone:       &models.ToneParams{FormalityLevel: FormalityCasual},
		Devices:    &models.DeviceParams{},
	}
	got := FormatGuidance(p, []string{"Woolf"}, "note")

	order := []string{
		"## Sentence Structure",
		"## Vocabulary",
		"## Narrative Approach",
		"## Tone",
		"## Stylistic Devices",
		"## Similar Authors",
		"## Additional Notes",
	}
	last := -1
	for _, h := range order {
		idx := strings.Index(got, h)
		require.Greater(t, idx, last, "section %q out of order", h)
		last = idx
	}
}

func TestFormatGuidanceMergesProfileAndExtraAuthors(t *testing.T) {
	p := models.StyleParameters{ComparableAuthors: []string{"Woolf"}}
	got := FormatGuidance(p, []string{"Didion", "Woolf"}, "")
	require.Contains(t, got, "Comparable voices: Woolf, Didion.")
}
