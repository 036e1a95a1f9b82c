package analysis

import (
	"fmt"
	"math"
	"strings"

	"inkflow/internal/models"
)

// FormatGuidance renders composite style parameters as sectioned prose
// guidance. Sections keep a fixed order and are omitted entirely when their
// facet is absent; the qualitative phrasing uses the same thresholds as
// Describe.
func FormatGuidance(p models.StyleParameters, authors []string, notes string) string {
	var b strings.Builder

	if p.Sentence != nil {
		b.WriteString("## Sentence Structure\n")
		fmt.Fprintf(&b, "- Aim for an average of about %d words per sentence.\n", int(math.Round(p.Sentence.AvgLength)))
		switch complexityLabel(p.Sentence.ComplexityScore) {
		case "simple":
			b.WriteString("- Keep sentences simple and direct.\n")
		case "moderately complex":
			b.WriteString("- Balance plain sentences with moderately complex ones.\n")
		default:
			b.WriteString("- Build complex sentences with multiple clauses.\n")
		}
		if lv := p.Sentence.LengthVariety; lv != nil {
			fmt.Fprintf(&b, "- Vary sentence lengths: roughly %d%% short, %d%% medium, %d%% long.\n",
				pct(lv["short"]), pct(lv["medium"]), pct(lv["long"]))
		}
		if p.Sentence.Questions {
			b.WriteString("- Work in the occasional rhetorical question.\n")
		}
		b.WriteString("\n")
	}

	if p.Vocabulary != nil {
		b.WriteString("## Vocabulary\n")
		switch diversityLabel(p.Vocabulary.LexicalDiversity) {
		case "limited":
			b.WriteString("- Favor a deliberately limited, repeated word palette.\n")
		case "varied":
			b.WriteString("- Use varied word choice without straining for novelty.\n")
		default:
			b.WriteString("- Draw on a highly diverse vocabulary.\n")
		}
		switch p.Vocabulary.Formality {
		case "formal":
			b.WriteString("- Keep the register formal.\n")
		case "neutral":
			b.WriteString("- Keep the register neutral.\n")
		default:
			b.WriteString("- Keep the register casual and conversational.\n")
		}
		b.WriteString("\n")
	}

	if p.Narrative != nil {
		b.WriteString("## Narrative Approach\n")
		if p.Narrative.PointOfView != "" && p.Narrative.PointOfView != Unknown {
			fmt.Fprintf(&b, "- Write in the %s point of view.\n", strings.ReplaceAll(p.Narrative.PointOfView, "_", " "))
		}
		if p.Narrative.Tense != "" && p.Narrative.Tense != Unknown {
			fmt.Fprintf(&b, "- Favor the %s tense.\n", p.Narrative.Tense)
		}
		if p.Narrative.DescriptionHeavy {
			b.WriteString("- Lean into description and reflection over action.\n")
		} else {
			b.WriteString("- Keep the narrative moving; action over lingering description.\n")
		}
		b.WriteString("\n")
	}

	if p.Tone != nil {
		b.WriteString("## Tone\n")
		if len(p.Tone.EmotionalTones) > 0 {
			fmt.Fprintf(&b, "- Maintain a %s emotional tone.\n", strings.Join(p.Tone.EmotionalTones, ", "))
		}
		if p.Tone.FormalityLevel != "" {
			fmt.Fprintf(&b, "- The overall delivery is %s.\n", p.Tone.FormalityLevel)
		}
		b.WriteString("\n")
	}

	if p.Devices != nil {
		b.WriteString("## Stylistic Devices\n")
		if p.Devices.Metaphors {
			b.WriteString("- Use metaphor to carry imagery.\n")
		}
		if p.Devices.Similes {
			b.WriteString("- Reach for similes when comparing.\n")
		}
		if p.Devices.Alliteration {
			b.WriteString("- Allow occasional alliteration.\n")
		}
		if p.Devices.Repetition {
			b.WriteString("- Repeat key words and structures for rhythm.\n")
		}
		b.WriteString("\n")
	}

	if merged := unionFirstSeen(p.ComparableAuthors, authors); len(merged) > 0 {
		b.WriteString("## Similar Authors\n")
		fmt.Fprintf(&b, "- Comparable voices: %s.\n\n", strings.Join(merged, ", "))
	}

	if strings.TrimSpace(notes) != "" {
		b.WriteString("## Additional Notes\n")
		b.WriteString(strings.TrimSpace(notes) + "\n")
	}

	return strings.TrimSpace(b.String())
}

func pct(f float64) int {
	return int(math.Round(f * 100))
}
