package analysis

import (
	"regexp"

	"inkflow/internal/models"
)

const (
	POVFirstPerson = "first_person"
	POVThirdPerson = "third_person"
	TensePresent   = "present"
	TensePast      = "past"
	Unknown        = "unknown"
)

var (
	firstPersonRe = regexp.MustCompile(`(?i)\b(?:i|me|my|mine|we|us|our|ours)\b`)
	thirdPersonRe = regexp.MustCompile(`(?i)\b(?:he|him|his|she|her|hers|they|them|their|theirs)\b`)
	presentRe     = regexp.MustCompile(`(?i)\b(?:is|are|am|being|do|does|has|have)\b`)
	pastRe        = regexp.MustCompile(`(?i)\b(?:was|were|had|did)\b`)
)

// AnalyzeNarrative infers point of view and tense from whole-word pronoun and
// auxiliary counts. Density, action/reflection and show-vs-tell are
// unimplemented measures held at fixed values.
func AnalyzeNarrative(text string) models.NarrativeCharacteristics {
	m := models.NarrativeCharacteristics{
		PointOfView:           Unknown,
		Tense:                 Unknown,
		DescriptionDensity:    0.4,
		ActionReflectionRatio: 1.5,
		ShowVsTell:            0.65,
	}

	first := len(firstPersonRe.FindAllString(text, -1))
	third := len(thirdPersonRe.FindAllString(text, -1))
	switch {
	case first > third*2:
		m.PointOfView = POVFirstPerson
	case third > first:
		m.PointOfView = POVThirdPerson
	}

	present := len(presentRe.FindAllString(text, -1))
	past := len(pastRe.FindAllString(text, -1))
	switch {
	case float64(present) > float64(past)*1.5:
		m.Tense = TensePresent
	case past > present:
		m.Tense = TensePast
	}
	return m
}
