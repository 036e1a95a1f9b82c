package models

import "time"

// SentenceMetrics describes sentence-level structure of a sample.
type SentenceMetrics struct {
	AvgLength         float64            `json:"avg_length"`
	LengthVariety     map[string]float64 `json:"length_variety"`
	ComplexityScore   float64            `json:"complexity_score"`
	QuestionFrequency float64            `json:"question_frequency"`
	FragmentFrequency float64            `json:"fragment_frequency"`
}

type VocabularyMetrics struct {
	LexicalDiversity float64            `json:"lexical_diversity"`
	FormalityScore   float64            `json:"formality_score"`
	UnusualWordFreq  float64            `json:"unusual_word_freq"`
	POSDistribution  map[string]float64 `json:"pos_distribution"`
}

type NarrativeCharacteristics struct {
	PointOfView           string  `json:"point_of_view"`
	Tense                 string  `json:"tense"`
	DescriptionDensity    float64 `json:"description_density"`
	ActionReflectionRatio float64 `json:"action_reflection_ratio"`
	ShowVsTell            float64 `json:"show_vs_tell"`
}

type StylisticDevices struct {
	MetaphorFrequency     float64 `json:"metaphor_frequency"`
	SimileFrequency       float64 `json:"simile_frequency"`
	AlliterationFrequency float64 `json:"alliteration_frequency"`
	RepetitionPatterns    float64 `json:"repetition_patterns"`
}

type ToneAttributes struct {
	EmotionalTone  []string `json:"emotional_tone"`
	FormalityLevel string   `json:"formality_level"`
	HumorLevel     float64  `json:"humor_level"`
	SarcasmLevel   float64  `json:"sarcasm_level"`
}

// SampleAnalysis bundles the five facet metrics of one analyzed sample plus
// its derived prose description. It is created once at analysis time and
// replaced wholesale on re-analysis, never field-patched.
type SampleAnalysis struct {
	Sentence    SentenceMetrics          `json:"sentence_structure"`
	Vocabulary  VocabularyMetrics        `json:"vocabulary"`
	Narrative   NarrativeCharacteristics `json:"narrative"`
	Devices     StylisticDevices         `json:"stylistic_devices"`
	Tone        ToneAttributes           `json:"tone"`
	Description string                   `json:"description"`
}

// StyleParameters is the composite derived from one or more sample analyses.
// Sub-objects are pointers so an absent facet can be told apart from a zero
// one; the guidance formatter omits sections for nil facets entirely.
type StyleParameters struct {
	Sentence          *SentenceParams   `json:"sentence,omitempty"`
	Vocabulary        *VocabularyParams `json:"vocabulary,omitempty"`
	Narrative         *NarrativeParams  `json:"narrative,omitempty"`
	Tone              *ToneParams       `json:"tone,omitempty"`
	Devices           *DeviceParams     `json:"devices,omitempty"`
	ComparableAuthors []string          `json:"comparable_authors,omitempty"`
	SampleCount       int               `json:"sample_count"`
}

type SentenceParams struct {
	AvgLength         float64            `json:"avg_length"`
	LengthVariety     map[string]float64 `json:"length_variety"`
	ComplexityScore   float64            `json:"complexity_score"`
	QuestionFrequency float64            `json:"question_frequency"`
	Questions         bool               `json:"questions"`
}

type VocabularyParams struct {
	LexicalDiversity float64 `json:"lexical_diversity"`
	FormalityScore   float64 `json:"formality_score"`
	Formality        string  `json:"formality"`
}

type NarrativeParams struct {
	PointOfView           string  `json:"point_of_view"`
	Tense                 string  `json:"tense"`
	ActionReflectionRatio float64 `json:"action_reflection_ratio"`
	DescriptionHeavy      bool    `json:"description_heavy"`
}

type ToneParams struct {
	EmotionalTones []string `json:"emotional_tones"`
	FormalityLevel string   `json:"formality_level"`
}

type DeviceParams struct {
	MetaphorFrequency     float64 `json:"metaphor_frequency"`
	SimileFrequency       float64 `json:"simile_frequency"`
	AlliterationFrequency float64 `json:"alliteration_frequency"`
	RepetitionPatterns    float64 `json:"repetition_patterns"`
	Metaphors             bool    `json:"metaphors"`
	Similes               bool    `json:"similes"`
	Alliteration          bool    `json:"alliteration"`
	Repetition            bool    `json:"repetition"`
}

type Sample struct {
	SampleID   string          `json:"sample_id"`
	ProfileID  string          `json:"profile_id,omitempty"`
	Title      string          `json:"title,omitempty"`
	Filename   string          `json:"filename,omitempty"`
	Text       string          `json:"text"`
	Excerpt    string          `json:"excerpt,omitempty"`
	Analysis   *SampleAnalysis `json:"analysis,omitempty"`
	Status     string          `json:"status"`
	FailReason string          `json:"fail_reason,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type StyleProfile struct {
	ProfileID          string           `json:"profile_id"`
	Name               string           `json:"name"`
	Description        string           `json:"description,omitempty"`
	Parameters         *StyleParameters `json:"parameters,omitempty"`
	Genres             []string         `json:"genres,omitempty"`
	ComparableAuthors  []string         `json:"comparable_authors,omitempty"`
	UserNotes          string           `json:"user_notes,omitempty"`
	SampleIDs          []string         `json:"sample_ids,omitempty"`
	RepresentativeText []string         `json:"representative_text,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ExampleExcerpt is a scored excerpt from a member sample, used when
// packaging writing prompts.
type ExampleExcerpt struct {
	SampleID string  `json:"sample_id"`
	Title    string  `json:"title,omitempty"`
	Snippet  string  `json:"snippet"`
	Score    float64 `json:"score"`
}
