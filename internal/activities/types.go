package activities

import "inkflow/internal/models"

type ListSampleFilesInput struct {
	InputDir string `json:"input_dir"`
}

type ListSampleFilesOutput struct {
	Paths []string `json:"paths"`
}

type ComputeSampleIDInput struct {
	SamplePath string `json:"sample_path"`
}

type ComputeSampleIDOutput struct {
	SampleID string `json:"sample_id"`
}

type ExtractTextInput struct {
	SamplePath string `json:"sample_path"`
}

type ExtractTextOutput struct {
	Text string `json:"text"`
}

type AnalyzeTextInput struct {
	Text string `json:"text"`
}

type AnalyzeTextOutput struct {
	Analysis models.SampleAnalysis `json:"analysis"`
	Excerpt  string                `json:"excerpt"`
}

type UpsertSampleInput struct {
	Sample models.Sample `json:"sample"`
}

type UpdateSampleStatusInput struct {
	SampleID   string `json:"sample_id"`
	ProfileID  string `json:"profile_id"`
	Filename   string `json:"filename"`
	Status     string `json:"status"`
	FailReason string `json:"fail_reason,omitempty"`
}

type WriteSampleArtifactsInput struct {
	ProfileID string         `json:"profile_id"`
	SampleID  string         `json:"sample_id"`
	Metadata  map[string]any `json:"metadata"`
	Analysis  any            `json:"analysis"`
}

type WriteBatchSummaryInput struct {
	ProfileID string         `json:"profile_id"`
	Summary   map[string]any `json:"summary"`
}

type LoadProfileAnalysesInput struct {
	ProfileID string `json:"profile_id"`
}

type LoadProfileAnalysesOutput struct {
	Analyses          []models.SampleAnalysis `json:"analyses"`
	ComparableAuthors []string                `json:"comparable_authors,omitempty"`
	UserNotes         string                  `json:"user_notes,omitempty"`
}

type AggregateStyleInput struct {
	Analyses          []models.SampleAnalysis `json:"analyses"`
	ComparableAuthors []string                `json:"comparable_authors,omitempty"`
}

type AggregateStyleOutput struct {
	Parameters models.StyleParameters `json:"parameters"`
}

type SaveProfileParametersInput struct {
	ProfileID  string                 `json:"profile_id"`
	Parameters models.StyleParameters `json:"parameters"`
}

type WriteGuidanceArtifactInput struct {
	ProfileID         string                 `json:"profile_id"`
	Parameters        models.StyleParameters `json:"parameters"`
	ComparableAuthors []string               `json:"comparable_authors,omitempty"`
	UserNotes         string                 `json:"user_notes,omitempty"`
}

type WriteGuidanceArtifactOutput struct {
	Path string `json:"path"`
}
