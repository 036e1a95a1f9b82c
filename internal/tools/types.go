package tools

import "inkflow/internal/models"

type AnalyzeSampleRequest struct {
	Text      string `json:"text"`
	Title     string `json:"title,omitempty"`
	ProfileID string `json:"profile_id,omitempty"`
	Store     bool   `json:"store"`
}

type AnalyzeSampleResponse struct {
	SampleID string                `json:"sample_id,omitempty"`
	Excerpt  string                `json:"excerpt"`
	Analysis models.SampleAnalysis `json:"analysis"`
}

type GetProfileRequest struct {
	ProfileID       string `json:"profile_id"`
	IncludeGuidance bool   `json:"include_guidance"`
	IncludeExamples bool   `json:"include_examples"`
}

type GetProfileResponse struct {
	Profile  models.StyleProfile     `json:"profile"`
	Guidance string                  `json:"guidance,omitempty"`
	Examples []models.ExampleExcerpt `json:"examples,omitempty"`
}

type SaveProfileRequest struct {
	ProfileID          string   `json:"profile_id,omitempty"`
	Name               string   `json:"name"`
	Description        string   `json:"description,omitempty"`
	SampleIDs          []string `json:"sample_ids"`
	Genres             []string `json:"genres,omitempty"`
	ComparableAuthors  []string `json:"comparable_authors,omitempty"`
	UserNotes          string   `json:"user_notes,omitempty"`
	RepresentativeText []string `json:"representative_text,omitempty"`
}

type SaveProfileResponse struct {
	Profile models.StyleProfile `json:"profile"`
}

type WritingPromptRequest struct {
	ProfileID string `json:"profile_id"`
	Topic     string `json:"topic"`
}

type WritingPromptResponse struct {
	Prompt   string                  `json:"prompt"`
	Guidance string                  `json:"guidance"`
	Examples []models.ExampleExcerpt `json:"examples,omitempty"`
}
