package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkflow/internal/analysis"
	"inkflow/internal/models"
	"inkflow/internal/storage"
	"inkflow/internal/util"
)

// ValidationError marks caller mistakes (missing text, empty sample set).
// They are reported with their message, never silently defaulted.
type ValidationError struct {
	Msg string
	Err error
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return e.Err }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

type SampleStore interface {
	UpsertSample(ctx context.Context, s models.Sample) error
	ListSamplesByIDs(ctx context.Context, sampleIDs []string) ([]models.Sample, error)
	ListSamplesByProfile(ctx context.Context, profileID string) ([]models.Sample, error)
	SetProfileMembership(ctx context.Context, profileID string, sampleIDs []string) error
}

type ProfileStore interface {
	UpsertProfile(ctx context.Context, p models.StyleProfile) error
	GetProfile(ctx context.Context, profileID string) (models.StyleProfile, error)
}

type ExampleSearcher interface {
	SearchSamples(ctx context.Context, profileID, query string, topK int) ([]models.ExampleExcerpt, error)
}

type Auditor interface {
	Insert(ctx context.Context, rec storage.ToolCallRecord) error
}

// Toolset binds the pure analysis engine to persistence collaborators.
// Collaborators are injected; the engine itself carries no storage handle.
type Toolset struct {
	analyzer *analysis.Analyzer
	samples  SampleStore
	profiles ProfileStore
	searcher ExampleSearcher
	audit    Auditor
	topK     int
}

func New(analyzer *analysis.Analyzer, samples SampleStore, profiles ProfileStore, searcher ExampleSearcher, audit Auditor, exampleTopK int) *Toolset {
	if exampleTopK <= 0 {
		exampleTopK = 3
	}
	return &Toolset{
		analyzer: analyzer,
		samples:  samples,
		profiles: profiles,
		searcher: searcher,
		audit:    audit,
		topK:     exampleTopK,
	}
}

// AnalyzeSample turns raw text into a metric bundle, optionally persisting it
// as a sample record.
func (t *Toolset) AnalyzeSample(ctx context.Context, req AnalyzeSampleRequest) (AnalyzeSampleResponse, error) {
	text := util.SanitizeText(req.Text)
	if text == "" {
		err := &ValidationError{Msg: analysis.ErrEmptyText.Error(), Err: analysis.ErrEmptyText}
		t.record(ctx, "analyze_sample", req.ProfileID, "", err)
		return AnalyzeSampleResponse{}, err
	}

	bundle := t.analyzer.Analyze(text)
	resp := AnalyzeSampleResponse{
		Excerpt:  analysis.Excerpt(text),
		Analysis: bundle,
	}

	if req.Store {
		sample := models.Sample{
			SampleID:  uuid.NewString(),
			ProfileID: req.ProfileID,
			Title:     strings.TrimSpace(req.Title),
			Text:      text,
			Excerpt:   resp.Excerpt,
			Analysis:  &bundle,
			Status:    "analyzed",
		}
		if err := t.samples.UpsertSample(ctx, sample); err != nil {
			t.record(ctx, "analyze_sample", req.ProfileID, sample.SampleID, err)
			return AnalyzeSampleResponse{}, fmt.Errorf("store analyzed sample: %w", err)
		}
		resp.SampleID = sample.SampleID
	}

	t.record(ctx, "analyze_sample", req.ProfileID, resp.SampleID, nil)
	return resp, nil
}

// GetProfile fetches a profile, optionally rendering guidance and collecting
// example excerpts from its member samples.
func (t *Toolset) GetProfile(ctx context.Context, req GetProfileRequest) (GetProfileResponse, error) {
	if strings.TrimSpace(req.ProfileID) == "" {
		err := validationf("profile_id is required")
		t.record(ctx, "get_profile", "", "", err)
		return GetProfileResponse{}, err
	}

	profile, err := t.profiles.GetProfile(ctx, req.ProfileID)
	if err != nil {
		t.record(ctx, "get_profile", req.ProfileID, "", err)
		return GetProfileResponse{}, err
	}

	resp := GetProfileResponse{Profile: profile}
	if req.IncludeGuidance && profile.Parameters != nil {
		resp.Guidance = analysis.FormatGuidance(*profile.Parameters, profile.ComparableAuthors, profile.UserNotes)
	}
	if req.IncludeExamples {
		examples, err := t.exampleExcerpts(ctx, profile, "")
		if err != nil {
			t.record(ctx, "get_profile", req.ProfileID, "", err)
			return GetProfileResponse{}, err
		}
		resp.Examples = examples
	}

	t.record(ctx, "get_profile", req.ProfileID, "", nil)
	return resp, nil
}

// SaveProfile creates or updates a profile from a set of already-analyzed
// samples, recomputing the composite parameters wholesale.
func (t *Toolset) SaveProfile(ctx context.Context, req SaveProfileRequest) (SaveProfileResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		err := validationf("profile name is required")
		t.record(ctx, "save_profile", req.ProfileID, "", err)
		return SaveProfileResponse{}, err
	}
	if len(req.SampleIDs) == 0 {
		err := validationf("at least one analyzed sample is required")
		t.record(ctx, "save_profile", req.ProfileID, "", err)
		return SaveProfileResponse{}, err
	}

	samples, err := t.samples.ListSamplesByIDs(ctx, req.SampleIDs)
	if err != nil {
		t.record(ctx, "save_profile", req.ProfileID, "", err)
		return SaveProfileResponse{}, err
	}
	byID := make(map[string]models.Sample, len(samples))
	for _, s := range samples {
		byID[s.SampleID] = s
	}
	analyses := make([]models.SampleAnalysis, 0, len(req.SampleIDs))
	for _, id := range req.SampleIDs {
		s, ok := byID[id]
		if !ok {
			err := fmt.Errorf("sample %s: %w", id, storage.ErrNotFound)
			t.record(ctx, "save_profile", req.ProfileID, id, err)
			return SaveProfileResponse{}, err
		}
		if s.Analysis == nil {
			err := validationf("sample %s has no analysis", id)
			t.record(ctx, "save_profile", req.ProfileID, id, err)
			return SaveProfileResponse{}, err
		}
		analyses = append(analyses, *s.Analysis)
	}

	params, err := analysis.Aggregate(analyses, req.ComparableAuthors)
	if err != nil {
		t.record(ctx, "save_profile", req.ProfileID, "", err)
		return SaveProfileResponse{}, err
	}

	profileID := strings.TrimSpace(req.ProfileID)
	if profileID == "" {
		profileID = uuid.NewString()
	}
	profile := models.StyleProfile{
		ProfileID:          profileID,
		Name:               strings.TrimSpace(req.Name),
		Description:        strings.TrimSpace(req.Description),
		Parameters:         &params,
		Genres:             req.Genres,
		ComparableAuthors:  params.ComparableAuthors,
		UserNotes:          req.UserNotes,
		SampleIDs:          req.SampleIDs,
		RepresentativeText: req.RepresentativeText,
	}
	if err := t.profiles.UpsertProfile(ctx, profile); err != nil {
		t.record(ctx, "save_profile", profileID, "", err)
		return SaveProfileResponse{}, err
	}
	if err := t.samples.SetProfileMembership(ctx, profileID, req.SampleIDs); err != nil {
		t.record(ctx, "save_profile", profileID, "", err)
		return SaveProfileResponse{}, err
	}

	t.record(ctx, "save_profile", profileID, "", nil)
	return SaveProfileResponse{Profile: profile}, nil
}

// WritingPrompt packages a topic with the profile's guidance and exemplar
// excerpts so a caller can draft new text in the profile's style.
func (t *Toolset) WritingPrompt(ctx context.Context, req WritingPromptRequest) (WritingPromptResponse, error) {
	if strings.TrimSpace(req.ProfileID) == "" {
		err := validationf("profile_id is required")
		t.record(ctx, "writing_prompt", "", "", err)
		return WritingPromptResponse{}, err
	}

	profile, err := t.profiles.GetProfile(ctx, req.ProfileID)
	if err != nil {
		t.record(ctx, "writing_prompt", req.ProfileID, "", err)
		return WritingPromptResponse{}, err
	}
	if profile.Parameters == nil {
		err := validationf("profile %s has no aggregated style parameters yet", req.ProfileID)
		t.record(ctx, "writing_prompt", req.ProfileID, "", err)
		return WritingPromptResponse{}, err
	}

	guidance := analysis.FormatGuidance(*profile.Parameters, profile.ComparableAuthors, profile.UserNotes)
	examples, err := t.exampleExcerpts(ctx, profile, req.Topic)
	if err != nil {
		t.record(ctx, "writing_prompt", req.ProfileID, "", err)
		return WritingPromptResponse{}, err
	}

	var b strings.Builder
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		b.WriteString("Write a new piece in the style described below.\n\n")
	} else {
		fmt.Fprintf(&b, "Write about %q in the style described below.\n\n", topic)
	}
	b.WriteString("# Style Guidance\n\n")
	b.WriteString(guidance)
	if len(examples) > 0 {
		b.WriteString("\n\n# Examples\n")
		for _, e := range examples {
			b.WriteString("\n> " + e.Snippet + "\n")
		}
	}

	t.record(ctx, "writing_prompt", req.ProfileID, "", nil)
	return WritingPromptResponse{Prompt: b.String(), Guidance: guidance, Examples: examples}, nil
}

// exampleExcerpts pulls topic-relevant excerpts from member samples, falling
// back to the profile's stored representative texts.
func (t *Toolset) exampleExcerpts(ctx context.Context, profile models.StyleProfile, topic string) ([]models.ExampleExcerpt, error) {
	if t.searcher != nil {
		examples, err := t.searcher.SearchSamples(ctx, profile.ProfileID, topic, t.topK)
		if err != nil {
			return nil, fmt.Errorf("search member samples: %w", err)
		}
		if len(examples) > 0 {
			return examples, nil
		}
	}
	out := make([]models.ExampleExcerpt, 0, len(profile.RepresentativeText))
	for _, text := range profile.RepresentativeText {
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, models.ExampleExcerpt{Snippet: analysis.Excerpt(text)})
		if len(out) == t.topK {
			break
		}
	}
	return out, nil
}

// record audits a tool invocation; audit failures never mask the call result.
func (t *Toolset) record(ctx context.Context, tool, profileID, sampleID string, callErr error) {
	if t.audit == nil {
		return
	}
	rec := storage.ToolCallRecord{
		Tool:      tool,
		ProfileID: profileID,
		SampleID:  sampleID,
		Status:    "ok",
	}
	if callErr != nil {
		rec.Status = "failed"
		rec.ErrorKind = errorKind(callErr)
	}
	_ = t.audit.Insert(ctx, rec)
}

func errorKind(err error) string {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return "validation"
	case errors.Is(err, analysis.ErrNoAnalyses):
		return "empty_input"
	case errors.Is(err, storage.ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
