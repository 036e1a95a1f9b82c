package activities

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"inkflow/internal/analysis"
	"inkflow/internal/config"
	"inkflow/internal/models"
	"inkflow/internal/storage"
	"inkflow/internal/util"
)

type Activities struct {
	cfg         config.Config
	sampleRepo  *storage.SampleRepo
	profileRepo *storage.ProfileRepo
	analyzer    *analysis.Analyzer
}

func New(cfg config.Config, db *storage.DB) (*Activities, error) {
	analyzer, err := analysis.NewAnalyzer(cfg.AnalysisCacheSize)
	if err != nil {
		return nil, err
	}
	return &Activities{
		cfg:         cfg,
		sampleRepo:  storage.NewSampleRepo(db),
		profileRepo: storage.NewProfileRepo(db),
		analyzer:    analyzer,
	}, nil
}

func (a *Activities) ListSampleFilesActivity(ctx context.Context, in ListSampleFilesInput) (ListSampleFilesOutput, error) {
	_ = ctx
	entries, err := os.ReadDir(in.InputDir)
	if err != nil {
		return ListSampleFilesOutput{}, fmt.Errorf("read input dir: %w", err)
	}
	paths := make([]string, 0)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		if strings.HasSuffix(name, ".txt") || strings.HasSuffix(name, ".pdf") {
			paths = append(paths, filepath.Join(in.InputDir, e.Name()))
		}
	}
	sort.Strings(paths)
	return ListSampleFilesOutput{Paths: paths}, nil
}

func (a *Activities) ComputeSampleIDActivity(ctx context.Context, in ComputeSampleIDInput) (ComputeSampleIDOutput, error) {
	_ = ctx
	f, err := os.Open(in.SamplePath)
	if err != nil {
		return ComputeSampleIDOutput{}, fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()
	id, err := util.SHA256HexFromReader(f)
	if err != nil {
		return ComputeSampleIDOutput{}, fmt.Errorf("hash file: %w", err)
	}
	return ComputeSampleIDOutput{SampleID: id}, nil
}

func (a *Activities) ExtractTextActivity(ctx context.Context, in ExtractTextInput) (ExtractTextOutput, error) {
	_ = ctx
	var text string
	switch strings.ToLower(filepath.Ext(in.SamplePath)) {
	case ".txt":
		b, err := os.ReadFile(in.SamplePath)
		if err != nil {
			return ExtractTextOutput{}, fmt.Errorf("read text file: %w", err)
		}
		text = string(b)
	case ".pdf":
		f, r, err := pdf.Open(in.SamplePath)
		if err != nil {
			return ExtractTextOutput{}, fmt.Errorf("open pdf: %w", err)
		}
		defer f.Close()
		reader, err := r.GetPlainText()
		if err != nil {
			return ExtractTextOutput{}, fmt.Errorf("extract pdf text: %w", err)
		}
		buf := new(strings.Builder)
		if _, err := io.Copy(buf, reader); err != nil {
			return ExtractTextOutput{}, fmt.Errorf("read extracted text: %w", err)
		}
		text = buf.String()
	default:
		return ExtractTextOutput{}, fmt.Errorf("%s: %w", in.SamplePath, util.ErrUnsupportedFormat)
	}

	text = util.SanitizeText(text)
	if text == "" {
		return ExtractTextOutput{}, util.ErrNoExtractableText
	}
	return ExtractTextOutput{Text: text}, nil
}

func (a *Activities) AnalyzeTextActivity(ctx context.Context, in AnalyzeTextInput) (AnalyzeTextOutput, error) {
	_ = ctx
	return AnalyzeTextOutput{
		Analysis: a.analyzer.Analyze(in.Text),
		Excerpt:  analysis.Excerpt(in.Text),
	}, nil
}

func (a *Activities) UpsertSampleActivity(ctx context.Context, in UpsertSampleInput) error {
	return a.sampleRepo.UpsertSample(ctx, in.Sample)
}

func (a *Activities) UpdateSampleStatusActivity(ctx context.Context, in UpdateSampleStatusInput) error {
	err := a.sampleRepo.UpdateSampleStatus(ctx, in.SampleID, in.Status, in.FailReason)
	if errors.Is(err, storage.ErrNotFound) {
		// First status write for a sample creates its row.
		return a.sampleRepo.UpsertSample(ctx, models.Sample{
			SampleID:   in.SampleID,
			ProfileID:  in.ProfileID,
			Filename:   in.Filename,
			Status:     in.Status,
			FailReason: in.FailReason,
		})
	}
	return err
}

func (a *Activities) WriteSampleArtifactsActivity(ctx context.Context, in WriteSampleArtifactsInput) error {
	_ = ctx
	base := filepath.Join(a.cfg.DataOutRoot, in.ProfileID, "samples", in.SampleID)
	if err := util.EnsureDir(base); err != nil {
		return err
	}
	if err := util.WriteJSONAtomic(filepath.Join(base, "metadata.json"), in.Metadata); err != nil {
		return err
	}
	return util.WriteJSONAtomic(filepath.Join(base, "analysis.json"), in.Analysis)
}

func (a *Activities) WriteBatchSummaryActivity(ctx context.Context, in WriteBatchSummaryInput) error {
	_ = ctx
	outPath := filepath.Join(a.cfg.DataOutRoot, in.ProfileID, "batch_summary.json")
	return util.WriteJSONAtomic(outPath, in.Summary)
}

func (a *Activities) LoadProfileAnalysesActivity(ctx context.Context, in LoadProfileAnalysesInput) (LoadProfileAnalysesOutput, error) {
	profile, err := a.profileRepo.GetProfile(ctx, in.ProfileID)
	if err != nil {
		return LoadProfileAnalysesOutput{}, err
	}
	samples, err := a.sampleRepo.ListSamplesByProfile(ctx, in.ProfileID)
	if err != nil {
		return LoadProfileAnalysesOutput{}, err
	}
	out := LoadProfileAnalysesOutput{
		Analyses:          make([]models.SampleAnalysis, 0, len(samples)),
		ComparableAuthors: profile.ComparableAuthors,
		UserNotes:         profile.UserNotes,
	}
	for _, s := range samples {
		if s.Analysis != nil {
			out.Analyses = append(out.Analyses, *s.Analysis)
		}
	}
	return out, nil
}

func (a *Activities) AggregateStyleActivity(ctx context.Context, in AggregateStyleInput) (AggregateStyleOutput, error) {
	_ = ctx
	params, err := analysis.Aggregate(in.Analyses, in.ComparableAuthors)
	if err != nil {
		return AggregateStyleOutput{}, err
	}
	return AggregateStyleOutput{Parameters: params}, nil
}

func (a *Activities) SaveProfileParametersActivity(ctx context.Context, in SaveProfileParametersInput) error {
	return a.profileRepo.UpdateParameters(ctx, in.ProfileID, in.Parameters)
}

func (a *Activities) WriteGuidanceArtifactActivity(ctx context.Context, in WriteGuidanceArtifactInput) (WriteGuidanceArtifactOutput, error) {
	_ = ctx
	guidance := analysis.FormatGuidance(in.Parameters, in.ComparableAuthors, in.UserNotes)
	path := filepath.Join(a.cfg.DataOutRoot, in.ProfileID, "guidance.md")
	if err := util.WriteTextAtomic(path, guidance+"\n"); err != nil {
		return WriteGuidanceArtifactOutput{}, err
	}
	return WriteGuidanceArtifactOutput{Path: path}, nil
}
