package workflows

import (
	"strings"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"inkflow/internal/activities"
	"inkflow/internal/models"
)

const (
	QueryGetSampleStatus   = "GetSampleStatus"
	QueryGetBatchProgress  = "GetBatchProgress"
	BatchWorkflowIDPrefix  = "ingest-"
	SampleWorkflowIDPrefix = "sample-"
)

func BatchIngestWorkflow(ctx workflow.Context, input BatchIngestInput) (string, error) {
	progress := BatchIngestProgress{
		ProfileID:     input.ProfileID,
		PerSample:     map[string]string{},
		ChildWorkflow: map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetBatchProgress, func() (BatchIngestProgress, error) {
		return progress, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var listOut activities.ListSampleFilesOutput
	if err := workflow.ExecuteActivity(ctx, "ListSampleFilesActivity", activities.ListSampleFilesInput{InputDir: input.InputDir}).Get(ctx, &listOut); err != nil {
		return "", err
	}
	paths := listOut.Paths
	progress.Total = len(paths)
	maxChildren := input.MaxConcurrentChildren
	if maxChildren <= 0 {
		maxChildren = 3
	}

	for i := 0; i < len(paths); i += maxChildren {
		end := i + maxChildren
		if end > len(paths) {
			end = len(paths)
		}
		futures := make([]workflow.ChildWorkflowFuture, 0, end-i)
		childPaths := make([]string, 0, end-i)
		for _, path := range paths[i:end] {
			progress.PerSample[path] = "processing"
			workflowID := SampleWorkflowIDPrefix + sanitizeID(input.ProfileID) + "-" + sanitizeID(pathBase(path))
			cwo := workflow.ChildWorkflowOptions{WorkflowID: workflowID}
			childCtx := workflow.WithChildOptions(ctx, cwo)
			f := workflow.ExecuteChildWorkflow(childCtx, SampleAnalyzeWorkflow, SampleAnalyzeInput{
				ProfileID:  input.ProfileID,
				SamplePath: path,
			})
			futures = append(futures, f)
			childPaths = append(childPaths, path)
			progress.ChildWorkflow[path] = workflowID
		}

		for idx, f := range futures {
			var childStatus string
			err := f.Get(ctx, &childStatus)
			path := childPaths[idx]
			if err != nil {
				progress.Failed++
				progress.PerSample[path] = "failed"
				continue
			}
			if childStatus == "failed" {
				progress.Failed++
			}
			progress.Done++
			progress.PerSample[path] = childStatus
		}
	}

	_ = workflow.ExecuteActivity(ctx, "WriteBatchSummaryActivity", activities.WriteBatchSummaryInput{
		ProfileID: input.ProfileID,
		Summary: map[string]any{
			"profile_id":        input.ProfileID,
			"total":             progress.Total,
			"done":              progress.Done,
			"failed":            progress.Failed,
			"per_sample_status": progress.PerSample,
			"generated_at":      workflow.Now(ctx),
		},
	}).Get(ctx, nil)

	return "completed", nil
}

func SampleAnalyzeWorkflow(ctx workflow.Context, input SampleAnalyzeInput) (string, error) {
	status := SampleStatus{
		SamplePath:  input.SamplePath,
		CurrentStep: "init",
		Status:      "processing",
		Steps:       map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetSampleStatus, func() (SampleStatus, error) {
		return status, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    2,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	filename := pathBase(input.SamplePath)

	status.CurrentStep = "compute_sample_id"
	status.Steps[status.CurrentStep] = "processing"
	var computeOut activities.ComputeSampleIDOutput
	if err := workflow.ExecuteActivity(ctx, "ComputeSampleIDActivity", activities.ComputeSampleIDInput{SamplePath: input.SamplePath}).Get(ctx, &computeOut); err != nil {
		return "", err
	}
	status.SampleID = computeOut.SampleID
	status.Steps[status.CurrentStep] = "done"

	_ = workflow.ExecuteActivity(ctx, "UpdateSampleStatusActivity", activities.UpdateSampleStatusInput{
		SampleID: computeOut.SampleID, ProfileID: input.ProfileID, Filename: filename, Status: "processing",
	}).Get(ctx, nil)

	status.CurrentStep = "extract_text"
	status.Steps[status.CurrentStep] = "processing"
	var textOut activities.ExtractTextOutput
	if err := workflow.ExecuteActivity(ctx, "ExtractTextActivity", activities.ExtractTextInput{SamplePath: input.SamplePath}).Get(ctx, &textOut); err != nil {
		if isNoTextError(err) || isUnsupportedFormatError(err) {
			status.Status = "failed"
			status.FailReason = "no extractable text found in sample file"
			status.Steps[status.CurrentStep] = "failed"
			_ = workflow.ExecuteActivity(ctx, "UpdateSampleStatusActivity", activities.UpdateSampleStatusInput{
				SampleID: computeOut.SampleID, ProfileID: input.ProfileID, Filename: filename, Status: "failed", FailReason: status.FailReason,
			}).Get(ctx, nil)
			return status.Status, nil
		}
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "analyze_text"
	status.Steps[status.CurrentStep] = "processing"
	var analyzeOut activities.AnalyzeTextOutput
	if err := workflow.ExecuteActivity(ctx, "AnalyzeTextActivity", activities.AnalyzeTextInput{Text: textOut.Text}).Get(ctx, &analyzeOut); err != nil {
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "store_sample"
	status.Steps[status.CurrentStep] = "processing"
	analysisCopy := analyzeOut.Analysis
	if err := workflow.ExecuteActivity(ctx, "UpsertSampleActivity", activities.UpsertSampleInput{Sample: models.Sample{
		SampleID:  computeOut.SampleID,
		ProfileID: input.ProfileID,
		Filename:  filename,
		Text:      textOut.Text,
		Excerpt:   analyzeOut.Excerpt,
		Analysis:  &analysisCopy,
		Status:    "analyzed",
	}}).Get(ctx, nil); err != nil {
		if isInvalidTextEncodingError(err) {
			status.Status = "failed"
			status.FailReason = "sample contains invalid text encoding after extraction"
			status.Steps[status.CurrentStep] = "failed"
			_ = workflow.ExecuteActivity(ctx, "UpdateSampleStatusActivity", activities.UpdateSampleStatusInput{
				SampleID: computeOut.SampleID, ProfileID: input.ProfileID, Filename: filename, Status: "failed", FailReason: status.FailReason,
			}).Get(ctx, nil)
			return status.Status, nil
		}
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "write_artifacts"
	status.Steps[status.CurrentStep] = "processing"
	if err := workflow.ExecuteActivity(ctx, "WriteSampleArtifactsActivity", activities.WriteSampleArtifactsInput{
		ProfileID: input.ProfileID,
		SampleID:  computeOut.SampleID,
		Metadata: map[string]any{
			"sample_id":    computeOut.SampleID,
			"profile_id":   input.ProfileID,
			"filename":     filename,
			"excerpt":      analyzeOut.Excerpt,
			"generated_at": workflow.Now(ctx),
		},
		Analysis: analyzeOut.Analysis,
	}).Get(ctx, nil); err != nil {
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"
	status.CurrentStep = "done"
	status.Status = "analyzed"
	return status.Status, nil
}

// ProfileRebuildWorkflow recomputes a profile's composite parameters from its
// current member analyses and refreshes the guidance artifact.
func ProfileRebuildWorkflow(ctx workflow.Context, input ProfileRebuildInput) (string, error) {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    2,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var loaded activities.LoadProfileAnalysesOutput
	if err := workflow.ExecuteActivity(ctx, "LoadProfileAnalysesActivity", activities.LoadProfileAnalysesInput{ProfileID: input.ProfileID}).Get(ctx, &loaded); err != nil {
		return "", err
	}

	var aggOut activities.AggregateStyleOutput
	if err := workflow.ExecuteActivity(ctx, "AggregateStyleActivity", activities.AggregateStyleInput{
		Analyses:          loaded.Analyses,
		ComparableAuthors: loaded.ComparableAuthors,
	}).Get(ctx, &aggOut); err != nil {
		// Aggregation over zero analyses is rejected, not defaulted.
		return "", err
	}

	if err := workflow.ExecuteActivity(ctx, "SaveProfileParametersActivity", activities.SaveProfileParametersInput{
		ProfileID:  input.ProfileID,
		Parameters: aggOut.Parameters,
	}).Get(ctx, nil); err != nil {
		return "", err
	}

	var artifactOut activities.WriteGuidanceArtifactOutput
	if err := workflow.ExecuteActivity(ctx, "WriteGuidanceArtifactActivity", activities.WriteGuidanceArtifactInput{
		ProfileID:         input.ProfileID,
		Parameters:        aggOut.Parameters,
		ComparableAuthors: loaded.ComparableAuthors,
		UserNotes:         loaded.UserNotes,
	}).Get(ctx, &artifactOut); err != nil {
		return "", err
	}
	return artifactOut.Path, nil
}

func isNoTextError(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "no extractable text")
}

func isUnsupportedFormatError(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "unsupported sample file format")
}

func isInvalidTextEncodingError(err error) bool {
	e := strings.ToLower(err.Error())
	return strings.Contains(e, "invalid byte sequence") || strings.Contains(e, "sqlstate 22021")
}

func pathBase(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) == 0 {
		return path
	}
	return parts[len(parts)-1]
}

func sanitizeID(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.ReplaceAll(s, "/", "-")
	return s
}
