package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"inkflow/internal/activities"
	"inkflow/internal/analysis"
	"inkflow/internal/models"
)

func registerBatchActivities(env *testsuite.TestWorkflowEnvironment) {
	registerSampleActivities(env)
	registerActivityName(env, "ListSampleFilesActivity", func(context.Context, activities.ListSampleFilesInput) (activities.ListSampleFilesOutput, error) {
		return activities.ListSampleFilesOutput{}, nil
	})
	registerActivityName(env, "WriteBatchSummaryActivity", func(context.Context, activities.WriteBatchSummaryInput) error { return nil })
}

func TestBatchIngestWorkflowCompletes(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(BatchIngestWorkflow)
	env.RegisterWorkflow(SampleAnalyzeWorkflow)
	registerBatchActivities(env)

	env.OnActivity("ListSampleFilesActivity", mock.Anything, activities.ListSampleFilesInput{InputDir: "/data/in/p1"}).Return(
		activities.ListSampleFilesOutput{Paths: []string{"/data/in/p1/a.txt", "/data/in/p1/b.txt"}}, nil)
	env.OnActivity("ComputeSampleIDActivity", mock.Anything, mock.Anything).Return(activities.ComputeSampleIDOutput{SampleID: "sample123"}, nil)
	env.OnActivity("UpdateSampleStatusActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("ExtractTextActivity", mock.Anything, mock.Anything).Return(activities.ExtractTextOutput{Text: "She walked home. It was late."}, nil)
	env.OnActivity("AnalyzeTextActivity", mock.Anything, mock.Anything).Return(activities.AnalyzeTextOutput{Excerpt: "She walked home..."}, nil)
	env.OnActivity("UpsertSampleActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("WriteSampleArtifactsActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("WriteBatchSummaryActivity", mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(BatchIngestWorkflow, BatchIngestInput{ProfileID: "p1", InputDir: "/data/in/p1", MaxConcurrentChildren: 2})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "completed", out)
}

func TestBatchIngestWorkflowCountsChildFailures(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(BatchIngestWorkflow)
	env.RegisterWorkflow(SampleAnalyzeWorkflow)
	registerBatchActivities(env)

	env.OnActivity("ListSampleFilesActivity", mock.Anything, mock.Anything).Return(
		activities.ListSampleFilesOutput{Paths: []string{"/data/in/p1/empty.txt"}}, nil)
	env.OnActivity("ComputeSampleIDActivity", mock.Anything, mock.Anything).Return(activities.ComputeSampleIDOutput{SampleID: "sample123"}, nil)
	env.OnActivity("UpdateSampleStatusActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("ExtractTextActivity", mock.Anything, mock.Anything).Return(activities.ExtractTextOutput{}, errors.New("no extractable text found in sample file"))
	env.OnActivity("WriteBatchSummaryActivity", mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(BatchIngestWorkflow, BatchIngestInput{ProfileID: "p1", InputDir: "/data/in/p1"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "completed", out)

	resp, err := env.QueryWorkflow(QueryGetBatchProgress)
	require.NoError(t, err)
	var prog BatchIngestProgress
	require.NoError(t, resp.Get(&prog))
	require.Equal(t, 1, prog.Total)
	require.Equal(t, 1, prog.Failed)
	require.Equal(t, "failed", prog.PerSample["/data/in/p1/empty.txt"])
}

func TestProfileRebuildWorkflow(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(ProfileRebuildWorkflow)
	registerActivityName(env, "LoadProfileAnalysesActivity", func(context.Context, activities.LoadProfileAnalysesInput) (activities.LoadProfileAnalysesOutput, error) {
		return activities.LoadProfileAnalysesOutput{}, nil
	})
	registerActivityName(env, "AggregateStyleActivity", func(context.Context, activities.AggregateStyleInput) (activities.AggregateStyleOutput, error) {
		return activities.AggregateStyleOutput{}, nil
	})
	registerActivityName(env, "SaveProfileParametersActivity", func(context.Context, activities.SaveProfileParametersInput) error { return nil })
	registerActivityName(env, "WriteGuidanceArtifactActivity", func(context.Context, activities.WriteGuidanceArtifactInput) (activities.WriteGuidanceArtifactOutput, error) {
		return activities.WriteGuidanceArtifactOutput{}, nil
	})

	bundle := analysis.AnalyzeText("I love my garden. It is beautiful and I am happy every day.")
	params, err := analysis.Aggregate([]models.SampleAnalysis{bundle}, []string{"Woolf"})
	require.NoError(t, err)

	env.OnActivity("LoadProfileAnalysesActivity", mock.Anything, activities.LoadProfileAnalysesInput{ProfileID: "p1"}).Return(
		activities.LoadProfileAnalysesOutput{Analyses: []models.SampleAnalysis{bundle}, ComparableAuthors: []string{"Woolf"}}, nil)
	env.OnActivity("AggregateStyleActivity", mock.Anything, mock.Anything).Return(activities.AggregateStyleOutput{Parameters: params}, nil)
	env.OnActivity("SaveProfileParametersActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("WriteGuidanceArtifactActivity", mock.Anything, mock.Anything).Return(
		activities.WriteGuidanceArtifactOutput{Path: "/data/out/p1/guidance.md"}, nil)

	env.ExecuteWorkflow(ProfileRebuildWorkflow, ProfileRebuildInput{ProfileID: "p1"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "/data/out/p1/guidance.md", out)
}

func TestProfileRebuildWorkflowEmptyProfileFails(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(ProfileRebuildWorkflow)
	registerActivityName(env, "LoadProfileAnalysesActivity", func(context.Context, activities.LoadProfileAnalysesInput) (activities.LoadProfileAnalysesOutput, error) {
		return activities.LoadProfileAnalysesOutput{}, nil
	})
	registerActivityName(env, "AggregateStyleActivity", func(context.Context, activities.AggregateStyleInput) (activities.AggregateStyleOutput, error) {
		return activities.AggregateStyleOutput{}, nil
	})

	env.OnActivity("LoadProfileAnalysesActivity", mock.Anything, mock.Anything).Return(activities.LoadProfileAnalysesOutput{}, nil)
	env.OnActivity("AggregateStyleActivity", mock.Anything, mock.Anything).Return(activities.AggregateStyleOutput{}, analysis.ErrNoAnalyses)

	env.ExecuteWorkflow(ProfileRebuildWorkflow, ProfileRebuildInput{ProfileID: "p1"})
	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
}
