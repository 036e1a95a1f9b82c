package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.ListSampleFilesActivity)
	w.RegisterActivity(a.ComputeSampleIDActivity)
	w.RegisterActivity(a.ExtractTextActivity)
	w.RegisterActivity(a.AnalyzeTextActivity)
	w.RegisterActivity(a.UpsertSampleActivity)
	w.RegisterActivity(a.UpdateSampleStatusActivity)
	w.RegisterActivity(a.WriteSampleArtifactsActivity)
	w.RegisterActivity(a.WriteBatchSummaryActivity)
	w.RegisterActivity(a.LoadProfileAnalysesActivity)
	w.RegisterActivity(a.AggregateStyleActivity)
	w.RegisterActivity(a.SaveProfileParametersActivity)
	w.RegisterActivity(a.WriteGuidanceArtifactActivity)
}
