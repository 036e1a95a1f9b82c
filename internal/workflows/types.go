package workflows

type BatchIngestInput struct {
	ProfileID             string `json:"profile_id"`
	InputDir              string `json:"input_dir"`
	MaxConcurrentChildren int    `json:"max_concurrent_children"`
}

type SampleAnalyzeInput struct {
	ProfileID  string `json:"profile_id"`
	SamplePath string `json:"sample_path"`
}

type ProfileRebuildInput struct {
	ProfileID string `json:"profile_id"`
}

type SampleStatus struct {
	SampleID    string            `json:"sample_id"`
	SamplePath  string            `json:"sample_path"`
	CurrentStep string            `json:"current_step"`
	Status      string            `json:"status"`
	FailReason  string            `json:"fail_reason,omitempty"`
	Steps       map[string]string `json:"steps"`
}

type BatchIngestProgress struct {
	ProfileID     string            `json:"profile_id"`
	Total         int               `json:"total"`
	Done          int               `json:"done"`
	Failed        int               `json:"failed"`
	PerSample     map[string]string `json:"per_sample_status"`
	ChildWorkflow map[string]string `json:"child_workflow_ids,omitempty"`
}
