package orchestrator

import "time"

// Config contains all the parameters needed for a remediation run.
type Config struct {
	StackName         string        // Name of the managed stack
	AutoAccept        bool          // Accept default actions without a plan
	CheckpointDir     string        // Directory for pre-mutation checkpoints
	DetectionAttempts int           // Drift detection polling attempts (0 = default)
	PollInterval      time.Duration // Polling interval for all waits (0 = default)
	UpdateTimeout     time.Duration // Wall-clock budget per stack update (0 = default)
	ChangeSetTimeout  time.Duration // Wall-clock budget for change-set creation (0 = default)
}

// Outcome statuses recorded per resource at the end of a run.
const (
	OutcomeRemediated = "remediated"
	OutcomeRemoved    = "removed"
	OutcomeSkipped    = "skipped"
)

// ResourceOutcome records what happened to one drifted resource.
type ResourceOutcome struct {
	LogicalID    string `json:"logical_id"`
	ResourceType string `json:"resource_type"`
	Action       string `json:"action"`
	Status       string `json:"status"`
	Detail       string `json:"detail,omitempty"`
}

// Result is the aggregate outcome of a remediation run.
type Result struct {
	StackName      string            `json:"stack_name"`
	RunID          string            `json:"run_id"`
	Drifted        bool              `json:"drifted"`
	FinalStage     Stage             `json:"-"`
	Stage          string            `json:"stage"`
	CheckpointPath string            `json:"checkpoint_path,omitempty"`
	Outcomes       []ResourceOutcome `json:"outcomes,omitempty"`
	Skipped        []ResourceOutcome `json:"skipped,omitempty"`
	Warnings       []string          `json:"warnings,omitempty"`
}

// HasSkipped reports whether any drifted resource was left unremediated.
func (r *Result) HasSkipped() bool {
	return len(r.Skipped) > 0
}
