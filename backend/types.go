// Package backend implements the client side of the job/progress contract
// with the inference backend.
//
// The core translates a validated workflow plus selected inputs into a job
// creation request, then follows the job through either a server-push
// progress stream or interval polling until a terminal state. Transport
// shapes here mirror the backend's REST surface; host and auth are the
// caller's concern.
package backend

import (
	"github.com/AuroraMediaLabs/pipedash/stage"
	"github.com/AuroraMediaLabs/pipedash/workflow"
)

// JobStatus is the lifecycle state of a submitted job.
type JobStatus string

// Job statuses.
const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
	JobCancelled JobStatus = "cancelled"
)

// Terminal reports whether the status is final. Once terminal, no delivery
// mechanism needs to stay active.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobCompleted, JobFailed, JobCancelled:
		return true
	}
	return false
}

// StageResult is the backend's per-stage progress report. It is associated
// back to the workflow stage that produced it by matching StageID, falling
// back to type and order for jobs whose live stage list is unavailable.
type StageResult struct {
	StageID       string     `json:"stage_id,omitempty"`
	StageType     stage.Type `json:"stage_type"`
	Order         int        `json:"order"`
	InputCount    int        `json:"input_count"`
	OutputCount   int        `json:"output_count"`
	FilteredCount *int       `json:"filtered_count,omitempty"`
	Status        string     `json:"status"`
	Duration      float64    `json:"duration,omitempty"` // seconds
}

// Job is the backend's job record.
type Job struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	Status     JobStatus `json:"status"`
	Mode       string    `json:"mode,omitempty"`
	VideoCount int       `json:"video_count"`
	CreatedAt  string    `json:"created_at,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// VariantResult is one scored output of a job.
type VariantResult struct {
	InputPath    string   `json:"input_path"`
	OutputPath   string   `json:"output_path"`
	Prompt       string   `json:"prompt,omitempty"`
	PhysicsScore *float64 `json:"physics_score,omitempty"`
	Passed       *bool    `json:"passed,omitempty"`
}

// JobDetail is the full get-job response: the job plus whatever result data
// the backend has. Workflow is present only for live jobs; historical views
// reconstruct stages without ids.
type JobDetail struct {
	Job          Job                `json:"job"`
	Results      []VariantResult    `json:"results,omitempty"`
	StageResults []StageResult      `json:"stage_results,omitempty"`
	Workflow     *workflow.Workflow `json:"workflow,omitempty"`
}

// ProgressState is the backend's live progress snapshot.
type ProgressState struct {
	Active          bool          `json:"is_active"`
	JobID           string        `json:"job_id,omitempty"`
	OverallPercent  float64       `json:"overall_percent"`
	CurrentIndex    int           `json:"current_index"`
	TotalVideos     int           `json:"total_videos"`
	CompletedVideos int           `json:"completed_videos"`
	CurrentFile     string        `json:"current_file,omitempty"`
	CurrentProgress float64       `json:"current_progress"` // in-flight video's fractional stage completion, 0..1
	FileStatuses    map[string]string `json:"file_statuses,omitempty"`
	StageResults    []StageResult `json:"stage_results,omitempty"`
	ElapsedSeconds  float64       `json:"elapsed_seconds"`
	EstimatedETA    *float64      `json:"estimated_eta,omitempty"` // backend-supplied, seconds
	Status          JobStatus     `json:"status,omitempty"`
}

// BrowseRequest asks the backend to list media under a path.
type BrowseRequest struct {
	Path       string   `json:"path"`
	InputType  string   `json:"input_type"`
	Extensions []string `json:"extensions,omitempty"`
}

// PromptFile is a sidecar prompt list found next to an input file during
// browsing, one prompt per line in the source file.
type PromptFile struct {
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	Prompts []string `json:"prompts"`
}

// VideoEntry is one browsable media file.
type VideoEntry struct {
	Name       string      `json:"name"`
	Path       string      `json:"path"`
	Size       int64       `json:"size,omitempty"`
	PromptFile *PromptFile `json:"promptFile,omitempty"`
}

// BrowseResponse lists the media and subfolders under a path.
type BrowseResponse struct {
	Path    string       `json:"path"`
	Videos  []VideoEntry `json:"videos"`
	Folders []string     `json:"folders"`
}

// JobInput is one selected input in a job creation request.
type JobInput struct {
	Path    string   `json:"path"`
	Prompts []string `json:"prompts,omitempty"`
}

// WorkflowPayload is the serialized workflow inside a job creation request.
type WorkflowPayload struct {
	Stages []*workflow.Stage `json:"stages"`
	Name   string            `json:"name,omitempty"`
}

// CreateJobRequest is the job creation body.
type CreateJobRequest struct {
	Name       string          `json:"name,omitempty"`
	InputType  string          `json:"input_type"`
	InputPaths []string        `json:"input_paths"`
	Inputs     []JobInput      `json:"inputs"`
	Workflow   WorkflowPayload `json:"workflow"`
}

// createJobResponse wraps the created job.
type createJobResponse struct {
	Job Job `json:"job"`
}

// StageDefaults is the persisted default parameter set for new stages.
type StageDefaults struct {
	Predict  *stage.PredictParams  `json:"predict,omitempty"`
	Transfer *stage.TransferParams `json:"transfer,omitempty"`
	Reason   *stage.ReasonParams   `json:"reason,omitempty"`
}

// Settings is the backend's persisted configuration: stage defaults plus
// output and API settings. Stage defaults loaded here seed new stages in
// the editor.
type Settings struct {
	Defaults  StageDefaults `json:"defaults"`
	OutputDir string        `json:"output_dir,omitempty"`
	APIKey    string        `json:"api_key,omitempty"`
}

// DefaultConfigFor returns the settings-seeded default for a stage kind,
// falling back to the package defaults when settings carry none.
func (s *Settings) DefaultConfigFor(t stage.Type) stage.Config {
	if s != nil {
		switch t {
		case stage.TypePredict:
			if s.Defaults.Predict != nil {
				return s.Defaults.Predict.Clone()
			}
		case stage.TypeTransfer:
			if s.Defaults.Transfer != nil {
				return s.Defaults.Transfer.Clone()
			}
		case stage.TypeReason:
			if s.Defaults.Reason != nil {
				return s.Defaults.Reason.Clone()
			}
		}
	}
	return stage.DefaultConfig(t)
}
