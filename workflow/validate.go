package workflow

import "github.com/AuroraMediaLabs/pipedash/stage"

// InputType identifies the kind of media feeding the pipeline.
type InputType string

// Input kinds.
const (
	InputVideo InputType = "video"
	InputImage InputType = "image"
)

// Context carries validation inputs beyond the workflow itself.
type Context struct {
	// InputType is the media kind of the selected inputs.
	InputType InputType
}

// Result is a validation verdict. Error is a human-readable reason, set only
// when Valid is false.
type Result struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Validate checks the structural workflow invariants that gate submission.
// It is a pure function; the verdict is a value, never an error.
//
// Rules apply in priority order and the first failing rule's message wins:
//  1. at least one stage
//  2. at most MaxStages stages
//  3. a reason stage cannot come first when the input is an image — it needs
//     a video to inspect. Video input permits reason-first: it validates
//     pre-existing footage before any generation. The asymmetry is
//     deliberate.
//
// Per-field range violations never appear here; parameter tuning is the
// backend's concern and only pipeline shape gates submission.
func Validate(w *Workflow, vctx *Context) Result {
	if w == nil || len(w.Stages) == 0 {
		return Result{Error: "at least one stage required"}
	}
	if len(w.Stages) > MaxStages {
		return Result{Error: "maximum four stages"}
	}
	if vctx != nil && vctx.InputType == InputImage && w.Stages[0].Type == stage.TypeReason {
		return Result{Error: "first stage cannot be reason for image input"}
	}
	return Result{Valid: true}
}
