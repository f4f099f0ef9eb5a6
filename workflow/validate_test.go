package workflow

import (
	"testing"

	"github.com/AuroraMediaLabs/pipedash/stage"
)

// buildWorkflow assembles a workflow from a sequence of stage kinds,
// bypassing AddStage's rejection rules so invalid shapes can be tested.
func buildWorkflow(kinds ...stage.Type) *Workflow {
	w := New("")
	for i, t := range kinds {
		w.Stages = append(w.Stages, &Stage{
			ID:     "s" + string(rune('1'+i)),
			Type:   t,
			Order:  i + 1,
			Config: stage.DefaultConfig(t),
		})
	}
	return w
}

func videoCtx() *Context { return &Context{InputType: InputVideo} }
func imageCtx() *Context { return &Context{InputType: InputImage} }

func TestValidate_EmptyWorkflow(t *testing.T) {
	r := Validate(New(""), videoCtx())
	if r.Valid {
		t.Fatal("expected empty workflow to be invalid")
	}
	if r.Error != "at least one stage required" {
		t.Errorf("unexpected message: %q", r.Error)
	}
}

func TestValidate_NilWorkflow(t *testing.T) {
	r := Validate(nil, nil)
	if r.Valid {
		t.Fatal("expected nil workflow to be invalid")
	}
}

func TestValidate_TooManyStages(t *testing.T) {
	w := buildWorkflow(
		stage.TypePredict, stage.TypeTransfer, stage.TypeTransfer,
		stage.TypeTransfer, stage.TypeReason,
	)
	r := Validate(w, videoCtx())
	if r.Valid {
		t.Fatal("expected five stages to be invalid")
	}
	if r.Error != "maximum four stages" {
		t.Errorf("unexpected message: %q", r.Error)
	}
}

func TestValidate_ReasonFirstImageInput(t *testing.T) {
	w := buildWorkflow(stage.TypeReason, stage.TypePredict)
	r := Validate(w, imageCtx())
	if r.Valid {
		t.Fatal("expected reason-first to be invalid for image input")
	}
	if r.Error != "first stage cannot be reason for image input" {
		t.Errorf("unexpected message: %q", r.Error)
	}
}

func TestValidate_ReasonFirstVideoInput(t *testing.T) {
	// Reason-first validates pre-existing footage; video input permits it.
	w := buildWorkflow(stage.TypeReason, stage.TypePredict)
	r := Validate(w, videoCtx())
	if !r.Valid {
		t.Fatalf("expected reason-first to be valid for video input, got: %q", r.Error)
	}
}

func TestValidate_FullPipelineAnyInput(t *testing.T) {
	w := buildWorkflow(stage.TypePredict, stage.TypeTransfer, stage.TypeReason)
	for _, vctx := range []*Context{videoCtx(), imageCtx(), nil} {
		r := Validate(w, vctx)
		if !r.Valid {
			t.Errorf("expected valid for ctx %+v, got: %q", vctx, r.Error)
		}
	}
}

func TestValidate_PriorityOrder(t *testing.T) {
	// Five stages starting with reason on image input: the length rule wins.
	w := buildWorkflow(
		stage.TypeReason, stage.TypePredict, stage.TypeTransfer,
		stage.TypeTransfer, stage.TypeReason,
	)
	r := Validate(w, imageCtx())
	if r.Error != "maximum four stages" {
		t.Errorf("expected length rule to win, got: %q", r.Error)
	}
}
