package workflow

import (
	"slices"

	"github.com/AuroraMediaLabs/pipedash/stage"
)

// SelectedInput is one input file in the current selection, with the prompt
// list from its sidecar file if one was found during browsing.
type SelectedInput struct {
	Path    string   `json:"path"`
	Prompts []string `json:"prompts,omitempty"`
}

// DerivePrompts synchronizes the workflow's predict stage prompts with the
// sidecar prompt files of the current input selection. It reports whether
// the workflow was modified.
//
// The merge is order-sensitive and last-selection-wins: every selected file
// with a non-empty sidecar list contributes its prompts in file order, files
// in selection order, concatenated flat. If no selected file carries
// prompts, or the workflow has no predict stage, nothing happens — the rule
// never creates stages and never clears manual edits on its own.
//
// The derivation is idempotent: the concatenation is compared structurally
// against the current prompts before writing, so re-running with the same
// selection is a no-op. Callers wire this as a reaction to selection changes;
// the compare-before-write is what keeps that reaction from re-firing
// itself indefinitely.
func DerivePrompts(w *Workflow, selection []SelectedInput) bool {
	var merged []string
	for _, in := range selection {
		if len(in.Prompts) == 0 {
			continue
		}
		merged = append(merged, in.Prompts...)
	}
	if len(merged) == 0 {
		return false
	}

	s := w.FirstOfType(stage.TypePredict)
	if s == nil {
		return false
	}
	params, ok := s.Config.(*stage.PredictParams)
	if !ok {
		return false
	}
	if slices.Equal(params.Prompts, merged) {
		return false
	}

	next := params.Clone().(*stage.PredictParams)
	next.Prompts = merged
	s.Config = next
	return true
}
