package backend

import (
	"fmt"

	"github.com/AuroraMediaLabs/pipedash/workflow"
)

// BuildCreateJobRequest serializes a validated workflow plus the selected
// inputs into the job creation body. Every stage config is deep-copied: the
// job may be edited and resubmitted after submission, so the payload must
// share no mutable state with the live editor.
func BuildCreateJobRequest(name string, inputType workflow.InputType, w *workflow.Workflow, selection []workflow.SelectedInput) (*CreateJobRequest, error) {
	if r := workflow.Validate(w, &workflow.Context{InputType: inputType}); !r.Valid {
		return nil, fmt.Errorf("workflow is not submittable: %s", r.Error)
	}
	if len(selection) == 0 {
		return nil, fmt.Errorf("at least one input required")
	}

	req := &CreateJobRequest{
		Name:      name,
		InputType: string(inputType),
		Workflow: WorkflowPayload{
			Name: w.Name,
		},
	}
	for _, in := range selection {
		req.InputPaths = append(req.InputPaths, in.Path)
		ji := JobInput{Path: in.Path}
		if len(in.Prompts) > 0 {
			ji.Prompts = append([]string(nil), in.Prompts...)
		}
		req.Inputs = append(req.Inputs, ji)
	}
	for _, s := range w.Stages {
		req.Workflow.Stages = append(req.Workflow.Stages, s.Clone())
	}
	return req, nil
}
