package main

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/AuroraMediaLabs/pipedash/backend"
	"github.com/AuroraMediaLabs/pipedash/workflow"
)

var (
	submitProfile   string
	submitName      string
	submitInputType string
	submitWatch     bool
)

var submitCmd = &cobra.Command{
	Use:   "submit <input>...",
	Short: "Submit a job built from a saved profile",
	Long: `Builds a workflow from a profile, merges sidecar prompts discovered next to
the selected inputs into its predict stage, validates it, and submits it as a
job.

Examples:
  pipedash submit --profile builtin-quick-predict /data/clips/a.mp4
  pipedash submit --profile my-profile-id --watch /data/clips/*.mp4`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringVar(&submitProfile, "profile", "", "Profile id to build the workflow from (required)")
	submitCmd.Flags().StringVar(&submitName, "name", "", "Job name")
	submitCmd.Flags().StringVar(&submitInputType, "input-type", "video", "Input media type: video or image")
	submitCmd.Flags().BoolVar(&submitWatch, "watch", false, "Follow job progress after submission")
	submitCmd.MarkFlagRequired("profile")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := client.Health(ctx); err != nil {
		return fmt.Errorf("backend is unreachable at %s: %w", client.BaseURL(), err)
	}

	w, err := profileStore.Apply(ctx, submitProfile)
	if err != nil {
		return err
	}

	selection, err := resolveSelection(cmd, args)
	if err != nil {
		return err
	}
	workflow.DerivePrompts(w, selection)

	inputType := workflow.InputType(submitInputType)
	req, err := backend.BuildCreateJobRequest(submitName, inputType, w, selection)
	if err != nil {
		return err
	}

	job, err := client.CreateJob(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("submitted job %s (%d stages, %d inputs)\n", job.ID, len(req.Workflow.Stages), len(req.Inputs))

	if submitWatch {
		return followProgress(ctx, job.ID)
	}
	return nil
}

// resolveSelection turns input path arguments into selected inputs, browsing
// each parent folder once to pick up sidecar prompt files.
func resolveSelection(cmd *cobra.Command, paths []string) ([]workflow.SelectedInput, error) {
	prompts := make(map[string][]string)
	browsed := make(map[string]bool)

	for _, p := range paths {
		dir := path.Dir(p)
		if browsed[dir] {
			continue
		}
		browsed[dir] = true
		resp, err := client.Browse(cmd.Context(), &backend.BrowseRequest{
			Path:      dir,
			InputType: submitInputType,
		})
		if err != nil {
			// Sidecar discovery is best-effort; submission proceeds without.
			continue
		}
		for _, v := range resp.Videos {
			if v.PromptFile != nil {
				prompts[v.Path] = v.PromptFile.Prompts
			}
		}
	}

	selection := make([]workflow.SelectedInput, 0, len(paths))
	for _, p := range paths {
		selection = append(selection, workflow.SelectedInput{
			Path:    p,
			Prompts: prompts[p],
		})
	}
	return selection, nil
}
