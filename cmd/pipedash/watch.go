package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AuroraMediaLabs/pipedash/backend"
)

var watchCmd = &cobra.Command{
	Use:   "watch <job-id>",
	Short: "Follow a job's progress until it finishes",
	Long: `Subscribes to the backend's progress stream, falling back to polling when
the stream is unavailable, and prints progress lines until the job reaches a
terminal state. Per-stage results are printed at the end.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return followProgress(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// followProgress tracks a job to completion, printing progress updates and a
// final per-stage summary. A health watchdog runs alongside the tracker so a
// backend outage shows up as a warning rather than silence.
func followProgress(ctx context.Context, jobID string) error {
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tracker := backend.NewTracker(client, backend.WithPollInterval(cfg.PollInterval()))
	updates := tracker.Start(watchCtx, jobID)
	defer tracker.Stop()

	g, gctx := errgroup.WithContext(watchCtx)

	g.Go(func() error {
		// Cancelling here also stops the health watchdog.
		defer cancel()
		for state := range updates {
			printProgress(state)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := client.Health(gctx); err != nil && gctx.Err() == nil {
					fmt.Println("warning: backend unreachable, retrying")
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}

	return printJobSummary(context.WithoutCancel(ctx), jobID)
}

func printProgress(state *backend.ProgressState) {
	eta := backend.EstimateETA(state)
	fmt.Printf("[%5.1f%%] video %d/%d  %s  eta %s\n",
		state.OverallPercent,
		state.CompletedVideos, state.TotalVideos,
		state.CurrentFile,
		(time.Duration(eta) * time.Second).Round(time.Second))
}

// printJobSummary fetches the final job record and prints per-stage results,
// matched back to the workflow stages when the backend still has them.
func printJobSummary(ctx context.Context, jobID string) error {
	detail, err := client.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	fmt.Printf("\njob %s: %s\n", detail.Job.ID, detail.Job.Status)
	if detail.Job.Error != "" {
		fmt.Printf("error: %s\n", detail.Job.Error)
	}

	var stageNames []string
	if detail.Workflow != nil {
		matched := backend.MatchStageResults(detail.Workflow.Stages, detail.StageResults)
		for _, s := range matched {
			if s != nil {
				stageNames = append(stageNames, string(s.Type))
			} else {
				stageNames = append(stageNames, "?")
			}
		}
	}
	for i, r := range detail.StageResults {
		name := string(r.StageType)
		if i < len(stageNames) && stageNames[i] != "?" {
			name = stageNames[i]
		}
		line := fmt.Sprintf("  %d. %-8s %s  in=%d out=%d", r.Order, name, r.Status, r.InputCount, r.OutputCount)
		if r.FilteredCount != nil {
			line += fmt.Sprintf(" filtered=%d", *r.FilteredCount)
		}
		fmt.Println(line)
	}

	for _, res := range detail.Results {
		line := "  " + res.OutputPath
		if res.PhysicsScore != nil {
			line += fmt.Sprintf("  score=%.2f", *res.PhysicsScore)
		}
		if res.Passed != nil {
			if *res.Passed {
				line += "  pass"
			} else {
				line += "  fail"
			}
		}
		fmt.Println(line)
	}
	return nil
}
