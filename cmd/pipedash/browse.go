package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AuroraMediaLabs/pipedash/backend"
)

var (
	browseInputType  string
	browseExtensions []string
)

var browseCmd = &cobra.Command{
	Use:   "browse <path>",
	Short: "List media and folders under a backend path",
	Long: `Lists the media files and subfolders the backend sees under a path.
Video entries with a sidecar prompt file show its prompt count; those prompts
are merged into a predict stage at submission time.

Examples:
  pipedash browse /data/clips
  pipedash browse /data/stills --input-type image`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().StringVar(&browseInputType, "input-type", "video", "Input media type: video or image")
	browseCmd.Flags().StringSliceVar(&browseExtensions, "ext", nil, "Restrict to the given file extensions")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	resp, err := client.Browse(cmd.Context(), &backend.BrowseRequest{
		Path:       args[0],
		InputType:  browseInputType,
		Extensions: browseExtensions,
	})
	if err != nil {
		return err
	}

	for _, folder := range resp.Folders {
		fmt.Printf("  %s/\n", folder)
	}
	for _, v := range resp.Videos {
		if v.PromptFile != nil {
			fmt.Printf("  %s  (%d prompts from %s)\n", v.Name, len(v.PromptFile.Prompts), v.PromptFile.Name)
		} else {
			fmt.Printf("  %s\n", v.Name)
		}
	}
	fmt.Printf("%d folders, %d files under %s\n", len(resp.Folders), len(resp.Videos), resp.Path)
	return nil
}
