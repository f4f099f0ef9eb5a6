package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage saved workflow profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and custom profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := profileStore.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range profiles {
			marker := " "
			if p.IsBuiltIn {
				marker = "*"
			}
			fmt.Printf("%s %-40s %-24s %d stages\n", marker, p.ID, p.Name, len(p.Stages))
		}
		fmt.Println("* built-in")
		return nil
	},
}

var profilesExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all profiles as JSON",
	Long:  "Writes the full profile list as JSON to the given file, or stdout when omitted.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := profileStore.ExportAll(cmd.Context())
		if err != nil {
			return err
		}
		if len(args) == 0 {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("exported to %s\n", args[0])
		return nil
	},
}

var profilesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import profiles from a JSON export",
	Long: `Merges an exported profile list into the custom store. Profiles whose id
already exists are skipped; everything else is appended.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}
		added, err := profileStore.ImportFrom(cmd.Context(), data)
		if err != nil {
			return err
		}
		fmt.Printf("imported %d profiles\n", added)
		return nil
	},
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a custom profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := profileStore.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesExportCmd)
	profilesCmd.AddCommand(profilesImportCmd)
	profilesCmd.AddCommand(profilesDeleteCmd)
}
