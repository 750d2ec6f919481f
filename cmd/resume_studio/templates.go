package main

import (
	"fmt"

	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available résumé templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		type entry struct {
			Name        string `json:"name"`
			DisplayName string `json:"display_name"`
			Description string `json:"description"`
		}
		var out []entry
		for _, t := range rendering.Default().Templates() {
			out = append(out, entry{Name: string(t.Name()), DisplayName: t.DisplayName(), Description: t.Description()})
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), out)
		}
		for _, e := range out {
			fmt.Fprintf(cmd.OutOrStdout(), "%-13s %s\n", e.Name, e.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
