package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var listUserID string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved résumés",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listUserID, "user", "", "Owner id (defaults to user_id from config or RESUME_STUDIO_USER_ID)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	raw := listUserID
	if raw == "" {
		raw = appConfig.UserID
	}
	if raw == "" {
		return fmt.Errorf("no user id: pass --user or run 'resume_studio login'")
	}
	ownerID, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", raw, err)
	}

	summaries, err := newClient().ListResumes(cmd.Context(), ownerID)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), summaries)
	}
	if len(summaries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No résumés yet. Run 'resume_studio create' to start one.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTEMPLATE\tUPDATED")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Template, s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
