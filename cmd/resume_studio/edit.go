package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/session"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <resume-id>",
	Short: "Edit a saved résumé",
	Long:  "Loads a saved résumé and opens the editing workflow. Moving to the next step autosaves.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid resume id %q: %w", args[0], err)
	}

	s := session.NewEditing(store.New(), newClient(), sessionOptions())
	// Close aborts whatever is still in flight
	defer s.Close()

	if err := s.Load(cmd.Context(), id); err != nil {
		return err
	}

	err = newWizard(s, terminalPrompter{}, cmd.OutOrStdout()).run(cmd.Context())
	if errors.Is(err, errQuit) {
		s.Wait()
		return nil
	}
	return err
}
