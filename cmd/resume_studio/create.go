package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-studio/internal/session"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a résumé step by step",
	Long: "Walks through personal info, summary, experience, education, skills and an optional job " +
		"description, analyzes the draft and saves it together with its analysis.",
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, _ []string) error {
	s := session.NewCreation(store.New(), newClient(), sessionOptions())
	defer s.Close()

	err := newWizard(s, terminalPrompter{}, cmd.OutOrStdout()).run(cmd.Context())
	if errors.Is(err, errQuit) {
		fmt.Fprintln(cmd.OutOrStdout(), "Draft discarded.")
		return nil
	}
	return err
}

func sessionOptions() session.Options {
	return session.Options{
		Logger:          appLogger,
		RequestTimeout:  appConfig.RequestTimeout(),
		DefaultTemplate: appConfig.DefaultTemplate,
	}
}
