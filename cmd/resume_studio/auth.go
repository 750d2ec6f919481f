package main

import (
	"fmt"
	"io"

	"github.com/jonathan/resume-studio/internal/types"
	"github.com/spf13/cobra"
)

var (
	authEmail string
	authName  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print a bearer token",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and print a bearer token",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

func init() {
	loginCmd.Flags().StringVar(&authEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&authName, "name", "", "Display name")
	rootCmd.AddCommand(loginCmd, registerCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	ui := terminalPrompter{}
	email, err := valueOrPrompt(ui, authEmail, "Email")
	if err != nil {
		return err
	}
	password, err := ui.Secret("Password")
	if err != nil {
		return err
	}

	resp, err := newClient().Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return printLogin(cmd.OutOrStdout(), resp)
}

func runRegister(cmd *cobra.Command, _ []string) error {
	ui := terminalPrompter{}
	name, err := valueOrPrompt(ui, authName, "Name")
	if err != nil {
		return err
	}
	email, err := valueOrPrompt(ui, authEmail, "Email")
	if err != nil {
		return err
	}
	password, err := ui.Secret("Password (at least 8 characters)")
	if err != nil {
		return err
	}

	req := types.RegisterRequest{Name: name, Email: email, Password: password}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid registration: %w", err)
	}
	resp, err := newClient().Register(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return printLogin(cmd.OutOrStdout(), resp)
}

func valueOrPrompt(p prompter, value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return p.Prompt(label, "")
}

func printLogin(w io.Writer, resp *types.LoginResponse) error {
	if jsonOutput {
		return printJSON(w, resp)
	}
	fmt.Fprintf(w, "Logged in as %s <%s>\n\n", resp.User.Name, resp.User.Email)
	fmt.Fprintf(w, "export RESUME_STUDIO_TOKEN=%s\n", resp.Token)
	fmt.Fprintf(w, "export RESUME_STUDIO_USER_ID=%s\n", resp.User.ID)
	return nil
}
