package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/results"
	"github.com/jonathan/resume-studio/internal/session"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/spf13/cobra"
)

var (
	analyzeJob     string
	analyzeJobFile string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume-id | document.json>",
	Short: "Score a résumé and match it against a job description",
	Long: "Analyzes a saved résumé (by id) or a local document file. With a job description a saved " +
		"résumé is also matched against it; both reports are fetched concurrently.",
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeJob, "job", "", "Job description text")
	analyzeCmd.Flags().StringVar(&analyzeJobFile, "job-file", "", "Path to a file holding the job description")
	analyzeCmd.MarkFlagsMutuallyExclusive("job", "job-file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	jd, err := jobDescription(analyzeJob, analyzeJobFile)
	if err != nil {
		return err
	}

	st := store.New()
	s := session.NewEditing(st, newClient(), sessionOptions())
	defer s.Close()

	if id, perr := uuid.Parse(args[0]); perr == nil {
		if err := s.Load(cmd.Context(), id); err != nil {
			return err
		}
	} else {
		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}
		st.SetDocument(doc)
	}
	st.SetJobDescription(jd)

	if err := s.Refresh(cmd.Context()); err != nil {
		return err
	}

	view := results.Aggregate(st.Analysis(), st.Match())
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), view)
	}
	printScorecard(cmd.OutOrStdout(), view)
	return nil
}

func jobDescription(text, path string) (string, error) {
	if path == "" {
		return strings.TrimSpace(text), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// readDocument loads a résumé document from a JSON file.
func readDocument(path string) (*types.ResumeDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc := types.NewResumeDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}
	return doc, nil
}
