package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-studio/internal/results"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a résumé file to be structured, saved and analyzed",
	Long:  "Uploads a .txt, .md or .html résumé. The backend structures it into a document, saves it and returns an analysis.",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) (err error) {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	st := store.New()
	done := st.Begin(store.OpUpload, store.ViewUpload)
	defer func() { done(err) }()

	ctx := cmd.Context()
	res, err := newClient().UploadAndAnalyze(ctx, args[0], f)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	st.SetDocument(res.ResumeData)
	st.SetAnalysis(res.AnalysisResults)

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), res)
	}
	doc := st.Document()
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %q as %s\n\n", doc.Name, doc.ID)
	printScorecard(cmd.OutOrStdout(), results.Aggregate(st.Analysis(), nil))
	return nil
}
