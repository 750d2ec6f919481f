package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	renderTemplate string
	renderFormat   string
	renderOut      string
)

var renderCmd = &cobra.Command{
	Use:   "render <resume-id | document.json>",
	Short: "Render a résumé as text or HTML",
	Long: "Renders a saved résumé (by id) or a local document file with one of the templates. " +
		"Local files are checked against the document schema first.",
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template name (defaults to the document's template)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "text", "Output format: text or html")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Write to a file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderFormat != "text" && renderFormat != "html" {
		return fmt.Errorf("unknown format %q (want text or html)", renderFormat)
	}

	var doc *types.ResumeDocument
	if id, err := uuid.Parse(args[0]); err == nil {
		if doc, err = newClient().GetResume(cmd.Context(), id); err != nil {
			return err
		}
	} else {
		if doc, err = readDocument(args[0]); err != nil {
			return err
		}
		if err := schemas.ValidateDocument(doc); err != nil {
			return fmt.Errorf("invalid document %s: %w", args[0], err)
		}
	}

	variant := doc.Template
	if renderTemplate != "" {
		variant = types.TemplateName(renderTemplate)
		if _, ok := rendering.Default().Lookup(variant); !ok {
			return fmt.Errorf("unknown template %q (see 'resume_studio templates')", renderTemplate)
		}
	}

	layout, err := rendering.Render(doc, variant)
	if err != nil {
		return err
	}
	output := rendering.FormatText(layout)
	if renderFormat == "html" {
		if output, err = rendering.FormatHTML(layout); err != nil {
			return err
		}
	}

	if renderOut == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), output)
		return err
	}
	if err := os.WriteFile(renderOut, []byte(output), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOut, err)
	}
	appLogger.Info("rendered resume", zap.String("file", renderOut), zap.String("template", string(layout.Template)))
	return nil
}
