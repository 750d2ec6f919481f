// Package main provides the resume_studio CLI: the interactive résumé editor and the
// backend service it talks to.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	debugLog   bool
	jsonOutput bool

	appConfig *config.Config
	appLogger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "resume_studio",
	Short: "Build, score and tailor résumés",
	Long: "resume_studio edits résumé documents step by step, previews them in several templates, " +
		"scores them and matches them against job descriptions via the resume studio backend.",
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		log, err := logger.New(jsonOutput, debugLog)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		appConfig, appLogger = cfg, log
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if appLogger != nil {
			_ = appLogger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results and logs as JSON")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newClient builds a backend client from the loaded configuration.
func newClient() *backend.HTTPClient {
	return backend.NewHTTPClient(appConfig.APIURL, appConfig.Token,
		backend.WithTimeout(appConfig.RequestTimeout()),
		backend.WithLogger(appLogger))
}
