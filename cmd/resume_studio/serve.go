package main

import (
	"fmt"

	"github.com/jonathan/resume-studio/internal/analysis"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/db"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the résumé backend REST API",
	Long: `Start an HTTP server that stores résumés in PostgreSQL and scores them with Gemini.

Requires DATABASE_URL and GEMINI_API_KEY (or database_url / api_key in the config file).
Migrations are applied on startup.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if appConfig.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if appConfig.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	port := appConfig.Port
	if servePort != 0 {
		port = servePort
	}

	database, err := db.Connect(ctx, appConfig.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	client, err := llm.NewGeminiClient(ctx, nil, appConfig.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			appLogger.Warn("failed to close LLM client", zap.Error(err))
		}
	}()

	passwords, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:     port,
		Password: passwords,
		JWT:      jwtConfig,
		Logger:   appLogger,
	}, database, analysis.NewScorer(client, appLogger))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
