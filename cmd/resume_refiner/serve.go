package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-refiner/internal/config"
	"github.com/jonathan/resume-refiner/internal/server"
)

var (
	serveConfigPath string
	servePort       int
	serveStrict     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for storing resumes,
running AI analysis, previewing improvements and committing them.

DATABASE_URL selects PostgreSQL persistence; without it state is kept in
memory. GEMINI_API_KEY enables the analyze endpoint. A config file can
supply port, database_url and api_key; flags and environment variables
take priority.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveStrict, "strict", false, "Do not fabricate fallback suggestions when analysis finds nothing")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadServeConfig(cmd)
	if err != nil {
		return err
	}

	srv, err := server.New(context.Background(), server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
		APIKey:      cfg.APIKey,
		Strict:      cfg.Strict,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// loadServeConfig assembles the server configuration: config file values
// first, flag overrides next, then environment and built-in defaults for
// anything still unset.
func loadServeConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Command-line args take priority over config file values
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = serveStrict
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		Port:        8080,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
