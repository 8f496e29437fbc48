// Package main provides the entry point for the Resume Refiner CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_refiner",
	Short: "Resume Refiner suggestion engine",
	Long:  "Resume Refiner analyzes resume content with AI feedback, turns the feedback into concrete text improvements, and commits accepted improvements back into the resume.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
