// Package main provides the entry point for the AI resume reviewer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_reviewer",
	Short: "AI-powered resume reviewer",
	Long:  "Analyzes a resume with an AI provider and produces scored, structured feedback with export to PDF, JSON, or plain text.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
