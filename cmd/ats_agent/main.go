// Package main implements the ats_agent CLI tool for ATS résumé analysis.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ats_agent",
	Short: "ATS resume compatibility analyzer",
	Long:  "ats_agent scores a resume's compatibility with Applicant Tracking Systems by blending a deterministic rule-based scorer with AI analysis, and produces actionable feedback.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
