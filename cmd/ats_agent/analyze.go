package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-analyzer/internal/config"
	"github.com/jonathan/ats-analyzer/internal/logger"
	"github.com/jonathan/ats-analyzer/internal/observability"
	"github.com/jonathan/ats-analyzer/internal/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume for ATS compatibility",
	Long:  "Analyzes a plain-text resume (and optionally a job description) and prints an ATS compatibility score with per-category breakdown and prioritized improvement steps.",
	RunE:  runAnalyze,
}

var (
	analyzeResumeFile string
	analyzeJobFile    string
	analyzeAPIKeys    string
	analyzeModel      string
	analyzeDBURL      string
	analyzeConfigFile string
	analyzeJSON       bool
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumeFile, "resume", "r", "", "Path to plain-text resume file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "job", "j", "", "Path to plain-text job description file (optional)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKeys, "api-key", "", "Gemini API key(s), comma-separated for a rotation pool (overrides GEMINI_API_KEY)")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Gemini model name")
	analyzeCmd.Flags().StringVar(&analyzeDBURL, "db-url", "", "PostgreSQL URL for the durable cache tier (overrides DATABASE_URL)")
	analyzeCmd.Flags().StringVarP(&analyzeConfigFile, "config", "c", "", "Path to JSON config file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the full result as JSON")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed progress information")

	_ = analyzeCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := &config.Config{}
	if analyzeConfigFile != "" {
		loaded, err := config.LoadConfig(analyzeConfigFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags override config file values; environment fills the rest.
	if analyzeAPIKeys != "" {
		cfg.APIKeys = nil
		for _, key := range strings.Split(analyzeAPIKeys, ",") {
			if key = strings.TrimSpace(key); key != "" {
				cfg.APIKeys = append(cfg.APIKeys, key)
			}
		}
	}
	if analyzeModel != "" {
		cfg.Model = analyzeModel
	}
	if analyzeDBURL != "" {
		cfg.DatabaseURL = analyzeDBURL
	}
	cfg.FromEnv()

	log, err := logger.New(analyzeVerbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	resumeText, err := os.ReadFile(analyzeResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	var jobText []byte
	if analyzeJobFile != "" {
		jobText, err = os.ReadFile(analyzeJobFile)
		if err != nil {
			return fmt.Errorf("failed to read job description file: %w", err)
		}
	}

	analyzer, err := pipeline.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer analyzer.Close()

	result, err := analyzer.Analyze(ctx, string(resumeText), string(jobText))
	if err != nil {
		return err
	}

	if analyzeJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintAnalysis(result)
	return nil
}
