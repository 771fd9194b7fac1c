package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/observability"
	"github.com/jonathan/job-matcher/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Generate a job-independent analysis of a parsed resume",
	Long:  "Generate strengths, weaknesses and improvement suggestions for a parsed resume (JSON from the parse command), independent of any job posting.",
	RunE:  runAnalyze,
}

var (
	analyzeResumeFile string
	analyzeOutputFile string
	analyzeSave       bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumeFile, "resume", "r", "", "Path to parsed resume JSON (required)")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Save the analysis to the stored resume (requires database_url)")
	_ = analyzeCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	resume, err := readResume(analyzeResumeFile)
	if err != nil {
		return err
	}

	analysis, err := rt.engine.Reanalyze(ctx, resume)
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	if flagVerbose {
		observability.NewPrinter(os.Stderr).PrintAnalysis(analysis)
	}

	if analyzeSave {
		if rt.cfg.DatabaseURL == "" {
			return fmt.Errorf("database_url is required with --save")
		}
		s, err := store.Connect(ctx, rt.cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.UpdateResumeAnalysis(ctx, resume.ID, analysis); err != nil {
			return fmt.Errorf("failed to save analysis: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved analysis for resume %s\n", resume.ID)
	}

	return writeJSON(analyzeOutputFile, analysis)
}
