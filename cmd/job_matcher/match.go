package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/observability"
	"github.com/jonathan/job-matcher/internal/store"
	"github.com/jonathan/job-matcher/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a parsed resume against one or more job postings",
	Long:  "Score a parsed resume (JSON from the parse command) against one or more job posting JSON files, printing a match result per job with breakdown and insights.",
	RunE:  runMatch,
}

var (
	matchResumeFile string
	matchJobFiles   []string
	matchOutputFile string
	matchMinScore   int
	matchSave       bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchResumeFile, "resume", "r", "", "Path to parsed resume JSON (required)")
	matchCmd.Flags().StringArrayVarP(&matchJobFiles, "job", "j", nil, "Path to job posting JSON, repeatable (required)")
	matchCmd.Flags().StringVarP(&matchOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	matchCmd.Flags().IntVar(&matchMinScore, "min-score", 0, "Drop matches below this overall score")
	matchCmd.Flags().BoolVar(&matchSave, "save", false, "Save match results to the database (requires database_url)")
	_ = matchCmd.MarkFlagRequired("resume")
	_ = matchCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	resume, err := readResume(matchResumeFile)
	if err != nil {
		return err
	}

	jobs := make([]*types.JobPosting, 0, len(matchJobFiles))
	for _, path := range matchJobFiles {
		job, err := readJob(path)
		if err != nil {
			return err
		}
		jobs = append(jobs, job)
	}

	results, err := rt.engine.MatchJobs(ctx, resume, jobs)
	if err != nil {
		return fmt.Errorf("failed to compute matches: %w", err)
	}

	filtered := make([]*types.MatchResult, 0, len(results))
	for _, r := range results {
		if r.OverallScore >= matchMinScore {
			filtered = append(filtered, r)
		}
	}

	if flagVerbose {
		printer := observability.NewPrinter(os.Stderr)
		for _, r := range filtered {
			printer.PrintMatch(r)
			printer.PrintInsights(&r.Insights)
		}
	}

	if matchSave {
		if rt.cfg.DatabaseURL == "" {
			return fmt.Errorf("database_url is required with --save")
		}
		s, err := store.Connect(ctx, rt.cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer s.Close()
		for _, r := range filtered {
			if err := s.UpsertMatch(ctx, r); err != nil {
				return fmt.Errorf("failed to save match: %w", err)
			}
		}
		fmt.Fprintf(os.Stderr, "Saved %d match result(s)\n", len(filtered))
	}

	return writeJSON(matchOutputFile, filtered)
}

func readResume(path string) (*types.ResumeRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	var record types.ResumeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	return &record, nil
}

func readJob(path string) (*types.JobPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	var job types.JobPosting
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job JSON: %w", err)
	}
	return &job, nil
}
