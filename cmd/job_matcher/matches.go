package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/store"
	"github.com/jonathan/job-matcher/internal/types"
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List a candidate's stored matches, best first",
	RunE:  runMatches,
}

var statusCmd = &cobra.Command{
	Use:   "set-status",
	Short: "Update the status of a stored match",
	Long:  "Update the lifecycle status of a stored match. Valid statuses: new, viewed, applied, shortlisted, rejected, hired.",
	RunE:  runSetStatus,
}

var (
	matchesCandidateID string
	matchesMinScore    int
	matchesOutputFile  string

	statusCandidateID string
	statusJobID       string
	statusValue       string
)

func init() {
	matchesCmd.Flags().StringVar(&matchesCandidateID, "candidate-id", "", "Candidate UUID (required)")
	matchesCmd.Flags().IntVar(&matchesMinScore, "min-score", 0, "Drop matches below this overall score")
	matchesCmd.Flags().StringVarP(&matchesOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	_ = matchesCmd.MarkFlagRequired("candidate-id")

	statusCmd.Flags().StringVar(&statusCandidateID, "candidate-id", "", "Candidate UUID (required)")
	statusCmd.Flags().StringVar(&statusJobID, "job-id", "", "Job UUID (required)")
	statusCmd.Flags().StringVar(&statusValue, "status", "", "New status (required)")
	_ = statusCmd.MarkFlagRequired("candidate-id")
	_ = statusCmd.MarkFlagRequired("job-id")
	_ = statusCmd.MarkFlagRequired("status")

	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(statusCmd)
}

func openStore(ctx context.Context) (*store.Store, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database_url is required (config file or DATABASE_URL)")
	}
	return store.Connect(ctx, cfg.DatabaseURL)
}

func runMatches(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	candidateID, err := uuid.Parse(matchesCandidateID)
	if err != nil {
		return fmt.Errorf("invalid candidate ID: %w", err)
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	matches, err := s.ListMatches(ctx, candidateID, matchesMinScore)
	if err != nil {
		return err
	}
	return writeJSON(matchesOutputFile, matches)
}

var validStatuses = map[types.MatchStatus]bool{
	types.MatchStatusNew:         true,
	types.MatchStatusViewed:      true,
	types.MatchStatusApplied:     true,
	types.MatchStatusShortlisted: true,
	types.MatchStatusRejected:    true,
	types.MatchStatusHired:       true,
}

func runSetStatus(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	candidateID, err := uuid.Parse(statusCandidateID)
	if err != nil {
		return fmt.Errorf("invalid candidate ID: %w", err)
	}
	jobID, err := uuid.Parse(statusJobID)
	if err != nil {
		return fmt.Errorf("invalid job ID: %w", err)
	}
	status := types.MatchStatus(statusValue)
	if !validStatuses[status] {
		return fmt.Errorf("invalid status %q", statusValue)
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.UpdateMatchStatus(ctx, candidateID, jobID, status)
}
