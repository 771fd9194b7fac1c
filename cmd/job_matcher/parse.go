package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/observability"
	"github.com/jonathan/job-matcher/internal/store"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a resume text file into a structured profile",
	Long:  "Parse a resume text file into a structured profile with embeddings. The result is printed as JSON and optionally saved as the owner's active resume.",
	RunE:  runParse,
}

var (
	parseInputFile  string
	parseOutputFile string
	parseOwnerID    string
	parseSave       bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to resume text file (required)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	parseCmd.Flags().StringVar(&parseOwnerID, "owner-id", "", "Owner UUID (generated when omitted)")
	parseCmd.Flags().BoolVar(&parseSave, "save", false, "Save as the owner's active resume (requires database_url)")
	_ = parseCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	ownerID := uuid.New()
	if parseOwnerID != "" {
		ownerID, err = uuid.Parse(parseOwnerID)
		if err != nil {
			return fmt.Errorf("invalid owner ID: %w", err)
		}
	}

	content, err := os.ReadFile(parseInputFile)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	record, err := rt.engine.ParseResume(ctx, ownerID, string(content))
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	if flagVerbose {
		observability.NewPrinter(os.Stderr).PrintProfile(&record.Profile)
	}

	if parseSave {
		if rt.cfg.DatabaseURL == "" {
			return fmt.Errorf("database_url is required with --save")
		}
		s, err := store.Connect(ctx, rt.cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.SaveResume(ctx, record); err != nil {
			return fmt.Errorf("failed to save resume: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved resume %s for owner %s\n", record.ID, record.OwnerID)
	}

	return writeJSON(parseOutputFile, record)
}

// writeJSON marshals v with indentation to the given path, or stdout when
// the path is empty.
func writeJSON(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if path == "" {
		_, err = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return err
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
