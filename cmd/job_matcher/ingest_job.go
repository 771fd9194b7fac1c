package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/ingestion"
	"github.com/jonathan/job-matcher/internal/store"
	"github.com/jonathan/job-matcher/internal/types"
)

var ingestJobCmd = &cobra.Command{
	Use:   "ingest-job",
	Short: "Ingest a job posting file into a structured posting",
	Long:  "Ingest a job posting from a text or HTML file, extract structured requirements, compute its embedding, and print the result as JSON.",
	RunE:  runIngestJob,
}

var (
	ingestInputFile  string
	ingestOutputFile string
	ingestSave       bool
)

func init() {
	ingestJobCmd.Flags().StringVarP(&ingestInputFile, "in", "i", "", "Path to job posting file, .html or text (required)")
	ingestJobCmd.Flags().StringVarP(&ingestOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	ingestJobCmd.Flags().BoolVar(&ingestSave, "save", false, "Save the posting to the database (requires database_url)")
	_ = ingestJobCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(ingestJobCmd)
}

func runIngestJob(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	content, err := os.ReadFile(ingestInputFile)
	if err != nil {
		return fmt.Errorf("failed to read job posting file: %w", err)
	}

	ingestor := ingestion.NewIngestor(rt.client, rt.log)

	var job *types.JobPosting
	if strings.HasSuffix(strings.ToLower(ingestInputFile), ".html") {
		job, err = ingestor.IngestHTML(ctx, string(content))
	} else {
		job, err = ingestor.IngestText(ctx, string(content))
	}
	if err != nil {
		return fmt.Errorf("failed to ingest job posting: %w", err)
	}

	job.Embedding = rt.engine.EmbedJob(ctx, job)

	if ingestSave {
		if rt.cfg.DatabaseURL == "" {
			return fmt.Errorf("database_url is required with --save")
		}
		s, err := store.Connect(ctx, rt.cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.UpsertJob(ctx, job); err != nil {
			return fmt.Errorf("failed to save job posting: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved job posting %s\n", job.ID)
	}

	return writeJSON(ingestOutputFile, job)
}
