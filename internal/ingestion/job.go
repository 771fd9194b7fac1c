package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/llm"
	"github.com/jonathan/job-matcher/internal/types"
)

// Ingestor builds JobPosting records from cleaned posting text. Structured
// requirements come from the model when a client is configured; without one
// the posting is stored with its text and a minimal rule-derived header.
type Ingestor struct {
	client llm.Client
	logger *zap.Logger
}

// NewIngestor builds an Ingestor. A nil client is allowed.
func NewIngestor(client llm.Client, logger *zap.Logger) *Ingestor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingestor{client: client, logger: logger}
}

// IngestHTML extracts the posting text from HTML and ingests it.
func (in *Ingestor) IngestHTML(ctx context.Context, html string) (*types.JobPosting, error) {
	text, err := ExtractJobText(html)
	if err != nil {
		return nil, err
	}
	return in.IngestText(ctx, text)
}

// IngestText builds a JobPosting from cleaned posting text.
func (in *Ingestor) IngestText(ctx context.Context, text string) (*types.JobPosting, error) {
	text = CleanText(text)
	if text == "" {
		return nil, fmt.Errorf("job posting text is empty")
	}

	job := &types.JobPosting{
		ID:          uuid.New(),
		Description: text,
		CreatedAt:   time.Now().UTC(),
	}

	if in.client != nil {
		if err := in.extractWithModel(ctx, text, job); err == nil {
			return job, nil
		} else {
			in.logger.Warn("model job extraction failed, storing unstructured posting",
				zap.Error(err))
		}
	}

	job.Title = firstLine(text)
	return job, nil
}

func (in *Ingestor) extractWithModel(ctx context.Context, text string, job *types.JobPosting) error {
	prompt := llm.BuildExtractionPrompt(llm.JobPostingSchema(), text)

	response, err := in.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return err
	}
	raw, err := llm.ExtractJSON(response)
	if err != nil {
		return err
	}

	var extracted types.JobPosting
	if err := json.Unmarshal(raw, &extracted); err != nil {
		return llm.NewParseError(fmt.Sprintf("job posting decode: %v", err), string(raw))
	}
	if strings.TrimSpace(extracted.Title) == "" {
		return llm.NewParseError("job posting extraction returned no title", string(raw))
	}

	job.Title = extracted.Title
	job.Company = extracted.Company
	job.Location = extracted.Location
	job.Requirements = extracted.Requirements
	job.Compensation = extracted.Compensation
	return nil
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
