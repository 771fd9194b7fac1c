// Package match is the orchestration layer: it turns raw resume text into
// stored records, computes candidate-job compatibility scores, and attaches
// qualitative insights. Every external dependency (generative backend,
// embedding backend) is injected and optional; with neither configured the
// engine still produces deterministic results from rules and heuristics.
package match

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/embedding"
	"github.com/jonathan/job-matcher/internal/extraction"
	"github.com/jonathan/job-matcher/internal/insights"
	"github.com/jonathan/job-matcher/internal/llm"
	"github.com/jonathan/job-matcher/internal/scoring"
	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/jonathan/job-matcher/internal/types"
)

// ErrEmptyResume is returned when resume parsing is asked to process
// blank input.
var ErrEmptyResume = errors.New("resume text is empty")

const (
	defaultTimeout     = 60 * time.Second
	defaultParallelism = 4
)

// Engine computes matches. Construct with NewEngine; the zero value is not
// usable.
type Engine struct {
	client      llm.Client
	embedder    *embedding.Embedder
	extractor   *extraction.Extractor
	skills      *scoring.SkillsScorer
	insights    *insights.Generator
	policy      scoring.Policy
	logger      *zap.Logger
	timeout     time.Duration
	parallelism int
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy overrides the default scoring policy.
func WithPolicy(p scoring.Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithTimeout bounds each match computation.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithParallelism bounds concurrent job scoring in MatchJobs.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// NewEngine builds an Engine. Both client and embedder may be nil, in which
// case the corresponding fallbacks (rule extraction, lexical scoring,
// term-frequency embeddings, heuristic insights) are used throughout.
func NewEngine(client llm.Client, embedder *embedding.Embedder, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if embedder == nil {
		embedder = embedding.NewEmbedder(nil, logger)
	}
	e := &Engine{
		client:      client,
		embedder:    embedder,
		extractor:   extraction.NewExtractor(client, logger),
		skills:      scoring.NewSkillsScorer(client, logger),
		insights:    insights.NewGenerator(client, logger),
		policy:      scoring.DefaultPolicy(),
		logger:      logger,
		timeout:     defaultTimeout,
		parallelism: defaultParallelism,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ParseResume ingests raw resume text: structured extraction plus two
// embeddings, one over the full text and one over the skills list. The
// returned record is active at version 1; persistence is the caller's
// concern.
func (e *Engine) ParseResume(ctx context.Context, ownerID uuid.UUID, rawText string) (*types.ResumeRecord, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyResume
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	profile := e.extractor.Extract(ctx, rawText)

	record := &types.ResumeRecord{
		ID:                uuid.New(),
		OwnerID:           ownerID,
		RawText:           rawText,
		Profile:           *profile,
		FullTextEmbedding: e.embedder.Embed(ctx, rawText),
		IsActive:          true,
		Version:           1,
		CreatedAt:         time.Now().UTC(),
	}
	if len(profile.Skills) > 0 {
		record.SkillsEmbedding = e.embedder.Embed(ctx, strings.Join(profile.Skills, ", "))
	}
	return record, nil
}

// EmbedJob computes a posting's embedding from its title, description and
// required skill names. Call again whenever any of those fields changes.
func (e *Engine) EmbedJob(ctx context.Context, job *types.JobPosting) []float64 {
	parts := append([]string{job.Title, job.Description}, job.RequiredSkillNames()...)
	return e.embedder.Embed(ctx, strings.Join(parts, "\n"))
}

// ComputeMatch scores one resume against one job. It always returns a
// result: any dimension scorer that fails or panics contributes 0 and is
// logged, and insight generation degrades to heuristics.
func (e *Engine) ComputeMatch(ctx context.Context, resume *types.ResumeRecord, job *types.JobPosting) (*types.MatchResult, error) {
	if resume == nil || job == nil {
		return nil, errors.New("resume and job are required")
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	breakdown := e.buildBreakdown(ctx, resume, job)
	overall := e.overallScore(breakdown)

	result := &types.MatchResult{
		CandidateID:  resume.OwnerID,
		JobID:        job.ID,
		ResumeID:     resume.ID,
		OverallScore: overall,
		Breakdown:    breakdown,
		Insights:     e.insights.Generate(ctx, job, resume, breakdown),
		Status:       types.MatchStatusNew,
		ComputedAt:   time.Now().UTC(),
	}
	return result, nil
}

// Reanalyze refreshes the job-independent analysis attached to a resume.
func (e *Engine) Reanalyze(ctx context.Context, resume *types.ResumeRecord) (*types.Analysis, error) {
	if resume == nil {
		return nil, errors.New("resume is required")
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	analysis := e.insights.AnalyzeResume(ctx, resume)
	resume.Analysis = &analysis
	return &analysis, nil
}

// buildBreakdown runs the four dimension scorers and collects the evidence
// behind them. The skill lists are always computed lexically so the result
// stays explainable even when the score came from embeddings.
func (e *Engine) buildBreakdown(ctx context.Context, resume *types.ResumeRecord, job *types.JobPosting) types.Breakdown {
	comparison := skills.Compare(resume.Profile.Skills, job.RequiredSkillNames())
	candidateYears := scoring.TotalExperienceYears(resume.Profile.Experience)

	breakdown := types.Breakdown{
		MatchedSkills:  comparison.Matched,
		MissingSkills:  comparison.Missing,
		ExtraSkills:    comparison.Extra,
		RequiredYears:  job.Requirements.MinYears,
		CandidateYears: candidateYears,
		JobRemote:      job.Location.Remote,
	}
	if gap := job.Requirements.MinYears - candidateYears; gap > 0 {
		breakdown.ExperienceGap = gap
	}

	breakdown.SkillsScore = e.withFallback("skills", func() (int, error) {
		return e.skills.Score(ctx, resume, job, e.policy)
	})
	breakdown.ExperienceScore = e.withFallback("experience", func() (int, error) {
		return scoring.ScoreExperience(candidateYears, job.Requirements.MinYears), nil
	})
	breakdown.EducationScore = e.withFallback("education", func() (int, error) {
		return scoring.ScoreEducation(resume.Profile.Education, job.Requirements.Education), nil
	})
	breakdown.LocationScore = e.withFallback("location", func() (int, error) {
		return scoring.ScoreLocation(resume.Profile.PersonalInfo.Location, job.Location, e.policy), nil
	})

	breakdown.EducationMet = breakdown.EducationScore == 100
	breakdown.LocationMatch = breakdown.LocationScore == 100
	return breakdown
}

// withFallback runs one dimension scorer and substitutes 0 for any error or
// panic so a single bad dimension never takes down the whole match.
func (e *Engine) withFallback(dimension string, fn func() (int, error)) (score int) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("dimension scorer panicked",
				zap.String("dimension", dimension),
				zap.Any("panic", r))
			score = 0
		}
	}()

	score, err := fn()
	if err != nil {
		e.logger.Warn("dimension scorer failed, scoring 0",
			zap.String("dimension", dimension),
			zap.Error(err))
		return 0
	}
	return scoring.Clamp(score)
}

func (e *Engine) overallScore(b types.Breakdown) int {
	weighted := e.policy.SkillsWeight*float64(b.SkillsScore) +
		e.policy.ExperienceWeight*float64(b.ExperienceScore) +
		e.policy.EducationWeight*float64(b.EducationScore) +
		e.policy.LocationWeight*float64(b.LocationScore)
	return scoring.Clamp(int(math.Round(weighted)))
}
