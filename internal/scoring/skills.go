package scoring

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/embedding"
	"github.com/jonathan/job-matcher/internal/llm"
	"github.com/jonathan/job-matcher/internal/prompts"
	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/jonathan/job-matcher/internal/types"
)

var firstInteger = regexp.MustCompile(`-?\d+`)

// SkillsScorer scores skill overlap between a resume and a job. It prefers
// embedding similarity, falls back to a model comparison when embeddings are
// unavailable, and finally to a lexical comparison that needs no backend.
type SkillsScorer struct {
	client llm.Client
	logger *zap.Logger
}

// NewSkillsScorer builds a scorer. A nil client disables the model
// comparison path; the scorer still works via embeddings and lexical match.
func NewSkillsScorer(client llm.Client, logger *zap.Logger) *SkillsScorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SkillsScorer{client: client, logger: logger}
}

// Score computes the skills dimension score in [0, 100].
//
// When both the resume's skills embedding and the job's embedding are
// present, the score is the cosine similarity scaled to a percentage.
// A length mismatch between the two vectors is an input validation problem
// and is returned as a *llm.DimensionError for the caller to handle.
func (s *SkillsScorer) Score(ctx context.Context, resume *types.ResumeRecord, job *types.JobPosting, p Policy) (int, error) {
	if len(resume.SkillsEmbedding) > 0 && len(job.Embedding) > 0 {
		sim, err := embedding.CosineSimilarity(resume.SkillsEmbedding, job.Embedding)
		if err != nil {
			return 0, err
		}
		return Clamp(int(math.Round(sim * 100))), nil
	}

	candidate := resume.Profile.Skills
	required := job.RequiredSkillNames()

	if s.client != nil {
		score, err := s.compareWithModel(ctx, candidate, required)
		if err == nil {
			return score, nil
		}
		s.logger.Warn("model skill comparison failed, using lexical match",
			zap.Error(err))
	}

	return skills.LexicalScore(candidate, required, p.PartialSkillCredit), nil
}

// compareWithModel asks the model for a single integer rating of the skill
// overlap. Any response that does not contain a usable integer is an error
// so the caller can fall back.
func (s *SkillsScorer) compareWithModel(ctx context.Context, candidate, required []string) (int, error) {
	template, err := prompts.Get("scoring.json", "compare-skill-sets")
	if err != nil {
		return 0, err
	}
	prompt := prompts.Format(template, map[string]string{
		"RequiredSkills":  strings.Join(required, ", "),
		"CandidateSkills": strings.Join(candidate, ", "),
	})

	response, err := s.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return 0, err
	}

	return parseScore(response)
}

// parseScore pulls an integer score out of a model response. The prompt asks
// for a bare integer but models occasionally wrap it in prose.
func parseScore(response string) (int, error) {
	trimmed := strings.TrimSpace(response)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return Clamp(n), nil
	}
	match := firstInteger.FindString(trimmed)
	if match == "" {
		return 0, llm.NewParseError("no integer score in response", response)
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, llm.NewParseError("unparseable score in response", response)
	}
	return Clamp(n), nil
}
