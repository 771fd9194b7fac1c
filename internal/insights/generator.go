// Package insights produces the qualitative side of a match: strengths,
// weaknesses, recommendations and skill gap analysis. A generative backend
// is used when available; every path has a deterministic heuristic fallback
// built from the numeric breakdown, so insight generation never fails.
package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/llm"
	"github.com/jonathan/job-matcher/internal/prompts"
	"github.com/jonathan/job-matcher/internal/schemas"
	"github.com/jonathan/job-matcher/internal/types"
)

// Generator produces match insights and resume analyses.
type Generator struct {
	client llm.Client
	logger *zap.Logger
}

// NewGenerator builds a Generator. A nil client is allowed; the generator
// then always uses the heuristic path.
func NewGenerator(client llm.Client, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{client: client, logger: logger}
}

// Generate produces insights for a computed match. Model failures of any
// kind degrade to heuristics derived from the breakdown.
func (g *Generator) Generate(ctx context.Context, job *types.JobPosting, resume *types.ResumeRecord, breakdown types.Breakdown) types.Insights {
	if g.client != nil {
		insights, err := g.generateWithModel(ctx, job, resume, breakdown)
		if err == nil {
			return insights
		}
		g.logger.Warn("model insight generation failed, using heuristics",
			zap.String("job_id", job.ID.String()),
			zap.Error(err))
	}
	return HeuristicInsights(job, breakdown)
}

func (g *Generator) generateWithModel(ctx context.Context, job *types.JobPosting, resume *types.ResumeRecord, breakdown types.Breakdown) (types.Insights, error) {
	template, err := prompts.Get("insights.json", "generate-insights")
	if err != nil {
		return types.Insights{}, err
	}

	jobJSON, err := json.Marshal(jobSummary(job))
	if err != nil {
		return types.Insights{}, err
	}
	candidateJSON, err := json.Marshal(resume.Profile)
	if err != nil {
		return types.Insights{}, err
	}
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return types.Insights{}, err
	}

	prompt := prompts.Format(template, map[string]string{
		"Job":       string(jobJSON),
		"Candidate": string(candidateJSON),
		"Breakdown": string(breakdownJSON),
	})

	response, err := g.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return types.Insights{}, err
	}

	raw, err := llm.ExtractJSON(response)
	if err != nil {
		return types.Insights{}, err
	}
	return decodeInsights(raw)
}

// AnalyzeResume produces a job-independent qualitative review of a resume.
func (g *Generator) AnalyzeResume(ctx context.Context, resume *types.ResumeRecord) types.Analysis {
	if g.client != nil {
		analysis, err := g.analyzeWithModel(ctx, resume)
		if err == nil {
			return analysis
		}
		g.logger.Warn("model resume analysis failed, using heuristics",
			zap.String("resume_id", resume.ID.String()),
			zap.Error(err))
	}
	return HeuristicAnalysis(&resume.Profile)
}

func (g *Generator) analyzeWithModel(ctx context.Context, resume *types.ResumeRecord) (types.Analysis, error) {
	template, err := prompts.Get("insights.json", "analyze-resume")
	if err != nil {
		return types.Analysis{}, err
	}

	profileJSON, err := json.Marshal(resume.Profile)
	if err != nil {
		return types.Analysis{}, err
	}
	prompt := prompts.Format(template, map[string]string{
		"Profile": string(profileJSON),
	})

	response, err := g.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return types.Analysis{}, err
	}
	raw, err := llm.ExtractJSON(response)
	if err != nil {
		return types.Analysis{}, err
	}

	var analysis types.Analysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return types.Analysis{}, llm.NewParseError(fmt.Sprintf("analysis decode: %v", err), string(raw))
	}
	if analysis.OverallScore < 0 {
		analysis.OverallScore = 0
	}
	if analysis.OverallScore > 100 {
		analysis.OverallScore = 100
	}
	if analysis.Strengths == nil {
		analysis.Strengths = []string{}
	}
	if analysis.Weaknesses == nil {
		analysis.Weaknesses = []string{}
	}
	if analysis.Suggestions == nil {
		analysis.Suggestions = []string{}
	}
	if analysis.SkillGaps == nil {
		analysis.SkillGaps = []string{}
	}
	analysis.LastAnalyzed = time.Now().UTC()
	return analysis, nil
}

// jobSummary trims a posting down to what the model needs so the raw
// description does not blow up the prompt.
func jobSummary(job *types.JobPosting) map[string]any {
	description := job.Description
	if len(description) > 2000 {
		description = description[:2000]
	}
	return map[string]any{
		"title":        job.Title,
		"company":      job.Company,
		"description":  description,
		"requirements": job.Requirements,
		"location":     job.Location,
	}
}

// decodeInsights decodes each field independently so one malformed field
// does not discard the rest of the response. An absent or wrongly typed
// array field becomes an empty list. Skill gap objects still go through
// schema validation; a gap that violates the schema rejects the response.
func decodeInsights(raw json.RawMessage) (types.Insights, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return types.Insights{}, llm.NewParseError(fmt.Sprintf("insights decode: %v", err), string(raw))
	}

	insights := types.Insights{
		Strengths:       stringList(fields["strengths"]),
		Weaknesses:      stringList(fields["weaknesses"]),
		Recommendations: stringList(fields["recommendations"]),
		InterviewTips:   stringList(fields["interview_tips"]),
		SkillGaps:       []types.SkillGap{},
	}

	gapsRaw, ok := fields["skill_gaps"]
	if !ok {
		return insights, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(gapsRaw, &entries); err != nil {
		return insights, nil
	}
	doc, err := json.Marshal(map[string]json.RawMessage{"skill_gaps": gapsRaw})
	if err != nil {
		return types.Insights{}, err
	}
	if err := schemas.Validate(schemas.MatchInsights, doc); err != nil {
		return types.Insights{}, err
	}
	if err := json.Unmarshal(gapsRaw, &insights.SkillGaps); err != nil {
		return types.Insights{}, llm.NewParseError(fmt.Sprintf("skill gaps decode: %v", err), string(gapsRaw))
	}
	return insights, nil
}

// stringList decodes a JSON array of strings, falling back to an empty
// list when the field is absent or not a list of strings.
func stringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
