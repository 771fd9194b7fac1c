package extraction

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/llm"
	"github.com/jonathan/job-matcher/internal/logger"
	"github.com/jonathan/job-matcher/internal/schemas"
	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/jonathan/job-matcher/internal/types"
)

// Extractor produces a StructuredProfile from raw résumé text.
// Extract never fails: any primary-path error (quota, timeout,
// malformed or schema-invalid response) silently degrades to the
// rule-based parser.
type Extractor struct {
	client llm.Client
	logger *zap.Logger
}

// NewExtractor creates an Extractor. client may be nil, in which case
// every call uses the rule-based parser.
func NewExtractor(client llm.Client, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{client: client, logger: logger}
}

// Extract parses résumé text into a structured profile, always
// returning a well-formed result.
func (e *Extractor) Extract(ctx context.Context, resumeText string) *types.StructuredProfile {
	ruleProfile := ExtractWithRules(resumeText)

	if e.client == nil {
		postProcess(ruleProfile)
		return ruleProfile
	}

	profile, err := e.extractWithModel(ctx, resumeText)
	if err != nil {
		e.logger.Warn("model extraction failed, using rule-based profile",
			zap.Error(err),
			zap.Bool("quota", llm.IsQuotaExceeded(err)),
			zap.Bool("timeout", llm.IsTimeout(err)))
		postProcess(ruleProfile)
		return ruleProfile
	}

	e.mergeContactInfo(profile, ruleProfile)
	postProcess(profile)
	return profile
}

// extractWithModel runs the schema-constrained model extraction.
// No retries: a single failure hands control to the rule-based parser.
func (e *Extractor) extractWithModel(ctx context.Context, resumeText string) (*types.StructuredProfile, error) {
	prompt := llm.BuildExtractionPrompt(llm.ResumeProfileSchema(), resumeText)

	raw, err := e.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to generate profile: %w", err)
	}

	doc, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	if err := schemas.Validate(schemas.ResumeProfile, doc); err != nil {
		e.logger.Debug("schema rejected model profile",
			zap.String("response", logger.TruncateForLog(raw, 500)))
		return nil, fmt.Errorf("profile rejected by schema: %w", err)
	}

	var profile types.StructuredProfile
	if err := json.Unmarshal(doc, &profile); err != nil {
		return nil, llm.NewParseError("profile JSON does not match expected shape", string(doc))
	}

	return &profile, nil
}

// mergeContactInfo reconciles the model's contact fields with the
// regex-derived ones. Whichever path found a non-empty value wins; when
// both found different non-empty values, the rule-based value is the
// default tiebreak and the disagreement is logged rather than dropped.
func (e *Extractor) mergeContactInfo(model, rules *types.StructuredProfile) {
	merge := func(field string, modelVal *string, ruleVal string) {
		switch {
		case *modelVal == "" && ruleVal != "":
			*modelVal = ruleVal
		case *modelVal != "" && ruleVal != "" && *modelVal != ruleVal:
			e.logger.Info("contact field disagreement, keeping rule-based value",
				zap.String("field", field),
				zap.String("model_value", *modelVal),
				zap.String("rule_value", ruleVal))
			*modelVal = ruleVal
		}
	}

	merge("email", &model.PersonalInfo.Email, rules.PersonalInfo.Email)
	merge("phone", &model.PersonalInfo.Phone, rules.PersonalInfo.Phone)
	merge("linkedin", &model.PersonalInfo.LinkedIn, rules.PersonalInfo.LinkedIn)
	merge("github", &model.PersonalInfo.GitHub, rules.PersonalInfo.GitHub)
}

// postProcess normalizes skills and guarantees non-nil slices so
// callers never see a nil list.
func postProcess(profile *types.StructuredProfile) {
	profile.Skills = skills.NormalizeAll(profile.Skills)
	if len(profile.Skills) > maxSkills {
		profile.Skills = profile.Skills[:maxSkills]
	}
	if profile.Experience == nil {
		profile.Experience = []types.Experience{}
	}
	if profile.Education == nil {
		profile.Education = []types.Education{}
	}
	if profile.Certifications == nil {
		profile.Certifications = []string{}
	}
	if profile.Projects == nil {
		profile.Projects = []types.Project{}
	}
	if profile.Languages == nil {
		profile.Languages = []string{}
	}
}
