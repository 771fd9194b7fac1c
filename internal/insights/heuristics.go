package insights

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/job-matcher/internal/types"
)

const maxHeuristicGaps = 3

// HeuristicInsights derives insights purely from the numeric breakdown and
// the job requirements. The output is intentionally plain; it exists so a
// match is never returned without an explanation attached.
func HeuristicInsights(job *types.JobPosting, breakdown types.Breakdown) types.Insights {
	insights := types.Insights{
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
		InterviewTips:   []string{},
		SkillGaps:       []types.SkillGap{},
	}

	if n := len(breakdown.MatchedSkills); n > 0 {
		insights.Strengths = append(insights.Strengths,
			fmt.Sprintf("Matches %d required skill(s): %s", n, strings.Join(breakdown.MatchedSkills, ", ")))
	}
	if breakdown.ExperienceScore >= 80 {
		insights.Strengths = append(insights.Strengths,
			"Experience level is a good fit for this role")
	}
	if breakdown.EducationMet {
		insights.Strengths = append(insights.Strengths,
			"Meets the education requirement")
	}

	if len(breakdown.MissingSkills) > 0 {
		insights.Weaknesses = append(insights.Weaknesses,
			fmt.Sprintf("Missing required skill(s): %s", strings.Join(breakdown.MissingSkills, ", ")))
	}
	if breakdown.ExperienceGap > 0 {
		insights.Weaknesses = append(insights.Weaknesses,
			fmt.Sprintf("%d year(s) short of the required experience", breakdown.ExperienceGap))
		insights.Recommendations = append(insights.Recommendations,
			"Emphasize the depth and impact of recent work to offset the experience gap")
	}
	if !breakdown.EducationMet && breakdown.EducationScore == 0 {
		insights.Weaknesses = append(insights.Weaknesses,
			"Does not meet the stated education requirement")
	}

	insights.InterviewTips = append(insights.InterviewTips,
		"Prepare concrete examples for each matched skill")
	if len(breakdown.MissingSkills) > 0 {
		top := breakdown.MissingSkills[0]
		insights.Recommendations = append(insights.Recommendations,
			fmt.Sprintf("Gain hands-on experience with %s before applying", top))
		insights.InterviewTips = append(insights.InterviewTips,
			fmt.Sprintf("Be ready to discuss how you would ramp up on %s", top))
	}

	importance := importanceBySkill(job)
	for _, skill := range breakdown.MissingSkills {
		if len(insights.SkillGaps) == maxHeuristicGaps {
			break
		}
		// a missing skill the job does not rank is assumed critical
		imp, ok := importance[strings.ToLower(skill)]
		if !ok {
			imp = 5
		}
		required := "familiar"
		if imp >= 4 {
			required = "proficient"
		}
		insights.SkillGaps = append(insights.SkillGaps, types.SkillGap{
			Skill:         skill,
			Importance:    imp,
			CurrentLevel:  "none",
			RequiredLevel: required,
			LearningPath:  fmt.Sprintf("Take a hands-on course or build a small project using %s", skill),
		})
	}

	return insights
}

// HeuristicAnalysis reviews a profile without a model. It checks for the
// sections a strong resume has and scores completeness.
func HeuristicAnalysis(profile *types.StructuredProfile) types.Analysis {
	analysis := types.Analysis{
		Strengths:    []string{},
		Weaknesses:   []string{},
		Suggestions:  []string{},
		SkillGaps:    []string{},
		LastAnalyzed: time.Now().UTC(),
	}

	score := 20

	if n := len(profile.Skills); n >= 5 {
		analysis.Strengths = append(analysis.Strengths,
			fmt.Sprintf("Broad skill set with %d listed skills", n))
		score += 20
	} else if n > 0 {
		score += 10
	} else {
		analysis.Weaknesses = append(analysis.Weaknesses, "No skills section detected")
		analysis.Suggestions = append(analysis.Suggestions,
			"Add a dedicated skills section listing your core technologies")
	}

	if n := len(profile.Experience); n > 0 {
		analysis.Strengths = append(analysis.Strengths,
			fmt.Sprintf("%d work experience entries", n))
		score += 25
	} else {
		analysis.Weaknesses = append(analysis.Weaknesses, "No work experience detected")
	}

	if len(profile.Education) > 0 {
		score += 15
	} else {
		analysis.Suggestions = append(analysis.Suggestions,
			"Add your education history, including degree and institution")
	}

	if strings.TrimSpace(profile.Summary) != "" {
		score += 10
	} else {
		analysis.Suggestions = append(analysis.Suggestions,
			"Add a short professional summary at the top")
	}

	if len(profile.Certifications) > 0 {
		analysis.Strengths = append(analysis.Strengths,
			fmt.Sprintf("%d certification(s) listed", len(profile.Certifications)))
		score += 10
	}

	if profile.PersonalInfo.Email == "" {
		analysis.Weaknesses = append(analysis.Weaknesses, "No contact email found")
		analysis.Suggestions = append(analysis.Suggestions,
			"Make sure your email address appears near the top of the document")
	}

	if score > 100 {
		score = 100
	}
	analysis.OverallScore = score
	return analysis
}

func importanceBySkill(job *types.JobPosting) map[string]int {
	out := make(map[string]int, len(job.Requirements.Skills))
	for _, req := range job.Requirements.Skills {
		if req.Importance > 0 {
			out[strings.ToLower(req.Name)] = req.Importance
		}
	}
	return out
}
