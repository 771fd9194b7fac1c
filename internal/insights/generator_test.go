package insights

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-matcher/internal/llm"
	"github.com/jonathan/job-matcher/internal/types"
)

type fakeClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func testJob() *types.JobPosting {
	return &types.JobPosting{
		Title:   "Backend Engineer",
		Company: "Acme",
		Requirements: types.JobRequirements{
			Skills: []types.SkillRequirement{
				{Name: "Go", Importance: 5},
				{Name: "PostgreSQL", Importance: 4},
				{Name: "Kubernetes", Importance: 2},
			},
			MinYears: 4,
		},
	}
}

func testBreakdown() types.Breakdown {
	return types.Breakdown{
		SkillsScore:     60,
		ExperienceScore: 50,
		EducationScore:  100,
		LocationScore:   100,
		MatchedSkills:   []string{"Go"},
		MissingSkills:   []string{"PostgreSQL", "Kubernetes"},
		RequiredYears:   4,
		CandidateYears:  2,
		ExperienceGap:   2,
		EducationMet:    true,
	}
}

func TestGenerate_ModelPath(t *testing.T) {
	client := &fakeClient{response: `{
		"strengths": ["Strong Go background"],
		"weaknesses": ["No PostgreSQL experience"],
		"recommendations": ["Study PostgreSQL"],
		"interview_tips": ["Mention your Go services"],
		"skill_gaps": [{"skill": "PostgreSQL", "importance": 4, "current_level": "none", "required_level": "proficient", "learning_path": "Build a CRUD app"}]
	}`}
	g := NewGenerator(client, nil)

	insights := g.Generate(context.Background(), testJob(), &types.ResumeRecord{}, testBreakdown())

	assert.Equal(t, []string{"Strong Go background"}, insights.Strengths)
	require.Len(t, insights.SkillGaps, 1)
	assert.Equal(t, "PostgreSQL", insights.SkillGaps[0].Skill)
	assert.Equal(t, 1, client.calls, "one attempt, no retries")
}

func TestGenerate_ModelPathFillsAbsentFields(t *testing.T) {
	client := &fakeClient{response: `{"strengths": ["solid"], "weaknesses": [], "recommendations": [], "interview_tips": [], "skill_gaps": []}`}
	g := NewGenerator(client, nil)

	insights := g.Generate(context.Background(), testJob(), &types.ResumeRecord{}, testBreakdown())

	assert.NotNil(t, insights.Weaknesses)
	assert.NotNil(t, insights.Recommendations)
	assert.NotNil(t, insights.InterviewTips)
	assert.NotNil(t, insights.SkillGaps)
}

func TestGenerate_DropsWronglyTypedFieldsOnly(t *testing.T) {
	client := &fakeClient{response: `{
		"strengths": "not a list",
		"weaknesses": ["No PostgreSQL experience"],
		"recommendations": [1, 2],
		"interview_tips": ["Mention your Go services"],
		"skill_gaps": {"skill": "PostgreSQL"}
	}`}
	g := NewGenerator(client, nil)

	insights := g.Generate(context.Background(), testJob(), &types.ResumeRecord{}, testBreakdown())

	assert.Equal(t, []string{"No PostgreSQL experience"}, insights.Weaknesses,
		"valid fields survive a bad sibling field")
	assert.Equal(t, []string{"Mention your Go services"}, insights.InterviewTips)
	assert.Empty(t, insights.Strengths)
	assert.Empty(t, insights.Recommendations)
	assert.Empty(t, insights.SkillGaps)
}

func TestGenerate_FallsBackOnError(t *testing.T) {
	client := &fakeClient{err: errors.New("429: quota exceeded")}
	g := NewGenerator(client, nil)

	insights := g.Generate(context.Background(), testJob(), &types.ResumeRecord{}, testBreakdown())

	assert.Equal(t, 1, client.calls)
	assert.NotEmpty(t, insights.Strengths, "heuristics still produce strengths")
	assert.NotEmpty(t, insights.Weaknesses)
}

func TestGenerate_FallsBackOnSchemaViolation(t *testing.T) {
	// skill_gaps entries require a skill name
	client := &fakeClient{response: `{"strengths": [], "weaknesses": [], "recommendations": [], "interview_tips": [], "skill_gaps": [{"importance": 5}]}`}
	g := NewGenerator(client, nil)

	insights := g.Generate(context.Background(), testJob(), &types.ResumeRecord{}, testBreakdown())

	assert.NotEmpty(t, insights.Weaknesses, "heuristic output, not the invalid model output")
}

func TestGenerate_NilClientUsesHeuristics(t *testing.T) {
	g := NewGenerator(nil, nil)

	insights := g.Generate(context.Background(), testJob(), &types.ResumeRecord{}, testBreakdown())

	assert.NotEmpty(t, insights.Strengths)
}

func TestHeuristicInsights(t *testing.T) {
	insights := HeuristicInsights(testJob(), testBreakdown())

	assert.Contains(t, insights.Strengths[0], "Go")
	assert.Contains(t, insights.Weaknesses[0], "PostgreSQL")

	require.Len(t, insights.SkillGaps, 2)
	assert.Equal(t, "PostgreSQL", insights.SkillGaps[0].Skill)
	assert.Equal(t, 4, insights.SkillGaps[0].Importance)
	assert.Equal(t, "proficient", insights.SkillGaps[0].RequiredLevel)
	assert.Equal(t, "familiar", insights.SkillGaps[1].RequiredLevel)
	assert.NotEmpty(t, insights.SkillGaps[0].LearningPath)
}

func TestHeuristicInsights_UnrankedSkillDefaultsToCritical(t *testing.T) {
	breakdown := testBreakdown()
	breakdown.MissingSkills = []string{"Terraform"}

	insights := HeuristicInsights(testJob(), breakdown)

	require.Len(t, insights.SkillGaps, 1)
	assert.Equal(t, 5, insights.SkillGaps[0].Importance)
	assert.Equal(t, "proficient", insights.SkillGaps[0].RequiredLevel)
}

func TestHeuristicInsights_CapsSkillGaps(t *testing.T) {
	breakdown := testBreakdown()
	breakdown.MissingSkills = []string{"A", "B", "C", "D", "E"}

	insights := HeuristicInsights(testJob(), breakdown)

	assert.Len(t, insights.SkillGaps, maxHeuristicGaps)
}

func TestHeuristicInsights_PerfectMatch(t *testing.T) {
	breakdown := types.Breakdown{
		SkillsScore:     100,
		ExperienceScore: 100,
		EducationScore:  100,
		LocationScore:   100,
		MatchedSkills:   []string{"Go", "PostgreSQL", "Kubernetes"},
		MissingSkills:   []string{},
		EducationMet:    true,
	}

	insights := HeuristicInsights(testJob(), breakdown)

	assert.Empty(t, insights.Weaknesses)
	assert.Empty(t, insights.SkillGaps)
	assert.NotEmpty(t, insights.InterviewTips)
}

func TestAnalyzeResume_ModelPath(t *testing.T) {
	client := &fakeClient{response: `{"strengths": ["clear history"], "weaknesses": [], "suggestions": ["add a summary"], "skill_gaps": [], "overall_score": 140}`}
	g := NewGenerator(client, nil)

	analysis := g.AnalyzeResume(context.Background(), &types.ResumeRecord{})

	assert.Equal(t, 100, analysis.OverallScore, "score is clamped to 100")
	assert.Equal(t, []string{"clear history"}, analysis.Strengths)
	assert.False(t, analysis.LastAnalyzed.IsZero())
}

func TestAnalyzeResume_Fallback(t *testing.T) {
	client := &fakeClient{response: "not json at all"}
	g := NewGenerator(client, nil)

	record := &types.ResumeRecord{
		Profile: types.StructuredProfile{
			Skills: []string{"Go", "Python", "SQL", "Docker", "Linux"},
			Experience: []types.Experience{
				{Title: "Engineer", StartDate: "2020-01", EndDate: "2023-01"},
			},
		},
	}

	analysis := g.AnalyzeResume(context.Background(), record)

	assert.NotEmpty(t, analysis.Strengths)
	assert.Greater(t, analysis.OverallScore, 0)
	assert.False(t, analysis.LastAnalyzed.IsZero())
}

func TestHeuristicAnalysis_EmptyProfile(t *testing.T) {
	analysis := HeuristicAnalysis(&types.StructuredProfile{})

	assert.NotEmpty(t, analysis.Weaknesses)
	assert.NotEmpty(t, analysis.Suggestions)
	assert.LessOrEqual(t, analysis.OverallScore, 30)
}
