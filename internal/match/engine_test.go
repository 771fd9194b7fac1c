package match

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/job-matcher/internal/embedding"
	"github.com/jonathan/job-matcher/internal/scoring"
	"github.com/jonathan/job-matcher/internal/types"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(nil, nil, zaptest.NewLogger(t))
}

func testResume() *types.ResumeRecord {
	return &types.ResumeRecord{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Profile: types.StructuredProfile{
			Skills: []string{"Python", "Go"},
			Experience: []types.Experience{
				{Title: "Engineer", StartDate: "2021-01", EndDate: "2023-01"},
			},
		},
		IsActive: true,
		Version:  1,
	}
}

func testJob() *types.JobPosting {
	return &types.JobPosting{
		ID:    uuid.New(),
		Title: "Backend Engineer",
		Requirements: types.JobRequirements{
			Skills: []types.SkillRequirement{
				{Name: "Python", Importance: 5},
				{Name: "Go", Importance: 4},
			},
			MinYears: 4,
		},
		Location: types.Location{City: "Austin", State: "TX"},
	}
}

func TestComputeMatch_WeightedAggregation(t *testing.T) {
	engine := testEngine(t)

	// skills 100 (both required skills present), experience 50 (2 of 4
	// years), education 100 (not required), location 50 (candidate
	// location unknown): 40 + 15 + 20 + 5 = 80.
	result, err := engine.ComputeMatch(context.Background(), testResume(), testJob())
	require.NoError(t, err)

	assert.Equal(t, 100, result.Breakdown.SkillsScore)
	assert.Equal(t, 50, result.Breakdown.ExperienceScore)
	assert.Equal(t, 100, result.Breakdown.EducationScore)
	assert.Equal(t, 50, result.Breakdown.LocationScore)
	assert.Equal(t, 80, result.OverallScore)
}

func TestComputeMatch_Evidence(t *testing.T) {
	engine := testEngine(t)
	resume := testResume()
	resume.Profile.Skills = []string{"Python", "Docker"}

	result, err := engine.ComputeMatch(context.Background(), resume, testJob())
	require.NoError(t, err)

	b := result.Breakdown
	assert.Equal(t, []string{"Python"}, b.MatchedSkills)
	assert.Equal(t, []string{"Go"}, b.MissingSkills)
	assert.Equal(t, []string{"Docker"}, b.ExtraSkills)
	assert.Equal(t, 4, b.RequiredYears)
	assert.Equal(t, 2, b.CandidateYears)
	assert.Equal(t, 2, b.ExperienceGap)
	assert.True(t, b.EducationMet)
	assert.False(t, b.LocationMatch)
}

func TestComputeMatch_ResultMetadata(t *testing.T) {
	engine := testEngine(t)
	resume := testResume()
	job := testJob()

	result, err := engine.ComputeMatch(context.Background(), resume, job)
	require.NoError(t, err)

	assert.Equal(t, resume.OwnerID, result.CandidateID)
	assert.Equal(t, resume.ID, result.ResumeID)
	assert.Equal(t, job.ID, result.JobID)
	assert.Equal(t, types.MatchStatusNew, result.Status)
	assert.False(t, result.ComputedAt.IsZero())
	assert.NotEmpty(t, result.Insights.Strengths, "heuristic insights attached")
}

func TestComputeMatch_EmbeddingSkillsPath(t *testing.T) {
	engine := testEngine(t)
	resume := testResume()
	job := testJob()
	resume.SkillsEmbedding = []float64{0.5, 0.5, 0}
	job.Embedding = []float64{0.5, 0.5, 0}

	result, err := engine.ComputeMatch(context.Background(), resume, job)
	require.NoError(t, err)

	assert.Equal(t, 100, result.Breakdown.SkillsScore)
}

func TestComputeMatch_DimensionMismatchScoresZero(t *testing.T) {
	engine := testEngine(t)
	resume := testResume()
	job := testJob()
	resume.SkillsEmbedding = []float64{1, 0, 0}
	job.Embedding = []float64{1, 0}

	result, err := engine.ComputeMatch(context.Background(), resume, job)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Breakdown.SkillsScore,
		"mismatched vectors yield no similarity, not a crash")
	// 0 + 15 + 20 + 5
	assert.Equal(t, 40, result.OverallScore)
}

func TestComputeMatch_NilArgs(t *testing.T) {
	engine := testEngine(t)

	_, err := engine.ComputeMatch(context.Background(), nil, testJob())
	assert.Error(t, err)

	_, err = engine.ComputeMatch(context.Background(), testResume(), nil)
	assert.Error(t, err)
}

func TestWithFallback(t *testing.T) {
	engine := testEngine(t)

	score := engine.withFallback("ok", func() (int, error) { return 73, nil })
	assert.Equal(t, 73, score)

	score = engine.withFallback("errors", func() (int, error) { return 99, errors.New("backend down") })
	assert.Equal(t, 0, score)

	score = engine.withFallback("panics", func() (int, error) { panic("boom") })
	assert.Equal(t, 0, score)

	score = engine.withFallback("overflow", func() (int, error) { return 150, nil })
	assert.Equal(t, 100, score)
}

func TestParseResume(t *testing.T) {
	engine := testEngine(t)
	ownerID := uuid.New()

	text := "Jane Doe\njane@example.com\n\nSkills: Python, Go, SQL\n\nExperience\nEngineer at Acme (2021-01 - 2023-01)"

	record, err := engine.ParseResume(context.Background(), ownerID, text)
	require.NoError(t, err)

	assert.Equal(t, ownerID, record.OwnerID)
	assert.Equal(t, text, record.RawText)
	assert.Equal(t, 1, record.Version)
	assert.True(t, record.IsActive)
	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Contains(t, record.Profile.Skills, "Python")

	assert.Len(t, record.FullTextEmbedding, embedding.FallbackDimensions,
		"no backend configured, fallback embedding used")
	assert.Len(t, record.SkillsEmbedding, embedding.FallbackDimensions)
}

func TestParseResume_EmptyText(t *testing.T) {
	engine := testEngine(t)

	_, err := engine.ParseResume(context.Background(), uuid.New(), "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyResume)
}

func TestReanalyze(t *testing.T) {
	engine := testEngine(t)
	resume := testResume()

	analysis, err := engine.Reanalyze(context.Background(), resume)
	require.NoError(t, err)
	require.NotNil(t, resume.Analysis)
	assert.Equal(t, analysis, resume.Analysis)
	assert.False(t, analysis.LastAnalyzed.IsZero())
}

func TestMatchJobs(t *testing.T) {
	engine := NewEngine(nil, nil, zaptest.NewLogger(t), WithParallelism(2))
	resume := testResume()

	jobs := []*types.JobPosting{testJob(), nil, testJob()}

	results, err := engine.MatchJobs(context.Background(), resume, jobs)
	require.NoError(t, err)
	require.Len(t, results, 2, "nil job skipped, others scored")

	assert.Equal(t, jobs[0].ID, results[0].JobID, "input order preserved")
	assert.Equal(t, jobs[2].ID, results[1].JobID)
	for _, r := range results {
		assert.Equal(t, 80, r.OverallScore)
	}
}

func TestMatchJobs_Empty(t *testing.T) {
	engine := testEngine(t)

	results, err := engine.MatchJobs(context.Background(), testResume(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestWithPolicy(t *testing.T) {
	// all weight on skills makes the overall equal the skills score
	custom := scoring.DefaultPolicy()
	custom.SkillsWeight = 1.0
	custom.ExperienceWeight = 0
	custom.EducationWeight = 0
	custom.LocationWeight = 0
	engine := NewEngine(nil, nil, zaptest.NewLogger(t), WithPolicy(custom))

	result, err := engine.ComputeMatch(context.Background(), testResume(), testJob())
	require.NoError(t, err)
	assert.Equal(t, result.Breakdown.SkillsScore, result.OverallScore)
}
