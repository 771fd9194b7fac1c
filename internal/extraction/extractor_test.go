package extraction

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-matcher/internal/llm"
)

// fakeClient returns a canned response or error for every call
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

const sampleResume = `Jane Doe
jane@example.com
Skills: Python, SQL
Experience:
- Engineer at Acme`

func TestExtract_PrimaryPath(t *testing.T) {
	client := &fakeClient{response: `{
		"personal_info": {"name": "Jane Doe", "email": "jane@example.com"},
		"summary": "Backend engineer",
		"experience": [{"title": "Engineer", "company": "Acme", "start_date": "2020-01", "end_date": "2023-06"}],
		"education": [],
		"skills": ["Python", "SQL"]
	}`}
	extractor := NewExtractor(client, nil)

	profile := extractor.Extract(context.Background(), sampleResume)

	require.NotNil(t, profile)
	assert.Equal(t, "Jane Doe", profile.PersonalInfo.Name)
	assert.Equal(t, "Backend engineer", profile.Summary)
	assert.Equal(t, []string{"Python", "SQL"}, profile.Skills)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Acme", profile.Experience[0].Company)
}

func TestExtract_FallsBackOnBackendError(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("quota exceeded for model")}
	extractor := NewExtractor(client, nil)

	profile := extractor.Extract(context.Background(), sampleResume)

	require.NotNil(t, profile)
	// Rule-based result: sections parsed, contacts from regexes
	assert.Equal(t, "Jane Doe", profile.PersonalInfo.Name)
	assert.Equal(t, "jane@example.com", profile.PersonalInfo.Email)
	assert.Equal(t, []string{"Python", "SQL"}, profile.Skills)
	// Single attempt, no retry
	assert.Equal(t, 1, client.calls)
}

func TestExtract_FallsBackOnMalformedResponse(t *testing.T) {
	client := &fakeClient{response: "I could not process this resume, sorry!"}
	extractor := NewExtractor(client, nil)

	profile := extractor.Extract(context.Background(), sampleResume)

	require.NotNil(t, profile)
	assert.Equal(t, []string{"Python", "SQL"}, profile.Skills)
}

func TestExtract_FallsBackOnSchemaViolation(t *testing.T) {
	// Valid JSON, but skills has the wrong type
	client := &fakeClient{response: `{"personal_info": {}, "skills": "Python"}`}
	extractor := NewExtractor(client, nil)

	profile := extractor.Extract(context.Background(), sampleResume)

	require.NotNil(t, profile)
	assert.Equal(t, []string{"Python", "SQL"}, profile.Skills)
}

func TestExtract_NilClientUsesRules(t *testing.T) {
	extractor := NewExtractor(nil, nil)

	profile := extractor.Extract(context.Background(), sampleResume)

	require.NotNil(t, profile)
	assert.Equal(t, []string{"Python", "SQL"}, profile.Skills)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Engineer at Acme", profile.Experience[0].Title)
}

func TestExtract_MergePrefersRuleContactsOnDisagreement(t *testing.T) {
	client := &fakeClient{response: `{
		"personal_info": {"name": "Jane Doe", "email": "wrong@example.com"},
		"skills": ["Python"]
	}`}
	extractor := NewExtractor(client, nil)

	profile := extractor.Extract(context.Background(), sampleResume)

	// Regexes found jane@example.com; the rule-based value is the tiebreak
	assert.Equal(t, "jane@example.com", profile.PersonalInfo.Email)
}

func TestExtract_MergeFillsMissingModelContacts(t *testing.T) {
	client := &fakeClient{response: `{
		"personal_info": {"name": "Jane Doe"},
		"skills": ["Python"]
	}`}
	extractor := NewExtractor(client, nil)

	profile := extractor.Extract(context.Background(), sampleResume)

	assert.Equal(t, "jane@example.com", profile.PersonalInfo.Email)
}

func TestExtract_NeverReturnsNilSlices(t *testing.T) {
	client := &fakeClient{response: `{"personal_info": {"name": "X"}, "skills": []}`}
	extractor := NewExtractor(client, nil)

	profile := extractor.Extract(context.Background(), "X")

	assert.NotNil(t, profile.Skills)
	assert.NotNil(t, profile.Experience)
	assert.NotNil(t, profile.Education)
	assert.NotNil(t, profile.Certifications)
	assert.NotNil(t, profile.Projects)
	assert.NotNil(t, profile.Languages)
}
