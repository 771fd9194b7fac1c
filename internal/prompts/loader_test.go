package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("scoring.json", "compare-skill-sets")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "{{.RequiredSkills}}")
	assert.Contains(t, prompt, "{{.CandidateSkills}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("scoring.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_InsightsPrompts(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet("insights.json", "generate-insights"))
		assert.NotEmpty(t, MustGet("insights.json", "analyze-resume"))
	})
}

func TestFormat(t *testing.T) {
	template := "Required skills: {{.RequiredSkills}}\nCandidate skills: {{.CandidateSkills}}"
	data := map[string]string{
		"RequiredSkills":  "Go, SQL",
		"CandidateSkills": "Go, Python",
	}

	result := Format(template, data)
	assert.Equal(t, "Required skills: Go, SQL\nCandidate skills: Go, Python", result)
}

func TestFormat_MissingKeyLeavesPlaceholder(t *testing.T) {
	template := "Hello {{.Name}}"

	result := Format(template, map[string]string{})
	assert.Equal(t, template, result)
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get("scoring.json", "compare-skill-sets")
	require.NoError(t, err)

	prompt2, err := Get("scoring.json", "compare-skill-sets")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
