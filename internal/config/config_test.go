package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"api_key": "test-key",
		"database_url": "postgres://localhost/matcher",
		"skills_weight": 0.4,
		"experience_weight": 0.3,
		"education_weight": 0.2,
		"location_weight": 0.1,
		"timeout_seconds": 30
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.True(t, cfg.HasWeights())
	require.NoError(t, cfg.Validate())
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.HasWeights())
}

func TestLoad_EnvFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://env/db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
}

func TestLoad_FileWinsOverEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	path := writeConfig(t, `{"api_key": "file-key"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
}

func TestLoad_BadJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_WeightSum(t *testing.T) {
	cfg := &Config{
		SkillsWeight:     0.5,
		ExperienceWeight: 0.5,
		EducationWeight:  0.5,
		LocationWeight:   0.5,
	}
	assert.Error(t, cfg.Validate())

	cfg = &Config{
		SkillsWeight:     0.25,
		ExperienceWeight: 0.25,
		EducationWeight:  0.25,
		LocationWeight:   0.25,
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Ranges(t *testing.T) {
	cfg := &Config{TimeoutSeconds: 10000}
	assert.Error(t, cfg.Validate())

	cfg = &Config{SkillsWeight: 1.5}
	assert.Error(t, cfg.Validate())
}
