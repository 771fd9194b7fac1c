// Package config provides configuration loading and validation for the
// match engine CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config represents the engine configuration. Values can come from a JSON
// file, environment variables, or CLI flags; flags win, then environment,
// then file.
type Config struct {
	// Backends
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key; empty disables AI paths
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Models
	LiteModel      string `json:"lite_model,omitempty"`      // model for cheap scoring calls
	StandardModel  string `json:"standard_model,omitempty"`  // model for extraction and insights
	EmbeddingModel string `json:"embedding_model,omitempty"` // embedding model name

	// Scoring weights; must sum to 1 when set
	SkillsWeight     float64 `json:"skills_weight,omitempty" validate:"gte=0,lte=1"`
	ExperienceWeight float64 `json:"experience_weight,omitempty" validate:"gte=0,lte=1"`
	EducationWeight  float64 `json:"education_weight,omitempty" validate:"gte=0,lte=1"`
	LocationWeight   float64 `json:"location_weight,omitempty" validate:"gte=0,lte=1"`

	// Behavior
	TimeoutSeconds int  `json:"timeout_seconds,omitempty" validate:"gte=0,lte=600"`
	Parallelism    int  `json:"parallelism,omitempty" validate:"gte=0,lte=64"`
	Verbose        bool `json:"verbose,omitempty"`
	JSONLogs       bool `json:"json_logs,omitempty"`
}

const weightTolerance = 1e-9

// Load reads configuration from a JSON file. An empty path yields an empty
// config so environment and flags can fill everything in.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv fills empty fields from environment variables.
func (c *Config) applyEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.TimeoutSeconds == 0 {
		if v, err := strconv.Atoi(os.Getenv("MATCH_TIMEOUT_SECONDS")); err == nil {
			c.TimeoutSeconds = v
		}
	}
}

// Validate checks field ranges and the weight sum.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	sum := c.SkillsWeight + c.ExperienceWeight + c.EducationWeight + c.LocationWeight
	if sum != 0 && (sum < 1-weightTolerance || sum > 1+weightTolerance) {
		return fmt.Errorf("config error: scoring weights must sum to 1, got %v", sum)
	}
	return nil
}

// HasWeights reports whether the config overrides the scoring weights.
func (c *Config) HasWeights() bool {
	return c.SkillsWeight+c.ExperienceWeight+c.EducationWeight+c.LocationWeight != 0
}

// Timeout returns the configured per-match timeout, or zero when unset.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
