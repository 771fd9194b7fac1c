package types

import (
	"time"

	"github.com/google/uuid"
)

// JobPosting represents a job posting with structured requirements.
// Embedding, if present, is computed from the title, description and
// required skill names; it must be regenerated whenever any of those
// fields changes.
type JobPosting struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Company      string          `json:"company"`
	Location     Location        `json:"location"`
	Requirements JobRequirements `json:"requirements"`
	Compensation string          `json:"compensation,omitempty"`
	Embedding    []float64       `json:"embedding,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Location describes where a job is based
type Location struct {
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Remote bool   `json:"remote"`
}

// JobRequirements holds the structured requirements of a job posting
type JobRequirements struct {
	Skills []SkillRequirement `json:"skills"`
	// Minimum and maximum experience in years; zero MinYears means
	// no experience requirement.
	MinYears int `json:"min_years,omitempty"`
	MaxYears int `json:"max_years,omitempty"`
	// Education requirement; Degree is matched as a case-insensitive
	// substring against résumé degree strings when Required is set.
	Education EducationRequirement `json:"education"`
}

// SkillRequirement is a single required skill with an importance level
type SkillRequirement struct {
	Name       string `json:"name"`
	Importance int    `json:"importance,omitempty"` // 1-5, 5 = critical
}

// EducationRequirement describes the degree a job posting requires
type EducationRequirement struct {
	Required bool   `json:"required"`
	Degree   string `json:"degree,omitempty"` // e.g. "bachelor", "master"
}

// RequiredSkillNames returns the names of all required skills in posting order
func (j *JobPosting) RequiredSkillNames() []string {
	names := make([]string, 0, len(j.Requirements.Skills))
	for _, s := range j.Requirements.Skills {
		names = append(names, s.Name)
	}
	return names
}
