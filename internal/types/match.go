package types

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus tracks the lifecycle of a match from the candidate's perspective
type MatchStatus string

// Match status values
const (
	MatchStatusNew         MatchStatus = "new"
	MatchStatusViewed      MatchStatus = "viewed"
	MatchStatusApplied     MatchStatus = "applied"
	MatchStatusShortlisted MatchStatus = "shortlisted"
	MatchStatusRejected    MatchStatus = "rejected"
	MatchStatusHired       MatchStatus = "hired"
)

// MatchResult represents the computed compatibility between one candidate
// résumé and one job posting. Exactly one MatchResult exists per
// (candidate, job) pair; recomputation updates score, breakdown and
// insights in place rather than duplicating.
type MatchResult struct {
	CandidateID  uuid.UUID   `json:"candidate_id"`
	JobID        uuid.UUID   `json:"job_id"`
	ResumeID     uuid.UUID   `json:"resume_id"`
	OverallScore int         `json:"overall_score"` // 0-100
	Breakdown    Breakdown   `json:"breakdown"`
	Insights     Insights    `json:"insights"`
	Status       MatchStatus `json:"status"`
	ComputedAt   time.Time   `json:"computed_at"`
}

// Breakdown holds the per-dimension sub-scores plus the supporting
// evidence behind them. The skill lists are computed lexically even when
// the skills score itself came from embeddings, so the match stays
// explainable.
type Breakdown struct {
	SkillsScore     int `json:"skills_score"`     // 0-100
	ExperienceScore int `json:"experience_score"` // 0-100
	EducationScore  int `json:"education_score"`  // 0-100
	LocationScore   int `json:"location_score"`   // 0-100

	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	ExtraSkills   []string `json:"extra_skills"`

	RequiredYears  int  `json:"required_years"`
	CandidateYears int  `json:"candidate_years"`
	ExperienceGap  int  `json:"experience_gap"` // positive shortfall in years, 0 if met
	EducationMet   bool `json:"education_met"`
	JobRemote      bool `json:"job_remote"`
	LocationMatch  bool `json:"location_match"`
}

// Insights holds the qualitative analysis attached to a match
type Insights struct {
	Strengths       []string   `json:"strengths"`
	Weaknesses      []string   `json:"weaknesses"`
	Recommendations []string   `json:"recommendations"`
	InterviewTips   []string   `json:"interview_tips"`
	SkillGaps       []SkillGap `json:"skill_gaps"`
}

// SkillGap describes a job-required skill the candidate lacks, with a
// suggested remediation path
type SkillGap struct {
	Skill         string `json:"skill"`
	Importance    int    `json:"importance"` // 1-5
	CurrentLevel  string `json:"current_level,omitempty"`
	RequiredLevel string `json:"required_level,omitempty"`
	LearningPath  string `json:"learning_path,omitempty"`
}
