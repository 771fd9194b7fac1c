package types

import (
	"time"

	"github.com/google/uuid"
)

// ResumeRecord represents a stored résumé: the raw extracted text, the
// structured profile, and the embeddings computed at upload time.
// At most one record per owner has IsActive=true; activating a newer
// résumé archives the previous one. Records are never mutated in place
// except by re-analysis or a version bump.
type ResumeRecord struct {
	ID                uuid.UUID         `json:"id"`
	OwnerID           uuid.UUID         `json:"owner_id"`
	RawText           string            `json:"raw_text"`
	Profile           StructuredProfile `json:"profile"`
	FullTextEmbedding []float64         `json:"full_text_embedding,omitempty"`
	SkillsEmbedding   []float64         `json:"skills_embedding,omitempty"`
	Analysis          *Analysis         `json:"analysis,omitempty"`
	IsActive          bool              `json:"is_active"`
	Version           int               `json:"version"`
	CreatedAt         time.Time         `json:"created_at"`
}

// Analysis holds job-independent qualitative analysis of a résumé
type Analysis struct {
	Strengths    []string  `json:"strengths"`
	Weaknesses   []string  `json:"weaknesses"`
	Suggestions  []string  `json:"suggestions"`
	SkillGaps    []string  `json:"skill_gaps"`
	OverallScore int       `json:"overall_score"` // 0-100
	LastAnalyzed time.Time `json:"last_analyzed"`
}
