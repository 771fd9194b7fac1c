package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-matcher/internal/types"
)

// SaveResume stores a resume record and makes it the owner's active one.
// The previous active resume for the owner is archived in the same
// transaction, so at most one record per owner is ever active.
func (s *Store) SaveResume(ctx context.Context, record *types.ResumeRecord) error {
	profileJSON, err := json.Marshal(record.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	var analysisJSON []byte
	if record.Analysis != nil {
		analysisJSON, err = json.Marshal(record.Analysis)
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE resumes SET is_active = FALSE WHERE owner_id = $1 AND is_active`,
		record.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to archive previous resume: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO resumes (id, owner_id, raw_text, profile, full_text_embedding,
		                      skills_embedding, analysis, is_active, version, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8, $9)`,
		record.ID, record.OwnerID, record.RawText, profileJSON,
		record.FullTextEmbedding, record.SkillsEmbedding, analysisJSON,
		record.Version, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert resume: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit resume: %w", err)
	}
	record.IsActive = true
	return nil
}

// GetActiveResume retrieves the owner's active resume, or nil if none exists
func (s *Store) GetActiveResume(ctx context.Context, ownerID uuid.UUID) (*types.ResumeRecord, error) {
	var r types.ResumeRecord
	var profileJSON, analysisJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, owner_id, raw_text, profile, full_text_embedding,
		        skills_embedding, analysis, is_active, version, created_at
		 FROM resumes WHERE owner_id = $1 AND is_active`,
		ownerID,
	).Scan(&r.ID, &r.OwnerID, &r.RawText, &profileJSON, &r.FullTextEmbedding,
		&r.SkillsEmbedding, &analysisJSON, &r.IsActive, &r.Version, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active resume: %w", err)
	}

	if err := json.Unmarshal(profileJSON, &r.Profile); err != nil {
		return nil, fmt.Errorf("failed to parse resume profile: %w", err)
	}
	if analysisJSON != nil {
		_ = json.Unmarshal(analysisJSON, &r.Analysis)
	}
	return &r, nil
}

// GetResumeByID retrieves a resume by its ID, or nil if not found
func (s *Store) GetResumeByID(ctx context.Context, id uuid.UUID) (*types.ResumeRecord, error) {
	var r types.ResumeRecord
	var profileJSON, analysisJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, owner_id, raw_text, profile, full_text_embedding,
		        skills_embedding, analysis, is_active, version, created_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.OwnerID, &r.RawText, &profileJSON, &r.FullTextEmbedding,
		&r.SkillsEmbedding, &analysisJSON, &r.IsActive, &r.Version, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := json.Unmarshal(profileJSON, &r.Profile); err != nil {
		return nil, fmt.Errorf("failed to parse resume profile: %w", err)
	}
	if analysisJSON != nil {
		_ = json.Unmarshal(analysisJSON, &r.Analysis)
	}
	return &r, nil
}

// UpdateResumeAnalysis replaces the stored analysis for a resume
func (s *Store) UpdateResumeAnalysis(ctx context.Context, resumeID uuid.UUID, analysis *types.Analysis) error {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE resumes SET analysis = $1 WHERE id = $2`,
		analysisJSON, resumeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume %s not found", resumeID)
	}
	return nil
}
