package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-matcher/internal/types"
)

// UpsertMatch stores a match result. Exactly one row exists per
// (candidate, job) pair; recomputation replaces score, breakdown and
// insights in place and preserves the candidate's status.
func (s *Store) UpsertMatch(ctx context.Context, match *types.MatchResult) error {
	breakdownJSON, err := json.Marshal(match.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal breakdown: %w", err)
	}
	insightsJSON, err := json.Marshal(match.Insights)
	if err != nil {
		return fmt.Errorf("failed to marshal insights: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO matches (candidate_id, job_id, resume_id, overall_score,
		                      breakdown, insights, status, computed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (candidate_id, job_id) DO UPDATE SET
		     resume_id = $3, overall_score = $4, breakdown = $5,
		     insights = $6, computed_at = $8`,
		match.CandidateID, match.JobID, match.ResumeID, match.OverallScore,
		breakdownJSON, insightsJSON, match.Status, match.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert match: %w", err)
	}
	return nil
}

// GetMatch retrieves the match for a (candidate, job) pair, or nil if none
func (s *Store) GetMatch(ctx context.Context, candidateID, jobID uuid.UUID) (*types.MatchResult, error) {
	var m types.MatchResult
	var breakdownJSON, insightsJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT candidate_id, job_id, resume_id, overall_score, breakdown,
		        insights, status, computed_at
		 FROM matches WHERE candidate_id = $1 AND job_id = $2`,
		candidateID, jobID,
	).Scan(&m.CandidateID, &m.JobID, &m.ResumeID, &m.OverallScore,
		&breakdownJSON, &insightsJSON, &m.Status, &m.ComputedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	if breakdownJSON != nil {
		_ = json.Unmarshal(breakdownJSON, &m.Breakdown)
	}
	if insightsJSON != nil {
		_ = json.Unmarshal(insightsJSON, &m.Insights)
	}
	return &m, nil
}

// ListMatches retrieves a candidate's matches at or above a minimum score,
// best first
func (s *Store) ListMatches(ctx context.Context, candidateID uuid.UUID, minScore int) ([]*types.MatchResult, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT candidate_id, job_id, resume_id, overall_score, breakdown,
		        insights, status, computed_at
		 FROM matches
		 WHERE candidate_id = $1 AND overall_score >= $2
		 ORDER BY overall_score DESC, computed_at DESC`,
		candidateID, minScore,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []*types.MatchResult
	for rows.Next() {
		var m types.MatchResult
		var breakdownJSON, insightsJSON []byte
		if err := rows.Scan(&m.CandidateID, &m.JobID, &m.ResumeID, &m.OverallScore,
			&breakdownJSON, &insightsJSON, &m.Status, &m.ComputedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		if breakdownJSON != nil {
			_ = json.Unmarshal(breakdownJSON, &m.Breakdown)
		}
		if insightsJSON != nil {
			_ = json.Unmarshal(insightsJSON, &m.Insights)
		}
		matches = append(matches, &m)
	}
	return matches, rows.Err()
}

// UpdateMatchStatus moves a match through its lifecycle
func (s *Store) UpdateMatchStatus(ctx context.Context, candidateID, jobID uuid.UUID, status types.MatchStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE matches SET status = $1 WHERE candidate_id = $2 AND job_id = $3`,
		status, candidateID, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to update match status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("match not found for candidate %s and job %s", candidateID, jobID)
	}
	return nil
}
