package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-matcher/internal/types"
)

// UpsertJob creates or updates a job posting by ID
func (s *Store) UpsertJob(ctx context.Context, job *types.JobPosting) error {
	requirementsJSON, err := json.Marshal(job.Requirements)
	if err != nil {
		return fmt.Errorf("failed to marshal requirements: %w", err)
	}
	locationJSON, err := json.Marshal(job.Location)
	if err != nil {
		return fmt.Errorf("failed to marshal location: %w", err)
	}
	compensationJSON, err := json.Marshal(job.Compensation)
	if err != nil {
		return fmt.Errorf("failed to marshal compensation: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO job_postings (id, title, company, description, location,
		                           requirements, compensation, embedding)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		     title = $2, company = $3, description = $4, location = $5,
		     requirements = $6, compensation = $7, embedding = $8,
		     updated_at = NOW()`,
		job.ID, job.Title, job.Company, job.Description, locationJSON,
		requirementsJSON, compensationJSON, job.Embedding,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert job posting: %w", err)
	}
	return nil
}

// GetJob retrieves a job posting by ID, or nil if not found
func (s *Store) GetJob(ctx context.Context, id uuid.UUID) (*types.JobPosting, error) {
	var j types.JobPosting
	var locationJSON, requirementsJSON, compensationJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, title, company, description, location, requirements,
		        compensation, embedding
		 FROM job_postings WHERE id = $1`,
		id,
	).Scan(&j.ID, &j.Title, &j.Company, &j.Description, &locationJSON,
		&requirementsJSON, &compensationJSON, &j.Embedding)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}

	if locationJSON != nil {
		_ = json.Unmarshal(locationJSON, &j.Location)
	}
	if requirementsJSON != nil {
		_ = json.Unmarshal(requirementsJSON, &j.Requirements)
	}
	if compensationJSON != nil {
		_ = json.Unmarshal(compensationJSON, &j.Compensation)
	}
	return &j, nil
}

// ListJobs retrieves job postings in insertion order, newest first
func (s *Store) ListJobs(ctx context.Context, limit int) ([]*types.JobPosting, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, title, company, description, location, requirements,
		        compensation, embedding
		 FROM job_postings ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var jobs []*types.JobPosting
	for rows.Next() {
		var j types.JobPosting
		var locationJSON, requirementsJSON, compensationJSON []byte
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Description,
			&locationJSON, &requirementsJSON, &compensationJSON, &j.Embedding); err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		if locationJSON != nil {
			_ = json.Unmarshal(locationJSON, &j.Location)
		}
		if requirementsJSON != nil {
			_ = json.Unmarshal(requirementsJSON, &j.Requirements)
		}
		if compensationJSON != nil {
			_ = json.Unmarshal(compensationJSON, &j.Compensation)
		}
		jobs = append(jobs, &j)
	}
	return jobs, rows.Err()
}
