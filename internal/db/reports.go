package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-studio/internal/types"
)

// SaveAnalysis records an analysis report. resumeID is nil for unsaved documents.
func (db *DB) SaveAnalysis(ctx context.Context, resumeID *uuid.UUID, jobDescription string, report *types.AnalysisResult) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	var jd *string
	if jobDescription != "" {
		jd = &jobDescription
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO analyses (resume_id, job_description, report) VALUES ($1, $2, $3)`,
		resumeID, jd, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// LatestAnalysis returns the newest analysis stored for a résumé, or nil, nil.
func (db *DB) LatestAnalysis(ctx context.Context, resumeID uuid.UUID) (*types.AnalysisResult, error) {
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT report FROM analyses WHERE resume_id = $1 ORDER BY created_at DESC LIMIT 1`,
		resumeID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	var report types.AnalysisResult
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return &report, nil
}

// SaveJobMatch records a match report against a stored résumé
func (db *DB) SaveJobMatch(ctx context.Context, resumeID uuid.UUID, jobDescription string, report *types.MatchResult) (uuid.UUID, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal job match: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO job_matches (resume_id, job_description, match_percentage, report)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		resumeID, jobDescription, report.MatchPercentage, data,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save job match: %w", err)
	}
	return id, nil
}

// ListJobMatches returns the stored match reports of a résumé, newest first
func (db *DB) ListJobMatches(ctx context.Context, resumeID uuid.UUID) ([]JobMatchRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, resume_id, job_description, report, created_at
		 FROM job_matches WHERE resume_id = $1 ORDER BY created_at DESC`,
		resumeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job matches: %w", err)
	}
	defer rows.Close()

	var records []JobMatchRecord
	for rows.Next() {
		var rec JobMatchRecord
		var data []byte
		if err := rows.Scan(&rec.ID, &rec.ResumeID, &rec.JobDescription, &data, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job match: %w", err)
		}
		rec.Report = &types.MatchResult{}
		if err := json.Unmarshal(data, rec.Report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal job match: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
