package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-studio/internal/types"
)

const resumeColumns = `id, owner_id, document, version, created_at, updated_at`

// CreateResume stores a new document for owner at version 1 and returns the persisted copy
func (db *DB) CreateResume(ctx context.Context, ownerID uuid.UUID, doc *types.ResumeDocument) (*types.ResumeDocument, error) {
	body, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (owner_id, name, template, document)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+resumeColumns,
		ownerID, doc.Name, string(doc.Template.OrDefault()), body,
	)
	saved, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return saved, nil
}

// GetResume retrieves a document owned by ownerID. Returns nil, nil when absent.
func (db *DB) GetResume(ctx context.Context, id, ownerID uuid.UUID) (*types.ResumeDocument, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	doc, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return doc, nil
}

// UpdateResume replaces the stored document when doc.Version matches the stored version,
// bumping the version. Returns nil, nil when the document does not exist and
// *VersionConflictError when the version is stale.
func (db *DB) UpdateResume(ctx context.Context, id, ownerID uuid.UUID, doc *types.ResumeDocument) (*types.ResumeDocument, error) {
	body, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE resumes
		 SET name = $1, template = $2, document = $3, version = version + 1, updated_at = NOW()
		 WHERE id = $4 AND owner_id = $5 AND version = $6
		 RETURNING `+resumeColumns,
		doc.Name, string(doc.Template.OrDefault()), body, id, ownerID, doc.Version,
	)
	saved, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	if saved != nil {
		return saved, nil
	}

	var current int64
	err = db.pool.QueryRow(ctx,
		`SELECT version FROM resumes WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read resume version: %w", err)
	}
	return nil, &VersionConflictError{ResumeID: id, Expected: doc.Version, Actual: current}
}

// ListResumes returns the owner's documents, most recently updated first
func (db *DB) ListResumes(ctx context.Context, ownerID uuid.UUID) ([]types.ResumeSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, template, updated_at FROM resumes
		 WHERE owner_id = $1 ORDER BY updated_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	summaries := []types.ResumeSummary{}
	for rows.Next() {
		var s types.ResumeSummary
		var template string
		if err := rows.Scan(&s.ID, &s.Name, &template, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		s.Template = types.TemplateName(template).OrDefault()
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return summaries, nil
}

// DeleteResume removes a document owned by ownerID. Reports whether a row was deleted.
func (db *DB) DeleteResume(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// encodeDocument serializes the editable body of doc. Identity, version and timestamps
// live in their own columns.
func encodeDocument(doc *types.ResumeDocument) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("resume document is nil")
	}
	body := doc.Clone()
	body.ID = nil
	body.OwnerID = nil
	body.Version = 0
	body.CreatedAt = nil
	body.UpdatedAt = nil
	body.Template = body.Template.OrDefault()

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume document: %w", err)
	}
	return data, nil
}

// decodeDocument rebuilds a document from its stored body and row metadata.
func decodeDocument(body []byte, id, ownerID uuid.UUID, version int64, createdAt, updatedAt time.Time) (*types.ResumeDocument, error) {
	doc := types.NewResumeDocument()
	if err := json.Unmarshal(body, doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume document: %w", err)
	}
	doc.ID = &id
	doc.OwnerID = &ownerID
	doc.Version = version
	doc.CreatedAt = &createdAt
	doc.UpdatedAt = &updatedAt
	return doc, nil
}

func scanResume(row pgx.Row) (*types.ResumeDocument, error) {
	var (
		id, ownerID          uuid.UUID
		body                 []byte
		version              int64
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &ownerID, &body, &version, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return decodeDocument(body, id, ownerID, version, createdAt, updatedAt)
}
