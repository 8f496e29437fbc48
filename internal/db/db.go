// Package db provides PostgreSQL-backed storage for resumes, suggestion sets
// and applied-change audit records, with an in-memory fallback.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-refiner/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database and ensures the
// schema exists.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{pool: pool}
	if err := db.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return db, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS resumes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		document JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS suggestion_sets (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		resume_id UUID NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
		suggestions JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS applied_changes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		resume_id UUID NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
		changes JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_suggestion_sets_resume ON suggestion_sets(resume_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_applied_changes_resume ON applied_changes(resume_id, created_at)`,
}

func (db *DB) ensureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// CreateResume stores a new resume document and returns the full record
func (db *DB) CreateResume(ctx context.Context, doc types.ResumeDocument) (*ResumeRecord, error) {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume document: %w", err)
	}

	record := ResumeRecord{Document: doc}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (document) VALUES ($1)
		 RETURNING id, created_at, updated_at`,
		docJSON,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return &record, nil
}

// GetResume retrieves a resume by ID
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*ResumeRecord, error) {
	var record ResumeRecord
	var docJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, document, created_at, updated_at FROM resumes WHERE id = $1`,
		id,
	).Scan(&record.ID, &docJSON, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := json.Unmarshal(docJSON, &record.Document); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume document: %w", err)
	}
	return &record, nil
}

// UpdateResume replaces a stored resume document
func (db *DB) UpdateResume(ctx context.Context, id uuid.UUID, doc types.ResumeDocument) (*ResumeRecord, error) {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume document: %w", err)
	}

	record := ResumeRecord{Document: doc}
	err = db.pool.QueryRow(ctx,
		`UPDATE resumes SET document = $1, updated_at = NOW() WHERE id = $2
		 RETURNING id, created_at, updated_at`,
		docJSON, id,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return &record, nil
}

// SaveSuggestionSet stores one analysis run's suggestions for a resume
func (db *DB) SaveSuggestionSet(ctx context.Context, resumeID uuid.UUID, suggestions []types.AppliedSuggestion) (*SuggestionSetRecord, error) {
	suggJSON, err := json.Marshal(suggestions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal suggestions: %w", err)
	}

	record := SuggestionSetRecord{ResumeID: resumeID, Suggestions: suggestions}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO suggestion_sets (resume_id, suggestions) VALUES ($1, $2)
		 RETURNING id, created_at`,
		resumeID, suggJSON,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save suggestion set: %w", err)
	}
	return &record, nil
}

// GetLatestSuggestionSet retrieves the most recent suggestion set for a resume
func (db *DB) GetLatestSuggestionSet(ctx context.Context, resumeID uuid.UUID) (*SuggestionSetRecord, error) {
	var record SuggestionSetRecord
	var suggJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, resume_id, suggestions, created_at FROM suggestion_sets
		 WHERE resume_id = $1 ORDER BY created_at DESC LIMIT 1`,
		resumeID,
	).Scan(&record.ID, &record.ResumeID, &suggJSON, &record.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get suggestion set: %w", err)
	}

	if err := json.Unmarshal(suggJSON, &record.Suggestions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suggestions: %w", err)
	}
	return &record, nil
}

// SaveAppliedChanges stores the audit record of one commit
func (db *DB) SaveAppliedChanges(ctx context.Context, resumeID uuid.UUID, changes []types.AppliedChange) (*ChangeRecord, error) {
	changesJSON, err := json.Marshal(changes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal changes: %w", err)
	}

	record := ChangeRecord{ResumeID: resumeID, Changes: changes}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO applied_changes (resume_id, changes) VALUES ($1, $2)
		 RETURNING id, created_at`,
		resumeID, changesJSON,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save applied changes: %w", err)
	}
	return &record, nil
}

// ListAppliedChanges retrieves all commit audit records for a resume, oldest first
func (db *DB) ListAppliedChanges(ctx context.Context, resumeID uuid.UUID) ([]ChangeRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, resume_id, changes, created_at FROM applied_changes
		 WHERE resume_id = $1 ORDER BY created_at ASC`,
		resumeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applied changes: %w", err)
	}
	defer rows.Close()

	return scanChangeRecords(rows)
}

func scanChangeRecords(rows pgx.Rows) ([]ChangeRecord, error) {
	var records []ChangeRecord
	for rows.Next() {
		var record ChangeRecord
		var changesJSON []byte
		if err := rows.Scan(&record.ID, &record.ResumeID, &changesJSON, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan change record: %w", err)
		}
		if err := json.Unmarshal(changesJSON, &record.Changes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal changes: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read change records: %w", err)
	}
	return records, nil
}
