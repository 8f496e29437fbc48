package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/resume-refiner/internal/types"
)

// Store persists resumes, suggestion sets and applied-change audit records.
// Lookup methods return (nil, nil) when no record exists.
type Store interface {
	CreateResume(ctx context.Context, doc types.ResumeDocument) (*ResumeRecord, error)
	GetResume(ctx context.Context, id uuid.UUID) (*ResumeRecord, error)
	UpdateResume(ctx context.Context, id uuid.UUID, doc types.ResumeDocument) (*ResumeRecord, error)

	SaveSuggestionSet(ctx context.Context, resumeID uuid.UUID, suggestions []types.AppliedSuggestion) (*SuggestionSetRecord, error)
	GetLatestSuggestionSet(ctx context.Context, resumeID uuid.UUID) (*SuggestionSetRecord, error)

	SaveAppliedChanges(ctx context.Context, resumeID uuid.UUID, changes []types.AppliedChange) (*ChangeRecord, error)
	ListAppliedChanges(ctx context.Context, resumeID uuid.UUID) ([]ChangeRecord, error)

	Close()
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*MemoryStore)(nil)
)
