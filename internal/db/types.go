package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-refiner/internal/types"
)

// ResumeRecord is a stored resume document with its identity and timestamps.
type ResumeRecord struct {
	ID        uuid.UUID            `json:"id"`
	Document  types.ResumeDocument `json:"document"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// SuggestionSetRecord is one analysis run's worth of suggestions for a resume.
type SuggestionSetRecord struct {
	ID          uuid.UUID                 `json:"id"`
	ResumeID    uuid.UUID                 `json:"resume_id"`
	Suggestions []types.AppliedSuggestion `json:"suggestions"`
	CreatedAt   time.Time                 `json:"created_at"`
}

// ChangeRecord is the audit trail of one commit against a resume.
type ChangeRecord struct {
	ID        uuid.UUID             `json:"id"`
	ResumeID  uuid.UUID             `json:"resume_id"`
	Changes   []types.AppliedChange `json:"changes"`
	CreatedAt time.Time             `json:"created_at"`
}
