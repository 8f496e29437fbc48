package db

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-refiner/internal/types"
)

// MemoryStore is an in-process Store used when no database URL is configured.
// It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	resumes map[uuid.UUID]*ResumeRecord
	sets    map[uuid.UUID][]SuggestionSetRecord
	changes map[uuid.UUID][]ChangeRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		resumes: make(map[uuid.UUID]*ResumeRecord),
		sets:    make(map[uuid.UUID][]SuggestionSetRecord),
		changes: make(map[uuid.UUID][]ChangeRecord),
	}
}

func (s *MemoryStore) CreateResume(_ context.Context, doc types.ResumeDocument) (*ResumeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	record := &ResumeRecord{
		ID:        uuid.New(),
		Document:  *doc.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.resumes[record.ID] = record

	return cloneResumeRecord(record), nil
}

func (s *MemoryStore) GetResume(_ context.Context, id uuid.UUID) (*ResumeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.resumes[id]
	if !ok {
		return nil, nil
	}
	return cloneResumeRecord(record), nil
}

func (s *MemoryStore) UpdateResume(_ context.Context, id uuid.UUID, doc types.ResumeDocument) (*ResumeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.resumes[id]
	if !ok {
		return nil, nil
	}
	record.Document = *doc.Clone()
	record.UpdatedAt = time.Now().UTC()

	return cloneResumeRecord(record), nil
}

func (s *MemoryStore) SaveSuggestionSet(_ context.Context, resumeID uuid.UUID, suggestions []types.AppliedSuggestion) (*SuggestionSetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := SuggestionSetRecord{
		ID:          uuid.New(),
		ResumeID:    resumeID,
		Suggestions: append([]types.AppliedSuggestion(nil), suggestions...),
		CreatedAt:   time.Now().UTC(),
	}
	s.sets[resumeID] = append(s.sets[resumeID], record)

	result := record
	result.Suggestions = append([]types.AppliedSuggestion(nil), record.Suggestions...)
	return &result, nil
}

func (s *MemoryStore) GetLatestSuggestionSet(_ context.Context, resumeID uuid.UUID) (*SuggestionSetRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sets := s.sets[resumeID]
	if len(sets) == 0 {
		return nil, nil
	}
	latest := sets[len(sets)-1]
	latest.Suggestions = append([]types.AppliedSuggestion(nil), latest.Suggestions...)
	return &latest, nil
}

func (s *MemoryStore) SaveAppliedChanges(_ context.Context, resumeID uuid.UUID, changes []types.AppliedChange) (*ChangeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := ChangeRecord{
		ID:        uuid.New(),
		ResumeID:  resumeID,
		Changes:   append([]types.AppliedChange(nil), changes...),
		CreatedAt: time.Now().UTC(),
	}
	s.changes[resumeID] = append(s.changes[resumeID], record)

	result := record
	result.Changes = append([]types.AppliedChange(nil), record.Changes...)
	return &result, nil
}

func (s *MemoryStore) ListAppliedChanges(_ context.Context, resumeID uuid.UUID) ([]ChangeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.changes[resumeID]
	result := make([]ChangeRecord, len(records))
	for i, record := range records {
		result[i] = record
		result[i].Changes = append([]types.AppliedChange(nil), record.Changes...)
	}
	return result, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() {}

func cloneResumeRecord(record *ResumeRecord) *ResumeRecord {
	clone := *record
	clone.Document = *record.Document.Clone()
	return &clone
}
