package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-refiner/internal/analysis"
	"github.com/jonathan/resume-refiner/internal/commit"
	"github.com/jonathan/resume-refiner/internal/convert"
	"github.com/jonathan/resume-refiner/internal/db"
	"github.com/jonathan/resume-refiner/internal/suggest"
	"github.com/jonathan/resume-refiner/internal/types"
)

// CreateResumeRequest represents the request body for POST /resumes.
// The resume payload may be in any parsed-JSON shape; it is normalized
// into the canonical document on ingestion.
type CreateResumeRequest struct {
	Resume map[string]any `json:"resume" validate:"required"`
}

// ResumeResponse represents a stored resume
type ResumeResponse struct {
	ID        string               `json:"id"`
	Resume    types.ResumeDocument `json:"resume"`
	CreatedAt string               `json:"created_at"`
	UpdatedAt string               `json:"updated_at"`
}

// AnalyzeResponse represents the response for POST /resumes/{id}/analyze
type AnalyzeResponse struct {
	ResumeID    string                    `json:"resume_id"`
	Feedback    []types.CategoryFeedback  `json:"feedback"`
	Suggestions []types.AppliedSuggestion `json:"suggestions"`
}

// SuggestionSetResponse represents the latest suggestion set for a resume
type SuggestionSetResponse struct {
	ResumeID    string                    `json:"resume_id"`
	Suggestions []types.AppliedSuggestion `json:"suggestions"`
	CreatedAt   string                    `json:"created_at"`
}

// CommitRequest represents the request body for preview and commit.
// Either full suggestion records or IDs referencing the latest suggestion
// set must be provided.
type CommitRequest struct {
	Suggestions   []types.AppliedSuggestion `json:"suggestions,omitempty"`
	SuggestionIDs []string                  `json:"suggestion_ids,omitempty"`
}

// ChangesResponse represents the commit audit history for a resume
type ChangesResponse struct {
	ResumeID string            `json:"resume_id"`
	History  []db.ChangeRecord `json:"history"`
}

// resumeIDFromPath parses the {id} path segment.
func resumeIDFromPath(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func resumeResponse(record *db.ResumeRecord) ResumeResponse {
	return ResumeResponse{
		ID:        record.ID.String(),
		Resume:    record.Document,
		CreatedAt: record.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: record.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// handleCreateResume ingests a resume payload in any recognized shape
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	var req CreateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume is required")
		return
	}

	doc := convert.ToResumeDocument(req.Resume)

	record, err := s.store.CreateResume(r.Context(), *doc)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store resume: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, resumeResponse(record))
}

// handleGetResume returns a stored resume by ID
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, ok := resumeIDFromPath(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	record, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch resume: "+err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, resumeResponse(record))
}

// handleAnalyzeResume runs AI analysis over the resume and stores the
// resulting suggestion set
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	if s.analyzer == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Analysis is not configured: missing API key")
		return
	}

	id, ok := resumeIDFromPath(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	record, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch resume: "+err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	resumeText := analysis.BuildResumeText(&record.Document)
	feedback, err := s.analyzer.AnalyzeResume(r.Context(), resumeText)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Analysis failed: "+err.Error())
		return
	}

	suggestions, err := suggest.Apply(&record.Document, suggest.FromFeedback(feedback), s.mode)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to apply suggestions: "+err.Error())
		return
	}

	if _, err := s.store.SaveSuggestionSet(r.Context(), id, suggestions); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save suggestions: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		ResumeID:    id.String(),
		Feedback:    feedback,
		Suggestions: suggestions,
	})
}

// handleGetSuggestions returns the most recent suggestion set for a resume
func (s *Server) handleGetSuggestions(w http.ResponseWriter, r *http.Request) {
	id, ok := resumeIDFromPath(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	set, err := s.store.GetLatestSuggestionSet(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch suggestions: "+err.Error())
		return
	}
	if set == nil {
		s.errorResponse(w, http.StatusNotFound, "No suggestions found for resume")
		return
	}

	s.jsonResponse(w, http.StatusOK, SuggestionSetResponse{
		ResumeID:    id.String(),
		Suggestions: set.Suggestions,
		CreatedAt:   set.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// selectSuggestions resolves a commit request into concrete suggestion
// records, looking up IDs against the latest stored suggestion set.
func (s *Server) selectSuggestions(r *http.Request, id uuid.UUID, req CommitRequest) ([]types.AppliedSuggestion, int, string) {
	if len(req.Suggestions) > 0 {
		return req.Suggestions, 0, ""
	}
	if len(req.SuggestionIDs) == 0 {
		return nil, http.StatusBadRequest, "Either suggestions or suggestion_ids is required"
	}

	set, err := s.store.GetLatestSuggestionSet(r.Context(), id)
	if err != nil {
		return nil, http.StatusInternalServerError, "Failed to fetch suggestions: " + err.Error()
	}
	if set == nil {
		return nil, http.StatusNotFound, "No suggestions found for resume"
	}

	wanted := make(map[string]bool, len(req.SuggestionIDs))
	for _, sid := range req.SuggestionIDs {
		wanted[sid] = true
	}

	var selected []types.AppliedSuggestion
	for _, suggestion := range set.Suggestions {
		if wanted[suggestion.ID] {
			selected = append(selected, suggestion)
			delete(wanted, suggestion.ID)
		}
	}
	if len(wanted) > 0 {
		return nil, http.StatusBadRequest, "Unknown suggestion IDs in request"
	}

	return selected, 0, ""
}

// handlePreviewCommit applies selected suggestions without persisting
func (s *Server) handlePreviewCommit(w http.ResponseWriter, r *http.Request) {
	id, ok := resumeIDFromPath(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	var req CommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	record, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch resume: "+err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	selected, status, msg := s.selectSuggestions(r, id, req)
	if status != 0 {
		s.errorResponse(w, status, msg)
		return
	}

	result := commit.Apply(&record.Document, selected)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleCommit applies selected suggestions and persists the updated
// resume together with its audit record
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	id, ok := resumeIDFromPath(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	var req CommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	record, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch resume: "+err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	selected, status, msg := s.selectSuggestions(r, id, req)
	if status != 0 {
		s.errorResponse(w, status, msg)
		return
	}

	result := commit.Apply(&record.Document, selected)
	if !result.Success {
		s.jsonResponse(w, http.StatusUnprocessableEntity, result)
		return
	}

	if _, err := s.store.UpdateResume(r.Context(), id, *result.UpdatedResume); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to persist resume: "+err.Error())
		return
	}
	if len(result.AppliedChanges) > 0 {
		if _, err := s.store.SaveAppliedChanges(r.Context(), id, result.AppliedChanges); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to record changes: "+err.Error())
			return
		}
	}

	log.Printf("Committed %d change(s) to resume %s", len(result.AppliedChanges), id)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleListChanges returns the commit audit history for a resume
func (s *Server) handleListChanges(w http.ResponseWriter, r *http.Request) {
	id, ok := resumeIDFromPath(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	record, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch resume: "+err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	history, err := s.store.ListAppliedChanges(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch change history: "+err.Error())
		return
	}
	if history == nil {
		history = []db.ChangeRecord{}
	}

	s.jsonResponse(w, http.StatusOK, ChangesResponse{
		ResumeID: id.String(),
		History:  history,
	})
}
