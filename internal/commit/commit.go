package commit

import (
	"github.com/jonathan/resume-refiner/internal/types"
)

// Result is the value-style outcome of one commit or preview call. Failures
// never cross the component boundary as panics or errors; callers check
// Success. An empty AppliedChanges list is a valid success.
type Result struct {
	Success        bool                  `json:"success"`
	UpdatedResume  *types.ResumeDocument `json:"updated_resume,omitempty"`
	AppliedChanges []types.AppliedChange `json:"applied_changes"`
	Error          string                `json:"error,omitempty"`
}

// Apply re-applies each selected suggestion's original→improved substitution
// against a deep clone of the document, in the order given. Suggestions
// whose original text no longer matches any field are skipped silently and
// omitted from the audit list. The caller's document is never mutated, and
// identical inputs always produce identical output.
//
// Preview versus commit is caller-side policy: call Apply, inspect the
// result, and decide whether to persist it.
func Apply(doc *types.ResumeDocument, selected []types.AppliedSuggestion) Result {
	if doc == nil {
		return Result{
			Success:        false,
			AppliedChanges: []types.AppliedChange{},
			Error:          "resume document is required",
		}
	}

	working := doc.Clone()
	changes := make([]types.AppliedChange, 0, len(selected))

	for _, suggestion := range selected {
		// No-op substitutions never enter the audit trail.
		if suggestion.ImprovedText == suggestion.OriginalText {
			continue
		}

		ref, ok := locateField(working, suggestion)
		if !ok {
			continue
		}

		ref.set(working, suggestion.ImprovedText)
		changes = append(changes, types.AppliedChange{
			SuggestionID:  suggestion.ID,
			Category:      suggestion.Category,
			Field:         ref.path,
			OriginalValue: suggestion.OriginalText,
			NewValue:      suggestion.ImprovedText,
		})
	}

	return Result{
		Success:        true,
		UpdatedResume:  working,
		AppliedChanges: changes,
	}
}
