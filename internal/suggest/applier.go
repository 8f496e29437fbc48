package suggest

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-refiner/internal/types"
)

// Mode controls behavior when the analysis produced zero usable suggestions.
type Mode int

const (
	// ModeAlwaysSuggest synthesizes a fallback set from the user's own
	// content so the review UI always has something to show.
	ModeAlwaysSuggest Mode = iota
	// ModeStrict returns an empty set instead of fabricating suggestions.
	ModeStrict
)

// CategorySuggestions is one category's ordered suggestion strings, in the
// order the analysis produced them.
type CategorySuggestions struct {
	Category    types.SuggestionCategory `json:"category"`
	Suggestions []string                 `json:"suggestions"`
}

// FromFeedback extracts the suggestion strings from full feedback sections,
// preserving section order.
func FromFeedback(feedback []types.CategoryFeedback) []CategorySuggestions {
	out := make([]CategorySuggestions, 0, len(feedback))
	for _, section := range feedback {
		out = append(out, CategorySuggestions{
			Category:    section.Category,
			Suggestions: section.Section.Suggestions,
		})
	}
	return out
}

// Apply converts opaque (category, suggestion) pairs into concrete
// AppliedSuggestion records against the given document. The caller's
// document is never mutated; strategies work on a deep clone so earlier
// suggestions claim earlier fields. Suggestions whose strategy declines to
// match are dropped, not errored.
func Apply(doc *types.ResumeDocument, feedback []CategorySuggestions, mode Mode) ([]types.AppliedSuggestion, error) {
	if doc == nil {
		return nil, &ApplyError{Message: "resume document is required"}
	}

	working := doc.Clone()
	applied := make([]types.AppliedSuggestion, 0)

	// Ordinals span the whole input so a category split across multiple
	// sections still yields unique IDs.
	ordinals := make(map[types.SuggestionCategory]int)

	for _, categorySet := range feedback {
		strategy := strategyFor(categorySet.Category)
		for _, suggestionText := range categorySet.Suggestions {
			index := ordinals[categorySet.Category]
			ordinals[categorySet.Category]++

			if strings.TrimSpace(suggestionText) == "" {
				continue
			}

			match, ok := strategy(working, suggestionText)
			if !ok || match.improvedText == match.originalText {
				continue
			}

			applied = append(applied, types.AppliedSuggestion{
				ID:           suggestionID(categorySet.Category, index),
				Category:     categorySet.Category,
				OriginalText: match.originalText,
				ImprovedText: match.improvedText,
				Suggestion:   suggestionText,
				Applied:      true,
				FieldPath:    match.fieldPath,
			})
		}
	}

	if len(applied) == 0 && mode == ModeAlwaysSuggest {
		applied = fallbackSuggestions(doc)
	}

	return applied, nil
}

// suggestionID derives a stable ID from the category and the suggestion's
// ordinal across all of that category's suggestions in the input.
func suggestionID(category types.SuggestionCategory, index int) string {
	return fmt.Sprintf("%s_%d", category, index)
}

const fallbackRationale = "Tighten wording to improve clarity and impact."

// fallbackSuggestions builds a fixed example set from the user's own
// summary, first experience description and title, each passed through the
// clarity transform. At least one record is always returned.
func fallbackSuggestions(doc *types.ResumeDocument) []types.AppliedSuggestion {
	var out []types.AppliedSuggestion

	add := func(fieldPath, original string) {
		improved := improveClarityForced(original)
		if improved == original {
			return
		}
		out = append(out, types.AppliedSuggestion{
			ID:           suggestionID(types.CategoryClarityBrevity, len(out)),
			Category:     types.CategoryClarityBrevity,
			OriginalText: original,
			ImprovedText: improved,
			Suggestion:   fallbackRationale,
			Applied:      true,
			FieldPath:    fieldPath,
		})
	}

	add("summary", doc.Summary)
	if len(doc.Experience) > 0 && strings.TrimSpace(doc.Experience[0].Description) != "" {
		add(experiencePath(0), doc.Experience[0].Description)
	}
	if strings.TrimSpace(doc.BasicDetails.Title) != "" {
		add("basicDetails.title", doc.BasicDetails.Title)
	}

	return out
}
