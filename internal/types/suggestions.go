// Package types provides type definitions for structured data used throughout the resume-refiner system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SuggestionCategory tags an improvement suggestion with the concern it
// addresses. The set of known categories is closed, but unrecognized values
// are carried through verbatim and handled generically, never rejected.
type SuggestionCategory string

// Known suggestion categories produced by the analysis service.
const (
	CategoryClarityBrevity     SuggestionCategory = "clarity_brevity"
	CategoryAchievementMetrics SuggestionCategory = "achievements_impact_metrics"
	CategoryFormattingATS      SuggestionCategory = "formatting_layout_ats"
	CategoryKeywordUsage       SuggestionCategory = "keyword_usage_placement"
	CategoryRepetition         SuggestionCategory = "repetition_avoidance"
	CategorySkillsAlignment    SuggestionCategory = "skills_match_alignment"
)

// KnownCategories lists the recognized categories in their canonical order.
// Iteration over feedback sections follows this order so that suggestion IDs
// and field claims are deterministic.
var KnownCategories = []SuggestionCategory{
	CategoryClarityBrevity,
	CategoryAchievementMetrics,
	CategoryFormattingATS,
	CategoryKeywordUsage,
	CategoryRepetition,
	CategorySkillsAlignment,
}

// Known reports whether the category is one of the recognized cases.
func (c SuggestionCategory) Known() bool {
	for _, known := range KnownCategories {
		if c == known {
			return true
		}
	}
	return false
}

// AppliedSuggestion is a suggestion concretized into a verbatim before/after
// text pair against some document.
type AppliedSuggestion struct {
	ID           string             `json:"id"`
	Category     SuggestionCategory `json:"category"`
	OriginalText string             `json:"original_text"`
	ImprovedText string             `json:"improved_text"`
	Suggestion   string             `json:"suggestion"`
	Applied      bool               `json:"applied"`
	// FieldPath identifies the field the pair was generated against, e.g.
	// "summary" or "experience[2].description". Committing prefers this path
	// (verified against OriginalText) over value search. Legacy records
	// without a path fall back to the category search order.
	FieldPath string `json:"field_path,omitempty"`
}

// AppliedChange is the audit record of one suggestion actually committed into
// a document. Records are created only at commit time and never mutated.
type AppliedChange struct {
	SuggestionID  string             `json:"suggestion_id"`
	Category      SuggestionCategory `json:"category"`
	Field         string             `json:"field"`
	OriginalValue string             `json:"original_value"`
	NewValue      string             `json:"new_value"`
}

// FeedbackSection is one category's worth of analysis output from the
// upstream AI service. The applier consumes only Suggestions; the rest is
// surfaced to the review UI as-is.
type FeedbackSection struct {
	Score       int      `json:"score"`
	Description string   `json:"description"`
	Positives   []string `json:"positives"`
	Negatives   []string `json:"negatives"`
	Suggestions []string `json:"suggestions"`
}

// CategoryFeedback pairs a category with its section, preserving the order
// in which sections were produced.
type CategoryFeedback struct {
	Category SuggestionCategory `json:"category"`
	Section  FeedbackSection    `json:"section"`
}
