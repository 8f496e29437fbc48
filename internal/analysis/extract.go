package analysis

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-refiner/internal/schemas"
	"github.com/jonathan/resume-refiner/internal/types"
)

// ExtractJSON extracts a JSON payload from model output that may wrap it in
// markdown code blocks or surrounding prose.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)

	if idx := strings.Index(text, "```json"); idx >= 0 {
		start := idx + len("```json")
		if endIdx := strings.Index(text[start:], "```"); endIdx >= 0 {
			return strings.TrimSpace(text[start : start+endIdx])
		}
	}

	if idx := strings.Index(text, "```"); idx >= 0 {
		start := idx + len("```")
		if endIdx := strings.Index(text[start:], "```"); endIdx >= 0 {
			return strings.TrimSpace(text[start : start+endIdx])
		}
	}

	// Bare JSON object: find the matching closing brace.
	if start := strings.Index(text, "{"); start >= 0 {
		braceCount := 0
		for i := start; i < len(text); i++ {
			switch text[i] {
			case '{':
				braceCount++
			case '}':
				braceCount--
				if braceCount == 0 {
					return text[start : i+1]
				}
			}
		}
	}

	return text
}

// ParseFeedbackSection validates and unmarshals one category's feedback
// payload.
func ParseFeedbackSection(responseText string) (*types.FeedbackSection, error) {
	jsonText := ExtractJSON(responseText)

	if err := schemas.ValidateFeedbackSection(jsonText); err != nil {
		return nil, &Error{Message: "feedback payload failed schema validation", Cause: err}
	}

	var section types.FeedbackSection
	if err := json.Unmarshal([]byte(jsonText), &section); err != nil {
		return nil, &Error{Message: "failed to unmarshal feedback payload", Cause: err}
	}

	// Cap runaway suggestion lists (safety check).
	const maxSuggestions = 10
	if len(section.Suggestions) > maxSuggestions {
		section.Suggestions = section.Suggestions[:maxSuggestions]
	}

	return &section, nil
}
