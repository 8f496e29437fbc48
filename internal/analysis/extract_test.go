package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "json code block",
			input: "Here you go:\n```json\n{\"score\": 80}\n```\nDone.",
			want:  `{"score": 80}`,
		},
		{
			name:  "generic code block",
			input: "```\n{\"score\": 80}\n```",
			want:  `{"score": 80}`,
		},
		{
			name:  "bare object with prose",
			input: `The result is {"score": 80, "nested": {"a": 1}} as requested`,
			want:  `{"score": 80, "nested": {"a": 1}}`,
		},
		{
			name:  "already clean",
			input: `{"score": 80}`,
			want:  `{"score": 80}`,
		},
		{
			name:  "no json at all",
			input: "nothing here",
			want:  "nothing here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.input))
		})
	}
}

func TestParseFeedbackSection_WellFormed(t *testing.T) {
	response := "```json\n" + `{
		"score": 65,
		"description": "Bullets lack metrics.",
		"positives": [],
		"negatives": ["No quantified impact"],
		"suggestions": ["Add a percentage to the first bullet", "Quantify team size"]
	}` + "\n```"

	section, err := ParseFeedbackSection(response)
	require.NoError(t, err)
	assert.Equal(t, 65, section.Score)
	assert.Len(t, section.Suggestions, 2)
}

func TestParseFeedbackSection_RejectsInvalidPayload(t *testing.T) {
	_, err := ParseFeedbackSection(`{"description": "missing score", "suggestions": []}`)
	require.Error(t, err)

	var analysisErr *Error
	assert.ErrorAs(t, err, &analysisErr)
}

func TestParseFeedbackSection_CapsSuggestionList(t *testing.T) {
	payload := `{"score": 50, "description": "x", "suggestions": [` +
		`"a","b","c","d","e","f","g","h","i","j","k","l"]}`

	section, err := ParseFeedbackSection(payload)
	require.NoError(t, err)
	assert.Len(t, section.Suggestions, 10)
}
