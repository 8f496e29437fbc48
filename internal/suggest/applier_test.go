package suggest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-refiner/internal/types"
)

func TestApply_ClarityRewrite(t *testing.T) {
	doc := sampleDocument()

	suggestions, err := Apply(doc, []CategorySuggestions{
		{Category: types.CategoryClarityBrevity, Suggestions: []string{"Tighten your summary"}},
	}, ModeStrict)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	s := suggestions[0]
	assert.Equal(t, "clarity_brevity_0", s.ID)
	assert.Equal(t, "summary", s.FieldPath)
	assert.Equal(t, "I have developed web applications for 5 years", s.OriginalText)
	assert.False(t, strings.HasPrefix(s.ImprovedText, "I have"))
	assert.Contains(t, strings.ToLower(s.ImprovedText), "engineered")
	assert.True(t, s.Applied)
}

func TestApply_DoesNotMutateCallerDocument(t *testing.T) {
	doc := sampleDocument()
	snapshot := doc.Clone()

	_, err := Apply(doc, []CategorySuggestions{
		{Category: types.CategoryAchievementMetrics, Suggestions: []string{"add metrics", "more metrics"}},
		{Category: types.CategoryClarityBrevity, Suggestions: []string{"tighten"}},
	}, ModeAlwaysSuggest)
	require.NoError(t, err)

	assert.Equal(t, snapshot, doc)
}

func TestApply_ImprovementNonTriviality(t *testing.T) {
	doc := sampleDocument()

	suggestions, err := Apply(doc, []CategorySuggestions{
		{Category: types.CategoryClarityBrevity, Suggestions: []string{"a", "b", "c"}},
		{Category: types.CategoryAchievementMetrics, Suggestions: []string{"metrics"}},
		{Category: types.CategorySkillsAlignment, Suggestions: []string{"soft skills"}},
	}, ModeAlwaysSuggest)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)

	for _, s := range suggestions {
		if s.Applied {
			assert.NotEqual(t, s.OriginalText, s.ImprovedText, "suggestion %s is a no-op", s.ID)
		}
	}
}

func TestApply_DuplicateCategorySectionsYieldUniqueIDs(t *testing.T) {
	doc := &types.ResumeDocument{
		Experience: []types.ExperienceEntry{
			{ID: "exp_1", Description: "Worked on backend services"},
			{ID: "exp_2", Description: "Maintained deployment tooling"},
		},
	}

	suggestions, err := Apply(doc, []CategorySuggestions{
		{Category: types.CategoryAchievementMetrics, Suggestions: []string{"Quantify your backend work"}},
		{Category: types.CategoryAchievementMetrics, Suggestions: []string{"Quantify your tooling work"}},
	}, ModeStrict)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	assert.Equal(t, "achievements_impact_metrics_0", suggestions[0].ID)
	assert.Equal(t, "achievements_impact_metrics_1", suggestions[1].ID)
}

func TestApply_DroppedSuggestionsAreNotErrors(t *testing.T) {
	doc := &types.ResumeDocument{
		Experience: []types.ExperienceEntry{
			{ID: "exp_1", Description: "Reduced costs by 15%"},
		},
	}

	// Metrics strategy declines: the only entry is already quantified.
	suggestions, err := Apply(doc, []CategorySuggestions{
		{Category: types.CategoryAchievementMetrics, Suggestions: []string{"add metrics"}},
	}, ModeStrict)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestApply_FallbackGuarantee(t *testing.T) {
	doc := sampleDocument()

	suggestions, err := Apply(doc, nil, ModeAlwaysSuggest)
	require.NoError(t, err)
	assert.NotEmpty(t, suggestions)

	for _, s := range suggestions {
		assert.Equal(t, types.CategoryClarityBrevity, s.Category)
		assert.NotEqual(t, s.OriginalText, s.ImprovedText)
		assert.NotEmpty(t, s.FieldPath)
	}
}

func TestApply_FallbackGuaranteeOnEmptyDocument(t *testing.T) {
	suggestions, err := Apply(&types.ResumeDocument{}, nil, ModeAlwaysSuggest)
	require.NoError(t, err)
	assert.NotEmpty(t, suggestions)
}

func TestApply_StrictModeReturnsEmptySet(t *testing.T) {
	doc := sampleDocument()

	suggestions, err := Apply(doc, nil, ModeStrict)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestApply_UnrecognizedCategoryHandledGenerically(t *testing.T) {
	doc := sampleDocument()

	suggestions, err := Apply(doc, []CategorySuggestions{
		{Category: types.SuggestionCategory("tone_of_voice"), Suggestions: []string{"sound more confident"}},
	}, ModeStrict)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	assert.Equal(t, "tone_of_voice_0", suggestions[0].ID)
	assert.Equal(t, "summary", suggestions[0].FieldPath)
}

func TestApply_NilDocumentIsAnError(t *testing.T) {
	_, err := Apply(nil, nil, ModeAlwaysSuggest)
	require.Error(t, err)

	var applyErr *ApplyError
	assert.ErrorAs(t, err, &applyErr)
}

func TestApply_BlankSuggestionStringsAreSkipped(t *testing.T) {
	doc := sampleDocument()

	suggestions, err := Apply(doc, []CategorySuggestions{
		{Category: types.CategoryClarityBrevity, Suggestions: []string{"", "  ", "real suggestion"}},
	}, ModeStrict)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "clarity_brevity_2", suggestions[0].ID)
}

func TestFromFeedback_PreservesOrder(t *testing.T) {
	feedback := []types.CategoryFeedback{
		{Category: types.CategoryRepetition, Section: types.FeedbackSection{Suggestions: []string{"a"}}},
		{Category: types.CategoryClarityBrevity, Section: types.FeedbackSection{Suggestions: []string{"b", "c"}}},
	}

	sets := FromFeedback(feedback)
	require.Len(t, sets, 2)
	assert.Equal(t, types.CategoryRepetition, sets[0].Category)
	assert.Equal(t, []string{"b", "c"}, sets[1].Suggestions)
}
