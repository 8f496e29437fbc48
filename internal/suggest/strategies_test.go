package suggest

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-refiner/internal/types"
)

func sampleDocument() *types.ResumeDocument {
	return &types.ResumeDocument{
		BasicDetails: types.BasicDetails{
			FullName: "Jane Doe",
			Title:    "Software Engineer",
			Phone:    "555-0100",
			Email:    "jane@example.com",
			LinkedIn: "linkedin.com/in/janedoe",
		},
		Summary: "I have developed web applications for 5 years",
		Experience: []types.ExperienceEntry{
			{ID: "exp_1", Company: "Acme", Description: "Worked on backend services"},
			{ID: "exp_2", Company: "Globex", Description: "Reduced latency by 40% across services"},
		},
	}
}

func TestMetricsStrategy_InjectsMetricIntoFirstUnquantifiedEntry(t *testing.T) {
	doc := sampleDocument()

	match, ok := metricsStrategy(doc, "Add measurable impact to your bullets")
	require.True(t, ok)

	assert.Equal(t, "experience[0].description", match.fieldPath)
	assert.Equal(t, "Worked on backend services", match.originalText)
	assert.Regexp(t, regexp.MustCompile(`\d+%|\d+\+`), match.improvedText)
	assert.Equal(t, match.improvedText, doc.Experience[0].Description)
}

func TestMetricsStrategy_SkipsQuantifiedEntries(t *testing.T) {
	doc := &types.ResumeDocument{
		Experience: []types.ExperienceEntry{
			{ID: "exp_1", Description: "Reduced costs by 15% year over year"},
		},
	}

	_, ok := metricsStrategy(doc, "quantify your achievements")
	assert.False(t, ok)
}

func TestMetricsStrategy_ConsecutiveSuggestionsClaimLaterEntries(t *testing.T) {
	doc := &types.ResumeDocument{
		Experience: []types.ExperienceEntry{
			{ID: "exp_1", Description: "Maintained the billing system"},
			{ID: "exp_2", Description: "Ran the data pipeline"},
		},
	}

	first, ok := metricsStrategy(doc, "add metrics")
	require.True(t, ok)
	second, ok := metricsStrategy(doc, "add metrics")
	require.True(t, ok)

	assert.Equal(t, "experience[0].description", first.fieldPath)
	assert.Equal(t, "experience[1].description", second.fieldPath)
}

func TestRepetitionStrategy_DiversifiesRepeatedVerbs(t *testing.T) {
	doc := &types.ResumeDocument{
		Experience: []types.ExperienceEntry{
			{ID: "exp_1", Description: "Developed X. Developed Y. Developed Z."},
		},
	}

	match, ok := repetitionStrategy(doc, "avoid repeating action verbs")
	require.True(t, ok)

	// First occurrence stays, later ones are replaced with synonyms.
	assert.True(t, strings.HasPrefix(match.improvedText, "Developed X."))
	assert.Equal(t, 1, strings.Count(match.improvedText, "Developed"))
	assert.Contains(t, match.improvedText, "Engineered")
	assert.Contains(t, match.improvedText, "Built")
}

func TestRepetitionStrategy_NoRepeatedVerbs(t *testing.T) {
	doc := &types.ResumeDocument{
		Experience: []types.ExperienceEntry{
			{ID: "exp_1", Description: "Developed X. Launched Y."},
		},
	}

	_, ok := repetitionStrategy(doc, "avoid repetition")
	assert.False(t, ok)
}

func TestFormattingStrategy_ReformatsContactLine(t *testing.T) {
	doc := sampleDocument()

	match, ok := formattingStrategy(doc, "Put contact details on separate lines for ATS parsing")
	require.True(t, ok)

	assert.Equal(t, "basicDetails.contact", match.fieldPath)
	assert.Equal(t, "555-0100 | jane@example.com | linkedin.com/in/janedoe", match.originalText)
	assert.Equal(t, "555-0100\njane@example.com\nlinkedin.com/in/janedoe", match.improvedText)
}

func TestFormattingStrategy_DeclinesWhenSuggestionIsUnrelated(t *testing.T) {
	doc := sampleDocument()

	_, ok := formattingStrategy(doc, "Use consistent bullet indentation")
	assert.False(t, ok)
}

func TestKeywordStrategy_InsertsQuotedKeywordIntoTitle(t *testing.T) {
	doc := sampleDocument()

	match, ok := keywordStrategy(doc, `Add the keyword "Kubernetes" to your headline`)
	require.True(t, ok)

	assert.Equal(t, "basicDetails.title", match.fieldPath)
	assert.Equal(t, "Software Engineer", match.originalText)
	assert.Equal(t, "Software Engineer | Kubernetes", match.improvedText)
	assert.Equal(t, match.improvedText, doc.BasicDetails.Title)
}

func TestKeywordStrategy_FallsBackToSummaryWhenTitleHasKeyword(t *testing.T) {
	doc := sampleDocument()
	doc.BasicDetails.Title = "Kubernetes Platform Engineer"

	match, ok := keywordStrategy(doc, `Mention "Kubernetes" more prominently`)
	require.True(t, ok)

	assert.Equal(t, "summary", match.fieldPath)
	assert.Contains(t, match.improvedText, "Skilled in Kubernetes.")
}

func TestKeywordStrategy_DeclinesWithoutKeyword(t *testing.T) {
	doc := sampleDocument()

	_, ok := keywordStrategy(doc, "Improve keyword placement in general")
	assert.False(t, ok)
}

func TestSkillsAlignmentStrategy_AppendsSoftSkillSentence(t *testing.T) {
	doc := sampleDocument()

	match, ok := skillsAlignmentStrategy(doc, "Show more collaboration")
	require.True(t, ok)

	assert.Equal(t, "experience[0].description", match.fieldPath)
	assert.Contains(t, match.improvedText, "Collaborated with cross-functional teams")
	assert.True(t, strings.HasPrefix(match.improvedText, "Worked on backend services."))
}

func TestSkillsAlignmentStrategy_SkipsEntriesWithSoftSkills(t *testing.T) {
	doc := &types.ResumeDocument{
		Experience: []types.ExperienceEntry{
			{ID: "exp_1", Description: "Led a team of five and mentored juniors"},
		},
	}

	_, ok := skillsAlignmentStrategy(doc, "show leadership")
	assert.False(t, ok)
}

func TestGenericStrategy_PrefersSummary(t *testing.T) {
	doc := sampleDocument()

	match, ok := genericStrategy(doc, "some free-form advice")
	require.True(t, ok)
	assert.Equal(t, "summary", match.fieldPath)
}

func TestGenericStrategy_FallsBackToExperience(t *testing.T) {
	doc := sampleDocument()
	doc.Summary = ""

	match, ok := genericStrategy(doc, "some free-form advice")
	require.True(t, ok)
	assert.Equal(t, "experience[0].description", match.fieldPath)
}
