package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-refiner/internal/types"
)

func TestBuildCategoryPrompt_ContainsConcernAndResume(t *testing.T) {
	prompt := buildCategoryPrompt(types.CategoryRepetition, "RESUME BODY HERE")

	assert.Contains(t, prompt, "repetition_avoidance")
	assert.Contains(t, prompt, "RESUME BODY HERE")
	assert.Contains(t, prompt, `"suggestions"`)
	assert.Contains(t, prompt, "repeated verbs")
}

func TestBuildResumeText(t *testing.T) {
	doc := &types.ResumeDocument{
		BasicDetails: types.BasicDetails{
			FullName: "Jane Doe",
			Title:    "Software Engineer",
			Phone:    "555-0100",
			Email:    "jane@example.com",
		},
		Summary: "Engineer with a backend focus",
		Experience: []types.ExperienceEntry{
			{ID: "exp_1", Company: "Acme", Position: "Engineer", StartDate: "2020", EndDate: "2023", Description: "Built services"},
		},
		Education: []types.EducationEntry{
			{ID: "edu_1", Institution: "State University", Degree: "BSc", StartDate: "2016", EndDate: "2020"},
		},
		Skills: types.Skills{Kind: types.SkillsFlat, Flat: []string{"Go", "PostgreSQL"}},
	}

	text := BuildResumeText(doc)

	assert.Contains(t, text, "Name: Jane Doe")
	assert.Contains(t, text, "Contact: 555-0100 | jane@example.com")
	assert.Contains(t, text, "Engineer with a backend focus")
	assert.Contains(t, text, "Engineer, Acme (2020 - 2023)")
	assert.Contains(t, text, "BSc, State University")
	assert.Contains(t, text, "Go, PostgreSQL")
}

func TestBuildResumeText_EmptyDocument(t *testing.T) {
	assert.Equal(t, "", BuildResumeText(nil))
	assert.Equal(t, "", BuildResumeText(&types.ResumeDocument{}))
}

func TestDefaultConfig_ModelFallback(t *testing.T) {
	config := DefaultConfig()
	require.NotEmpty(t, config.GetModel(TierLite))

	partial := &Config{Models: map[ModelTier]string{TierStandard: "gemini-2.5-flash"}}
	assert.Equal(t, "gemini-2.5-flash", partial.GetModel(TierLite))

	empty := &Config{}
	assert.Equal(t, "", empty.GetModel(TierLite))
}

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(t.Context(), nil, "")
	require.Error(t, err)

	var analysisErr *Error
	assert.ErrorAs(t, err, &analysisErr)
}
