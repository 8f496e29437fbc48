package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-refiner/internal/config"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadResumeDocument(t *testing.T) {
	path := writeTempFile(t, "resume.json", `{
		"full_name": "Jane Doe",
		"job_title": "Engineer",
		"summary": "Backend engineer."
	}`)

	doc, err := loadResumeDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", doc.BasicDetails.FullName)
	assert.Equal(t, "Engineer", doc.BasicDetails.Title)
	assert.Equal(t, "Backend engineer.", doc.Summary)
}

func TestLoadResumeDocument_InvalidJSON(t *testing.T) {
	path := writeTempFile(t, "resume.json", "{ not json")

	_, err := loadResumeDocument(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse resume JSON")
}

func TestLoadResumeDocument_MissingFile(t *testing.T) {
	_, err := loadResumeDocument(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

const suggestionSetJSON = `{
	"suggestions": [
		{"id": "clarity_brevity_0", "category": "clarity_brevity", "original_text": "a", "improved_text": "b", "applied": true},
		{"id": "keyword_usage_placement_0", "category": "keyword_usage_placement", "original_text": "c", "improved_text": "d", "applied": true}
	]
}`

func TestLoadSuggestionSet_All(t *testing.T) {
	path := writeTempFile(t, "suggestions.json", suggestionSetJSON)

	suggestions, err := loadSuggestionSet(path, "")
	require.NoError(t, err)
	assert.Len(t, suggestions, 2)
}

func TestLoadSuggestionSet_BareArray(t *testing.T) {
	path := writeTempFile(t, "suggestions.json",
		`[{"id": "clarity_brevity_0", "category": "clarity_brevity", "original_text": "a", "improved_text": "b", "applied": true}]`)

	suggestions, err := loadSuggestionSet(path, "")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "clarity_brevity_0", suggestions[0].ID)
}

func TestLoadSuggestionSet_Select(t *testing.T) {
	path := writeTempFile(t, "suggestions.json", suggestionSetJSON)

	suggestions, err := loadSuggestionSet(path, "keyword_usage_placement_0")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "keyword_usage_placement_0", suggestions[0].ID)
}

func TestLoadSuggestionSet_UnknownID(t *testing.T) {
	path := writeTempFile(t, "suggestions.json", suggestionSetJSON)

	_, err := loadSuggestionSet(path, "clarity_brevity_0, nope_7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope_7")
}

// testApplyCommand rebinds the apply flags onto a fresh command so flag
// Changed state does not leak between tests.
func testApplyCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&applyConfigPath, "config", "", "")
	cmd.Flags().StringVarP(&applyResume, "resume", "r", "", "")
	cmd.Flags().StringVarP(&applySuggestions, "suggestions", "s", "", "")
	cmd.Flags().StringVarP(&applyOut, "out", "o", "", "")
	cmd.Flags().BoolVarP(&applyVerbose, "verbose", "v", false, "")
	return cmd
}

func TestLoadApplyConfig_FromConfigFile(t *testing.T) {
	resumePath := writeTempFile(t, "resume.json", `{"summary": "x"}`)
	suggestionsPath := writeTempFile(t, "suggestions.json", `{"suggestions": []}`)
	configPath := writeTempFile(t, "config.json", fmt.Sprintf(
		`{"resume": %q, "suggestions": %q, "output": "from-config.json"}`,
		resumePath, suggestionsPath))

	cmd := testApplyCommand()
	require.NoError(t, cmd.Flags().Set("config", configPath))

	cfg, err := loadApplyConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, resumePath, cfg.Resume)
	assert.Equal(t, suggestionsPath, cfg.Suggestions)
	assert.Equal(t, "from-config.json", cfg.Output)
}

func TestLoadApplyConfig_FlagOverridesConfig(t *testing.T) {
	configResume := writeTempFile(t, "config-resume.json", `{}`)
	flagResume := writeTempFile(t, "flag-resume.json", `{}`)
	suggestionsPath := writeTempFile(t, "suggestions.json", `{"suggestions": []}`)
	configPath := writeTempFile(t, "config.json", fmt.Sprintf(
		`{"resume": %q, "suggestions": %q}`, configResume, suggestionsPath))

	cmd := testApplyCommand()
	require.NoError(t, cmd.Flags().Set("config", configPath))
	require.NoError(t, cmd.Flags().Set("resume", flagResume))

	cfg, err := loadApplyConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, flagResume, cfg.Resume)
}

func TestLoadApplyConfig_DefaultOutputPath(t *testing.T) {
	resumePath := writeTempFile(t, "resume.json", `{}`)
	suggestionsPath := writeTempFile(t, "suggestions.json", `{"suggestions": []}`)

	cmd := testApplyCommand()
	require.NoError(t, cmd.Flags().Set("resume", resumePath))
	require.NoError(t, cmd.Flags().Set("suggestions", suggestionsPath))

	cfg, err := loadApplyConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "resume.updated.json"), cfg.Output)
}

func TestLoadApplyConfig_MissingInputs(t *testing.T) {
	cmd := testApplyCommand()

	_, err := loadApplyConfig(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--resume is required")

	require.NoError(t, cmd.Flags().Set("resume", writeTempFile(t, "resume.json", `{}`)))
	_, err = loadApplyConfig(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--suggestions is required")
}

func TestSuggestionOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "suggestions.json"), suggestionOutputPath(config.Config{}))
	assert.Equal(t, "custom.json", suggestionOutputPath(config.Config{Output: "custom.json"}))
}
