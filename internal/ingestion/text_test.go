package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_PreserveMarkdownHeadings(t *testing.T) {
	input := "# Jane Doe\n## Experience\nSenior Engineer at Initech"
	result := CleanText(input)

	assert.Contains(t, result, "# Jane Doe")
	assert.Contains(t, result, "## Experience")
	assert.Contains(t, result, "Senior Engineer at Initech")
}

func TestCleanText_PreserveBulletLists(t *testing.T) {
	input := "- Led migration to Kubernetes\n- Mentored two engineers\n* Reduced build times"
	result := CleanText(input)

	assert.Contains(t, result, "- Led migration to Kubernetes")
	assert.Contains(t, result, "- Mentored two engineers")
	assert.Contains(t, result, "* Reduced build times")
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	input := "Senior    Software    Engineer"
	result := CleanText(input)

	assert.Contains(t, result, "Senior Software Engineer")
	assert.NotContains(t, result, "    ")
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	input := "Summary\n\n\n\n\nExperience"
	result := CleanText(input)

	assert.NotContains(t, result, "\n\n\n")
	assert.Contains(t, result, "\n\n")
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	input := "Line 1\r\nLine 2\rLine 3\nLine 4"
	result := CleanText(input)

	assert.NotContains(t, result, "\r")
	assert.Contains(t, result, "\n")
}

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n\t\n  "))
}

func TestIsBulletLine(t *testing.T) {
	assert.True(t, isBulletLine("- item"))
	assert.True(t, isBulletLine("  * item"))
	assert.True(t, isBulletLine("• item"))
	assert.False(t, isBulletLine("plain text"))
	assert.False(t, isBulletLine("-not a bullet"))
}

func TestReadResumeText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\r\n\r\n\r\n\r\nSenior   Engineer"), 0644))

	text, err := ReadResumeText(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nSenior Engineer", text)
}

func TestReadResumeText_MissingFile(t *testing.T) {
	_, err := ReadResumeText(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
