package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"resume": "resume.json",
		"api_key": "test-key",
		"port": 8080,
		"strict": true,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "resume.json", cfg.Resume)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_MutuallyExclusive(t *testing.T) {
	cfg := &Config{
		Resume:     "resume.json",
		HTMLResume: "resume.html",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")

	cfg = &Config{
		Resume:     "resume.json",
		TextResume: "resume.txt",
	}
	assert.Error(t, cfg.Validate())
}

func TestValidate_PortRange(t *testing.T) {
	cfg := &Config{Port: 70000}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "port")

	cfg = &Config{Port: -1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Port: 8080}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingResumeFile(t *testing.T) {
	cfg := &Config{
		Resume: filepath.Join(t.TempDir(), "missing.json"),
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "resume file not found")
}

func TestValidate_ExistingResumeFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte("{}"), 0644))

	cfg := &Config{Resume: tmpFile}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		Resume: "mine.json",
		Port:   9090,
	}

	defaults := Config{
		Resume:      "default.json",
		Output:      "out",
		APIKey:      "default-key",
		DatabaseURL: "postgres://localhost/refiner",
		Port:        8080,
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "mine.json", merged.Resume, "explicit value should win")
	assert.Equal(t, "out", merged.Output)
	assert.Equal(t, "default-key", merged.APIKey)
	assert.Equal(t, "postgres://localhost/refiner", merged.DatabaseURL)
	assert.Equal(t, 9090, merged.Port)
}

func TestMergeWithDefaults_DoesNotMutateReceiver(t *testing.T) {
	cfg := &Config{}
	_ = cfg.MergeWithDefaults(Config{Output: "out"})

	assert.Equal(t, "", cfg.Output)
}
