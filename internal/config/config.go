// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Resume      string `json:"resume,omitempty"`      // Path to resume JSON file
	HTMLResume  string `json:"html_resume,omitempty"` // Path to an HTML resume export
	TextResume  string `json:"text_resume,omitempty"` // Path to a plain-text resume
	Suggestions string `json:"suggestions,omitempty"` // Path to a saved suggestion set JSON file
	Output      string `json:"output,omitempty"`      // Directory for written artifacts

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty"`         // HTTP server port
	Strict      bool   `json:"strict,omitempty"`       // Suppress fallback suggestions when analysis finds nothing
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	sources := 0
	for _, path := range []string{c.Resume, c.HTMLResume, c.TextResume} {
		if path != "" {
			sources++
		}
	}
	if sources > 1 {
		return fmt.Errorf("config error: 'resume', 'html_resume' and 'text_resume' are mutually exclusive")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	// Validate file paths exist (if specified)
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.HTMLResume != "" {
		if _, err := os.Stat(c.HTMLResume); os.IsNotExist(err) {
			return fmt.Errorf("config error: html resume file not found: %s", c.HTMLResume)
		}
	}
	if c.TextResume != "" {
		if _, err := os.Stat(c.TextResume); os.IsNotExist(err) {
			return fmt.Errorf("config error: text resume file not found: %s", c.TextResume)
		}
	}
	if c.Suggestions != "" {
		if _, err := os.Stat(c.Suggestions); os.IsNotExist(err) {
			return fmt.Errorf("config error: suggestions file not found: %s", c.Suggestions)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.HTMLResume == "" {
		result.HTMLResume = defaults.HTMLResume
	}
	if result.TextResume == "" {
		result.TextResume = defaults.TextResume
	}
	if result.Suggestions == "" {
		result.Suggestions = defaults.Suggestions
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
