// Package analysis wraps the upstream AI service that scores a resume and
// produces per-category improvement suggestions.
package analysis

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: per-category scoring and suggestions
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: structured feedback output
	TierStandard ModelTier = "standard"
)

// Config holds the model configuration for the analysis service
type Config struct {
	Models map[ModelTier]string
	// MaxConcurrency bounds the number of category sections generated in
	// parallel. Zero means no bound.
	MaxConcurrency int
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		MaxConcurrency: 3,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return ""
}
