package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	"github.com/jonathan/resume-refiner/internal/types"
)

// Client is an abstraction over the upstream analysis service
type Client interface {
	// AnalyzeResume produces one feedback section per known category, in
	// canonical category order.
	AnalyzeResume(ctx context.Context, resumeText string) ([]types.CategoryFeedback, error)
	// Close releases any resources held by the client
	Close() error
}

// GeminiClient implements Client against Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewClient creates a new analysis client
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	return NewGeminiClient(ctx, config, apiKey)
}

// NewGeminiClient creates a new Gemini-backed analysis client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &Error{Message: "API key is required"}
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &Error{Message: "failed to create Gemini client", Cause: err}
	}

	return &GeminiClient{client: client, config: config}, nil
}

// AnalyzeResume generates each category's feedback section concurrently and
// assembles them in canonical order.
func (c *GeminiClient) AnalyzeResume(ctx context.Context, resumeText string) ([]types.CategoryFeedback, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &Error{Message: "resume text is empty"}
	}

	sections := make([]types.FeedbackSection, len(types.KnownCategories))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	if c.config.MaxConcurrency > 0 {
		g.SetLimit(c.config.MaxConcurrency)
	}

	for i, category := range types.KnownCategories {
		g.Go(func() error {
			prompt := buildCategoryPrompt(category, resumeText)
			responseText, err := c.generateJSON(gCtx, prompt, TierLite)
			if err != nil {
				return fmt.Errorf("category %s: %w", category, err)
			}

			section, err := ParseFeedbackSection(responseText)
			if err != nil {
				return fmt.Errorf("category %s: %w", category, err)
			}

			mu.Lock()
			sections[i] = *section
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, &Error{Message: "failed to generate feedback", Cause: err}
	}

	feedback := make([]types.CategoryFeedback, len(types.KnownCategories))
	for i, category := range types.KnownCategories {
		feedback[i] = types.CategoryFeedback{Category: category, Section: sections[i]}
	}
	return feedback, nil
}

// generateJSON generates JSON content using the specified model tier
func (c *GeminiClient) generateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return ExtractJSON(text), nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
