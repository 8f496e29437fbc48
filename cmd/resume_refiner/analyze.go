package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-refiner/internal/analysis"
	"github.com/jonathan/resume-refiner/internal/config"
	"github.com/jonathan/resume-refiner/internal/convert"
	"github.com/jonathan/resume-refiner/internal/ingestion"
	"github.com/jonathan/resume-refiner/internal/observability"
	"github.com/jonathan/resume-refiner/internal/suggest"
	"github.com/jonathan/resume-refiner/internal/types"
)

// suggestionFile is the on-disk format for analysis output, consumed by the
// apply command.
type suggestionFile struct {
	Feedback    []types.CategoryFeedback  `json:"feedback,omitempty"`
	Suggestions []types.AppliedSuggestion `json:"suggestions"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume and generate improvement suggestions",
	Long: `Run AI analysis over a resume and write the resulting suggestion set.

A JSON resume (--resume) produces concrete before/after suggestions ready
for the apply command. An HTML export (--html) or plain-text file (--text)
produces feedback only, since improvements need structured fields to
target.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath string
	analyzeResume     string
	analyzeHTML       string
	analyzeText       string
	analyzeOut        string
	analyzeAPIKey     string
	analyzeStrict     bool
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume JSON file (mutually exclusive with --html)")
	analyzeCmd.Flags().StringVar(&analyzeHTML, "html", "", "Path to an HTML resume export (mutually exclusive with --resume)")
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "Path to a plain-text resume (mutually exclusive with --resume)")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Output file for the suggestion set (default out/suggestions.json)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	analyzeCmd.Flags().BoolVar(&analyzeStrict, "strict", false, "Do not fabricate fallback suggestions when analysis finds nothing")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAnalyzeConfig(cmd)
	if err != nil {
		return err
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required: set --api-key or GEMINI_API_KEY")
	}

	ctx := context.Background()
	client, err := analysis.NewClient(ctx, analysis.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create analysis client: %w", err)
	}
	defer func() { _ = client.Close() }()

	printer := observability.NewPrinter(os.Stdout)

	switch {
	case cfg.Resume != "":
		return analyzeJSONResume(ctx, client, printer, cfg)
	case cfg.HTMLResume != "":
		return analyzeFlattenedResume(ctx, client, printer, cfg, ingestion.ReadResumeHTML, cfg.HTMLResume)
	case cfg.TextResume != "":
		return analyzeFlattenedResume(ctx, client, printer, cfg, ingestion.ReadResumeText, cfg.TextResume)
	default:
		return fmt.Errorf("one of --resume, --html or --text is required")
	}
}

func loadAnalyzeConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if analyzeConfigPath != "" {
		loaded, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		if analyzeVerbose {
			fmt.Printf("Loaded config from: %s\n", analyzeConfigPath)
		}
	}

	// Command-line args take priority over config file values
	if cmd.Flags().Changed("resume") {
		cfg.Resume = analyzeResume
	}
	if cmd.Flags().Changed("html") {
		cfg.HTMLResume = analyzeHTML
	}
	if cmd.Flags().Changed("text") {
		cfg.TextResume = analyzeText
	}
	if cmd.Flags().Changed("out") {
		cfg.Output = analyzeOut
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = analyzeStrict
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func analyzeJSONResume(ctx context.Context, client analysis.Client, printer *observability.Printer, cfg config.Config) error {
	doc, err := loadResumeDocument(cfg.Resume)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer.PrintDocumentSummary(doc)
	}

	feedback, err := client.AnalyzeResume(ctx, analysis.BuildResumeText(doc))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	mode := suggest.ModeAlwaysSuggest
	if cfg.Strict {
		mode = suggest.ModeStrict
	}
	suggestions, err := suggest.Apply(doc, suggest.FromFeedback(feedback), mode)
	if err != nil {
		return fmt.Errorf("failed to apply suggestions: %w", err)
	}

	if cfg.Verbose {
		printer.PrintFeedback(feedback)
		printer.PrintSuggestionSet(suggestions)
	}

	outPath := suggestionOutputPath(cfg)
	if err := writeJSONFile(outPath, suggestionFile{Feedback: feedback, Suggestions: suggestions}); err != nil {
		return err
	}

	fmt.Printf("Wrote %d suggestion(s) to %s\n", len(suggestions), outPath)
	return nil
}

// analyzeFlattenedResume handles unstructured inputs: the resume is read as
// plain text and the output carries feedback sections with an empty
// suggestion list.
func analyzeFlattenedResume(ctx context.Context, client analysis.Client, printer *observability.Printer, cfg config.Config, read func(string) (string, error), path string) error {
	resumeText, err := read(path)
	if err != nil {
		return err
	}

	feedback, err := client.AnalyzeResume(ctx, resumeText)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if cfg.Verbose {
		printer.PrintFeedback(feedback)
	}

	outPath := suggestionOutputPath(cfg)
	if err := writeJSONFile(outPath, suggestionFile{Feedback: feedback, Suggestions: []types.AppliedSuggestion{}}); err != nil {
		return err
	}

	fmt.Printf("Wrote feedback for %d categories to %s\n", len(feedback), outPath)
	return nil
}

// loadResumeDocument reads a resume JSON file in any recognized shape and
// normalizes it into the canonical document.
func loadResumeDocument(path string) (*types.ResumeDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}

	return convert.ToResumeDocument(raw), nil
}

func suggestionOutputPath(cfg config.Config) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	return filepath.Join("out", "suggestions.json")
}

func writeJSONFile(path string, content any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
