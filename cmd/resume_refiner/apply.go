package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-refiner/internal/commit"
	"github.com/jonathan/resume-refiner/internal/config"
	"github.com/jonathan/resume-refiner/internal/observability"
	"github.com/jonathan/resume-refiner/internal/types"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Commit accepted suggestions into a resume",
	Long: `Apply a suggestion set produced by the analyze command to a resume JSON
file. By default every suggestion in the set is applied; --select restricts
the commit to specific suggestion IDs. Suggestions whose original text no
longer matches the resume are skipped, never an error. The resume,
suggestions and output paths can also come from a config file.`,
	RunE: runApply,
}

var (
	applyConfigPath  string
	applyResume      string
	applySuggestions string
	applySelect      string
	applyOut         string
	applyPreview     bool
	applyVerbose     bool
)

func init() {
	applyCmd.Flags().StringVar(&applyConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	applyCmd.Flags().StringVarP(&applyResume, "resume", "r", "", "Path to resume JSON file (required via flag or config)")
	applyCmd.Flags().StringVarP(&applySuggestions, "suggestions", "s", "", "Path to suggestion set JSON file (required via flag or config)")
	applyCmd.Flags().StringVar(&applySelect, "select", "", "Comma-separated suggestion IDs to apply (default all)")
	applyCmd.Flags().StringVarP(&applyOut, "out", "o", "", "Output file for the updated resume (default out/resume.updated.json)")
	applyCmd.Flags().BoolVar(&applyPreview, "preview", false, "Show the result without writing any files")
	applyCmd.Flags().BoolVarP(&applyVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	cfg, err := loadApplyConfig(cmd)
	if err != nil {
		return err
	}

	doc, err := loadResumeDocument(cfg.Resume)
	if err != nil {
		return err
	}

	selected, err := loadSuggestionSet(cfg.Suggestions, applySelect)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintDocumentSummary(doc)
		printer.PrintSuggestionSet(selected)
	}

	result := commit.Apply(doc, selected)
	if !result.Success {
		return fmt.Errorf("commit failed: %s", result.Error)
	}

	printer.PrintChangeLog(result.AppliedChanges)

	if applyPreview {
		fmt.Println("Preview only, no files written.")
		return nil
	}

	outPath := cfg.Output
	if err := writeJSONFile(outPath, result.UpdatedResume); err != nil {
		return err
	}

	changesPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".changes.json"
	if err := writeJSONFile(changesPath, result.AppliedChanges); err != nil {
		return err
	}

	fmt.Printf("Applied %d change(s); updated resume written to %s\n", len(result.AppliedChanges), outPath)
	return nil
}

// loadApplyConfig resolves the apply inputs: config file values first, flag
// overrides next, then the default output path for anything still unset.
func loadApplyConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if applyConfigPath != "" {
		loaded, err := config.LoadConfig(applyConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Command-line args take priority over config file values
	if cmd.Flags().Changed("resume") {
		cfg.Resume = applyResume
	}
	if cmd.Flags().Changed("suggestions") {
		cfg.Suggestions = applySuggestions
	}
	if cmd.Flags().Changed("out") {
		cfg.Output = applyOut
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = applyVerbose
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		Output: filepath.Join("out", "resume.updated.json"),
	})

	if cfg.Resume == "" {
		return cfg, fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.Suggestions == "" {
		return cfg, fmt.Errorf("--suggestions is required (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadSuggestionSet reads a suggestion file and optionally filters it down
// to the requested IDs. Requesting an ID absent from the set is an error.
func loadSuggestionSet(path string, selectIDs string) ([]types.AppliedSuggestion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suggestions file: %w", err)
	}

	var file suggestionFile
	if err := json.Unmarshal(data, &file); err != nil {
		// Accept a bare suggestion array as well
		var bare []types.AppliedSuggestion
		if bareErr := json.Unmarshal(data, &bare); bareErr != nil {
			return nil, fmt.Errorf("failed to parse suggestions JSON: %w", err)
		}
		file.Suggestions = bare
	}

	if strings.TrimSpace(selectIDs) == "" {
		return file.Suggestions, nil
	}

	wanted := make(map[string]bool)
	for _, id := range strings.Split(selectIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			wanted[id] = true
		}
	}

	var selected []types.AppliedSuggestion
	for _, suggestion := range file.Suggestions {
		if wanted[suggestion.ID] {
			selected = append(selected, suggestion)
			delete(wanted, suggestion.ID)
		}
	}
	if len(wanted) > 0 {
		missing := make([]string, 0, len(wanted))
		for id := range wanted {
			missing = append(missing, id)
		}
		return nil, fmt.Errorf("unknown suggestion IDs: %s", strings.Join(missing, ", "))
	}

	return selected, nil
}
