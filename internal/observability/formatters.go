// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-refiner/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines on rune boundaries
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocumentSummary outputs a human-readable overview of a resume document.
func (p *Printer) PrintDocumentSummary(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:   %s\n", doc.BasicDetails.FullName))
	sb.WriteString(fmt.Sprintf("Title:  %s\n", doc.BasicDetails.Title))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Experience entries: %d\n", len(doc.Experience)))
	sb.WriteString(fmt.Sprintf("Education entries:  %d\n", len(doc.Education)))
	sb.WriteString(fmt.Sprintf("Skills:             %d\n", len(doc.Skills.All())))

	if doc.Summary != "" {
		sb.WriteString("\nSummary:\n")
		sb.WriteString("  " + doc.Summary + "\n")
	}

	p.printBox("RESUME DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFeedback outputs per-category analysis scores and counts.
func (p *Printer) PrintFeedback(feedback []types.CategoryFeedback) {
	if len(feedback) == 0 {
		return
	}

	var sb strings.Builder
	for i, section := range feedback {
		sb.WriteString(fmt.Sprintf("%s\n", section.Category))
		sb.WriteString(fmt.Sprintf("  Score: %d/100\n", section.Section.Score))
		sb.WriteString(fmt.Sprintf("  Suggestions: %d\n", len(section.Section.Suggestions)))
		if i < len(feedback)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("ANALYSIS FEEDBACK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestionSet outputs the top suggestions with their field targets.
func (p *Printer) PrintSuggestionSet(suggestions []types.AppliedSuggestion) {
	if len(suggestions) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total suggestions: %d\n\n", len(suggestions)))

	count := min(len(suggestions), maxItemsToShow)
	for i := 0; i < count; i++ {
		suggestion := suggestions[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, suggestion.ID))
		if suggestion.FieldPath != "" {
			sb.WriteString(fmt.Sprintf("    Field: %s\n", suggestion.FieldPath))
		}
		improved := suggestion.ImprovedText
		if runes := []rune(improved); len(runes) > 40 {
			improved = string(runes[:37]) + "..."
		}
		sb.WriteString(fmt.Sprintf("    After: %s\n", improved))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(suggestions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more\n", len(suggestions)-maxItemsToShow))
	}

	p.printBox("SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintChangeLog outputs the fields rewritten by a commit.
func (p *Printer) PrintChangeLog(changes []types.AppliedChange) {
	var sb strings.Builder

	if len(changes) == 0 {
		sb.WriteString("No changes applied.")
	} else {
		sb.WriteString(fmt.Sprintf("Fields updated: %d\n\n", len(changes)))
		for i, change := range changes {
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", change.Field, change.SuggestionID))
			if i >= maxItemsToShow-1 && len(changes) > maxItemsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(changes)-maxItemsToShow))
				break
			}
		}
	}

	p.printBox("COMMITTED CHANGES", strings.TrimSuffix(sb.String(), "\n"))
}
