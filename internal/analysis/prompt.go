package analysis

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-refiner/internal/types"
)

// categoryInstructions steers each category's review toward its concern.
var categoryInstructions = map[types.SuggestionCategory]string{
	types.CategoryClarityBrevity:     "Judge how clear and concise the writing is. Flag filler phrases, weak verbs and run-on sentences.",
	types.CategoryAchievementMetrics: "Judge whether accomplishments are quantified. Flag bullets without percentages, counts, currency amounts or durations.",
	types.CategoryFormattingATS:      "Judge whether the layout and contact information will survive applicant tracking systems. Flag pipe-delimited contact lines and unusual section ordering.",
	types.CategoryKeywordUsage:       "Judge whether role-relevant keywords appear in the headline and summary. Name missing keywords in quotes.",
	types.CategoryRepetition:         "Judge whether action verbs repeat across bullets. Name the repeated verbs.",
	types.CategorySkillsAlignment:    "Judge whether soft skills such as leadership, mentorship and collaboration are evidenced in the experience section.",
}

// buildCategoryPrompt constructs the prompt for one category's feedback
// section.
func buildCategoryPrompt(category types.SuggestionCategory, resumeText string) string {
	var sb strings.Builder

	sb.WriteString("You are a resume reviewer. Evaluate the resume below on a single concern.\n\n")
	sb.WriteString(fmt.Sprintf("## Concern: %s\n\n", category))
	if instruction, ok := categoryInstructions[category]; ok {
		sb.WriteString(instruction)
		sb.WriteString("\n\n")
	}

	sb.WriteString("## Resume\n\n")
	sb.WriteString(resumeText)
	sb.WriteString("\n\n")

	sb.WriteString("## Instructions\n\n")
	sb.WriteString("Score the concern from 0 to 100 and give concrete, actionable suggestions.\n")
	sb.WriteString("Each suggestion must be a single sentence the candidate can act on directly.\n")
	sb.WriteString("Return ONLY valid JSON matching this schema:\n")
	sb.WriteString(`{
  "score": number (0-100),
  "description": "one-paragraph assessment",
  "positives": ["what already works"],
  "negatives": ["what hurts the resume"],
  "suggestions": ["actionable improvement, one sentence each"]
}`)

	return sb.String()
}

// BuildResumeText renders a document as plain text for the analysis prompt.
func BuildResumeText(doc *types.ResumeDocument) string {
	if doc == nil {
		return ""
	}

	var sb strings.Builder

	writeLine := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			sb.WriteString(fmt.Sprintf("%s: %s\n", label, value))
		}
	}

	writeLine("Name", doc.BasicDetails.FullName)
	writeLine("Title", doc.BasicDetails.Title)
	writeLine("Contact", strings.Join(nonEmpty(doc.BasicDetails.Phone, doc.BasicDetails.Email, doc.BasicDetails.LinkedIn), " | "))
	writeLine("Location", doc.BasicDetails.Location)

	if strings.TrimSpace(doc.Summary) != "" {
		sb.WriteString("\nSummary\n")
		sb.WriteString(doc.Summary)
		sb.WriteString("\n")
	}
	if strings.TrimSpace(doc.Objective) != "" {
		sb.WriteString("\nObjective\n")
		sb.WriteString(doc.Objective)
		sb.WriteString("\n")
	}

	if len(doc.Experience) > 0 {
		sb.WriteString("\nExperience\n")
		for _, entry := range doc.Experience {
			sb.WriteString(fmt.Sprintf("- %s, %s (%s - %s)\n", entry.Position, entry.Company, entry.StartDate, entry.EndDate))
			if strings.TrimSpace(entry.Description) != "" {
				sb.WriteString("  " + entry.Description + "\n")
			}
		}
	}

	if len(doc.Education) > 0 {
		sb.WriteString("\nEducation\n")
		for _, entry := range doc.Education {
			sb.WriteString(fmt.Sprintf("- %s, %s (%s - %s)\n", entry.Degree, entry.Institution, entry.StartDate, entry.EndDate))
		}
	}

	if skills := doc.Skills.All(); len(skills) > 0 {
		sb.WriteString("\nSkills\n")
		sb.WriteString(strings.Join(skills, ", "))
		sb.WriteString("\n")
	}

	for _, section := range []struct {
		label   string
		entries []types.SectionEntry
	}{
		{"Projects", doc.Projects},
		{"Certifications", doc.Certifications},
		{"Languages", doc.Languages},
		{"Activities", doc.Activities},
	} {
		if len(section.entries) == 0 {
			continue
		}
		sb.WriteString("\n" + section.label + "\n")
		for _, entry := range section.entries {
			line := entry.Title
			if entry.Subtitle != "" {
				line += " - " + entry.Subtitle
			}
			sb.WriteString("- " + line + "\n")
		}
	}

	return strings.TrimSpace(sb.String())
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}
	return out
}
