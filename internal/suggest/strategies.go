package suggest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-refiner/internal/types"
)

// fieldMatch is a concrete before/after pair produced by a strategy.
type fieldMatch struct {
	fieldPath    string
	originalText string
	improvedText string
}

// strategyFunc locates (or fabricates) an improvement for one suggestion
// string. It mutates the working clone on success so that later suggestions
// in the same category claim later fields. Returning false drops the
// suggestion without error.
type strategyFunc func(doc *types.ResumeDocument, suggestionText string) (fieldMatch, bool)

// strategies maps each known category to its matching strategy. Unrecognized
// categories use genericStrategy.
var strategies = map[types.SuggestionCategory]strategyFunc{
	types.CategoryClarityBrevity:     clarityStrategy,
	types.CategoryAchievementMetrics: metricsStrategy,
	types.CategoryFormattingATS:      formattingStrategy,
	types.CategoryKeywordUsage:       keywordStrategy,
	types.CategoryRepetition:         repetitionStrategy,
	types.CategorySkillsAlignment:    skillsAlignmentStrategy,
}

func strategyFor(category types.SuggestionCategory) strategyFunc {
	if strategy, ok := strategies[category]; ok {
		return strategy
	}
	return genericStrategy
}

// clarityStrategy targets the summary with the clarity transform, forcing a
// visible difference when the transform alone is a no-op.
func clarityStrategy(doc *types.ResumeDocument, _ string) (fieldMatch, bool) {
	original := doc.Summary
	improved := improveClarityForced(original)
	doc.Summary = improved
	return fieldMatch{fieldPath: "summary", originalText: original, improvedText: improved}, true
}

// metricsStrategy finds the first experience description lacking a
// quantifiable metric and appends a fabricated one.
func metricsStrategy(doc *types.ResumeDocument, _ string) (fieldMatch, bool) {
	for i := range doc.Experience {
		description := doc.Experience[i].Description
		if strings.TrimSpace(description) == "" || hasQuantifiableMetric(description) {
			continue
		}
		improved := appendMetricPhrase(description)
		doc.Experience[i].Description = improved
		return fieldMatch{
			fieldPath:    experiencePath(i),
			originalText: description,
			improvedText: improved,
		}, true
	}
	return fieldMatch{}, false
}

// contactReferencePattern decides whether a formatting suggestion is about
// contact-info layout. Anything else yields no match.
var contactReferencePattern = regexp.MustCompile(`(?i)\b(contact|phone|email|linkedin|header)\b`)

// formattingStrategy converts the pipe-delimited contact line into
// one-field-per-line when the suggestion references contact formatting.
func formattingStrategy(doc *types.ResumeDocument, suggestionText string) (fieldMatch, bool) {
	if !contactReferencePattern.MatchString(suggestionText) {
		return fieldMatch{}, false
	}

	parts := contactParts(doc)
	if len(parts) < 2 {
		return fieldMatch{}, false
	}

	original := strings.Join(parts, " | ")
	improved := strings.Join(parts, "\n")
	return fieldMatch{
		fieldPath:    "basicDetails.contact",
		originalText: original,
		improvedText: improved,
	}, true
}

func contactParts(doc *types.ResumeDocument) []string {
	var parts []string
	for _, value := range []string{doc.BasicDetails.Phone, doc.BasicDetails.Email, doc.BasicDetails.LinkedIn} {
		if strings.TrimSpace(value) != "" {
			parts = append(parts, value)
		}
	}
	return parts
}

var quotedPhrasePattern = regexp.MustCompile("[\"'`]([^\"'`]+)[\"'`]")

// commonKeywords is the fallback vocabulary when a keyword suggestion does
// not quote the phrase it wants inserted.
var commonKeywords = []string{
	"scalable", "microservices", "cloud", "distributed systems", "agile",
	"CI/CD", "Kubernetes", "REST", "automation", "cross-functional",
}

// keywordStrategy inserts a keyword implied by the suggestion text into the
// title or summary when absent.
func keywordStrategy(doc *types.ResumeDocument, suggestionText string) (fieldMatch, bool) {
	keyword := extractKeyword(suggestionText)
	if keyword == "" {
		return fieldMatch{}, false
	}

	title := doc.BasicDetails.Title
	if strings.TrimSpace(title) != "" && !containsFold(title, keyword) {
		improved := title + " | " + keyword
		doc.BasicDetails.Title = improved
		return fieldMatch{
			fieldPath:    "basicDetails.title",
			originalText: title,
			improvedText: improved,
		}, true
	}

	summary := doc.Summary
	if strings.TrimSpace(summary) != "" && !containsFold(summary, keyword) {
		improved := strings.TrimRight(strings.TrimSpace(summary), ".") + ". Skilled in " + keyword + "."
		doc.Summary = improved
		return fieldMatch{
			fieldPath:    "summary",
			originalText: summary,
			improvedText: improved,
		}, true
	}

	return fieldMatch{}, false
}

func extractKeyword(suggestionText string) string {
	if quoted := quotedPhrasePattern.FindStringSubmatch(suggestionText); quoted != nil {
		return strings.TrimSpace(quoted[1])
	}
	for _, keyword := range commonKeywords {
		if containsFold(suggestionText, keyword) {
			return keyword
		}
	}
	return ""
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// verbSynonyms is the fixed substitution table for repeated action verbs.
// The second and later occurrences of a repeated verb cycle through the
// synonyms while the first occurrence stays unchanged.
var verbSynonyms = map[string][]string{
	"developed":   {"engineered", "built", "designed"},
	"created":     {"built", "produced", "established"},
	"built":       {"constructed", "developed", "assembled"},
	"managed":     {"led", "directed", "oversaw"},
	"led":         {"directed", "headed", "guided"},
	"improved":    {"enhanced", "optimized", "strengthened"},
	"implemented": {"deployed", "introduced", "launched"},
	"designed":    {"architected", "crafted", "devised"},
	"worked":      {"collaborated", "partnered", "engaged"},
}

var wordPattern = regexp.MustCompile(`[A-Za-z]+`)

// repetitionStrategy rewrites the first experience description containing a
// repeated action verb.
func repetitionStrategy(doc *types.ResumeDocument, _ string) (fieldMatch, bool) {
	for i := range doc.Experience {
		description := doc.Experience[i].Description
		improved := diversifyVerbs(description)
		if improved == description {
			continue
		}
		doc.Experience[i].Description = improved
		return fieldMatch{
			fieldPath:    experiencePath(i),
			originalText: description,
			improvedText: improved,
		}, true
	}
	return fieldMatch{}, false
}

// diversifyVerbs replaces second-and-later occurrences of repeated verbs
// with synonyms from the substitution table, preserving capitalization.
func diversifyVerbs(text string) string {
	counts := make(map[string]int)
	var builder strings.Builder
	last := 0

	for _, loc := range wordPattern.FindAllStringIndex(text, -1) {
		word := text[loc[0]:loc[1]]
		lower := strings.ToLower(word)
		counts[lower]++

		replacement := word
		if synonyms, ok := verbSynonyms[lower]; ok && counts[lower] > 1 {
			replacement = matchCase(word, synonyms[(counts[lower]-2)%len(synonyms)])
		}

		builder.WriteString(text[last:loc[0]])
		builder.WriteString(replacement)
		last = loc[1]
	}
	builder.WriteString(text[last:])

	return builder.String()
}

// softSkillPattern detects leadership, mentorship and collaboration language.
var softSkillPattern = regexp.MustCompile(`(?i)\b(led|leadership|mentor(ed|ing|ship)?|collaborat(ed|ion|ive|ing)|cross-functional|communicat(ed|ion|ing)|teamwork|coach(ed|ing)|stakeholders?)\b`)

const fabricatedSoftSkillSentence = "Collaborated with cross-functional teams and mentored junior engineers to deliver shared goals."

// skillsAlignmentStrategy appends a soft-skill sentence to the first
// experience description lacking one.
func skillsAlignmentStrategy(doc *types.ResumeDocument, _ string) (fieldMatch, bool) {
	for i := range doc.Experience {
		description := doc.Experience[i].Description
		if strings.TrimSpace(description) == "" || softSkillPattern.MatchString(description) {
			continue
		}
		improved := strings.TrimSpace(description)
		if !strings.HasSuffix(improved, ".") {
			improved += "."
		}
		improved += " " + fabricatedSoftSkillSentence
		doc.Experience[i].Description = improved
		return fieldMatch{
			fieldPath:    experiencePath(i),
			originalText: description,
			improvedText: improved,
		}, true
	}
	return fieldMatch{}, false
}

// genericStrategy is the fallback for unrecognized categories: prefer the
// summary, else the first experience description, via the clarity transform.
func genericStrategy(doc *types.ResumeDocument, _ string) (fieldMatch, bool) {
	if strings.TrimSpace(doc.Summary) != "" {
		original := doc.Summary
		improved := improveClarityForced(original)
		doc.Summary = improved
		return fieldMatch{fieldPath: "summary", originalText: original, improvedText: improved}, true
	}

	for i := range doc.Experience {
		description := doc.Experience[i].Description
		if strings.TrimSpace(description) == "" {
			continue
		}
		improved := improveClarityForced(description)
		doc.Experience[i].Description = improved
		return fieldMatch{
			fieldPath:    experiencePath(i),
			originalText: description,
			improvedText: improved,
		}, true
	}

	return fieldMatch{}, false
}

func experiencePath(index int) string {
	return fmt.Sprintf("experience[%d].description", index)
}
