// Package commit applies user-selected suggestions to a resume document
// clone, producing an updated document and an audit trail.
package commit

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-refiner/internal/types"
)

// fieldRef is one mutable string field of a document, addressable by a
// path-like identifier. selectorsFor expresses the category search order as
// a data table.
type fieldRef struct {
	path string
	get  func(doc *types.ResumeDocument) string
	set  func(doc *types.ResumeDocument, value string)
}

func summaryRef() fieldRef {
	return fieldRef{
		path: "summary",
		get:  func(doc *types.ResumeDocument) string { return doc.Summary },
		set:  func(doc *types.ResumeDocument, value string) { doc.Summary = value },
	}
}

func titleRef() fieldRef {
	return fieldRef{
		path: "basicDetails.title",
		get:  func(doc *types.ResumeDocument) string { return doc.BasicDetails.Title },
		set:  func(doc *types.ResumeDocument, value string) { doc.BasicDetails.Title = value },
	}
}

func experienceRef(index int) fieldRef {
	return fieldRef{
		path: fmt.Sprintf("experience[%d].description", index),
		get: func(doc *types.ResumeDocument) string {
			return doc.Experience[index].Description
		},
		set: func(doc *types.ResumeDocument, value string) {
			doc.Experience[index].Description = value
		},
	}
}

// contactRef is the synthetic composite field over phone, email and
// linkedin: read as a pipe-delimited line, written back as one field per
// line in the same order the non-empty fields appeared.
func contactRef() fieldRef {
	return fieldRef{
		path: "basicDetails.contact",
		get: func(doc *types.ResumeDocument) string {
			return strings.Join(contactValues(doc), " | ")
		},
		set: func(doc *types.ResumeDocument, value string) {
			parts := strings.Split(value, "\n")
			targets := contactTargets(doc)
			for i, part := range parts {
				if i >= len(targets) {
					break
				}
				*targets[i] = strings.TrimSpace(part)
			}
		},
	}
}

func contactValues(doc *types.ResumeDocument) []string {
	var values []string
	for _, target := range contactTargets(doc) {
		values = append(values, *target)
	}
	return values
}

func contactTargets(doc *types.ResumeDocument) []*string {
	var targets []*string
	for _, field := range []*string{&doc.BasicDetails.Phone, &doc.BasicDetails.Email, &doc.BasicDetails.LinkedIn} {
		if strings.TrimSpace(*field) != "" {
			targets = append(targets, field)
		}
	}
	return targets
}

// selectorsFor returns the ordered field search list for a category; the
// first field whose current value equals the suggestion's original text
// wins. Unrecognized categories share the clarity order.
func selectorsFor(doc *types.ResumeDocument, category types.SuggestionCategory) []fieldRef {
	switch category {
	case types.CategoryAchievementMetrics, types.CategoryRepetition:
		refs := make([]fieldRef, 0, len(doc.Experience))
		for i := range doc.Experience {
			refs = append(refs, experienceRef(i))
		}
		return refs
	case types.CategoryKeywordUsage:
		return []fieldRef{titleRef(), summaryRef()}
	case types.CategoryFormattingATS:
		if len(contactTargets(doc)) == 0 {
			return nil
		}
		return []fieldRef{contactRef()}
	case types.CategorySkillsAlignment:
		return []fieldRef{summaryRef()}
	default:
		return []fieldRef{summaryRef()}
	}
}

var experiencePathPattern = regexp.MustCompile(`^experience\[(\d+)\]\.description$`)

// resolvePath maps a recorded field path back to a fieldRef. Unknown or
// out-of-range paths report false so the caller can fall back to value
// search.
func resolvePath(doc *types.ResumeDocument, path string) (fieldRef, bool) {
	switch path {
	case "summary":
		return summaryRef(), true
	case "basicDetails.title":
		return titleRef(), true
	case "basicDetails.contact":
		if len(contactTargets(doc)) == 0 {
			return fieldRef{}, false
		}
		return contactRef(), true
	}

	if matches := experiencePathPattern.FindStringSubmatch(path); matches != nil {
		var index int
		if _, err := fmt.Sscanf(matches[1], "%d", &index); err == nil && index < len(doc.Experience) {
			return experienceRef(index), true
		}
	}

	return fieldRef{}, false
}

// locateField finds the field a suggestion should mutate: the recorded path
// first (verified against the expected original value), then the category
// search order by exact value match.
func locateField(doc *types.ResumeDocument, suggestion types.AppliedSuggestion) (fieldRef, bool) {
	if suggestion.FieldPath != "" {
		if ref, ok := resolvePath(doc, suggestion.FieldPath); ok && ref.get(doc) == suggestion.OriginalText {
			return ref, true
		}
	}

	for _, ref := range selectorsFor(doc, suggestion.Category) {
		if ref.get(doc) == suggestion.OriginalText {
			return ref, true
		}
	}

	return fieldRef{}, false
}
