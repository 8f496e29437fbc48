package suggest

import (
	"regexp"
	"strings"
	"unicode"
)

// clarityMarker is appended when the clarity transform yields no change, so
// a suggestion never silently no-ops.
const clarityMarker = "(refined for clarity and impact)"

// fillerPattern matches first-person filler openers that weaken resume prose.
var fillerPattern = regexp.MustCompile(`(?i)\bI\s+(have|am|was)\b\s*`)

// verbUpgrades swaps weak verbs for stronger synonyms. Phrase patterns come
// before single words so "responsible for" is not split by a word-level swap.
var verbUpgrades = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\bresponsible for\b`), "owned"},
	{regexp.MustCompile(`(?i)\bdeveloped\b`), "engineered"},
	{regexp.MustCompile(`(?i)\bcreated\b`), "built"},
	{regexp.MustCompile(`(?i)\bhelped\b`), "contributed to"},
	{regexp.MustCompile(`(?i)\butilized\b`), "applied"},
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// improveClarity applies the deterministic clarity transform: strip filler
// openers, upgrade weak verbs, collapse redundant whitespace. The result may
// equal the input when nothing matched.
func improveClarity(text string) string {
	improved := fillerPattern.ReplaceAllString(text, "")

	for _, upgrade := range verbUpgrades {
		replacement := upgrade.replacement
		improved = upgrade.pattern.ReplaceAllStringFunc(improved, func(matched string) string {
			return matchCase(matched, replacement)
		})
	}

	improved = whitespacePattern.ReplaceAllString(improved, " ")
	improved = strings.TrimSpace(improved)

	return capitalizeFirst(improved)
}

// improveClarityForced is improveClarity with a guaranteed visible
// difference: when the transform is a no-op the marker phrase is appended.
func improveClarityForced(text string) string {
	improved := improveClarity(text)
	if improved != text {
		return improved
	}
	if strings.TrimSpace(improved) == "" {
		return capitalizeFirst(clarityMarker)
	}
	return strings.TrimRight(improved, " ") + " " + clarityMarker
}

// matchCase transfers the leading capitalization of the original word onto
// the replacement.
func matchCase(original, replacement string) string {
	if original == "" || replacement == "" {
		return replacement
	}
	first := []rune(original)[0]
	if unicode.IsUpper(first) {
		return capitalizeFirst(replacement)
	}
	return replacement
}

func capitalizeFirst(text string) string {
	if text == "" {
		return text
	}
	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
