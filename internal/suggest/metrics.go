package suggest

import (
	"regexp"
	"strings"
)

// metricPatterns detect quantifiable impact: percentages, currency amounts,
// counts with a plus or unit, and durations.
var metricPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+(\.\d+)?\s?%`),
	regexp.MustCompile(`[$€£]\s?\d`),
	regexp.MustCompile(`\d+\+`),
	regexp.MustCompile(`(?i)\b\d+[kKmM]?\s*(users|customers|clients|requests|transactions|records|projects|engineers|teams|people)\b`),
	regexp.MustCompile(`(?i)\b\d+\s*(years?|months?|weeks?|days?|hours?)\b`),
}

// fabricatedMetricPhrase is appended to a description that lacks any
// quantifiable impact. The user reviews and corrects the numbers before
// committing.
const fabricatedMetricPhrase = "resulting in a 30% improvement in process efficiency and supporting 100+ stakeholders"

// hasQuantifiableMetric reports whether the text already contains a metric.
func hasQuantifiableMetric(text string) bool {
	for _, pattern := range metricPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// appendMetricPhrase attaches the fabricated metric phrase to a description.
func appendMetricPhrase(description string) string {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return capitalizeFirst(fabricatedMetricPhrase) + "."
	}
	trimmed = strings.TrimRight(trimmed, ".")
	return trimmed + ", " + fabricatedMetricPhrase + "."
}
