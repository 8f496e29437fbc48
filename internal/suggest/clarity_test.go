package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImproveClarity_StripsFillerAndUpgradesVerbs(t *testing.T) {
	improved := improveClarity("I have developed web applications for 5 years")

	assert.NotContains(t, improved, "I have")
	assert.Contains(t, improved, "engineered")
	assert.Equal(t, "Engineered web applications for 5 years", improved)
}

func TestImproveClarity_Table(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "filler in the middle",
			input: "Engineer. I am passionate about systems.",
			want:  "Engineer. passionate about systems.",
		},
		{
			name:  "weak verb created",
			input: "Created dashboards for the sales team",
			want:  "Built dashboards for the sales team",
		},
		{
			name:  "weak verb helped",
			input: "Helped migrate the legacy platform",
			want:  "Contributed to migrate the legacy platform",
		},
		{
			name:  "responsible for phrase",
			input: "Responsible for release management",
			want:  "Owned release management",
		},
		{
			name:  "collapses whitespace",
			input: "Built   APIs\t\tquickly",
			want:  "Built APIs quickly",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, improveClarity(tt.input))
		})
	}
}

func TestImproveClarityForced_NeverNoOps(t *testing.T) {
	inputs := []string{
		"Engineered web applications for 5 years",
		"Already strong text.",
		"",
	}

	for _, input := range inputs {
		improved := improveClarityForced(input)
		assert.NotEqual(t, input, improved, "input %q must yield a visible difference", input)
	}
}

func TestImproveClarityForced_AppendsMarkerOnlyWhenNeeded(t *testing.T) {
	// Transform changes the text, so no marker.
	improved := improveClarityForced("I have developed services")
	assert.NotContains(t, improved, clarityMarker)

	// Transform is a no-op, so the marker forces a difference.
	improved = improveClarityForced("Engineered services at scale.")
	assert.Contains(t, improved, clarityMarker)
}
