package quality

import (
	"testing"

	"github.com/blakehenkel24-eng/slidetheory/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titleBlueprint(title string) *types.SlideBlueprint {
	return &types.SlideBlueprint{Title: types.StringPtr(title), KeyMessage: types.StringPtr("k")}
}

func messages(issues []types.ValidationIssue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Message)
	}
	return out
}

func TestValidateActionTitle_Scores(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		wantScore  int
		wantIssues int
	}{
		{"excellent title", "Accelerated revenue growth to 15% through digital transformation", 4, 0},
		{"weak descriptive title", "Revenue Analysis Overview", 2, 4},
		{"short sentence with auxiliary verb", "Revenue is up", 2, 2},
		{"action without metric", "Digital channels improved customer retention across regions", 3, 1},
		{"action and metric but too few words for excellence", "Online sales grew 30% this year", 3, 0},
		{"too long", "Our teams delivered a very long list of things that we did in the year that just ended today", 2, 2},
		{"empty title", "", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validateActionTitle(titleBlueprint(tt.title))
			assert.Equal(t, tt.wantScore, res.score)
			assert.Len(t, res.issues, tt.wantIssues, "issues: %v", messages(res.issues))
			for _, issue := range res.issues {
				assert.Equal(t, types.DimensionActionTitle, issue.Dimension)
			}
		})
	}
}

func TestValidateActionTitle_WeakWordsNamedInSuggestion(t *testing.T) {
	res := validateActionTitle(titleBlueprint("Quarterly business review and update"))

	var weak *types.ValidationIssue
	for i := range res.issues {
		if res.issues[i].Message == "Title appears descriptive rather than action-oriented" {
			weak = &res.issues[i]
		}
	}
	require.NotNil(t, weak)
	assert.Equal(t, types.SeverityError, weak.Severity)
	assert.Equal(t, `Replace weak words like "review, update" with action verbs and insights`, weak.Suggestion)
}

func TestValidateActionTitle_EmissionOrder(t *testing.T) {
	res := validateActionTitle(titleBlueprint("Revenue Analysis Overview"))

	assert.Equal(t, []string{
		"Title is too short - may lack sufficient insight",
		"Title appears descriptive rather than action-oriented",
		"Title may lack action orientation",
		"Title may not be a complete sentence",
	}, messages(res.issues))
	assert.Equal(t, types.SeverityWarning, res.issues[0].Severity)
	assert.Equal(t, types.SeverityError, res.issues[1].Severity)
	assert.Equal(t, types.SeverityWarning, res.issues[2].Severity)
	assert.Equal(t, types.SeverityError, res.issues[3].Severity)
}

func TestValidateActionTitle_ExcellentAtUpperWordBound(t *testing.T) {
	// 14 words is the upper bound for an excellent title
	res := validateActionTitle(titleBlueprint("Pricing changes increased gross margin by 4% across every product line in all regions"))
	assert.Equal(t, 4, res.score)
}

func TestValidateActionTitle_MetricInfoOnlyAboveFiveWords(t *testing.T) {
	five := validateActionTitle(titleBlueprint("Digital channels improved customer retention"))
	assert.NotContains(t, messages(five.issues), "Title could be more specific with metrics")

	six := validateActionTitle(titleBlueprint("Digital channels improved customer retention again"))
	assert.Contains(t, messages(six.issues), "Title could be more specific with metrics")
	assert.Equal(t, 3, six.score)
}

func TestMetricPattern(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"grew 15%", true},
		{"saved $2M", true},
		{"$4.5B market", true},
		{"3 regions", true},
		{"significant growth", false},
		{"$ signs only", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, metricPattern.MatchString(tt.text))
		})
	}
}

func TestContainsAny(t *testing.T) {
	assert.Equal(t, []string{"analysis", "overview"}, containsAny("revenue analysis overview", weakTitleWords))
	assert.Nil(t, containsAny("revenue grew", weakTitleWords))
	// Substring semantics: "reported" contains "report"
	assert.Equal(t, []string{"report"}, containsAny("reported gains", weakTitleWords))
}
