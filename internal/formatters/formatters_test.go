package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"atscore/internal/types"
)

func sampleBreakdown() types.ScoreBreakdown {
	return types.ScoreBreakdown{
		OverallScore: 72,
		Grade:        "B+",
		Dimensions: types.DimensionScores{
			KeywordMatch:      types.DimensionScore{Score: 70, Matched: []string{"python", "docker"}, Missing: []string{"aws"}},
			SkillsMatch:       types.DimensionScore{Score: 65},
			ExperienceQuality: types.DimensionScore{Score: 80},
			Education:         types.DimensionScore{Score: 63},
			Formatting:        types.DimensionScore{Score: 81},
		},
		MatchedKeywords: []string{"python", "docker"},
		MissingKeywords: []string{"aws"},
		Suggestions: []types.Suggestion{
			{
				Type:     "keywords",
				Priority: types.PriorityHigh,
				Message:  "Add the missing keywords from the job description",
				Action:   "Mention aws experience where it applies",
				Impact:   "Raises the keyword match dimension",
			},
		},
	}
}

func TestFormatterRegistry(t *testing.T) {
	registry := NewFormatterRegistry()

	t.Run("json output round-trips", func(t *testing.T) {
		out, err := registry.Format(sampleBreakdown(), "json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var decoded types.ScoreBreakdown
		if err := json.Unmarshal([]byte(out), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.OverallScore != 72 || decoded.Grade != "B+" {
			t.Errorf("unexpected decoded result %+v", decoded)
		}
	})

	t.Run("text output carries every section", func(t *testing.T) {
		out, err := registry.Format(sampleBreakdown(), "text")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"=== RESUME SCORE ===",
			"Overall: 72/100 (B+)",
			"Keyword Match",
			"Formatting",
			"Missing Keywords:",
			"aws",
			"1. [HIGH]",
			"Action: Mention aws experience where it applies",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("text output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("markdown output carries every section", func(t *testing.T) {
		out, err := registry.Format(sampleBreakdown(), "markdown")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"# Resume Score",
			"**Overall:** 72/100 (Grade **B+**)",
			"| Keyword Match | 70/100 |",
			"## Missing Keywords",
			"### 1. keywords (high)",
			"**Impact:** Raises the keyword match dimension",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("markdown output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("unknown format fails", func(t *testing.T) {
		if _, err := registry.Format(sampleBreakdown(), "yaml"); err == nil {
			t.Error("expected error for unsupported format")
		}
	})

	t.Run("unknown type falls back to json", func(t *testing.T) {
		out, err := registry.Format(map[string]int{"a": 1}, "json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, `"a": 1`) {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("supported formats include the defaults", func(t *testing.T) {
		formats := registry.GetSupportedFormats()
		found := make(map[string]bool)
		for _, f := range formats {
			found[f] = true
		}
		for _, want := range []string{"json", "text", "markdown"} {
			if !found[want] {
				t.Errorf("expected %q in %v", want, formats)
			}
		}
	})
}
