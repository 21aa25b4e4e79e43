package scoring

import (
	"fmt"
	"strings"
	"testing"

	"atscore/internal/textproc"
	"atscore/internal/types"
)

func resumeWithText(text string) types.ParsedResume {
	return types.ParsedResume{RawText: text}
}

func TestScoreKeywordMatchDensity(t *testing.T) {
	m := textproc.DefaultMatcher()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty resume", "", 5},
		{"two lexicon terms", "worked with python and docker", 15},
		{"five lexicon terms", "python docker kubernetes aws react", 30},
		{"nine lexicon terms", "python docker kubernetes aws react java redis kafka linux", 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreKeywordMatch(m, resumeWithText(tt.text), "")
			if got.Score != tt.want {
				t.Errorf("expected score %d, got %d", tt.want, got.Score)
			}
		})
	}

	t.Run("density growth is capped at 70", func(t *testing.T) {
		text := "python java javascript typescript go rust ruby php swift kotlin scala sql html css react angular docker kubernetes"
		got := ScoreKeywordMatch(m, resumeWithText(text), "")
		if got.Score != 70 {
			t.Errorf("expected capped score 70, got %d", got.Score)
		}
	})
}

func TestScoreKeywordMatchWithJobDescription(t *testing.T) {
	m := textproc.DefaultMatcher()
	jd := "We need kubernetes kubernetes and docker docker expertise."

	t.Run("full match lands in the top segment", func(t *testing.T) {
		got := ScoreKeywordMatch(m, resumeWithText("Ran kubernetes clusters and docker builds"), jd)
		if got.Score != 100 {
			t.Errorf("expected 100, got %d", got.Score)
		}
		if len(got.Missing) != 0 {
			t.Errorf("expected no missing terms, got %v", got.Missing)
		}
	})

	t.Run("half match maps through the middle segment", func(t *testing.T) {
		got := ScoreKeywordMatch(m, resumeWithText("Ran kubernetes clusters"), jd)
		if got.Score != 40 {
			t.Errorf("expected 40 for ratio 0.5, got %d", got.Score)
		}
		if len(got.Missing) != 1 || got.Missing[0] != "docker" {
			t.Errorf("expected docker missing, got %v", got.Missing)
		}
	})

	t.Run("zero match scores the segment floor", func(t *testing.T) {
		got := ScoreKeywordMatch(m, resumeWithText("unrelated prose entirely"), jd)
		if got.Score != 0 {
			t.Errorf("expected 0, got %d", got.Score)
		}
	})

	t.Run("missing list is capped at ten", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < 15; i++ {
			word := fmt.Sprintf("specialty%02d", i)
			sb.WriteString(word + " " + word + " ")
		}
		got := ScoreKeywordMatch(m, resumeWithText(""), sb.String())
		if len(got.Missing) > 10 {
			t.Errorf("expected at most 10 missing terms, got %d", len(got.Missing))
		}
	})

	t.Run("adding a matched term never decreases the score", func(t *testing.T) {
		base := ScoreKeywordMatch(m, resumeWithText("Ran kubernetes clusters"), jd)
		more := ScoreKeywordMatch(m, resumeWithText("Ran kubernetes clusters with docker"), jd)
		if more.Score < base.Score {
			t.Errorf("score decreased from %d to %d after adding a matched term", base.Score, more.Score)
		}
	})

	t.Run("jd with no required terms falls back to density", func(t *testing.T) {
		got := ScoreKeywordMatch(m, resumeWithText("python docker"), "short note")
		if got.Score != 15 {
			t.Errorf("expected density score 15, got %d", got.Score)
		}
	})
}
