package scoring

import "testing"

func TestGradeFor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{95, "A+"}, {90, "A+"},
		{89, "A"}, {82, "A"},
		{81, "B+"}, {75, "B+"},
		{74, "B"}, {68, "B"},
		{67, "C+"}, {60, "C+"},
		{59, "C"}, {52, "C"},
		{51, "D+"}, {42, "D+"},
		{41, "D"}, {32, "D"},
		{31, "F"}, {5, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := GradeFor(tt.score); got != tt.want {
			t.Errorf("GradeFor(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}

	t.Run("grades never regress as the score rises", func(t *testing.T) {
		rank := map[string]int{
			"F": 0, "D": 1, "D+": 2, "C": 3, "C+": 4, "B": 5, "B+": 6, "A": 7, "A+": 8,
		}
		prev := rank[GradeFor(0)]
		for s := 1; s <= 100; s++ {
			r, ok := rank[GradeFor(s)]
			if !ok {
				t.Fatalf("unknown grade %q at score %d", GradeFor(s), s)
			}
			if r < prev {
				t.Fatalf("grade regressed at score %d", s)
			}
			prev = r
		}
	})
}
