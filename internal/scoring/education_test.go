package scoring

import (
	"testing"

	"atscore/internal/types"
)

func TestScoreEducation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"no credentials", "worked at a shop", 15},
		{"certificate without a degree", "Completed a certification in cloud computing", 35},
		{"bootcamp without a degree", "Graduated from a coding bootcamp", 35},
		{"associate degree", "Associate degree in nursing", 40},
		{"bachelor in a technical field", "Bachelor of Science in Computer Science", 63},
		{"master in a technical field", "M.S. in Mathematics", 83},
		{"doctorate with certifications", "Ph.D. in Physics. AWS Certified Solutions Architect and CISSP certification.", 95},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreEducation(resumeWithText(tt.text))
			if got.Score != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got.Score)
			}
		})
	}

	t.Run("structured entries count without raw-text mentions", func(t *testing.T) {
		resume := types.ParsedResume{
			RawText: "employment history only",
			Education: []types.EducationEntry{{
				Degree:      "Master of Science",
				Field:       "Computer Science",
				Institution: "State University",
			}},
		}
		got := ScoreEducation(resume)
		if got.Score != 83 {
			t.Errorf("expected 83, got %d", got.Score)
		}
	})

	t.Run("pre-parsed certifications override the text scan", func(t *testing.T) {
		resume := types.ParsedResume{
			RawText:        "Bachelor of Arts in History",
			Certifications: []string{"CKA", "CKAD"},
		}
		got := ScoreEducation(resume)
		// bachelor 55, two certifications +10
		if got.Score != 65 {
			t.Errorf("expected 65, got %d", got.Score)
		}
	})
}
