package textproc

import "testing"

func TestCountMetrics(t *testing.T) {
	t.Run("counts percentages currency and multipliers", func(t *testing.T) {
		text := "Increased revenue by 30%, saved $50K, handled 10M+ requests, 3x faster"
		if got := CountMetrics(text); got < 4 {
			t.Errorf("expected at least 4 metrics, got %d", got)
		}
	})

	t.Run("zero for plain prose", func(t *testing.T) {
		if got := CountMetrics("Responsible for maintaining the website."); got != 0 {
			t.Errorf("expected 0 metrics, got %d", got)
		}
	})
}

func TestCountActionVerbs(t *testing.T) {
	t.Run("counts verbs and folded inflections", func(t *testing.T) {
		text := "Led the team. Implementing pipelines. Designed and deployed services."
		if got := CountActionVerbs(text); got != 4 {
			t.Errorf("expected 4 action verbs, got %d", got)
		}
	})

	t.Run("ignores non-verbs", func(t *testing.T) {
		if got := CountActionVerbs("the quick brown fox"); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})
}

func TestDetectSections(t *testing.T) {
	text := `Professional Experience
Software engineer at Acme

Education
BS Computer Science

Skills
Go, Docker`
	got := DetectSections(text)
	want := []string{"experience", "education", "skills"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestHasSection(t *testing.T) {
	if !HasSection("Work History\n...", "experience") {
		t.Error("expected work history to register as experience section")
	}
	if HasSection("nothing here", "education") {
		t.Error("expected no education section")
	}
}

func TestCountBullets(t *testing.T) {
	text := "• first\n• second\n- third\n* fourth\nplain line"
	if got := CountBullets(text); got != 4 {
		t.Errorf("expected 4 bullets, got %d", got)
	}
}

func TestContactDetection(t *testing.T) {
	t.Run("email", func(t *testing.T) {
		if !HasEmail("reach me at jane.doe@example.com") {
			t.Error("expected email detected")
		}
		if HasEmail("no address here") {
			t.Error("expected no email")
		}
	})

	t.Run("phone", func(t *testing.T) {
		if !HasPhone("call (555) 123-4567") {
			t.Error("expected phone detected")
		}
	})

	t.Run("links", func(t *testing.T) {
		links := FindLinks("https://linkedin.com/in/jane https://github.com/jane https://jane.dev")
		if _, ok := links[LinkLinkedIn]; !ok {
			t.Error("expected linkedin link")
		}
		if _, ok := links[LinkGitHub]; !ok {
			t.Error("expected github link")
		}
		if _, ok := links[LinkWebsite]; !ok {
			t.Error("expected website link")
		}
	})
}

func TestDegreeLevel(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"doctorate", "PhD in Computer Science", DegreeDoctorate},
		{"masters", "Master's degree, MIT", DegreeMaster},
		{"mba", "MBA, Wharton", DegreeMaster},
		{"bachelors", "Bachelor of Science in CS", DegreeBachelor},
		{"bs abbreviation", "B.S. Computer Science", DegreeBachelor},
		{"associate", "Associate degree in IT", DegreeAssociate},
		{"high school", "High school graduate, 2010", DegreeHighSchool},
		{"none", "self taught programmer", DegreeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DegreeLevel(tt.text); got != tt.want {
				t.Errorf("DegreeLevel(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestYearsOfExperience(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"explicit phrase", "10 years of experience in backend development", 10},
		{"yrs abbreviation", "6+ yrs experience", 6},
		{"date range", "Acme Corp 2013-2023", 10},
		{"takes the maximum", "3 years at Acme, 2010-2022 overall", 12},
		{"no signal", "backend developer", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YearsOfExperience(tt.text); got != tt.want {
				t.Errorf("YearsOfExperience(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestTitleSeniority(t *testing.T) {
	if !HasSeniorTitle("Senior Software Engineer") {
		t.Error("expected senior title detected")
	}
	if !HasJuniorTitle("Junior Developer") {
		t.Error("expected junior title detected")
	}
	if HasSeniorTitle("Software Engineer") {
		t.Error("expected no senior title")
	}
}

func TestHasDateTokens(t *testing.T) {
	if !HasDateTokens("Jan 2020 - Dec 2022") {
		t.Error("expected month-year tokens detected")
	}
	if !HasDateTokens("2019–2021") {
		t.Error("expected year range detected")
	}
	if HasDateTokens("no dates at all") {
		t.Error("expected no date tokens")
	}
}

func TestHasGPA(t *testing.T) {
	if !HasGPA("GPA: 3.8/4.0") {
		t.Error("expected gpa detected")
	}
}

func TestHasTechnicalField(t *testing.T) {
	if !HasTechnicalField("BS in Computer Science") {
		t.Error("expected technical field detected")
	}
	if HasTechnicalField("BA in History") {
		t.Error("expected no technical field")
	}
}
