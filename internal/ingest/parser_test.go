package ingest

import (
	"strings"
	"testing"
)

const sampleResume = `John Smith
john.smith@example.com
(555) 987-6543
https://github.com/johnsmith

Summary
Backend engineer focused on python services.

Experience
Acme Corp, Staff Engineer, 2018 - 2024
Built kafka pipelines in python
Globex, Engineer, 2015 - 2018
Maintained postgresql clusters

Education
B.S. in Computer Science, State University, 2011 - 2015

Certifications
- AWS Certified Solutions Architect
- CKA
`

func TestParserParse(t *testing.T) {
	p := NewParser(nil)

	t.Run("empty input is rejected", func(t *testing.T) {
		if _, err := p.Parse("   \n\t"); err == nil {
			t.Error("expected error for empty input")
		}
	})

	resume, err := p.Parse(sampleResume)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("contact details", func(t *testing.T) {
		if resume.Contact.Email != "john.smith@example.com" {
			t.Errorf("unexpected email %q", resume.Contact.Email)
		}
		if resume.Contact.Phone == "" {
			t.Error("expected a phone number")
		}
		if resume.Contact.GitHub != "https://github.com/johnsmith" {
			t.Errorf("unexpected github link %q", resume.Contact.GitHub)
		}
	})

	t.Run("sections detected in order", func(t *testing.T) {
		want := []string{"summary", "experience", "education", "certifications"}
		if len(resume.Sections) != len(want) {
			t.Fatalf("expected %v, got %v", want, resume.Sections)
		}
		for i, s := range want {
			if resume.Sections[i] != s {
				t.Errorf("section %d: expected %q, got %q", i, s, resume.Sections[i])
			}
		}
	})

	t.Run("experience entries split on dated lines", func(t *testing.T) {
		if len(resume.Experience) != 2 {
			t.Fatalf("expected 2 entries, got %+v", resume.Experience)
		}
		first := resume.Experience[0]
		if first.Title != "Acme Corp, Staff Engineer" {
			t.Errorf("unexpected title %q", first.Title)
		}
		if first.Duration != "2018 - 2024" {
			t.Errorf("unexpected duration %q", first.Duration)
		}
		if !strings.Contains(first.Description, "kafka pipelines") {
			t.Errorf("unexpected description %q", first.Description)
		}
	})

	t.Run("education entry with year", func(t *testing.T) {
		if len(resume.Education) != 1 {
			t.Fatalf("expected 1 entry, got %+v", resume.Education)
		}
		if resume.Education[0].Year != "2011 - 2015" {
			t.Errorf("unexpected year %q", resume.Education[0].Year)
		}
	})

	t.Run("certifications stripped of bullets", func(t *testing.T) {
		if len(resume.Certifications) != 2 {
			t.Fatalf("expected 2 certifications, got %v", resume.Certifications)
		}
		if resume.Certifications[0] != "AWS Certified Solutions Architect" {
			t.Errorf("unexpected certification %q", resume.Certifications[0])
		}
	})

	t.Run("years of experience from date ranges", func(t *testing.T) {
		if resume.YearsExperience != 6 {
			t.Errorf("expected 6 years, got %d", resume.YearsExperience)
		}
	})

	t.Run("skills from the lexicon scan", func(t *testing.T) {
		found := make(map[string]bool)
		for _, s := range resume.Skills {
			found[s] = true
		}
		for _, want := range []string{"python", "kafka", "postgresql", "aws"} {
			if !found[want] {
				t.Errorf("expected skill %q in %v", want, resume.Skills)
			}
		}
	})

	t.Run("keywords are extracted", func(t *testing.T) {
		if len(resume.Keywords) == 0 {
			t.Error("expected extracted keywords")
		}
	})

	t.Run("windows line endings normalize", func(t *testing.T) {
		r, err := p.Parse("Experience\r\nAcme, 2019 - 2021\r\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(r.RawText, "\r") {
			t.Error("expected carriage returns stripped")
		}
		if len(r.Experience) != 1 {
			t.Errorf("expected a parsed entry, got %+v", r.Experience)
		}
	})
}
