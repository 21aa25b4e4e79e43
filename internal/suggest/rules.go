package suggest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"atscore/internal/textproc"
	"atscore/internal/types"
)

// maxSuggestions caps the suggestion list for every strategy
const maxSuggestions = 10

// needs-attention thresholds per dimension
const (
	keywordAttention    = 50
	keywordCritical     = 30
	skillsAttention     = 50
	skillsCritical      = 30
	experienceAttention = 50
	educationAttention  = 45
	formattingAttention = 50
)

// RuleBased is the deterministic suggestion strategy. It is always
// available, never fails, and produces identical output for identical input.
type RuleBased struct{}

// NewRuleBased creates the rule-based strategy
func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

// Generate emits suggestions for every dimension below its needs-attention
// threshold, plus general structural suggestions. Always returns at least
// one entry, at most 10, ordered critical to low.
func (r *RuleBased) Generate(_ context.Context, in Input) ([]types.Suggestion, error) {
	var out []types.Suggestion
	out = append(out, r.keywordSuggestions(in)...)
	out = append(out, r.skillSuggestions(in)...)
	out = append(out, r.experienceSuggestions(in)...)
	out = append(out, r.educationSuggestions(in)...)
	out = append(out, r.formattingSuggestions(in)...)
	out = append(out, r.generalSuggestions(in)...)

	if len(out) == 0 {
		out = append(out, types.Suggestion{
			Type:     "formatting",
			Priority: types.PriorityLow,
			Message:  "Your resume scores well across all dimensions. Keep it current as you gain new experience.",
			Action:   "Review the resume quarterly and refresh recent accomplishments",
		})
	}

	return Finalize(out), nil
}

func (r *RuleBased) keywordSuggestions(in Input) []types.Suggestion {
	score := in.Scores.KeywordMatch
	if score.Score >= keywordAttention {
		return nil
	}
	priority := types.PriorityHigh
	if score.Score < keywordCritical {
		priority = types.PriorityCritical
	}
	s := types.Suggestion{
		Type:     "keywords",
		Priority: priority,
		Message:  "Add more relevant keywords from the job description to your resume",
		Impact:   "+10-15 points",
		Action:   "Mirror the job description's terminology in your summary and experience bullets",
	}
	if len(score.Missing) > 0 {
		s.Message = fmt.Sprintf("Your resume is missing key terms the role asks for: %s", strings.Join(capList(score.Missing, 5), ", "))
		s.Action = fmt.Sprintf("Work %s into your experience bullets where they truthfully apply", strings.Join(capList(score.Missing, 3), ", "))
	}
	return []types.Suggestion{s}
}

func (r *RuleBased) skillSuggestions(in Input) []types.Suggestion {
	score := in.Scores.SkillsMatch
	if score.Score >= skillsAttention {
		return nil
	}
	priority := types.PriorityHigh
	if score.Score < skillsCritical {
		priority = types.PriorityCritical
	}
	s := types.Suggestion{
		Type:     "skills",
		Priority: priority,
		Message:  "List more relevant technical and soft skills (aim for 10-15 skills)",
		Impact:   "+8-12 points",
		Action:   "Add a dedicated skills section listing the technologies you work with",
	}
	if len(score.Missing) > 0 {
		s.Message = fmt.Sprintf("Required skills not found on your resume: %s", strings.Join(capList(score.Missing, 5), ", "))
		s.Action = fmt.Sprintf("Add %s to your skills section if you have experience with them", strings.Join(capList(score.Missing, 3), ", "))
	}
	return []types.Suggestion{s}
}

func (r *RuleBased) experienceSuggestions(in Input) []types.Suggestion {
	if in.Scores.ExperienceQuality.Score >= experienceAttention {
		return nil
	}
	var out []types.Suggestion
	text := in.Resume.RawText
	if textproc.CountMetrics(text) < 5 {
		out = append(out, types.Suggestion{
			Type:     "experience",
			Priority: types.PriorityHigh,
			Message:  "Add quantifiable achievements (increased by 30%, managed $2M budget, led team of 10)",
			Impact:   "+10-15 points",
			Action:   "Rewrite each experience bullet to lead with a measurable outcome",
		})
	}
	if textproc.CountActionVerbs(text) < 10 {
		out = append(out, types.Suggestion{
			Type:     "experience",
			Priority: types.PriorityHigh,
			Message:  "Use more action verbs (achieved, managed, led, developed) to describe your accomplishments",
			Impact:   "+5-10 points",
			Action:   "Start every bullet with a strong past-tense verb",
		})
	}
	if len(out) == 0 {
		out = append(out, types.Suggestion{
			Type:     "experience",
			Priority: types.PriorityMedium,
			Message:  "Expand your experience section with more detail about scope and outcomes",
			Impact:   "+5-10 points",
			Action:   "Describe team size, technologies used, and results for each role",
		})
	}
	return out
}

func (r *RuleBased) educationSuggestions(in Input) []types.Suggestion {
	if in.Scores.Education.Score >= educationAttention {
		return nil
	}
	return []types.Suggestion{{
		Type:     "education",
		Priority: types.PriorityMedium,
		Message:  "Strengthen the education section with degrees, certifications, or relevant coursework",
		Impact:   "+3-8 points",
		Action:   "List your highest credential first and add any industry certifications",
	}}
}

func (r *RuleBased) formattingSuggestions(in Input) []types.Suggestion {
	if in.Scores.Formatting.Score >= formattingAttention {
		return nil
	}
	var out []types.Suggestion
	text := in.Resume.RawText

	var missingSections []string
	for _, s := range []string{"experience", "education", "skills"} {
		if !textproc.HasSection(text, s) {
			missingSections = append(missingSections, s)
		}
	}
	if len(missingSections) > 0 {
		out = append(out, types.Suggestion{
			Type:     "formatting",
			Priority: types.PriorityCritical,
			Message:  fmt.Sprintf("Add missing sections: %s", strings.Join(missingSections, ", ")),
			Impact:   "+10-20 points",
			Action:   "Structure the resume with clear section headers",
		})
	}
	if in.Resume.Contact.Email == "" && !textproc.HasEmail(text) {
		out = append(out, types.Suggestion{
			Type:     "formatting",
			Priority: types.PriorityCritical,
			Message:  "Ensure your contact information (email and phone) is clearly visible",
			Impact:   "+10-15 points",
			Action:   "Put your email address and phone number at the top of the document",
		})
	}
	if len(out) == 0 {
		out = append(out, types.Suggestion{
			Type:     "formatting",
			Priority: types.PriorityMedium,
			Message:  "Improve document structure with consistent headers, dates, and spacing",
			Impact:   "+3-6 points",
			Action:   "Use one date format and one bullet style throughout",
		})
	}
	return out
}

// generalSuggestions fire on resume facts regardless of dimension scores
func (r *RuleBased) generalSuggestions(in Input) []types.Suggestion {
	var out []types.Suggestion
	text := in.Resume.RawText

	if !textproc.HasSection(text, "summary") {
		out = append(out, types.Suggestion{
			Type:     "formatting",
			Priority: types.PriorityMedium,
			Message:  "Add a professional summary at the top of your resume",
			Impact:   "+2-5 points",
			Action:   "Write 2-3 sentences highlighting your strongest qualifications",
		})
	}
	if textproc.CountBullets(text) < 5 && strings.TrimSpace(text) != "" {
		out = append(out, types.Suggestion{
			Type:     "formatting",
			Priority: types.PriorityLow,
			Message:  "Use bullet points to make your experience more readable",
			Impact:   "+2-4 points",
			Action:   "Break dense paragraphs into short bullet points",
		})
	}
	if len(textproc.FindLinks(text)) == 0 && in.Resume.Contact.LinkedIn == "" && in.Resume.Contact.GitHub == "" {
		out = append(out, types.Suggestion{
			Type:     "formatting",
			Priority: types.PriorityLow,
			Message:  "Add professional links such as LinkedIn or a portfolio site",
			Impact:   "+2-3 points",
			Action:   "Include your LinkedIn profile URL in the contact block",
		})
	}
	return out
}

// Finalize orders suggestions by priority severity and caps the list at 10.
// The sort is stable so same-priority entries keep their rule order.
func Finalize(suggestions []types.Suggestion) []types.Suggestion {
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority.Rank() < suggestions[j].Priority.Rank()
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
