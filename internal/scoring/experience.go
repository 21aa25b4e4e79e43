package scoring

import (
	"strings"

	"atscore/internal/textproc"
	"atscore/internal/types"
)

// ScoreExperience scores the work-history quality of a resume: quantified
// achievements, action-verb density, stated years of experience, title
// seniority, and document length. Clamped to [5,95].
func ScoreExperience(resume types.ParsedResume) types.DimensionScore {
	text := experienceText(resume)
	score := 30

	switch metrics := textproc.CountMetrics(text); {
	case metrics >= 8:
		score += 30
	case metrics >= 5:
		score += 20
	case metrics >= 3:
		score += 12
	case metrics >= 1:
		score += 5
	default:
		score -= 15
	}

	switch verbs := textproc.CountActionVerbs(text); {
	case verbs >= 10:
		score += 15
	case verbs >= 6:
		score += 10
	case verbs >= 3:
		score += 5
	default:
		score -= 10
	}

	years := resume.YearsExperience
	if years <= 0 {
		years = textproc.YearsOfExperience(text)
	}
	switch {
	case years >= 10:
		score += 12
	case years >= 6:
		score += 8
	case years >= 3:
		score += 5
	case years >= 1:
		score += 2
	}

	if textproc.HasSeniorTitle(text) {
		score += 8
	} else if textproc.HasJuniorTitle(text) {
		score -= 5
	}

	switch length := len(resume.RawText); {
	case length < 400:
		score -= 25
	case length < 800:
		score -= 15
	case length < 1200:
		score -= 5
	case length > 2500:
		score += 5
	}

	return types.DimensionScore{Score: clamp(score, 5, 95)}
}

// experienceText is the raw text extended with structured entry fields, so
// titles and descriptions parsed out separately still count.
func experienceText(resume types.ParsedResume) string {
	if len(resume.Experience) == 0 {
		return resume.RawText
	}
	var sb strings.Builder
	sb.WriteString(resume.RawText)
	for _, e := range resume.Experience {
		sb.WriteByte('\n')
		sb.WriteString(e.Title)
		sb.WriteByte(' ')
		sb.WriteString(e.Duration)
		sb.WriteByte(' ')
		sb.WriteString(e.Description)
	}
	return sb.String()
}
