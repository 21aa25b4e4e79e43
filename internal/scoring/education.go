package scoring

import (
	"strings"

	"atscore/internal/textproc"
	"atscore/internal/types"
)

// ScoreEducation scores the credential tier plus field and certification
// bonuses. Clamped to [10,95].
func ScoreEducation(resume types.ParsedResume) types.DimensionScore {
	text := educationText(resume)

	var score int
	switch textproc.DegreeLevel(text) {
	case textproc.DegreeDoctorate:
		score = 90
	case textproc.DegreeMaster:
		score = 75
	case textproc.DegreeBachelor:
		score = 55
	case textproc.DegreeAssociate:
		score = 40
	default:
		// no degree: a certificate or bootcamp still beats nothing
		if certificationCount(resume, text) > 0 || strings.Contains(strings.ToLower(text), "bootcamp") {
			score = 30
		} else {
			score = 15
		}
	}

	if textproc.HasTechnicalField(text) {
		score += 8
	}

	switch certs := certificationCount(resume, text); {
	case certs >= 2:
		score += 10
	case certs == 1:
		score += 5
	}

	return types.DimensionScore{Score: clamp(score, 10, 95)}
}

func certificationCount(resume types.ParsedResume, text string) int {
	if len(resume.Certifications) > 0 {
		return len(resume.Certifications)
	}
	return textproc.CountCertificationMentions(text)
}

func educationText(resume types.ParsedResume) string {
	if len(resume.Education) == 0 {
		return resume.RawText
	}
	var sb strings.Builder
	sb.WriteString(resume.RawText)
	for _, e := range resume.Education {
		sb.WriteByte('\n')
		sb.WriteString(e.Degree)
		sb.WriteByte(' ')
		sb.WriteString(e.Field)
		sb.WriteByte(' ')
		sb.WriteString(e.Institution)
	}
	return sb.String()
}
