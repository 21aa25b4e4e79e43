package scoring

import (
	"strings"

	"atscore/internal/textproc"
	"atscore/internal/types"
)

// maxMissingKeywords caps the missing-term evidence list
const maxMissingKeywords = 10

// ScoreKeywordMatch scores how well the resume's vocabulary lines up with
// the target role. Without a job description the score is a density measure
// over the skill lexicon; with one it is a piecewise-linear mapping of the
// matched-required ratio.
func ScoreKeywordMatch(m *textproc.Matcher, resume types.ParsedResume, jobDescription string) types.DimensionScore {
	if strings.TrimSpace(jobDescription) == "" {
		return keywordDensityScore(m, resume)
	}

	required := requiredTerms(m, jobDescription)
	if len(required) == 0 {
		return keywordDensityScore(m, resume)
	}

	resumeSkills := m.MatchSet(resume.RawText)
	for _, id := range resume.Skills {
		resumeSkills[strings.ToLower(id)] = struct{}{}
	}
	resumeTerms := textproc.TermFrequencies(resume.RawText)
	for _, kw := range resume.Keywords {
		resumeTerms[strings.ToLower(kw)]++
	}

	var matched, missing []string
	for _, term := range required {
		_, asSkill := resumeSkills[term]
		_, asTerm := resumeTerms[term]
		if asSkill || asTerm {
			matched = append(matched, term)
		} else {
			missing = append(missing, term)
		}
	}

	ratio := float64(len(matched)) / float64(len(required))
	score := ratioCurve(ratio, []curvePoint{
		{0.0, 0}, {0.2, 10}, {0.4, 30}, {0.6, 50}, {0.8, 70}, {1.0, 100},
	})

	if len(missing) > maxMissingKeywords {
		missing = missing[:maxMissingKeywords]
	}
	return types.DimensionScore{Score: score, Matched: matched, Missing: missing}
}

// keywordDensityScore maps the count of lexicon terms found in the resume
// onto a step curve capped at 70.
func keywordDensityScore(m *textproc.Matcher, resume types.ParsedResume) types.DimensionScore {
	matched := m.Match(resume.RawText)
	for _, id := range resume.Skills {
		id = strings.ToLower(id)
		found := false
		for _, got := range matched {
			if got == id {
				found = true
				break
			}
		}
		if !found {
			matched = append(matched, id)
		}
	}

	n := len(matched)
	var score int
	switch {
	case n == 0:
		score = 5
	case n < 3:
		score = 15
	case n < 6:
		score = 30
	case n < 10:
		score = 45
	default:
		score = 45 + 5*(n-9)
		if score > 70 {
			score = 70
		}
	}
	return types.DimensionScore{Score: score, Matched: matched}
}

// requiredTerms derives the required vocabulary of a job description: its
// lexicon terms plus any non-stopword term appearing at least twice.
// Deterministically ordered, lexicon terms first.
func requiredTerms(m *textproc.Matcher, jobDescription string) []string {
	seen := make(map[string]struct{})
	var required []string
	for _, id := range m.Match(jobDescription) {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			required = append(required, id)
		}
	}
	for _, term := range textproc.RepeatedTerms(jobDescription) {
		if _, dup := seen[term]; !dup {
			seen[term] = struct{}{}
			required = append(required, term)
		}
	}
	return required
}
