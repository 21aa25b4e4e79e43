package scoring

import (
	"strings"

	"atscore/internal/textproc"
	"atscore/internal/types"
)

// maxMissingSkills caps the missing-skill evidence list
const maxMissingSkills = 8

// maxExtraSkillBonus bounds the bonus for non-required matched skills
const maxExtraSkillBonus = 15

// ScoreSkillsMatch scores the resume's skill coverage. Without a job
// description it is a step function of the absolute skill count; with one it
// is the ratio of required skills matched, plus a small bonus for extra
// skills beyond the requirement.
func ScoreSkillsMatch(m *textproc.Matcher, resume types.ParsedResume, jobDescription string) types.DimensionScore {
	resumeSkills := resumeSkillIDs(m, resume)

	if strings.TrimSpace(jobDescription) == "" {
		return types.DimensionScore{Score: absoluteSkillScore(len(resumeSkills)), Matched: resumeSkills}
	}

	required := m.Match(jobDescription)
	if len(required) == 0 {
		return types.DimensionScore{Score: absoluteSkillScore(len(resumeSkills)), Matched: resumeSkills}
	}

	have := make(map[string]struct{}, len(resumeSkills))
	for _, id := range resumeSkills {
		have[id] = struct{}{}
	}
	requiredSet := make(map[string]struct{}, len(required))
	var matched, missing []string
	for _, id := range required {
		requiredSet[id] = struct{}{}
		if _, ok := have[id]; ok {
			matched = append(matched, id)
		} else {
			missing = append(missing, id)
		}
	}

	ratio := float64(len(matched)) / float64(len(required))
	score := ratioCurve(ratio, []curvePoint{
		{0.0, 0}, {0.3, 15}, {0.5, 40}, {0.7, 70}, {0.9, 90}, {1.0, 100},
	})

	extra := 0
	for _, id := range resumeSkills {
		if _, req := requiredSet[id]; !req {
			extra++
		}
	}
	bonus := 3 * extra
	if bonus > maxExtraSkillBonus {
		bonus = maxExtraSkillBonus
	}
	score = clamp(score+bonus, 0, 100)

	if len(missing) > maxMissingSkills {
		missing = missing[:maxMissingSkills]
	}
	return types.DimensionScore{Score: score, Matched: matched, Missing: missing}
}

// absoluteSkillScore steps up with the total number of distinct skills
func absoluteSkillScore(n int) int {
	switch {
	case n == 0:
		return 5
	case n < 3:
		return 15
	case n < 5:
		return 25
	case n < 8:
		return 40
	case n < 12:
		return 55
	case n < 16:
		return 70
	default:
		score := 70 + 2*(n-15)
		if score > 95 {
			score = 95
		}
		return score
	}
}

// resumeSkillIDs merges the pre-parsed skill set with a lexicon scan of the
// raw text, deduplicated, lexicon-scan order first.
func resumeSkillIDs(m *textproc.Matcher, resume types.ParsedResume) []string {
	ids := m.Match(resume.RawText)
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	for _, id := range resume.Skills {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
