package scoring

import (
	"math"

	"atscore/internal/types"
)

// Dimension weights. They sum to exactly 1.0.
const (
	WeightKeywordMatch      = 0.40
	WeightSkillsMatch       = 0.25
	WeightExperienceQuality = 0.20
	WeightEducation         = 0.10
	WeightFormatting        = 0.05
)

// Cross-dimension caps: a resume that misses the target vocabulary or has
// weak experience cannot ride the other dimensions to a high overall.
const (
	keywordSkillCapThreshold = 30
	keywordSkillCap          = 55
	experienceCapThreshold   = 25
	experienceCap            = 50
)

// Overall bounds: never 0, never 100
const (
	overallFloor   = 5
	overallCeiling = 95
)

// Aggregate combines the five dimension scores into the overall score:
// fixed-weight sum, cross-dimension caps, clamp to [5,95]. When both caps
// trigger the tighter one applies.
func Aggregate(ds types.DimensionScores) int {
	weighted := WeightKeywordMatch*float64(ds.KeywordMatch.Score) +
		WeightSkillsMatch*float64(ds.SkillsMatch.Score) +
		WeightExperienceQuality*float64(ds.ExperienceQuality.Score) +
		WeightEducation*float64(ds.Education.Score) +
		WeightFormatting*float64(ds.Formatting.Score)

	overall := int(math.Round(weighted))
	if ds.KeywordMatch.Score < keywordSkillCapThreshold || ds.SkillsMatch.Score < keywordSkillCapThreshold {
		overall = min(overall, keywordSkillCap)
	}
	if ds.ExperienceQuality.Score < experienceCapThreshold {
		overall = min(overall, experienceCap)
	}

	return clamp(overall, overallFloor, overallCeiling)
}
