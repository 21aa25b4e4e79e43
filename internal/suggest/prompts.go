package suggest

import (
	"fmt"
	"strings"
)

// DefaultSystemPrompt instructs the model to act as a resume reviewer and
// reply with the strict JSON array the remote contract requires.
const DefaultSystemPrompt = `You are an expert resume reviewer for applicant tracking systems.
Given dimension scores and evidence from an automated resume analysis, produce concrete improvement suggestions.
Respond ONLY with a JSON array. Each element must be an object with string fields:
"type" (one of: keywords, skills, experience, education, formatting),
"priority" (one of: critical, high, medium, low),
"message" (the suggestion itself),
and optionally "impact" (estimated point gain, e.g. "+10-15 points") and "action" (a concrete instruction).
Do not include any text outside the JSON array.`

// evidence lists in the prompt are capped to keep the payload small
const maxPromptEvidence = 8

// BuildPrompt renders the compact score summary the remote strategy sends
func BuildPrompt(in Input) string {
	var sb strings.Builder
	sb.WriteString("Resume analysis results:\n")
	fmt.Fprintf(&sb, "- Keyword match: %d/100\n", in.Scores.KeywordMatch.Score)
	fmt.Fprintf(&sb, "- Skills match: %d/100\n", in.Scores.SkillsMatch.Score)
	fmt.Fprintf(&sb, "- Experience quality: %d/100\n", in.Scores.ExperienceQuality.Score)
	fmt.Fprintf(&sb, "- Education: %d/100\n", in.Scores.Education.Score)
	fmt.Fprintf(&sb, "- Formatting: %d/100\n", in.Scores.Formatting.Score)

	if missing := capList(in.Scores.KeywordMatch.Missing, maxPromptEvidence); len(missing) > 0 {
		fmt.Fprintf(&sb, "Missing keywords: %s\n", strings.Join(missing, ", "))
	}
	if missing := capList(in.Scores.SkillsMatch.Missing, maxPromptEvidence); len(missing) > 0 {
		fmt.Fprintf(&sb, "Missing skills: %s\n", strings.Join(missing, ", "))
	}
	if matched := capList(in.Scores.SkillsMatch.Matched, maxPromptEvidence); len(matched) > 0 {
		fmt.Fprintf(&sb, "Matched skills: %s\n", strings.Join(matched, ", "))
	}
	if in.JobDescription != "" {
		sb.WriteString("A target job description was provided.\n")
	}

	sb.WriteString("Return up to 10 suggestions as a JSON array, most urgent first.")
	return sb.String()
}
