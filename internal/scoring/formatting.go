package scoring

import (
	"atscore/internal/textproc"
	"atscore/internal/types"
)

// canonical sections every resume is expected to carry
var coreSections = []string{"experience", "education", "skills"}

// optional sections that earn a small bonus
var optionalSections = []string{"summary", "projects", "certifications"}

// ScoreFormatting scores document structure: canonical sections, contact
// details, professional links, line structure, bullets and dated entries.
// Clamped to [10,95].
func ScoreFormatting(resume types.ParsedResume) types.DimensionScore {
	text := resume.RawText
	score := 40

	core := 0
	for _, s := range coreSections {
		if textproc.HasSection(text, s) {
			core++
		}
	}
	if core < 3 {
		score -= 25
	} else {
		score += 7 * core
	}
	for _, s := range optionalSections {
		if textproc.HasSection(text, s) {
			score += 4
		}
	}

	if resume.Contact.Email == "" && !textproc.HasEmail(text) {
		score -= 30
	}
	if resume.Contact.Phone == "" && !textproc.HasPhone(text) {
		score -= 10
	}
	score += 3 * linkCount(resume)

	if textproc.LineCount(text) < 10 {
		// reads as one unbroken block
		score -= 20
	}
	if textproc.HasDateTokens(text) {
		score += 5
	}
	if bullets := textproc.CountBullets(text); bullets >= 3 {
		score += 5
	} else if bullets == 0 {
		score -= 5
	}

	return types.DimensionScore{Score: clamp(score, 10, 95)}
}

func linkCount(resume types.ParsedResume) int {
	links := textproc.FindLinks(resume.RawText)
	if resume.Contact.LinkedIn != "" {
		links[textproc.LinkLinkedIn] = resume.Contact.LinkedIn
	}
	if resume.Contact.GitHub != "" {
		links[textproc.LinkGitHub] = resume.Contact.GitHub
	}
	if resume.Contact.Website != "" {
		links[textproc.LinkWebsite] = resume.Contact.Website
	}
	n := len(links)
	if n > 3 {
		n = 3
	}
	return n
}
