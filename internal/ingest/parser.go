package ingest

import (
	"strings"

	"atscore/internal/errors"
	"atscore/internal/textproc"
	"atscore/internal/types"
)

// maxCertificationEntries caps the certification list pulled from a
// certifications section.
const maxCertificationEntries = 10

// Parser turns raw resume text into the normalized representation the
// scorers consume. Parsing is best-effort: every structured field may stay
// empty, only RawText is guaranteed.
type Parser struct {
	matcher *textproc.Matcher
}

// NewParser creates a parser over the given skill matcher. A nil matcher
// uses the built-in lexicon.
func NewParser(m *textproc.Matcher) *Parser {
	if m == nil {
		m = textproc.DefaultMatcher()
	}
	return &Parser{matcher: m}
}

// Parse normalizes and dissects resume text. Empty input is the only
// parse failure: everything else degrades to a sparse ParsedResume.
func (p *Parser) Parse(text string) (types.ParsedResume, error) {
	normalized := normalize(text)
	if strings.TrimSpace(normalized) == "" {
		return types.ParsedResume{}, errors.NewValidationError(errors.ErrCodeEmptyInput,
			"resume text is empty", nil)
	}

	resume := types.ParsedResume{
		RawText:         normalized,
		Keywords:        textproc.ExtractKeywords(normalized),
		Skills:          p.matcher.Match(normalized),
		Sections:        textproc.DetectSections(normalized),
		YearsExperience: textproc.YearsOfExperience(normalized),
		Contact:         parseContact(normalized),
	}

	sections := sliceSections(normalized)
	resume.Experience = parseExperience(sections["experience"])
	resume.Education = parseEducation(sections["education"])
	resume.Certifications = parseCertifications(sections["certifications"])

	return resume, nil
}

func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

func parseContact(text string) types.ContactInfo {
	contact := types.ContactInfo{
		Email: textproc.FindEmail(text),
		Phone: textproc.FindPhone(text),
	}
	links := textproc.FindLinks(text)
	contact.LinkedIn = links[textproc.LinkLinkedIn]
	contact.GitHub = links[textproc.LinkGitHub]
	contact.Website = links[textproc.LinkWebsite]
	return contact
}

// maxHeaderLineLength separates section headers from body text that merely
// mentions a section keyword.
const maxHeaderLineLength = 48

// sliceSections splits the text into canonical sections keyed by name.
// Lines before the first recognized header are dropped; scorers work off
// RawText for those.
func sliceSections(text string) map[string][]string {
	sections := make(map[string][]string)
	current := ""
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if name, ok := headerSection(trimmed); ok {
			current = name
			continue
		}
		if current != "" && trimmed != "" {
			sections[current] = append(sections[current], trimmed)
		}
	}
	return sections
}

// headerSection reports whether a line is a section header and which
// canonical section it opens.
func headerSection(line string) (string, bool) {
	if line == "" || len(line) > maxHeaderLineLength {
		return "", false
	}
	candidate := strings.TrimSuffix(line, ":")
	for _, name := range []string{"summary", "experience", "education", "skills", "projects", "certifications"} {
		if textproc.HasSection(candidate, name) {
			return name, true
		}
	}
	return "", false
}

// parseExperience builds one entry per dated line in the experience
// section. Undated lines extend the current entry's description.
func parseExperience(lines []string) []types.ExperienceEntry {
	var entries []types.ExperienceEntry
	for _, line := range lines {
		if duration := textproc.FindDateToken(line); duration != "" {
			title := strings.TrimSpace(strings.Replace(line, duration, "", 1))
			title = strings.TrimSpace(strings.TrimSuffix(title, ","))
			entries = append(entries, types.ExperienceEntry{Title: title, Duration: duration})
			continue
		}
		if len(entries) > 0 {
			last := &entries[len(entries)-1]
			if last.Description != "" {
				last.Description += "\n"
			}
			last.Description += line
		}
	}
	return entries
}

// parseEducation builds one entry per degree-bearing line in the education
// section.
func parseEducation(lines []string) []types.EducationEntry {
	var entries []types.EducationEntry
	for _, line := range lines {
		if textproc.DegreeLevel(line) == textproc.DegreeNone {
			continue
		}
		entry := types.EducationEntry{Degree: line}
		if year := textproc.FindDateToken(line); year != "" {
			entry.Year = year
		}
		entries = append(entries, entry)
	}
	return entries
}

func parseCertifications(lines []string) []string {
	if len(lines) > maxCertificationEntries {
		lines = lines[:maxCertificationEntries]
	}
	var certs []string
	for _, line := range lines {
		certs = append(certs, strings.TrimLeft(line, "-*• \t"))
	}
	return certs
}
