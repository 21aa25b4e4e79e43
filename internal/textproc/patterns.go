package textproc

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Shared pattern library. All scorers go through these helpers so they agree
// on what counts as a metric, an action verb, a section header and so on.

var actionVerbs = map[string]struct{}{
	// Leadership
	"led": {}, "managed": {}, "directed": {}, "supervised": {}, "coordinated": {}, "oversaw": {},
	"headed": {}, "spearheaded": {}, "orchestrated": {}, "pioneered": {}, "founded": {},
	// Achievement
	"achieved": {}, "accomplished": {}, "attained": {}, "exceeded": {}, "surpassed": {}, "earned": {},
	"won": {}, "awarded": {}, "recognized": {}, "honored": {}, "promoted": {},
	// Creation
	"created": {}, "developed": {}, "designed": {}, "built": {}, "established": {}, "launched": {},
	"initiated": {}, "introduced": {}, "invented": {}, "originated": {}, "formulated": {},
	// Improvement
	"improved": {}, "enhanced": {}, "optimized": {}, "streamlined": {}, "upgraded": {}, "modernized": {},
	"revitalized": {}, "transformed": {}, "revolutionized": {}, "restructured": {}, "refined": {},
	// Analysis
	"analyzed": {}, "evaluated": {}, "assessed": {}, "researched": {}, "investigated": {}, "examined": {},
	"diagnosed": {}, "identified": {}, "discovered": {}, "measured": {}, "quantified": {},
	// Communication
	"presented": {}, "communicated": {}, "negotiated": {}, "persuaded": {}, "influenced": {}, "advocated": {},
	"collaborated": {}, "partnered": {}, "liaised": {}, "consulted": {}, "mentored": {}, "trained": {},
	// Technical
	"implemented": {}, "deployed": {}, "integrated": {}, "automated": {}, "engineered": {}, "programmed": {},
	"architected": {}, "configured": {}, "migrated": {}, "scaled": {}, "debugged": {}, "tested": {},
	// Business
	"increased": {}, "decreased": {}, "reduced": {}, "generated": {}, "delivered": {}, "executed": {},
	"accelerated": {}, "expanded": {}, "consolidated": {}, "maximized": {}, "minimized": {},
}

var metricPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`\$[\d,]+[kmbKMB]?`),
	regexp.MustCompile(`(?i)\d+[kmb]\+?\b`),
	regexp.MustCompile(`\d+\+`),
	regexp.MustCompile(`(?i)\d+x\b`),
	regexp.MustCompile(`(?i)\d+\s*(?:users?|customers?|clients?|people|teams?|engineers?|members?)\b`),
	regexp.MustCompile(`(?i)\b(?:increased|decreased|reduced|improved|grew|saved)\b[^.\n]{0,40}?\d+`),
}

// sectionOrder fixes the reporting order of canonical section names
var sectionOrder = []string{"summary", "experience", "education", "skills", "projects", "certifications"}

var sectionKeywords = map[string][]string{
	"summary":        {"summary", "profile", "objective", "about", "overview"},
	"experience":     {"experience", "employment", "work history", "professional experience", "career history"},
	"education":      {"education", "academic", "qualification", "degree", "university", "college"},
	"skills":         {"skills", "technical skills", "competencies", "expertise", "proficiencies", "technologies"},
	"projects":       {"projects", "portfolio", "key projects", "personal projects"},
	"certifications": {"certifications", "certificates", "licenses", "credentials"},
}

var (
	wordPattern      = regexp.MustCompile(`[a-z][a-z0-9+#.'-]*`)
	emailPattern     = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern     = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	gpaPattern       = regexp.MustCompile(`(?i)\bgpa\b|grade\s*point\s*average|\d\.\d+\s*/\s*4\.0`)
	dateRangePattern = regexp.MustCompile(`(?i)\b(20\d{2})\s*[-\x{2013}]\s*(20\d{2}|present|current)\b`)
	monthYearPattern = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(?:19|20)\d{2}\b`)
	yearsPhrases     = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d{1,2})\+?\s*(?:years?|yrs?)\b`),
		regexp.MustCompile(`(?i)\bover\s+(\d{1,2})\s*(?:years?|yrs?)\b`),
	}
	seniorTitlePattern = regexp.MustCompile(`(?i)\b(?:senior|sr\.?|lead|principal|staff|architect|head of|director|vp|vice president|chief)\b`)
	juniorTitlePattern = regexp.MustCompile(`(?i)\b(?:junior|jr\.?|intern(?:ship)?|entry[- ]level|trainee|graduate)\b`)
)

var bulletChars = []rune{'•', '●', '○', '▪', '▸', '►', '◆', '◇', '■', '□'}

// CountMetrics counts quantified-achievement patterns in the text, capped at
// 50 to keep outliers from dominating the experience curve.
func CountMetrics(text string) int {
	count := 0
	for _, p := range metricPatterns {
		count += len(p.FindAllString(text, -1))
	}
	if count > 50 {
		count = 50
	}
	return count
}

// CountActionVerbs counts known action verbs, folding -ed/-ing inflections
// back onto their stems.
func CountActionVerbs(text string) int {
	count := 0
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, ok := actionVerbs[word]; ok {
			count++
			continue
		}
		if stem, ok := strings.CutSuffix(word, "ed"); ok {
			if _, hit := actionVerbs[stem]; hit {
				count++
				continue
			}
		}
		// the verb set holds past-tense forms, so "implementing" folds to
		// "implement" and is looked up as "implemented"
		if stem, ok := strings.CutSuffix(word, "ing"); ok {
			if _, hit := actionVerbs[stem]; hit {
				count++
				continue
			}
			if _, hit := actionVerbs[stem+"ed"]; hit {
				count++
			}
		}
	}
	return count
}

// DetectSections returns the canonical section names whose header keywords
// appear in the text, in a fixed order.
func DetectSections(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, name := range sectionOrder {
		if hasSection(lower, name) {
			found = append(found, name)
		}
	}
	return found
}

// HasSection reports whether any header keyword for the named canonical
// section appears in the text.
func HasSection(text, section string) bool {
	return hasSection(strings.ToLower(text), section)
}

func hasSection(lower, section string) bool {
	for _, kw := range sectionKeywords[section] {
		idx := strings.Index(lower, kw)
		for idx >= 0 {
			if isWordBounded(lower, idx, len(kw)) {
				return true
			}
			next := strings.Index(lower[idx+1:], kw)
			if next < 0 {
				break
			}
			idx += 1 + next
		}
	}
	return false
}

func isWordBounded(s string, start, length int) bool {
	if start > 0 && isWordChar(s[start-1]) {
		return false
	}
	end := start + length
	if end < len(s) && isWordChar(s[end]) {
		return false
	}
	return true
}

func isWordChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// CountBullets counts bullet markers plus lines starting with - or *
func CountBullets(text string) int {
	count := 0
	for _, r := range text {
		for _, b := range bulletChars {
			if r == b {
				count++
				break
			}
		}
	}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
			count++
		}
	}
	return count
}

// HasDateTokens reports whether the text contains year ranges or month-year
// tokens, a signal that work history carries dated entries.
func HasDateTokens(text string) bool {
	return dateRangePattern.MatchString(text) || monthYearPattern.MatchString(text)
}

// FindDateToken returns the first year range or month-year token, or ""
func FindDateToken(text string) string {
	if m := dateRangePattern.FindString(text); m != "" {
		return m
	}
	return monthYearPattern.FindString(text)
}

// HasEmail reports whether an email address appears in the text
func HasEmail(text string) bool {
	return emailPattern.MatchString(text)
}

// FindEmail returns the first email address in the text, or ""
func FindEmail(text string) string {
	return emailPattern.FindString(text)
}

// HasPhone reports whether a phone number appears in the text
func HasPhone(text string) bool {
	return phonePattern.MatchString(text)
}

// FindPhone returns the first phone number in the text, or ""
func FindPhone(text string) string {
	return strings.TrimSpace(phonePattern.FindString(text))
}

// HasGPA reports whether a GPA mention appears in the text
func HasGPA(text string) bool {
	return gpaPattern.MatchString(text)
}

// HasSeniorTitle reports whether a senior-level title token appears
func HasSeniorTitle(text string) bool {
	return seniorTitlePattern.MatchString(text)
}

// HasJuniorTitle reports whether a junior-level title token appears
func HasJuniorTitle(text string) bool {
	return juniorTitlePattern.MatchString(text)
}

// Degree levels, highest first
const (
	DegreeNone = iota
	DegreeHighSchool
	DegreeAssociate
	DegreeBachelor
	DegreeMaster
	DegreeDoctorate
)

var degreePatterns = []struct {
	level    int
	patterns []*regexp.Regexp
}{
	{DegreeDoctorate, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bph\.?\s?d\b`),
		regexp.MustCompile(`(?i)\bdoctorate\b|\bdoctoral\b`),
	}},
	{DegreeMaster, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bmaster(?:'?s)?\b`),
		regexp.MustCompile(`(?i)\bm\.?sc?\.?\b|\bm\.?a\.?\b|\bmba\b|\bm\.?eng\b`),
	}},
	{DegreeBachelor, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bbachelor(?:'?s)?\b`),
		regexp.MustCompile(`(?i)\bb\.?sc?\.?\b|\bb\.?a\.?\b|\bb\.?eng\b|\bundergraduate\b`),
	}},
	{DegreeAssociate, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bassociate(?:'?s)?\s+(?:degree|of)\b|\bdiploma\b`),
	}},
	{DegreeHighSchool, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bhigh school\b|\bged\b|\bsecondary school\b`),
	}},
}

// DegreeLevel returns the highest degree level found in the text
func DegreeLevel(text string) int {
	for _, d := range degreePatterns {
		for _, p := range d.patterns {
			if p.MatchString(text) {
				return d.level
			}
		}
	}
	return DegreeNone
}

var certificationPattern = regexp.MustCompile(`(?i)\b(?:certified|certification|certificate|aws certified|pmp|cissp|ccna|comptia|cka|ckad|bootcamp)\b`)

// CountCertificationMentions counts certification keyword hits, capped at 10
func CountCertificationMentions(text string) int {
	n := len(certificationPattern.FindAllString(text, -1))
	if n > 10 {
		n = 10
	}
	return n
}

var technicalFieldPattern = regexp.MustCompile(`(?i)\b(?:computer science|software engineering|computer engineering|electrical engineering|information technology|information systems|mathematics|statistics|physics|data science|machine learning)\b`)

// HasTechnicalField reports whether a technical or quantitative field of
// study is named in the text.
func HasTechnicalField(text string) bool {
	return technicalFieldPattern.MatchString(text)
}

// YearsOfExperience extracts a years-of-experience estimate: the maximum of
// any explicit "N years" phrase and any span computed from YYYY-YYYY or
// YYYY-present date ranges. Returns 0 when there is no signal.
func YearsOfExperience(text string) int {
	maxYears := 0
	for _, p := range yearsPhrases {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil && n > maxYears && n <= 60 {
				maxYears = n
			}
		}
	}
	currentYear := time.Now().Year()
	for _, m := range dateRangePattern.FindAllStringSubmatch(text, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end := currentYear
		if y, err := strconv.Atoi(m[2]); err == nil {
			end = y
		}
		if span := end - start; span > maxYears && span <= 60 {
			maxYears = span
		}
	}
	return maxYears
}

// LinkKinds detected by FindLinks
const (
	LinkLinkedIn = "linkedin"
	LinkGitHub   = "github"
	LinkWebsite  = "website"
)

var websitePattern = regexp.MustCompile(`(?i)\bhttps?://[^\s)]+|\bwww\.[a-z0-9-]+\.[a-z]{2,}\S*`)

// FindLinks reports which professional link kinds appear in the text
func FindLinks(text string) map[string]string {
	lower := strings.ToLower(text)
	links := make(map[string]string)
	if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "linkedin") {
		links[LinkLinkedIn] = firstURLContaining(text, "linkedin")
	}
	if strings.Contains(lower, "github.com") || strings.Contains(lower, "github.io") {
		links[LinkGitHub] = firstURLContaining(text, "github")
	}
	for _, u := range websitePattern.FindAllString(text, -1) {
		ul := strings.ToLower(u)
		if !strings.Contains(ul, "linkedin") && !strings.Contains(ul, "github") {
			links[LinkWebsite] = u
			break
		}
	}
	return links
}

func firstURLContaining(text, substr string) string {
	for _, u := range websitePattern.FindAllString(text, -1) {
		if strings.Contains(strings.ToLower(u), substr) {
			return u
		}
	}
	return ""
}

// LineCount counts non-blank lines
func LineCount(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
