package types

import "strings"

// ScoreResumeInput represents the input for scoring a resume
type ScoreResumeInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// ContactInfo holds the contact details detected in a resume
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// ExperienceEntry represents one work-history item extracted from a resume
type ExperienceEntry struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry represents one education item extracted from a resume
type EducationEntry struct {
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// ParsedResume is the normalized representation every scorer consumes.
// RawText is always present; the structured fields are best-effort and may
// be empty when the source text gives no signal for them.
type ParsedResume struct {
	RawText         string            `json:"rawText"`
	Keywords        []string          `json:"keywords,omitempty"`
	Skills          []string          `json:"skills,omitempty"`
	Experience      []ExperienceEntry `json:"experience,omitempty"`
	Education       []EducationEntry  `json:"education,omitempty"`
	Certifications  []string          `json:"certifications,omitempty"`
	Contact         ContactInfo       `json:"contact"`
	YearsExperience int               `json:"yearsExperience"`
	Sections        []string          `json:"sections,omitempty"`
}

// DimensionScore carries one dimension's score plus the evidence behind it
type DimensionScore struct {
	Score   int      `json:"score"`
	Matched []string `json:"matched,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// DimensionScores groups the five scored dimensions
type DimensionScores struct {
	KeywordMatch      DimensionScore `json:"keywordMatch"`
	SkillsMatch       DimensionScore `json:"skillsMatch"`
	ExperienceQuality DimensionScore `json:"experienceQuality"`
	Education         DimensionScore `json:"education"`
	Formatting        DimensionScore `json:"formatting"`
}

// ScoreBreakdown is the complete result of one analysis run.
// MatchedKeywords and MissingKeywords mirror the keyword dimension's
// evidence for callers that only want the term lists.
type ScoreBreakdown struct {
	OverallScore    int             `json:"overallScore"`
	Grade           string          `json:"grade"`
	Dimensions      DimensionScores `json:"dimensions"`
	MatchedKeywords []string        `json:"matchedKeywords,omitempty"`
	MissingKeywords []string        `json:"missingKeywords,omitempty"`
	Suggestions     []Suggestion    `json:"suggestions"`
}

// Priority ranks how urgent a suggestion is
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank returns the sort order of a priority, most urgent first.
// Unrecognized values rank as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// NormalizePriority maps free-form priority text onto a known Priority.
// Anything unrecognized becomes medium.
func NormalizePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityCritical:
		return PriorityCritical
	case PriorityHigh:
		return PriorityHigh
	case PriorityMedium:
		return PriorityMedium
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Suggestion is one actionable improvement recommendation
type Suggestion struct {
	Type     string   `json:"type"`
	Priority Priority `json:"priority"`
	Message  string   `json:"message"`
	Impact   string   `json:"impact,omitempty"`
	Action   string   `json:"action,omitempty"`
}
