package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"atscore/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ScoreBreakdown", &ScoreTextFormatter{})
	registry.RegisterFormatter("markdown", "ScoreBreakdown", &ScoreMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ScoreBreakdown:
		return "ScoreBreakdown"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// dimensionRows fixes the reporting order of the five dimensions
func dimensionRows(d types.DimensionScores) []struct {
	Name  string
	Score int
} {
	return []struct {
		Name  string
		Score int
	}{
		{"Keyword Match", d.KeywordMatch.Score},
		{"Skills Match", d.SkillsMatch.Score},
		{"Experience Quality", d.ExperienceQuality.Score},
		{"Education", d.Education.Score},
		{"Formatting", d.Formatting.Score},
	}
}

// ScoreTextFormatter handles text formatting for score breakdowns
type ScoreTextFormatter struct{}

func (stf *ScoreTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScoreBreakdown)
	if !ok {
		return "", fmt.Errorf("expected ScoreBreakdown, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Overall: %d/100 (%s)\n\n", result.OverallScore, result.Grade))

	output.WriteString("=== DIMENSIONS ===\n")
	for _, row := range dimensionRows(result.Dimensions) {
		output.WriteString(fmt.Sprintf("%-20s %3d/100\n", row.Name, row.Score))
	}
	output.WriteString("\n")

	if len(result.MatchedKeywords) > 0 {
		output.WriteString("Matched Keywords:\n")
		output.WriteString("  " + strings.Join(result.MatchedKeywords, ", "))
		output.WriteString("\n\n")
	}
	if len(result.MissingKeywords) > 0 {
		output.WriteString("Missing Keywords:\n")
		output.WriteString("  " + strings.Join(result.MissingKeywords, ", "))
		output.WriteString("\n\n")
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("=== SUGGESTIONS ===\n\n")
		for i, s := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, strings.ToUpper(string(s.Priority)), s.Message))
			if s.Action != "" {
				output.WriteString("   Action: ")
				output.WriteString(s.Action)
				output.WriteString("\n")
			}
			if s.Impact != "" {
				output.WriteString("   Impact: ")
				output.WriteString(s.Impact)
				output.WriteString("\n")
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (stf *ScoreTextFormatter) SupportedType() string {
	return "ScoreBreakdown"
}

// ScoreMarkdownFormatter handles markdown formatting for score breakdowns
type ScoreMarkdownFormatter struct{}

func (smf *ScoreMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScoreBreakdown)
	if !ok {
		return "", fmt.Errorf("expected ScoreBreakdown, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Score\n\n")
	output.WriteString(fmt.Sprintf("**Overall:** %d/100 (Grade **%s**)\n\n", result.OverallScore, result.Grade))

	output.WriteString("## Dimensions\n\n")
	output.WriteString("| Dimension | Score |\n")
	output.WriteString("|-----------|-------|\n")
	for _, row := range dimensionRows(result.Dimensions) {
		output.WriteString(fmt.Sprintf("| %s | %d/100 |\n", row.Name, row.Score))
	}
	output.WriteString("\n")

	if len(result.MatchedKeywords) > 0 {
		output.WriteString("## Matched Keywords\n\n")
		output.WriteString(strings.Join(result.MatchedKeywords, ", "))
		output.WriteString("\n\n")
	}
	if len(result.MissingKeywords) > 0 {
		output.WriteString("## Missing Keywords\n\n")
		output.WriteString(strings.Join(result.MissingKeywords, ", "))
		output.WriteString("\n\n")
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for i, s := range result.Suggestions {
			output.WriteString(fmt.Sprintf("### %d. %s (%s)\n\n", i+1, s.Type, s.Priority))
			output.WriteString(s.Message)
			output.WriteString("\n\n")
			if s.Action != "" {
				output.WriteString("**Action:** ")
				output.WriteString(s.Action)
				output.WriteString("\n\n")
			}
			if s.Impact != "" {
				output.WriteString("**Impact:** ")
				output.WriteString(s.Impact)
				output.WriteString("\n\n")
			}
		}
	}

	return output.String(), nil
}

func (smf *ScoreMarkdownFormatter) SupportedType() string {
	return "ScoreBreakdown"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
