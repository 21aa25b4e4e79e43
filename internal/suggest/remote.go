package suggest

import (
	"context"
	"encoding/json"
	"strings"

	"atscore/internal/errors"
	"atscore/internal/types"
)

// Remote is the remote-augmented strategy: it summarizes the dimension
// scores into a compact prompt, delegates to a text-generation capability,
// and parses the strict JSON array response. Any transport or schema
// failure is returned as an error for the resilient provider to absorb.
type Remote struct {
	generator TextGenerator
	logger    *errors.Logger
}

// NewRemote creates the remote-augmented strategy
func NewRemote(generator TextGenerator, logger *errors.Logger) *Remote {
	return &Remote{generator: generator, logger: logger}
}

// rawSuggestion mirrors the remote response schema before validation
type rawSuggestion struct {
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
	Impact   string `json:"impact,omitempty"`
	Action   string `json:"action,omitempty"`
}

// Generate performs a single remote attempt. No retries: a failed call
// falls through to the rule-based strategy at the provider level.
func (r *Remote) Generate(ctx context.Context, in Input) ([]types.Suggestion, error) {
	text, err := r.generator.GenerateText(ctx, BuildPrompt(in))
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeSuggestFailed, "remote suggestion call failed", err)
	}

	suggestions, err := ParseSuggestions(text)
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		return nil, errors.NewAIError(errors.ErrCodeInvalidResponse, "remote response contained no usable suggestions", nil)
	}

	r.logger.Debug("Remote suggestions accepted", "count", len(suggestions))
	return Finalize(suggestions), nil
}

// ParseSuggestions parses a strict JSON array of suggestion objects.
// Surrounding prose is tolerated by extracting the outermost array, but the
// array itself must parse. Entries with an empty message are discarded;
// unknown priorities fold to medium; unknown types fold to "formatting".
func ParseSuggestions(text string) ([]types.Suggestion, error) {
	payload := extractJSONArray(text)
	if payload == "" {
		return nil, errors.NewAIError(errors.ErrCodeInvalidResponse, "remote response is not a JSON array", nil)
	}

	var raw []rawSuggestion
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, errors.NewAIError(errors.ErrCodeInvalidResponse, "remote response failed to parse", err)
	}

	suggestions := make([]types.Suggestion, 0, len(raw))
	for _, rs := range raw {
		if strings.TrimSpace(rs.Message) == "" {
			continue
		}
		suggestions = append(suggestions, types.Suggestion{
			Type:     normalizeType(rs.Type),
			Priority: types.NormalizePriority(rs.Priority),
			Message:  strings.TrimSpace(rs.Message),
			Impact:   strings.TrimSpace(rs.Impact),
			Action:   strings.TrimSpace(rs.Action),
		})
	}
	return suggestions, nil
}

// extractJSONArray returns the outermost [...] slice of the text, or ""
func extractJSONArray(text string) string {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

var knownTypes = map[string]struct{}{
	"keywords":   {},
	"skills":     {},
	"experience": {},
	"education":  {},
	"formatting": {},
}

func normalizeType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if _, ok := knownTypes[t]; ok {
		return t
	}
	return "formatting"
}
