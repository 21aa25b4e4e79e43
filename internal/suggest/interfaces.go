package suggest

import (
	"context"

	"atscore/internal/types"
)

// Input carries everything a strategy needs: the five dimension scores with
// their evidence, plus the resume the scores were computed from.
type Input struct {
	Scores         types.DimensionScores
	Resume         types.ParsedResume
	JobDescription string
}

// Strategy turns dimension scores and evidence into suggestions
type Strategy interface {
	Generate(ctx context.Context, in Input) ([]types.Suggestion, error)
}

// TextGenerator is the remote text-generation boundary. The remote strategy
// is written against this interface so tests can stub the model.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Close() error
}
