package scoring

import (
	"context"
	"sync/atomic"

	"atscore/internal/errors"
	"atscore/internal/suggest"
	"atscore/internal/textproc"
	"atscore/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Suggester supplies the suggestion list for an analysis. Implementations
// must never fail and never return an empty list.
type Suggester interface {
	Suggestions(ctx context.Context, in suggest.Input) []types.Suggestion
}

// Engine is the scoring orchestrator. It carries no per-call state: the
// matcher pointer is swapped atomically when a custom lexicon reloads, and
// concurrent Analyze calls are fully independent.
type Engine struct {
	matcher   atomic.Pointer[textproc.Matcher]
	suggester Suggester
	logger    *errors.Logger
}

// NewEngine creates an engine. A nil matcher uses the built-in lexicon; a
// nil suggester uses the rule-based strategy only.
func NewEngine(matcher *textproc.Matcher, suggester Suggester, logger *errors.Logger) *Engine {
	if matcher == nil {
		matcher = textproc.DefaultMatcher()
	}
	if logger == nil {
		logger = mustLogger()
	}
	if suggester == nil {
		suggester = suggest.NewRuleOnlyProvider(logger)
	}
	e := &Engine{suggester: suggester, logger: logger}
	e.matcher.Store(matcher)
	return e
}

func mustLogger() *errors.Logger {
	logger, err := errors.New("info")
	if err != nil {
		panic(err)
	}
	return logger
}

// Matcher returns the active skill matcher
func (e *Engine) Matcher() *textproc.Matcher {
	return e.matcher.Load()
}

// SetMatcher swaps the active skill matcher. Safe to call while Analyze
// runs; in-flight calls keep the matcher they started with.
func (e *Engine) SetMatcher(m *textproc.Matcher) {
	if m != nil {
		e.matcher.Store(m)
	}
}

// Analyze runs the five dimension scorers, aggregates, grades, and attaches
// suggestions. It never fails for well-formed input: degenerate resumes
// score at dimension floors instead of raising errors.
func (e *Engine) Analyze(ctx context.Context, resume types.ParsedResume, jobDescription string) types.ScoreBreakdown {
	tracer := otel.Tracer("atscore.scoring")
	ctx, span := tracer.Start(ctx, "scoring.analyze")
	defer span.End()

	matcher := e.matcher.Load()

	dims := types.DimensionScores{
		KeywordMatch:      ScoreKeywordMatch(matcher, resume, jobDescription),
		SkillsMatch:       ScoreSkillsMatch(matcher, resume, jobDescription),
		ExperienceQuality: ScoreExperience(resume),
		Education:         ScoreEducation(resume),
		Formatting:        ScoreFormatting(resume),
	}

	overall := Aggregate(dims)
	grade := GradeFor(overall)

	suggestions := e.suggester.Suggestions(ctx, suggest.Input{
		Scores:         dims,
		Resume:         resume,
		JobDescription: jobDescription,
	})

	span.SetAttributes(
		attribute.Int("score.overall", overall),
		attribute.String("score.grade", grade),
		attribute.Int("score.keyword_match", dims.KeywordMatch.Score),
		attribute.Int("score.skills_match", dims.SkillsMatch.Score),
		attribute.Int("score.experience_quality", dims.ExperienceQuality.Score),
		attribute.Int("score.education", dims.Education.Score),
		attribute.Int("score.formatting", dims.Formatting.Score),
		attribute.Int("suggestions.count", len(suggestions)),
	)

	e.logger.Debug("Analysis complete",
		"overall", overall,
		"grade", grade,
		"suggestions", len(suggestions))

	return types.ScoreBreakdown{
		OverallScore:    overall,
		Grade:           grade,
		Dimensions:      dims,
		MatchedKeywords: dims.KeywordMatch.Matched,
		MissingKeywords: dims.KeywordMatch.Missing,
		Suggestions:     suggestions,
	}
}
