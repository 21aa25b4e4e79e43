package suggest

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"atscore/internal/types"
)

// failingStrategy always errors
type failingStrategy struct{}

func (f *failingStrategy) Generate(_ context.Context, _ Input) ([]types.Suggestion, error) {
	return nil, errors.New("remote unavailable")
}

// slowStrategy blocks until the context is done
type slowStrategy struct{}

func (s *slowStrategy) Generate(ctx context.Context, _ Input) ([]types.Suggestion, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestProviderSuggestions(t *testing.T) {
	in := Input{Scores: lowScores()}

	t.Run("prefers the remote strategy", func(t *testing.T) {
		remote := NewRemote(&stubGenerator{
			text: `[{"type":"keywords","priority":"high","message":"from remote"}]`,
		}, testLogger())
		p := NewProvider(remote, nil, time.Second, testLogger())

		got := p.Suggestions(context.Background(), in)
		if len(got) != 1 || got[0].Message != "from remote" {
			t.Errorf("expected remote output, got %v", got)
		}
	})

	t.Run("remote failure falls back to rules exactly", func(t *testing.T) {
		p := NewProvider(&failingStrategy{}, nil, time.Second, testLogger())
		got := p.Suggestions(context.Background(), in)

		want, _ := NewRuleBased().Generate(context.Background(), in)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("fallback output differs from rule-based output\ngot:  %v\nwant: %v", got, want)
		}
	})

	t.Run("slow remote is bounded by the timeout", func(t *testing.T) {
		p := NewProvider(&slowStrategy{}, nil, 10*time.Millisecond, testLogger())

		start := time.Now()
		got := p.Suggestions(context.Background(), in)
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("fallback took too long: %v", elapsed)
		}
		if len(got) == 0 {
			t.Error("expected rule-based fallback output")
		}
	})

	t.Run("nil remote goes straight to rules", func(t *testing.T) {
		p := NewRuleOnlyProvider(testLogger())
		got := p.Suggestions(context.Background(), in)
		if len(got) == 0 {
			t.Error("expected rule-based output")
		}
		if p.RemoteEnabled() {
			t.Error("expected remote disabled")
		}
	})

	t.Run("never returns an empty list", func(t *testing.T) {
		p := NewProvider(&failingStrategy{}, nil, time.Second, testLogger())
		got := p.Suggestions(context.Background(), Input{Scores: highScores(), Resume: completeResume()})
		if len(got) == 0 {
			t.Error("expected at least one suggestion")
		}
	})

	t.Run("nil breaker reports healthy", func(t *testing.T) {
		p := NewRuleOnlyProvider(testLogger())
		if !p.Healthy() {
			t.Error("expected healthy with no breaker")
		}
		stats := p.BreakerStats()
		if enabled, _ := stats["enabled"].(bool); enabled {
			t.Error("expected breaker reported as disabled")
		}
	})
}
