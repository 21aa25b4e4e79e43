package suggest

import (
	"context"
	"time"

	"atscore/internal/errors"
	"atscore/internal/types"
)

// Provider composes the remote-augmented and rule-based strategies: the
// remote strategy is preferred, a single attempt bounded by a timeout, and
// any failure falls back to the deterministic rules. Suggestions never
// returns an empty list and never fails.
type Provider struct {
	remote  Strategy
	rules   *RuleBased
	breaker *CircuitBreaker
	timeout time.Duration
	logger  *errors.Logger
}

// NewProvider creates a resilient suggestion provider. remote may be nil,
// in which case only the rule-based strategy runs.
func NewProvider(remote Strategy, breaker *CircuitBreaker, timeout time.Duration, logger *errors.Logger) *Provider {
	return &Provider{
		remote:  remote,
		rules:   NewRuleBased(),
		breaker: breaker,
		timeout: timeout,
		logger:  logger,
	}
}

// NewRuleOnlyProvider creates a provider without a remote strategy
func NewRuleOnlyProvider(logger *errors.Logger) *Provider {
	return NewProvider(nil, nil, 0, logger)
}

// Suggestions returns the suggestion list for the analysis. Remote failures
// are logged and absorbed; the rule-based output is the floor.
func (p *Provider) Suggestions(ctx context.Context, in Input) []types.Suggestion {
	if p.remote != nil {
		callCtx := ctx
		if p.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, p.timeout)
			defer cancel()
		}

		suggestions, err := p.remote.Generate(callCtx, in)
		if err == nil && len(suggestions) > 0 {
			return suggestions
		}
		if err != nil {
			p.logger.Warn("Remote suggestion strategy failed, using rule-based fallback",
				"error", err.Error())
		}
	}

	suggestions, _ := p.rules.Generate(ctx, in)
	return suggestions
}

// RemoteEnabled reports whether a remote strategy is configured
func (p *Provider) RemoteEnabled() bool {
	return p.remote != nil
}

// BreakerStats returns circuit breaker statistics
func (p *Provider) BreakerStats() map[string]any {
	return p.breaker.GetStats()
}

// Healthy reports whether the remote path is usable
func (p *Provider) Healthy() bool {
	return p.breaker.IsHealthy()
}

// breakerGenerator decorates a TextGenerator with circuit breaker
// protection.
type breakerGenerator struct {
	inner TextGenerator
	cb    *CircuitBreaker
}

// WrapWithBreaker protects a TextGenerator with the given breaker. A nil
// breaker returns the generator unchanged.
func WrapWithBreaker(gen TextGenerator, cb *CircuitBreaker) TextGenerator {
	if cb == nil {
		return gen
	}
	return &breakerGenerator{inner: gen, cb: cb}
}

func (b *breakerGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return b.cb.Execute(func() (string, error) {
		return b.inner.GenerateText(ctx, prompt)
	})
}

func (b *breakerGenerator) Close() error {
	return b.inner.Close()
}
