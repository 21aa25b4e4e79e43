package suggest

import (
	"fmt"
	"time"

	"atscore/internal/config"
	"atscore/internal/errors"
)

// NewProviderFromConfig wires the full suggestion pipeline from the loaded
// configuration: the remote generator when an API key is configured, the
// circuit breaker when enabled, and the rule-based fallback always.
func NewProviderFromConfig(cfg *config.Config, logger *errors.Logger) (*Provider, error) {
	if !cfg.RemoteSuggestionsEnabled() {
		logger.Debug("Remote suggestions disabled, using rule-based strategy only")
		return NewRuleOnlyProvider(logger), nil
	}

	opCfg := cfg.GetSuggestConfig()

	logger.Debug("Initializing remote suggestion strategy",
		"provider", opCfg.Provider,
		"model", opCfg.Model,
		"temperature", *opCfg.Temperature,
		"timeout", *opCfg.Timeout,
		"use_system_prompts", *opCfg.UseSystemPrompts)

	var generator TextGenerator
	var err error
	switch opCfg.Provider {
	case "gemini":
		generator, err = NewGeminiGenerator(&opCfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", opCfg.Provider), nil)
	}
	if err != nil {
		return nil, err
	}

	breaker := NewCircuitBreaker(&opCfg, logger)

	var timeout time.Duration
	if opCfg.Timeout != nil {
		timeout = *opCfg.Timeout
	}

	remote := NewRemote(WrapWithBreaker(generator, breaker), logger)
	return NewProvider(remote, breaker, timeout, logger), nil
}
