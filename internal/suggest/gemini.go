package suggest

import (
	"context"
	goerrors "errors"
	"net"
	"net/http"

	"atscore/internal/config"
	"atscore/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiGenerator implements TextGenerator on the Gemini API. Responses are
// constrained to the suggestion-array JSON schema.
type GeminiGenerator struct {
	client *genai.Client
	config *config.OperationAIConfig
	logger *errors.Logger
}

var _ TextGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a Gemini-backed text generator for the suggest
// operation.
func NewGeminiGenerator(cfg *config.OperationAIConfig, logger *errors.Logger) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigError(errors.ErrCodeMissingAPIKey, "Gemini API key is not configured", nil)
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeSuggestFailed, "Failed to create Gemini client", err)
	}
	return &GeminiGenerator{client: client, config: cfg, logger: logger}, nil
}

// GenerateText performs one GenerateContent call bounded by the operation
// timeout and returns the raw response text.
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	tracer := otel.Tracer("atscore.suggest.gemini")
	ctx, span := tracer.Start(ctx, "gemini.generate_suggestions")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
		attribute.Int("input.prompt_length", len(prompt)),
	)

	if g.config.Timeout != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *g.config.Timeout)
		defer cancel()
	}

	genaiConfig := g.buildSuggestionSchema()
	if *g.config.UseSystemPrompts {
		genaiConfig.SystemInstruction = genai.NewContentFromText(g.systemPrompt(), genai.RoleUser)
	}

	result, err := g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(prompt), genaiConfig)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		g.logger.Warn("Gemini suggestion call failed",
			"model", g.config.Model,
			"transient", isTransientError(err),
			"error", err.Error())
		return "", err
	}

	if usage := result.UsageMetadata; usage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", int64(usage.PromptTokenCount)),
			attribute.Int64("ai.tokens.output", int64(usage.CandidatesTokenCount)),
			attribute.Int64("ai.tokens.total", int64(usage.TotalTokenCount)),
		)
	}
	span.SetAttributes(attribute.Bool("success", true))

	return result.Text(), nil
}

// Close implements TextGenerator. The genai client holds no resources that
// need explicit release in single-shot usage.
func (g *GeminiGenerator) Close() error {
	return nil
}

func (g *GeminiGenerator) systemPrompt() string {
	if g.config.SystemPrompt != "" {
		return g.config.SystemPrompt
	}
	return DefaultSystemPrompt
}

// buildSuggestionSchema constrains the response to a JSON suggestion array
func (g *GeminiGenerator) buildSuggestionSchema() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"type":     {Type: genai.TypeString},
					"priority": {Type: genai.TypeString},
					"message":  {Type: genai.TypeString},
					"impact":   {Type: genai.TypeString},
					"action":   {Type: genai.TypeString},
				},
				Required: []string{"type", "priority", "message"},
			},
		},
	}

	if *g.config.Temperature > 0 {
		cfg.Temperature = g.config.Temperature
	}

	return cfg
}

// isTransientError classifies network timeouts and retryable HTTP statuses.
// Used for log context only: the suggest operation never retries, it falls
// back to the rule-based strategy.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if goerrors.As(err, &netErr) {
		return true
	}

	var apiErr *googleapi.Error
	if goerrors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return goerrors.Is(err, context.DeadlineExceeded)
}
