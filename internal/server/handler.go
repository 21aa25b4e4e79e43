package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"atscore/internal/ingest"
	"atscore/internal/observability"
	"atscore/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createScoreHandler wraps the score handler with observability
func (s *Server) createScoreHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("atscore.api")
		ctx, span := tracer.Start(ctx, "api.score")
		defer span.End()

		if r.Method != http.MethodPost {
			writeErrorResponse(w, "Method not allowed", "POST is required", http.StatusMethodNotAllowed)
			return
		}

		// Parse request
		var req ScoreRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "score"),
		)

		// Parse with the engine's current matcher so lexicon reloads apply
		parser := ingest.NewParser(s.Engine.Matcher())
		resume, err := parser.Parse(req.ResumeText)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid resume text", err.Error(), http.StatusBadRequest)
			return
		}

		// Score with observability tracking
		metrics := om.GetMetrics()
		var breakdown types.ScoreBreakdown
		_ = metrics.TrackScoring(ctx, func(ctx context.Context) *observability.ScoringResult {
			breakdown = s.Engine.Analyze(ctx, resume, req.JobDescription)
			return &observability.ScoringResult{
				OverallScore: breakdown.OverallScore,
				Grade:        breakdown.Grade,
				Dimensions: map[string]int{
					"keyword_match":      breakdown.Dimensions.KeywordMatch.Score,
					"skills_match":       breakdown.Dimensions.SkillsMatch.Score,
					"experience_quality": breakdown.Dimensions.ExperienceQuality.Score,
					"education":          breakdown.Dimensions.Education.Score,
					"formatting":         breakdown.Dimensions.Formatting.Score,
				},
			}
		}, om)

		// Breaker health is the best available signal for which strategy
		// served the suggestions.
		source := "rules"
		fallback := false
		if s.Suggester.RemoteEnabled() {
			if s.Suggester.Healthy() {
				source = "remote"
			} else {
				fallback = true
			}
		}
		metrics.RecordSuggestionOutcome(ctx, source, fallback, om)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("score.overall", breakdown.OverallScore),
			attribute.String("score.grade", breakdown.Grade),
			attribute.Int("suggestions.count", len(breakdown.Suggestions)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(breakdown); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordRateLimitHit(r.Context(), om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
