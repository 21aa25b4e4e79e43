package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
)

// healthHandler provides a health check endpoint covering the suggestion
// pipeline and lexicon reload status. The scorers themselves are pure
// functions and cannot degrade.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "atscore",
		"version": s.Version,
	}

	response["suggestions"] = s.checkSuggestionHealth()

	if lexStatus := s.checkLexiconStatus(); lexStatus != nil {
		response["lexicon"] = lexStatus
	}

	// Remote suggestion trouble degrades the service but never takes it
	// down: the rule-based fallback keeps /score answering.
	if s.Suggester.RemoteEnabled() && !s.Suggester.Healthy() {
		response["status"] = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkSuggestionHealth reports the suggestion pipeline status
func (s *Server) checkSuggestionHealth() map[string]any {
	status := map[string]any{
		"remote_enabled": s.Suggester.RemoteEnabled(),
		"fallback":       "rule-based",
	}

	if s.Suggester.RemoteEnabled() {
		status["healthy"] = s.Suggester.Healthy()
		status["circuit_breaker"] = s.Suggester.BreakerStats()
	}

	return status
}

// checkLexiconStatus reports lexicon configuration and watcher state
func (s *Server) checkLexiconStatus() map[string]any {
	lexiconFile := s.AppConfig.Scoring.LexiconFile
	if lexiconFile == "" {
		return map[string]any{
			"source": "built-in",
		}
	}

	status := map[string]any{
		"source": "file",
		"file":   lexiconFile,
	}

	if s.LexiconWatcher != nil {
		status["watcher_running"] = s.LexiconWatcher.IsRunning()
		status["metrics"] = s.LexiconWatcher.GetMetrics()
	} else {
		status["watcher_running"] = false
	}

	return status
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "atscore",
		"version": s.Version,
		"server": map[string]any{
			"max_body_bytes": s.MaxBodyBytes,
		},
		"scoring": map[string]any{
			"lexicon_skills": s.Engine.Matcher().Len(),
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
