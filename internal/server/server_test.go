package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"atscore/internal/config"
	"atscore/internal/errors"
	"atscore/internal/observability"
	"atscore/internal/scoring"
	"atscore/internal/suggest"
	"atscore/internal/types"
)

func testLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatal(err)
	}
	return logger
}

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := testLogger(t)
	return &Server{
		Host:         "127.0.0.1",
		Port:         "0",
		Version:      "test",
		AppConfig:    &config.Config{},
		Engine:       scoring.NewEngine(nil, nil, logger),
		Suggester:    suggest.NewRuleOnlyProvider(logger),
		APIKeys:      make(map[string]bool),
		MaxBodyBytes: 1 << 20,
		Logger:       logger,
	}
}

func testObservability(t *testing.T) *observability.ObservabilityManager {
	t.Helper()
	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return om
}

func TestAuthMiddleware(t *testing.T) {
	s := testServer(t)
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

	t.Run("no keys configured passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.authMiddleware(ok)(rec, httptest.NewRequest(http.MethodPost, "/score", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	s.APIKeys["valid-key-12345"] = true

	t.Run("missing key rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.authMiddleware(ok)(rec, httptest.NewRequest(http.MethodPost, "/score", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("invalid key rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/score", nil)
		req.Header.Set("X-API-Key", "wrong")
		rec := httptest.NewRecorder()
		s.authMiddleware(ok)(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("valid header key accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/score", nil)
		req.Header.Set("X-API-Key", "valid-key-12345")
		rec := httptest.NewRecorder()
		s.authMiddleware(ok)(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("bearer token accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/score", nil)
		req.Header.Set("Authorization", "Bearer valid-key-12345")
		rec := httptest.NewRecorder()
		s.authMiddleware(ok)(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})
}

func TestScoreHandler(t *testing.T) {
	s := testServer(t)
	handler := s.createScoreHandler(testObservability(t))

	postJSON := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler(rec, req)
		return rec
	}

	t.Run("scores a resume", func(t *testing.T) {
		rec := postJSON(`{"resumeText": "Jane Doe\njane@example.com\n(555) 123-4567\n\nExperience\nEngineer, 2019 - 2024\nBuilt python services on aws. Reduced latency by 40%.\n\nSkills\npython, docker, aws\n"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var result types.ScoreBreakdown
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("response is not a score breakdown: %v", err)
		}
		if result.OverallScore < 5 || result.OverallScore > 95 {
			t.Errorf("overall score out of range: %d", result.OverallScore)
		}
		if result.Grade == "" {
			t.Error("expected a grade")
		}
		if len(result.Suggestions) == 0 {
			t.Error("expected suggestions")
		}
	})

	t.Run("job description drives keyword matching", func(t *testing.T) {
		rec := postJSON(`{"resumeText": "Engineer with python and docker experience.", "jobDescription": "Requirements: python, docker, kubernetes."}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var result types.ScoreBreakdown
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatal(err)
		}
		found := false
		for _, kw := range result.MissingKeywords {
			if kw == "kubernetes" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected kubernetes in missing keywords, got %v", result.MissingKeywords)
		}
	})

	t.Run("empty resume rejected", func(t *testing.T) {
		rec := postJSON(`{"resumeText": "   "}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("wrong content type rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(`{"resumeText": "x"}`))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("get rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/score", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("malformed json rejected", func(t *testing.T) {
		rec := postJSON(`{"resumeText": `)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestHealthHandler(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var response map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if response["status"] != "healthy" {
		t.Errorf("expected healthy, got %v", response["status"])
	}
	if response["service"] != "atscore" {
		t.Errorf("unexpected service %v", response["service"])
	}
	suggestions, ok := response["suggestions"].(map[string]any)
	if !ok {
		t.Fatalf("expected suggestions block, got %v", response["suggestions"])
	}
	if suggestions["remote_enabled"] != false {
		t.Errorf("expected remote_enabled false, got %v", suggestions["remote_enabled"])
	}

	t.Run("post rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.healthHandler(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}

func TestStatsHandler(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.statsHandler(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var response map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	scoringStats, ok := response["scoring"].(map[string]any)
	if !ok {
		t.Fatalf("expected scoring block, got %v", response["scoring"])
	}
	if n, ok := scoringStats["lexicon_skills"].(float64); !ok || n == 0 {
		t.Errorf("expected a populated lexicon, got %v", scoringStats["lexicon_skills"])
	}
}

func TestRateLimiter(t *testing.T) {
	logger := testLogger(t)

	t.Run("burst then rejection", func(t *testing.T) {
		rl := NewRateLimiter(60, time.Minute, 2, logger)
		defer rl.Close()

		if !rl.Allow("client") || !rl.Allow("client") {
			t.Fatal("expected burst capacity to admit first requests")
		}
		if rl.Allow("client") {
			t.Error("expected third immediate request to be rejected")
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl := NewRateLimiter(60, time.Minute, 1, logger)
		defer rl.Close()

		if !rl.Allow("a") {
			t.Error("expected first request for a")
		}
		if !rl.Allow("b") {
			t.Error("expected first request for b")
		}
	})

	t.Run("stats report active limiters", func(t *testing.T) {
		rl := NewRateLimiter(120, time.Minute, 5, logger)
		defer rl.Close()

		rl.Allow("x")
		stats := rl.GetStats()
		if stats["active_limiters"] != 1 {
			t.Errorf("expected 1 active limiter, got %v", stats["active_limiters"])
		}
		if stats["burst_capacity"] != 5 {
			t.Errorf("expected burst 5, got %v", stats["burst_capacity"])
		}
	})
}

func TestGetRateLimitKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/score", nil)
	req.Header.Set("X-API-Key", "secret")
	req.RemoteAddr = "10.1.2.3:5000"

	t.Run("api key preferred", func(t *testing.T) {
		if key := getRateLimitKey(req, true, true); key != "api:secret" {
			t.Errorf("unexpected key %q", key)
		}
	})

	t.Run("ip fallback", func(t *testing.T) {
		if key := getRateLimitKey(req, false, true); key != "ip:10.1.2.3" {
			t.Errorf("unexpected key %q", key)
		}
	})

	t.Run("forwarded ip wins", func(t *testing.T) {
		fwd := httptest.NewRequest(http.MethodPost, "/score", nil)
		fwd.RemoteAddr = "10.1.2.3:5000"
		fwd.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		if key := getRateLimitKey(fwd, false, true); key != "ip:203.0.113.9" {
			t.Errorf("unexpected key %q", key)
		}
	})

	t.Run("disabled returns empty", func(t *testing.T) {
		if key := getRateLimitKey(req, false, false); key != "" {
			t.Errorf("expected empty key, got %q", key)
		}
	})
}

func TestLexiconWatcher(t *testing.T) {
	logger := testLogger(t)

	t.Run("empty path rejected", func(t *testing.T) {
		if _, err := NewLexiconWatcher("", 0, func() error { return nil }, logger); err == nil {
			t.Error("expected error for empty path")
		}
	})

	t.Run("start and stop", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lexicon.json")
		if err := os.WriteFile(path, []byte(`[{"id": "go"}]`), 0o600); err != nil {
			t.Fatal(err)
		}

		lw, err := NewLexiconWatcher(path, 10*time.Millisecond, func() error { return nil }, logger)
		if err != nil {
			t.Fatal(err)
		}
		if err := lw.Start(); err != nil {
			t.Fatal(err)
		}
		if !lw.IsRunning() {
			t.Error("expected watcher to be running")
		}
		if err := lw.Start(); err == nil {
			t.Error("expected second start to fail")
		}
		if err := lw.Stop(); err != nil {
			t.Fatal(err)
		}
		if lw.IsRunning() {
			t.Error("expected watcher to be stopped")
		}
	})

	t.Run("reload records metrics", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lexicon.json")
		if err := os.WriteFile(path, []byte(`[]`), 0o600); err != nil {
			t.Fatal(err)
		}

		calls := 0
		lw, err := NewLexiconWatcher(path, 0, func() error {
			calls++
			if calls == 1 {
				return os.ErrInvalid
			}
			return nil
		}, logger)
		if err != nil {
			t.Fatal(err)
		}

		lw.reload()
		lw.reload()

		m := lw.GetMetrics()
		if m.ReloadCount != 2 || m.ReloadFailureCount != 1 || m.ReloadSuccessCount != 1 {
			t.Errorf("unexpected metrics %+v", m)
		}
		if !m.LastReloadSuccess || m.LastReloadError != "" {
			t.Errorf("expected last reload to be a recorded success, got %+v", m)
		}
	})
}
