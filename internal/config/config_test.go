package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider:    "gemini",
			Model:       "gemini-2.0-flash",
			Timeout:     30 * time.Second,
			Temperature: 0.2,
		},
		Server: ServerConfig{
			Port:         "8080",
			MaxBodyBytes: 1024 * 1024,
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      1024 * 1024,
		},
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		if err := validConfig().Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing port fails", func(t *testing.T) {
		c := validConfig()
		c.Server.Port = ""
		if err := c.Validate(); err == nil {
			t.Error("expected error for missing port")
		}
	})

	t.Run("non-positive AI timeout fails", func(t *testing.T) {
		c := validConfig()
		c.AI.Timeout = 0
		if err := c.Validate(); err == nil {
			t.Error("expected error for zero timeout")
		}
	})

	t.Run("unsupported default format fails", func(t *testing.T) {
		c := validConfig()
		c.App.DefaultFormat = "yaml"
		if err := c.Validate(); err == nil {
			t.Error("expected error for unsupported format")
		}
	})

	t.Run("half-configured TLS fails", func(t *testing.T) {
		c := validConfig()
		c.Server.TLS.CertFile = "/tmp/cert.pem"
		if err := c.Validate(); err == nil {
			t.Error("expected error for cert without key")
		}
	})

	t.Run("lexicon watch without a file fails", func(t *testing.T) {
		c := validConfig()
		c.Scoring.WatchLexicon = true
		if err := c.Validate(); err == nil {
			t.Error("expected error for watchLexicon without lexiconFile")
		}
	})
}

func TestGetSuggestConfig(t *testing.T) {
	t.Run("falls back to global values", func(t *testing.T) {
		c := validConfig()
		c.AI.APIKey = "global-key"
		got := c.GetSuggestConfig()

		if got.Provider != "gemini" {
			t.Errorf("expected provider fallback, got %q", got.Provider)
		}
		if got.Model != "gemini-2.0-flash" {
			t.Errorf("expected model fallback, got %q", got.Model)
		}
		if got.APIKey != "global-key" {
			t.Errorf("expected api key fallback, got %q", got.APIKey)
		}
		if got.Timeout == nil || *got.Timeout != 30*time.Second {
			t.Errorf("expected timeout fallback, got %v", got.Timeout)
		}
		if got.Temperature == nil || *got.Temperature != 0.2 {
			t.Errorf("expected temperature fallback, got %v", got.Temperature)
		}
		if got.UseSystemPrompts == nil {
			t.Error("expected useSystemPrompts fallback")
		}
	})

	t.Run("operation values win over global ones", func(t *testing.T) {
		c := validConfig()
		c.AI.APIKey = "global-key"
		opTimeout := 5 * time.Second
		c.AI.Suggest = OperationAIConfig{
			Model:   "gemini-2.5-pro",
			APIKey:  "op-key",
			Timeout: &opTimeout,
		}
		got := c.GetSuggestConfig()

		if got.Model != "gemini-2.5-pro" {
			t.Errorf("expected operation model, got %q", got.Model)
		}
		if got.APIKey != "op-key" {
			t.Errorf("expected operation api key, got %q", got.APIKey)
		}
		if *got.Timeout != opTimeout {
			t.Errorf("expected operation timeout, got %v", *got.Timeout)
		}
	})

	t.Run("system prompt falls back to the global prompt", func(t *testing.T) {
		c := validConfig()
		c.AI.SystemPrompt = "global prompt"
		if got := c.GetSuggestConfig(); got.SystemPrompt != "global prompt" {
			t.Errorf("expected global prompt, got %q", got.SystemPrompt)
		}
	})

	t.Run("remote suggestions follow the api key", func(t *testing.T) {
		c := validConfig()
		if c.RemoteSuggestionsEnabled() {
			t.Error("expected remote disabled without a key")
		}
		c.AI.APIKey = "k"
		if !c.RemoteSuggestionsEnabled() {
			t.Error("expected remote enabled with a key")
		}
	})
}

func TestApplyFallbacks(t *testing.T) {
	t.Run("server api keys parse from the environment", func(t *testing.T) {
		t.Setenv("ATSCORE_SERVER_APIKEYS", "key-a, key-b ,key-c")
		c := validConfig()
		c.applyFallbacks()
		want := []string{"key-a", "key-b", "key-c"}
		if len(c.Server.APIKeys) != len(want) {
			t.Fatalf("expected %d keys, got %v", len(want), c.Server.APIKeys)
		}
		for i, k := range want {
			if c.Server.APIKeys[i] != k {
				t.Errorf("key %d: expected %q, got %q", i, k, c.Server.APIKeys[i])
			}
		}
	})

	t.Run("gemini key picked up from the environment", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "env-key")
		c := validConfig()
		c.applyFallbacks()
		if c.AI.APIKey != "env-key" {
			t.Errorf("expected env key, got %q", c.AI.APIKey)
		}
	})

	t.Run("configured key wins over the environment", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "env-key")
		c := validConfig()
		c.AI.APIKey = "config-key"
		c.applyFallbacks()
		if c.AI.APIKey != "config-key" {
			t.Errorf("expected config key, got %q", c.AI.APIKey)
		}
	})

	t.Run("service instance is generated", func(t *testing.T) {
		c := validConfig()
		c.Observability.ServiceName = "atscore"
		c.applyFallbacks()
		if c.Observability.ServiceInstance == "" {
			t.Error("expected a generated service instance id")
		}
		if !strings.HasPrefix(c.Observability.ServiceInstance, "atscore-") {
			t.Errorf("unexpected instance id %q", c.Observability.ServiceInstance)
		}
	})
}

func TestLoadSystemPrompts(t *testing.T) {
	t.Run("file content loads when inline prompt is empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompt.txt")
		if err := os.WriteFile(path, []byte("  be concise\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		c := validConfig()
		c.AI.Suggest.SystemPromptFile = path
		if err := c.loadSystemPrompts(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.AI.Suggest.SystemPrompt != "be concise" {
			t.Errorf("expected trimmed file content, got %q", c.AI.Suggest.SystemPrompt)
		}
	})

	t.Run("inline prompt wins over the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompt.txt")
		if err := os.WriteFile(path, []byte("from file"), 0o600); err != nil {
			t.Fatal(err)
		}
		c := validConfig()
		c.AI.Suggest.SystemPrompt = "inline"
		c.AI.Suggest.SystemPromptFile = path
		if err := c.loadSystemPrompts(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.AI.Suggest.SystemPrompt != "inline" {
			t.Errorf("expected inline prompt kept, got %q", c.AI.Suggest.SystemPrompt)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		c := validConfig()
		c.AI.SystemPromptFile = filepath.Join(t.TempDir(), "absent.txt")
		if err := c.loadSystemPrompts(); err == nil {
			t.Error("expected error for missing prompt file")
		}
	})

	t.Run("empty file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.txt")
		if err := os.WriteFile(path, []byte("   \n"), 0o600); err != nil {
			t.Fatal(err)
		}
		c := validConfig()
		c.AI.SystemPromptFile = path
		if err := c.loadSystemPrompts(); err == nil {
			t.Error("expected error for empty prompt file")
		}
	})
}
