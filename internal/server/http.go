package server

import (
	"time"

	"atscore/internal/config"
	atscoreErrors "atscore/internal/errors"
	"atscore/internal/scoring"
	"atscore/internal/suggest"
)

// ScoreRequest represents the request body for the score endpoint
type ScoreRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLS config.TLSConfig

	// Scoring pipeline. Handlers build their parser from the engine's
	// current matcher so lexicon reloads reach parsing too.
	Engine    *scoring.Engine
	Suggester *suggest.Provider

	// Lexicon hot reload
	LexiconWatcher *LexiconWatcher

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxBodyBytes int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *atscoreErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host         string
	Port         string
	Version      string
	TLS          config.TLSConfig
	APIKeys      []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxBodyBytes int64
	RateLimit    *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct.
// The scoring pipeline is wired here: the skill matcher from the configured
// lexicon, the suggestion provider, and the engine they feed.
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *atscoreErrors.Logger) (*Server, error) {
	matcher, err := appCfg.BuildMatcher()
	if err != nil {
		return nil, err
	}

	suggester, err := suggest.NewProviderFromConfig(appCfg, logger)
	if err != nil {
		return nil, err
	}

	engine := scoring.NewEngine(matcher, suggester, logger)

	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:         cfg.Host,
		Port:         cfg.Port,
		Version:      cfg.Version,
		AppConfig:    appCfg,
		TLS:          cfg.TLS,
		Engine:       engine,
		Suggester:    suggester,
		APIKeys:      apiKeyMap,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		MaxBodyBytes: cfg.MaxBodyBytes,
		RateLimit:    cfg.RateLimit,
		RateLimiter:  rateLimiter,
		Logger:       logger,
	}, nil
}
