package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
	s.displayLexiconInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET  /health  - Health check")
	fmt.Println("  GET  /stats   - Server statistics")
	fmt.Println("  POST /score   - Score a resume (requires API key)")
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests to /score")
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxBodyBytes > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB)\n", s.MaxBodyBytes, float64(s.MaxBodyBytes)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
		fmt.Println("WARNING: No request size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
		fmt.Println("WARNING: No rate limiting configured!")
	}
}

// displayLexiconInfo shows which skill lexicon is active
func (s *Server) displayLexiconInfo() {
	if s.AppConfig.Scoring.LexiconFile != "" {
		fmt.Printf("Skill lexicon: %s (%d skills", s.AppConfig.Scoring.LexiconFile, s.Engine.Matcher().Len())
		if s.AppConfig.Scoring.WatchLexicon {
			fmt.Print(", hot reload enabled")
		}
		fmt.Println(")")
	} else {
		fmt.Printf("Skill lexicon: built-in (%d skills)\n", s.Engine.Matcher().Len())
	}
}
