package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the application configuration
type Config struct {
	// Database connection string (DSN)
	DatabaseURL string

	// Server bind address (host:port)
	ServerAddr string

	// Allowed CORS origins for the web frontend
	AllowedOrigins []string

	// Enable debug logging
	Debug bool

	// JWT authentication configuration
	JWT JWTConfig

	// Rate limiting applied to the auth endpoints
	RateLimit RateLimitConfig
}

// JWTConfig holds the bearer-token verification and issuing configuration.
//
// The signing key, issuer, and audience are loaded once at process start and
// never mutated afterwards; the verifier and issuer both read from this
// immutable snapshot. There is no external identity provider: the API issues
// its own HS256 tokens at login and validates them on every request.
type JWTConfig struct {
	// SigningKey is the shared HMAC secret used to sign and verify tokens.
	SigningKey string

	// Issuer is the expected `iss` claim on every token.
	Issuer string

	// Audience is the expected `aud` claim on every token.
	Audience string

	// ValidateLifetime controls whether token expiry is enforced.
	//
	// The system this replaces shipped with lifetime validation disabled,
	// which let expired tokens authenticate indefinitely. The default here
	// is true; set JWT_VALIDATE_LIFETIME=false only to reproduce the legacy
	// behaviour.
	ValidateLifetime bool

	// TokenTTLMinutes is the lifetime of issued access tokens.
	TokenTTLMinutes int
}

// RateLimitConfig bounds request rates on authentication endpoints.
type RateLimitConfig struct {
	// Requests allowed per client per window
	Requests int

	// Window length in seconds
	WindowSeconds int
}

// Load reads configuration from environment variables with fallback defaults
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    getEnv("DATABASE_URL", "file:expense_tracker.db"),
		ServerAddr:     getEnv("SERVER_ADDR", "localhost:8080"),
		AllowedOrigins: splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		Debug:          getEnvBool("DEBUG", false),
		JWT: JWTConfig{
			SigningKey:       getEnv("JWT_SIGNING_KEY", ""),
			Issuer:           getEnv("JWT_ISSUER", "https://expense-tracker.local/"),
			Audience:         getEnv("JWT_AUDIENCE", "https://expense-tracker.local/"),
			ValidateLifetime: getEnvBool("JWT_VALIDATE_LIFETIME", true),
			TokenTTLMinutes:  getEnvInt("JWT_TOKEN_TTL_MINUTES", 60),
		},
		RateLimit: RateLimitConfig{
			Requests:      getEnvInt("RATE_LIMIT_REQUESTS", 10),
			WindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		},
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWT.SigningKey == "" {
		return nil, fmt.Errorf("JWT_SIGNING_KEY is required")
	}
	if len(cfg.JWT.SigningKey) < 32 {
		return nil, fmt.Errorf("JWT_SIGNING_KEY must be at least 32 bytes")
	}

	if cfg.JWT.Issuer == "" {
		return nil, fmt.Errorf("JWT_ISSUER is required")
	}
	if cfg.JWT.Audience == "" {
		return nil, fmt.Errorf("JWT_AUDIENCE is required")
	}

	if cfg.JWT.TokenTTLMinutes <= 0 {
		return nil, fmt.Errorf("JWT_TOKEN_TTL_MINUTES must be positive")
	}

	if cfg.RateLimit.Requests <= 0 || cfg.RateLimit.WindowSeconds <= 0 {
		return nil, fmt.Errorf("rate limit requests and window must be positive")
	}

	return cfg, nil
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
