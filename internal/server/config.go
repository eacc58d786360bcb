// Package server provides configuration helpers that define runtime defaults,
// validation, and rate-limiting parameters for the MoodSync service.
package server

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// RateLimitConfig defines the parameters for per-connection message rate limiting.
type RateLimitConfig struct {
	Burst          int
	RefillInterval time.Duration
}

// CompanionConfig controls the simulated companion's response latency.
type CompanionConfig struct {
	MinDelay     time.Duration
	MaxDelay     time.Duration
	WelcomeDelay time.Duration
}

// Config holds the server configuration settings including security controls.
type Config struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
	MaxMessageSize int64
	RateLimit      RateLimitConfig
	Companion      CompanionConfig

	GeminiAPIKey string
	GeminiModel  string
	AITimeout    time.Duration

	JWTSecret string
}

func defaultConfig() Config {
	return Config{
		Port:           ":3000",
		Env:            "development",
		LogLevel:       "info",
		AllowedOrigins: []string{"*"},
		MaxMessageSize: 4096,
		RateLimit: RateLimitConfig{
			Burst:          5,
			RefillInterval: time.Second,
		},
		Companion: CompanionConfig{
			MinDelay:     1500 * time.Millisecond,
			MaxDelay:     3500 * time.Millisecond,
			WelcomeDelay: time.Second,
		},
		GeminiModel: "gemini-2.0-flash",
		AITimeout:   15 * time.Second,
		JWTSecret:   "dev-secret-change",
	}
}

// Sanitize replaces invalid values with defaults and returns the result.
func (cfg Config) Sanitize() Config {
	def := defaultConfig()

	if cfg.Port == "" {
		cfg.Port = def.Port
	}
	if !strings.Contains(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}

	if cfg.Env == "" {
		cfg.Env = def.Env
	}

	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = def.MaxMessageSize
	}

	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = def.RateLimit.Burst
	}

	if cfg.RateLimit.RefillInterval <= 0 {
		cfg.RateLimit.RefillInterval = def.RateLimit.RefillInterval
	}

	if cfg.Companion.MinDelay < 0 {
		cfg.Companion.MinDelay = 0
	}
	if cfg.Companion.MaxDelay < cfg.Companion.MinDelay {
		cfg.Companion.MaxDelay = cfg.Companion.MinDelay
	}
	if cfg.Companion.WelcomeDelay < 0 {
		cfg.Companion.WelcomeDelay = 0
	}

	if cfg.AITimeout <= 0 {
		cfg.AITimeout = def.AITimeout
	}

	if cfg.GeminiModel == "" {
		cfg.GeminiModel = def.GeminiModel
	}

	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = def.AllowedOrigins
	}
	cfg.AllowedOrigins = append([]string(nil), cfg.AllowedOrigins...)
	return cfg
}

// IsDevelopment returns true if running in development mode.
func (cfg Config) IsDevelopment() bool {
	return cfg.Env == "development" || cfg.Env == "dev"
}

// NewConfig creates a Config instance populated with default values for all settings.
func NewConfig() *Config {
	cfg := defaultConfig()
	return &cfg
}

// LoadConfig reads a .env file when present and then builds the configuration
// from environment variables.
func LoadConfig() *Config {
	_ = godotenv.Load()
	return NewConfigFromEnv()
}

// NewConfigFromEnv creates a Config instance from environment variables.
// Falls back to default values if environment variables are not set.
func NewConfigFromEnv() *Config {
	cfg := defaultConfig()

	// PORT wins over the older SERVER_PORT
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Port = port
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.Env = env
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = parseOrigins(origins)
	}

	if maxSize := os.Getenv("MAX_MESSAGE_SIZE"); maxSize != "" {
		cfg.MaxMessageSize = parseMaxMessageSize(maxSize, cfg.MaxMessageSize)
	}

	if burst := os.Getenv("RATE_LIMIT_BURST"); burst != "" {
		cfg.RateLimit.Burst = parseIntValue(burst, cfg.RateLimit.Burst)
	}

	if interval := os.Getenv("RATE_LIMIT_REFILL_INTERVAL"); interval != "" {
		cfg.RateLimit.RefillInterval = parseRefillInterval(interval, cfg.RateLimit.RefillInterval)
	}

	if v := os.Getenv("COMPANION_MIN_DELAY_MS"); v != "" {
		cfg.Companion.MinDelay = parseMillis(v, cfg.Companion.MinDelay)
	}
	if v := os.Getenv("COMPANION_MAX_DELAY_MS"); v != "" {
		cfg.Companion.MaxDelay = parseMillis(v, cfg.Companion.MaxDelay)
	}
	if v := os.Getenv("WELCOME_DELAY_MS"); v != "" {
		cfg.Companion.WelcomeDelay = parseMillis(v, cfg.Companion.WelcomeDelay)
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.GeminiModel = model
	}
	if v := os.Getenv("AI_TIMEOUT"); v != "" {
		cfg.AITimeout = parseRefillInterval(v, cfg.AITimeout)
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = secret
	}

	sanitized := cfg.Sanitize()
	return &sanitized
}

func parseOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseMaxMessageSize(value string, defaultValue int64) int64 {
	if size, err := strconv.ParseInt(value, 10, 64); err == nil && size > 0 {
		return size
	}
	return defaultValue
}

func parseIntValue(value string, defaultValue int) int {
	if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
		return parsed
	}
	return defaultValue
}

// parseRefillInterval accepts whole seconds ("5") or a Go duration ("1500ms").
func parseRefillInterval(value string, defaultValue time.Duration) time.Duration {
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func parseMillis(value string, defaultValue time.Duration) time.Duration {
	if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}
