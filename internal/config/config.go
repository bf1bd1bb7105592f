// Package config loads process configuration from the environment.
//
// A .env file in the working directory is honored when present (godotenv),
// then real environment variables win. Load fails fast with every missing
// required key named, so a bad deploy dies at startup instead of on the
// first live call.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env          string
	Port         string
	ClientOrigin string

	Groq GroqConfig
	HTTP HTTPConfig

	// MockProvider swaps the live provider for the deterministic mock.
	// Keyless development runs and CI set this.
	MockProvider bool
}

type GroqConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type HTTPConfig struct {
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MaxRequestBytes   int64

	ExecuteRateLimit RateLimitConfig
	GeneralRateLimit RateLimitConfig
}

type RateLimitConfig struct {
	Window time.Duration
	Max    int
}

func (c *Config) Development() bool {
	return !strings.EqualFold(c.Env, "production")
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:          getEnv("APP_ENV", "development"),
		Port:         strings.TrimSpace(os.Getenv("PORT")),
		ClientOrigin: strings.TrimSpace(os.Getenv("CLIENT_ORIGIN")),
		Groq: GroqConfig{
			APIKey:  strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
			BaseURL: getEnv("GROQ_BASE_URL", "https://api.groq.com/openai"),
			Timeout: time.Duration(getEnvAsInt("GROQ_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		HTTP: HTTPConfig{
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       2 * time.Minute,
			ShutdownTimeout:   15 * time.Second,
			MaxRequestBytes:   int64(getEnvAsInt("MAX_REQUEST_BYTES", 10<<20)),
			ExecuteRateLimit:  RateLimitConfig{Window: 15 * time.Minute, Max: 50},
			GeneralRateLimit:  RateLimitConfig{Window: 15 * time.Minute, Max: 200},
		},
		MockProvider: parseBool(os.Getenv("PROMPT_MOCK")),
	}

	var missing []string
	if cfg.Port == "" {
		missing = append(missing, "PORT")
	}
	if cfg.ClientOrigin == "" {
		missing = append(missing, "CLIENT_ORIGIN")
	}
	if cfg.Groq.APIKey == "" && !cfg.MockProvider {
		missing = append(missing, "GROQ_API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment: %s", strings.Join(missing, ", "))
	}

	cfg.Groq.BaseURL = strings.TrimRight(cfg.Groq.BaseURL, "/")
	if cfg.Groq.BaseURL == "" && !cfg.MockProvider {
		return nil, errors.New("GROQ_BASE_URL must not be empty")
	}
	if cfg.HTTP.MaxRequestBytes <= 0 {
		cfg.HTTP.MaxRequestBytes = 10 << 20
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getEnvAsInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}
