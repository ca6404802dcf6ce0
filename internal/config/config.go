package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Search   SearchConfig
	Coupon   CouponConfig
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"90s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
}

type LLMConfig struct {
	Provider        string        `env:"LLM_PROVIDER" envDefault:"anthropic"`
	AnthropicAPIKey string        `env:"ANTHROPIC_API_KEY"`
	AnthropicURL    string        `env:"ANTHROPIC_BASE_URL"`
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	OpenAIURL       string        `env:"OPENAI_BASE_URL"`
	Model           string        `env:"LLM_MODEL"`
	MaxTokens       int           `env:"LLM_MAX_TOKENS" envDefault:"1024"`
	Timeout         time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
}

type SearchConfig struct {
	SerpAPIKey  string        `env:"SERPAPI_KEY"`
	SerpAPIURL  string        `env:"SERPAPI_BASE_URL" envDefault:"https://serpapi.com/search.json"`
	Timeout     time.Duration `env:"SERPAPI_TIMEOUT" envDefault:"10s"`
	RateLimit   float64       `env:"SERPAPI_RATE_LIMIT" envDefault:"0"`
	Concurrency int           `env:"SEARCH_CONCURRENCY" envDefault:"1"`
}

type CouponConfig struct {
	File string `env:"COUPON_FILE"`
}

// APIKey returns the credential of the selected language model provider
func (c LLMConfig) APIKey() string {
	if strings.ToLower(c.Provider) == "openai" {
		return c.OpenAIAPIKey
	}
	return c.AnthropicAPIKey
}

// BaseURL returns the endpoint override of the selected language model provider
func (c LLMConfig) BaseURL() string {
	if strings.ToLower(c.Provider) == "openai" {
		return c.OpenAIURL
	}
	return c.AnthropicURL
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return validated(cfg)
}

// LoadFrom reads configuration from the given variables instead of the process environment
func LoadFrom(environment map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return validated(cfg)
}

func validated(cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid PORT: %s", c.Server.Port)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	switch strings.ToLower(c.LLM.Provider) {
	case "anthropic":
		if c.LLM.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when LLM_PROVIDER is anthropic")
		}
	case "openai":
		// compatible local servers may run without a key
		if c.LLM.OpenAIAPIKey == "" && c.LLM.OpenAIURL == "" {
			return fmt.Errorf("OPENAI_API_KEY or OPENAI_BASE_URL is required when LLM_PROVIDER is openai")
		}
	default:
		return fmt.Errorf("invalid LLM_PROVIDER: %s (must be anthropic or openai)", c.LLM.Provider)
	}

	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive")
	}
	if c.Search.Concurrency < 1 {
		return fmt.Errorf("SEARCH_CONCURRENCY must be at least 1")
	}
	if c.Search.RateLimit < 0 {
		return fmt.Errorf("SERPAPI_RATE_LIMIT must not be negative")
	}

	return nil
}
