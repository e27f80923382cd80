package llm

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "anthropic", "openai", "openrouter", "mock"
	Provider string `env:"PROMPTQUEST_LLM_PROVIDER" envDefault:"gemini"`

	Gemini     GeminiConfig     `envPrefix:"PROMPTQUEST_GEMINI_"`
	Anthropic  AnthropicConfig  `envPrefix:"PROMPTQUEST_ANTHROPIC_"`
	OpenAI     OpenAIConfig     `envPrefix:"PROMPTQUEST_OPENAI_"`
	OpenRouter OpenRouterConfig `envPrefix:"PROMPTQUEST_OPENROUTER_"`

	// Timeout bounds a single judge request. Default: 30s.
	Timeout time.Duration `env:"PROMPTQUEST_LLM_TIMEOUT" envDefault:"30s"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"gemini-flash-lite"`
	BaseURL string `env:"BASE_URL"` // Optional. Override for proxies and tests.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"claude-haiku"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"BASE_URL"` // Optional. Override for compatible APIs.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"google/gemini-2.5-flash-lite"`
	BaseURL string `env:"BASE_URL"` // Default: "https://openrouter.ai/api/v1"
}

// standardKeys are the vendor-wide API key variables probed when the
// project-specific ones are unset.
type standardKeys struct {
	Gemini     string `env:"GEMINI_API_KEY"`
	Anthropic  string `env:"ANTHROPIC_API_KEY"`
	OpenAI     string `env:"OPENAI_API_KEY"`
	OpenRouter string `env:"OPENROUTER_API_KEY"`
}

// DefaultConfig returns a Config with defaults and no credentials.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Gemini:     GeminiConfig{Model: "gemini-flash-lite"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash-lite"},
		Timeout:    30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from the process environment.
func ConfigFromEnv() (Config, error) {
	return parseConfig(env.Options{})
}

// ConfigFromMap builds a Config from an explicit variable set instead of
// the process environment.
func ConfigFromMap(vars map[string]string) (Config, error) {
	return parseConfig(env.Options{Environment: vars})
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse LLM config: %w", err)
	}

	var std standardKeys
	if err := env.ParseWithOptions(&std, opts); err != nil {
		return Config{}, fmt.Errorf("parse LLM keys: %w", err)
	}
	cfg.applyStandardKeys(std)

	return cfg, nil
}

// applyStandardKeys fills missing credentials from the vendor-wide
// variables, so an existing GEMINI_API_KEY just works.
func (c *Config) applyStandardKeys(std standardKeys) {
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = std.Gemini
	}
	if c.Anthropic.APIKey == "" {
		c.Anthropic.APIKey = std.Anthropic
	}
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = std.OpenAI
	}
	if c.OpenRouter.APIKey == "" {
		c.OpenRouter.APIKey = std.OpenRouter
	}
}

// Validate checks that the selected provider has its required API key set.
// A missing key is reported as ErrMissingAPIKey.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("%w: PROMPTQUEST_GEMINI_API_KEY or GEMINI_API_KEY is required for the gemini provider", ErrMissingAPIKey)
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("%w: PROMPTQUEST_ANTHROPIC_API_KEY is required for the anthropic provider", ErrMissingAPIKey)
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("%w: PROMPTQUEST_OPENAI_API_KEY is required for the openai provider", ErrMissingAPIKey)
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("%w: PROMPTQUEST_OPENROUTER_API_KEY is required for the openrouter provider", ErrMissingAPIKey)
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
