package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultOpenRouterURL is the OpenAI-compatible endpoint used for the
// "openrouter" provider when no base URL is configured.
const DefaultOpenRouterURL = "https://openrouter.ai/api/v1"

// Config selects and configures the provider backing the answer judge.
type Config struct {
	// Provider is one of "anthropic", "openai", "openrouter", "gemini" or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenAIConfig
	Gemini     GeminiConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig also serves OpenAI-compatible gateways through BaseURL.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// RetryConfig controls backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	// InvalidRetries is how many off-schema replies are re-asked.
	InvalidRetries int
	InitialWait    time.Duration
	MaxWait        time.Duration
	Multiplier     float64
}

// DefaultConfig uses the cheapest model of each provider. Judging a short
// free-text answer does not need more.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		OpenRouter: OpenAIConfig{Model: "google/gemini-2.0-flash-001", BaseURL: DefaultOpenRouterURL},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts:    3,
			InvalidRetries: 1,
			InitialWait:    500 * time.Millisecond,
			MaxWait:        5 * time.Second,
			Multiplier:     2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// ConfigFromEnv overlays GRADEKIT_* environment variables on DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setString(&cfg.Provider, "GRADEKIT_LLM_PROVIDER")
	setString(&cfg.Anthropic.APIKey, "GRADEKIT_ANTHROPIC_API_KEY")
	setString(&cfg.Anthropic.Model, "GRADEKIT_ANTHROPIC_MODEL")
	setString(&cfg.OpenAI.APIKey, "GRADEKIT_OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "GRADEKIT_OPENAI_MODEL")
	setString(&cfg.OpenAI.BaseURL, "GRADEKIT_OPENAI_BASE_URL")
	setString(&cfg.OpenRouter.APIKey, "GRADEKIT_OPENROUTER_API_KEY")
	setString(&cfg.OpenRouter.Model, "GRADEKIT_OPENROUTER_MODEL")
	setString(&cfg.Gemini.APIKey, "GRADEKIT_GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "GRADEKIT_GEMINI_MODEL")

	if v := os.Getenv("GRADEKIT_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("GRADEKIT_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		}
	}
	return cfg
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig looks for the vendors' own API key variables, in the order
// Anthropic, OpenAI, Gemini, OpenRouter, and returns a Config for the first
// one set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	switch {
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// Validate reports a missing API key for the selected provider.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "anthropic":
		key, env = c.Anthropic.APIKey, "GRADEKIT_ANTHROPIC_API_KEY"
	case "openai":
		key, env = c.OpenAI.APIKey, "GRADEKIT_OPENAI_API_KEY"
	case "openrouter":
		key, env = c.OpenRouter.APIKey, "GRADEKIT_OPENROUTER_API_KEY"
	case "gemini":
		key, env = c.Gemini.APIKey, "GRADEKIT_GEMINI_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
