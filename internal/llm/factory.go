package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/gradekit/internal/store"
)

// Providers lists the names accepted by Config.Provider.
var Providers = []string{"anthropic", "openai", "openrouter", "gemini", "mock"}

// NewProvider builds the configured provider and wraps it as
// caller -> timeout -> retry -> logging -> base. A nil repo skips request
// logging.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		or := cfg.OpenRouter
		if or.BaseURL == "" {
			or.BaseURL = DefaultOpenRouterURL
		}
		base, err = NewOpenAIProvider(or)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if repo != nil {
		p = WithLogging(p, cfg.Provider, repo, logger)
	}
	p = WithRetry(p, cfg.Retry)
	if cfg.Timeout > 0 {
		p = WithTimeout(p, cfg.Timeout)
	}
	return p, nil
}
