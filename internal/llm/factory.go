package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderFake   = "fake"
)

// Config selects and tunes a provider.
type Config struct {
	Provider      string
	Model         string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string

	RPS        float64
	Burst      int
	MaxRetries int
	Timeout    time.Duration
}

func (c Config) defaultModel() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderGemini:
		return "gemini-2.5-flash"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	}
	return "fake"
}

// New builds the configured client wrapped with logging, hooks, retries,
// per-attempt timeouts and rate limiting. It returns nil and no error when no
// provider is configured, which callers treat as demo mode.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (LLMClient, error) {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	var inner LLMClient
	switch cfg.Provider {
	case "":
		return nil, nil
	case ProviderGemini:
		g, err := NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.defaultModel())
		if err != nil {
			return nil, err
		}
		inner = g
	case ProviderOpenAI:
		inner = NewOpenAIClient(cfg.OpenAIAPIKey, cfg.defaultModel(), cfg.OpenAIBaseURL, nil)
	case ProviderFake:
		inner = NewFakeClient()
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}

	attempts := cfg.MaxRetries + 1
	return Wrap(inner,
		WithLogging(logger),
		Retry(attempts, 300*time.Millisecond),
		Timeout(cfg.Timeout),
		RateLimit(cfg.RPS, cfg.Burst),
	), nil
}
