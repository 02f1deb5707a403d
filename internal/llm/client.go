// Package llm adapts language model providers to the two call shapes the
// brand generator needs: JSON-constrained completion and web-search
// augmented completion.
package llm

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/brand-intel-agent/internal/metrics"
	"go.uber.org/zap"
)

// Provider constants for LLM provider selection.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Client is implemented by every backend.
type Client interface {
	// CompleteJSON asks for a response constrained to a JSON object and
	// returns the raw text. An empty string means the model produced no
	// content.
	CompleteJSON(ctx context.Context, systemInstruction, userPrompt string) (string, error)
	Model() string
	Close() error
}

// SearchClient is implemented by backends that can browse the web while
// generating. The returned text is free-form and may wrap the answer in
// prose or citations.
type SearchClient interface {
	CompleteWithSearch(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	SearchModel string
	Temperature float64
	MaxTokens   int
}

// New creates the Client for cfg.Provider. Defaults to OpenAI when no
// provider is specified.
func New(ctx context.Context, cfg Config, logger *zap.Logger, m *metrics.Metrics) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	switch cfg.Provider {
	case "", ProviderOpenAI:
		return NewOpenAIClient(cfg, logger, m)
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg, logger, m)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
