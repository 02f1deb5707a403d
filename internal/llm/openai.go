package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/BerylCAtieno/brand-intel-agent/internal/apperrors"
	"github.com/BerylCAtieno/brand-intel-agent/internal/metrics"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"
)

const (
	defaultOpenAIModel       = "gpt-4o-mini"
	defaultOpenAISearchModel = "gpt-4o-mini-search-preview"
)

// OpenAIClient talks to the Chat Completions API. It supports both plain
// JSON completion and web-search augmented completion.
type OpenAIClient struct {
	client      openai.Client
	model       string
	searchModel string
	temperature float64
	maxTokens   int
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

func NewOpenAIClient(cfg Config, logger *zap.Logger, m *metrics.Metrics) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	// The generator owns the only fallback; the transport must not retry.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	searchModel := cfg.SearchModel
	if searchModel == "" {
		searchModel = defaultOpenAISearchModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		model:       model,
		searchModel: searchModel,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger.With(zap.String("provider", ProviderOpenAI)),
		metrics:     m,
	}, nil
}

func (c *OpenAIClient) CompleteJSON(ctx context.Context, systemInstruction, userPrompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemInstruction),
			openai.UserMessage(userPrompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(c.temperature),
	}
	if c.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(c.maxTokens))
	}

	return c.complete(ctx, "complete_json", c.model, params)
}

// CompleteWithSearch runs the prompt against the search model with web
// search enabled. Search models reject sampling parameters, so none are
// sent.
func (c *OpenAIClient) CompleteWithSearch(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.searchModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		WebSearchOptions: openai.ChatCompletionNewParamsWebSearchOptions{
			SearchContextSize: "medium",
		},
	}

	return c.complete(ctx, "complete_with_search", c.searchModel, params)
}

func (c *OpenAIClient) complete(ctx context.Context, operation, model string, params openai.ChatCompletionNewParams) (string, error) {
	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	c.metrics.ObserveLLM(operation, start)
	if err != nil {
		return "", apperrors.Backend(err, "openai chat completion")
	}

	c.logger.Debug("llm chat completed",
		zap.String("operation", operation),
		zap.String("model", model),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int("choices", len(resp.Choices)))

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) Model() string {
	return c.model
}

func (c *OpenAIClient) Close() error {
	return nil
}
