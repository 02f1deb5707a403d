package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/brand-intel-agent/internal/apperrors"
	"github.com/BerylCAtieno/brand-intel-agent/internal/metrics"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiClient talks to the Gemini API. It only supports plain JSON
// completion.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

func NewGeminiClient(ctx context.Context, cfg Config, logger *zap.Logger, m *metrics.Metrics) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &GeminiClient{
		client:      client,
		model:       model,
		temperature: float32(cfg.Temperature),
		maxTokens:   int32(cfg.MaxTokens),
		logger:      logger.With(zap.String("provider", ProviderGemini)),
		metrics:     m,
	}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func (g *GeminiClient) Model() string {
	return g.model
}

func (g *GeminiClient) CompleteJSON(ctx context.Context, systemInstruction, userPrompt string) (string, error) {
	// GenerativeModel carries per-call settings, so each request gets its own.
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(g.temperature)
	model.SetTopP(0.95)
	if g.maxTokens > 0 {
		model.SetMaxOutputTokens(g.maxTokens)
	}
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemInstruction))

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	g.metrics.ObserveLLM("complete_json", start)
	if err != nil {
		return "", apperrors.Backend(err, "failed to generate content")
	}

	text := candidateText(resp)

	g.logger.Debug("llm generate content completed",
		zap.String("model", g.model),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		zap.Int("candidates", len(resp.Candidates)),
		zap.Int("chars", len(text)))

	return text, nil
}

// candidateText joins the text parts of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
