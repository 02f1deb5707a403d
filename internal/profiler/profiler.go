package profiler

import (
	"context"
	"strings"
	"time"

	"github.com/BerylCAtieno/brand-intel-agent/internal/apperrors"
	"github.com/BerylCAtieno/brand-intel-agent/internal/llm"
	"github.com/BerylCAtieno/brand-intel-agent/internal/metrics"
	"github.com/BerylCAtieno/brand-intel-agent/internal/models"
	"go.uber.org/zap"
)

const (
	strategySearch = "search"
	strategyPlain  = "plain"
)

// BrandNameRequired is returned, verbatim, for empty input.
const BrandNameRequired = "Brand name is required"

// Generator produces a BrandSnapshot and a SalesStarterKit for a brand with
// two sequential model calls.
type Generator struct {
	client  llm.Client
	search  llm.SearchClient
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewGenerator wires the generator. search may be nil, in which case the
// snapshot is always requested with the plain JSON strategy.
func NewGenerator(client llm.Client, search llm.SearchClient, logger *zap.Logger, m *metrics.Metrics) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		client:  client,
		search:  search,
		logger:  logger,
		metrics: m,
	}
}

// SearchEnabled reports whether snapshot generation tries web search first.
func (g *Generator) SearchEnabled() bool {
	return g.search != nil
}

func (g *Generator) Generate(ctx context.Context, brandName string) (*models.GenerateResponse, error) {
	brand := strings.TrimSpace(brandName)
	if brand == "" {
		return nil, apperrors.Validation(BrandNameRequired)
	}

	log := g.logger.With(zap.String("brand", brand))
	start := time.Now()
	log.Info("generating brand intelligence", zap.Bool("search_enabled", g.SearchEnabled()))

	resp, err := g.generate(ctx, log, brand)
	if err != nil {
		kind := apperrors.Kind(err)
		g.metrics.RecordGeneration(kind)
		log.Error("brand intelligence generation failed",
			zap.String("error_kind", kind),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.Error(err))
		return nil, err
	}

	g.metrics.RecordGeneration("success")
	log.Info("brand intelligence generated", zap.Int64("duration_ms", time.Since(start).Milliseconds()))

	return resp, nil
}

func (g *Generator) generate(ctx context.Context, log *zap.Logger, brand string) (*models.GenerateResponse, error) {
	snapshot, err := g.snapshot(ctx, log, brand)
	if err != nil {
		return nil, err
	}

	kit, err := g.salesKit(ctx, brand, snapshot)
	if err != nil {
		return nil, err
	}

	return &models.GenerateResponse{
		BrandSnapshot:   *snapshot,
		SalesStarterKit: *kit,
	}, nil
}

// snapshot tries the search-augmented strategy when available and falls
// back to plain JSON generation on any failure. The fallback is logged and
// counted but never returned to the caller.
func (g *Generator) snapshot(ctx context.Context, log *zap.Logger, brand string) (*models.BrandSnapshot, error) {
	if g.search != nil {
		snapshot, err := g.snapshotWithSearch(ctx, brand)
		if err == nil {
			g.metrics.RecordSnapshotStrategy(strategySearch, "success")
			log.Debug("brand snapshot acquired", zap.String("strategy", strategySearch))
			return snapshot, nil
		}

		g.metrics.RecordSnapshotStrategy(strategySearch, "failure")
		g.metrics.RecordFallback()
		log.Warn("search-augmented snapshot failed, falling back to plain generation",
			zap.String("error_kind", apperrors.Kind(err)),
			zap.Error(err))
	}

	snapshot, err := g.snapshotPlain(ctx, brand)
	if err != nil {
		g.metrics.RecordSnapshotStrategy(strategyPlain, "failure")
		return nil, err
	}

	g.metrics.RecordSnapshotStrategy(strategyPlain, "success")
	log.Debug("brand snapshot acquired", zap.String("strategy", strategyPlain))
	return snapshot, nil
}

func (g *Generator) snapshotWithSearch(ctx context.Context, brand string) (*models.BrandSnapshot, error) {
	text, err := g.search.CompleteWithSearch(ctx, buildSearchSnapshotPrompt(brand))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.Generation("failed to generate brand snapshot")
	}

	raw, err := ExtractJSONObject(text)
	if err != nil {
		return nil, err
	}

	return decodeSnapshot(raw)
}

func (g *Generator) snapshotPlain(ctx context.Context, brand string) (*models.BrandSnapshot, error) {
	text, err := g.client.CompleteJSON(ctx, snapshotSystemPrompt, buildSnapshotPrompt(brand))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.Generation("failed to generate brand snapshot")
	}

	return decodeSnapshot(text)
}

func (g *Generator) salesKit(ctx context.Context, brand string, snapshot *models.BrandSnapshot) (*models.SalesStarterKit, error) {
	prompt, err := buildSalesKitPrompt(brand, snapshot)
	if err != nil {
		return nil, err
	}

	text, err := g.client.CompleteJSON(ctx, salesKitSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.Generation("failed to generate sales starter kit")
	}

	return decodeSalesKit(text)
}
